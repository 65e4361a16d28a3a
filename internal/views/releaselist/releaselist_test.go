/*
Copyright 2024 Stefan Prodan

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package releaselist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/pagination"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/state"
	"github.com/stefanprodan/kubedeck/internal/views/chrome"
)

func TestReleaseListController_ShouldShowZeroState(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		g := NewWithT(t)
		list := &apiv1.ReleaseList{ListMeta: apiv1.ListMeta{TotalItems: n}, Items: make([]apiv1.Release, n)}
		g.Expect(NewReleaseListController(list, nil).ShouldShowZeroState()).To(Equal(n == 0))
	}
}

func TestStateConfig_Navigate(t *testing.T) {
	g := NewWithT(t)

	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.String()
		_, _ = w.Write([]byte(`{"listMeta":{"totalItems":1},"items":[{"objectMeta":{"name":"redis","namespace":"apps"},"chart":"redis","revision":3,"status":"deployed"}]}`))
	}))
	defer srv.Close()

	factory, err := resource.NewFactory(srv.URL, nil)
	g.Expect(err).ToNot(HaveOccurred())

	router, err := state.NewRouter(chrome.StateConfig(nil), StateConfig(factory, pagination.NewService(25), nil))
	g.Expect(err).ToNot(HaveOccurred())

	page, err := router.Navigate(context.Background(), StateName, state.Params{"namespace": "apps"})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(requested).To(Equal("/api/v1/release/apps?itemsPerPage=25&page=1"))

	v, ok := page.View(StateName, "")
	g.Expect(ok).To(BeTrue())
	ctrl := v.Controller.(*ReleaseListController)
	g.Expect(ctrl.ShouldShowZeroState()).To(BeFalse())
	g.Expect(ctrl.ReleaseList.Items[0].Revision).To(Equal(3))
	g.Expect(ctrl.ReleaseListResource.Template()).To(Equal(ResourceTemplate))
}
