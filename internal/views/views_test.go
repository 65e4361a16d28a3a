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

package views

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"
	"golang.org/x/text/language"

	"github.com/stefanprodan/kubedeck/internal/pagination"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/views/repositorylist"
)

func TestNewRouter(t *testing.T) {
	g := NewWithT(t)

	catalog, err := NewCatalog(language.English)
	g.Expect(err).ToNot(HaveOccurred())

	factory, err := resource.NewFactory("http://localhost:9090", nil)
	g.Expect(err).ToNot(HaveOccurred())

	router, err := NewRouter(Deps{Resources: factory, Pagination: pagination.NewService(0), Catalog: catalog})
	g.Expect(err).ToNot(HaveOccurred())

	var names []string
	for _, s := range router.States() {
		names = append(names, s.Name)
	}
	g.Expect(names).To(Equal([]string{"chrome", "deploymentlist", "deploymentdetail", "releaselist", "repositorylist"}))

	g.Expect(router.URLPattern("deploymentdetail")).To(Equal("/deployment/:objectNamespace/:objectName?namespace"))
	g.Expect(router.URLPattern("releaselist")).To(Equal("/release?namespace"))
}

func TestNavigate_RepositoryListZeroState(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[],"listMeta":{"totalItems":0}}`))
	}))
	defer srv.Close()

	factory, err := resource.NewFactory(srv.URL, nil)
	g.Expect(err).ToNot(HaveOccurred())

	router, err := NewRouter(Deps{Resources: factory})
	g.Expect(err).ToNot(HaveOccurred())

	page, err := router.Navigate(context.Background(), repositorylist.StateName, nil)
	g.Expect(err).ToNot(HaveOccurred())

	v, ok := page.View(repositorylist.StateName, "")
	g.Expect(ok).To(BeTrue())
	ctrl := v.Controller.(*repositorylist.RepositoryListController)
	g.Expect(ctrl.ShouldShowZeroState()).To(BeTrue())
	g.Expect(ctrl.RepositoryListResource.Template()).To(Equal("api/v1/repository"))
}
