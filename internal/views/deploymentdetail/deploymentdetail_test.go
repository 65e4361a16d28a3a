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

package deploymentdetail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"
	"golang.org/x/text/language"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/i18n"
	"github.com/stefanprodan/kubedeck/internal/pagination"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/state"
	"github.com/stefanprodan/kubedeck/internal/views/chrome"
	"github.com/stefanprodan/kubedeck/internal/views/deploymentlist"
)

func TestNewDeploymentDetailController(t *testing.T) {
	tests := []struct {
		name string
		rs   apiv1.ReplicaSet
	}{
		{name: "empty replica set", rs: apiv1.ReplicaSet{}},
		{name: "populated replica set", rs: apiv1.ReplicaSet{
			ObjectMeta:      apiv1.ObjectMeta{Name: "nginx-7c5ddbdf54", Namespace: "default"},
			Pods:            apiv1.PodInfo{Current: 2, Desired: 3},
			ContainerImages: []string{"nginx:1.25"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			ctrl := NewDeploymentDetailController(&apiv1.DeploymentDetail{NewReplicaSet: tt.rs}, Messages)
			g.Expect(ctrl.NewReplicaSetList.ListMeta.TotalItems).To(Equal(1))
			g.Expect(ctrl.NewReplicaSetList.Items).To(Equal([]apiv1.ReplicaSet{tt.rs}))
		})
	}
}

func TestDetailResource(t *testing.T) {
	g := NewWithT(t)

	factory, err := resource.NewFactory("http://localhost:9090", nil)
	g.Expect(err).ToNot(HaveOccurred())

	r := DetailResource(factory, "kube-system", "nginx")
	g.Expect(r.Template()).To(Equal("api/v1/deployment/kube-system/nginx"))
}

func TestStateConfig_Navigate(t *testing.T) {
	g := NewWithT(t)

	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		_, _ = w.Write([]byte(`{
  "objectMeta": {"name": "nginx", "namespace": "kube-system"},
  "typeMeta": {"kind": "deployment"},
  "status": "Current",
  "newReplicaSet": {"objectMeta": {"name": "nginx-1"}},
  "oldReplicaSetList": {"listMeta": {"totalItems": 0}, "items": []}
}`))
	}))
	defer srv.Close()

	factory, err := resource.NewFactory(srv.URL, nil)
	g.Expect(err).ToNot(HaveOccurred())

	catalog, err := i18n.NewCatalog(language.English, Messages, deploymentlist.Messages)
	g.Expect(err).ToNot(HaveOccurred())

	router, err := state.NewRouter(
		chrome.StateConfig(catalog),
		deploymentlist.StateConfig(factory, pagination.NewService(0), catalog),
		StateConfig(factory, catalog),
	)
	g.Expect(err).ToNot(HaveOccurred())

	s, params, err := router.Match("/deployment/kube-system/nginx", nil)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(s.Name).To(Equal(StateName))

	page, err := router.Navigate(context.Background(), s.Name, params)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(requested).To(Equal([]string{"/api/v1/deployment/kube-system/nginx"}))
	g.Expect(page.Locals["deploymentDetailResource"].(resource.Client).Template()).
		To(Equal("api/v1/deployment/kube-system/nginx"))

	v, ok := page.View(StateName, "")
	g.Expect(ok).To(BeTrue())
	g.Expect(v.ControllerAs).To(Equal("ctrl"))
	ctrl := v.Controller.(*DeploymentDetailController)
	g.Expect(ctrl.DeploymentDetail.Status).To(Equal("Current"))
	g.Expect(ctrl.NewReplicaSetList.Items[0].ObjectMeta.Name).To(Equal("nginx-1"))
	g.Expect(ctrl.I18n).To(HaveKeyWithValue("MSG_DEPLOYMENT_DETAIL_OVERVIEW_LABEL", "Overview"))

	ab, ok := page.View(StateName, chrome.ActionbarViewName)
	g.Expect(ok).To(BeTrue())
	g.Expect(ab.Controller.(*ActionBarController).Details.Name).To(Equal("nginx"))

	g.Expect(page.Breadcrumbs).To(Equal([]state.Crumb{
		{Label: "Deployments", State: deploymentlist.StateName, Href: "/deployment"},
		{Label: "nginx", State: StateName, Href: "/deployment/kube-system/nginx"},
	}))
}

func TestStateConfig_NotFound(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	factory, err := resource.NewFactory(srv.URL, nil)
	g.Expect(err).ToNot(HaveOccurred())

	router, err := state.NewRouter(
		chrome.StateConfig(nil),
		deploymentlist.StateConfig(factory, pagination.NewService(0), nil),
		StateConfig(factory, nil),
	)
	g.Expect(err).ToNot(HaveOccurred())

	_, err = router.Navigate(context.Background(), StateName,
		state.Params{"objectNamespace": "default", "objectName": "missing"})
	g.Expect(resource.IsNotFound(err)).To(BeTrue())
}
