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

package repositorylist

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/state"
	"github.com/stefanprodan/kubedeck/internal/views/chrome"
)

func TestStateConfig_EmptyList(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/repository" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"items": [], "listMeta": {"totalItems": 0}}`))
	}))
	defer srv.Close()

	factory, err := resource.NewFactory(srv.URL, nil)
	g.Expect(err).ToNot(HaveOccurred())

	router, err := state.NewRouter(chrome.StateConfig(nil), StateConfig(factory, nil))
	g.Expect(err).ToNot(HaveOccurred())

	s, params, err := router.Match("/repository", nil)
	g.Expect(err).ToNot(HaveOccurred())

	page, err := router.Navigate(context.Background(), s.Name, params)
	g.Expect(err).ToNot(HaveOccurred())

	v, ok := page.View(StateName, "")
	g.Expect(ok).To(BeTrue())
	ctrl := v.Controller.(*RepositoryListController)
	g.Expect(ctrl.ShouldShowZeroState()).To(BeTrue())
	g.Expect(ctrl.RepositoryListResource.Template()).To(Equal("api/v1/repository"))

	ab, ok := page.View(StateName, chrome.ActionbarViewName)
	g.Expect(ok).To(BeTrue())
	g.Expect(ab.Controller).To(BeAssignableToTypeOf(&ActionBarController{}))
	g.Expect(page.Breadcrumbs).To(HaveLen(1))
	g.Expect(page.Breadcrumbs[0].Label).To(Equal("Repositories"))
}

func TestActionBarController(t *testing.T) {
	g := NewWithT(t)

	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPost:
			if strings.HasSuffix(r.URL.Path, "/update") {
				_, _ = w.Write([]byte(`{"name":"stable","url":"https://charts.helm.sh/stable","phase":"Available"}`))
				return
			}
			body, _ := io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write(body)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	factory, err := resource.NewFactory(srv.URL, nil)
	g.Expect(err).ToNot(HaveOccurred())

	ctrl := NewActionBarController(factory.New(itemTemplate), factory.New(updateTemplate))

	repo, err := ctrl.AddRepository(context.Background(), "bitnami", "https://charts.bitnami.com/bitnami")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(repo).To(Equal(&apiv1.Repository{Name: "bitnami", URL: "https://charts.bitnami.com/bitnami"}))

	g.Expect(ctrl.RemoveRepository(context.Background(), "bitnami")).To(Succeed())

	repo, err = ctrl.UpdateRepository(context.Background(), "stable")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(repo.Phase).To(Equal(apiv1.RepositoryAvailable))

	g.Expect(calls).To(Equal([]string{
		"POST /api/v1/repository",
		"DELETE /api/v1/repository/bitnami",
		"POST /api/v1/repository/stable/update",
	}))

	_, err = ctrl.UpdateRepository(context.Background(), "")
	g.Expect(err).To(HaveOccurred())

	_, err = ctrl.AddRepository(context.Background(), "", "")
	g.Expect(err).To(HaveOccurred())
}
