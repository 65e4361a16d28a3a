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

// Package backend implements the REST API the dashboard pages read from.
package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"k8s.io/apimachinery/pkg/util/json"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/chartrepo"
	"github.com/stefanprodan/kubedeck/internal/pagination"
)

// Prefix is the path the API is mounted on.
const Prefix = "/api/v1"

// ReleaseReader reads the releases of the cluster.
type ReleaseReader interface {
	List(ctx context.Context, namespace string) ([]apiv1.Release, error)
	Get(ctx context.Context, name, namespace string) (*apiv1.Release, error)
}

// DeploymentReader reads the deployments of the cluster.
type DeploymentReader interface {
	List(ctx context.Context, namespace string) ([]apiv1.Deployment, error)
	Get(ctx context.Context, namespace, name string) (*apiv1.DeploymentDetail, error)
}

// API serves the list and detail payloads.
type API struct {
	repositories *chartrepo.Home
	releases     ReleaseReader
	deployments  DeploymentReader
}

// NewAPI returns the API. The release and deployment readers are optional,
// when nil their endpoints answer 503.
func NewAPI(repositories *chartrepo.Home, releases ReleaseReader, deployments DeploymentReader) *API {
	return &API{
		repositories: repositories,
		releases:     releases,
		deployments:  deployments,
	}
}

// Register mounts the API routes on the router.
func (a *API) Register(r *mux.Router) {
	api := r.PathPrefix(Prefix).Subrouter()

	api.HandleFunc("/repository", a.listRepositories).Methods(http.MethodGet)
	api.HandleFunc("/repository", a.addRepository).Methods(http.MethodPost)
	api.HandleFunc("/repository/{name}", a.getRepository).Methods(http.MethodGet)
	api.HandleFunc("/repository/{name}", a.removeRepository).Methods(http.MethodDelete)
	api.HandleFunc("/repository/{name}/update", a.updateRepository).Methods(http.MethodPost)
	api.HandleFunc("/repository/{name}/chart", a.listCharts).Methods(http.MethodGet)

	api.HandleFunc("/release", a.listReleases).Methods(http.MethodGet)
	api.HandleFunc("/release/{namespace}", a.listReleases).Methods(http.MethodGet)
	api.HandleFunc("/release/{namespace}/{name}", a.getRelease).Methods(http.MethodGet)

	api.HandleFunc("/deployment", a.listDeployments).Methods(http.MethodGet)
	api.HandleFunc("/deployment/{namespace}", a.listDeployments).Methods(http.MethodGet)
	api.HandleFunc("/deployment/{namespace}/{name}", a.getDeployment).Methods(http.MethodGet)

	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, fmt.Errorf("%s not found", r.URL.Path))
	})
	api.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, fmt.Errorf("%w: %s %s", errMethodNotAllowed, r.Method, r.URL.Path))
	})
}

// Handler returns the API routes on a new router.
func (a *API) Handler() http.Handler {
	r := mux.NewRouter()
	a.Register(r)
	return r
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	WriteError(w, r, statusCode(err), err)
}

func (a *API) listRepositories(w http.ResponseWriter, r *http.Request) {
	list, err := a.repositories.List()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, list)
}

func (a *API) addRepository(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		a.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	var spec apiv1.Repository
	if err := json.Unmarshal(data, &spec); err != nil {
		a.fail(w, r, fmt.Errorf("%w: invalid repository: %w", errBadRequest, err))
		return
	}
	if spec.Name == "" || spec.URL == "" {
		a.fail(w, r, fmt.Errorf("%w: repository name and url are required", errBadRequest))
		return
	}
	if err := chartrepo.ValidateName(spec.Name); err != nil {
		a.fail(w, r, err)
		return
	}

	repo, err := a.repositories.Add(r.Context(), spec.Name, spec.URL)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, repo)
}

func (a *API) getRepository(w http.ResponseWriter, r *http.Request) {
	repo, err := a.repositories.Get(mux.Vars(r)["name"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, repo)
}

func (a *API) removeRepository(w http.ResponseWriter, r *http.Request) {
	if err := a.repositories.Remove(mux.Vars(r)["name"]); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// updateRepository downloads the index again, a pending repository becomes available.
func (a *API) updateRepository(w http.ResponseWriter, r *http.Request) {
	repo, err := a.repositories.Update(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, repo)
}

func (a *API) listCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := a.repositories.Charts(mux.Vars(r)["name"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	q := pagination.ParseQuery(r.URL.Query())
	charts.Items = pagination.Paginate(charts.Items, q)
	WriteJSON(w, r, http.StatusOK, charts)
}

func (a *API) listReleases(w http.ResponseWriter, r *http.Request) {
	if a.releases == nil {
		a.fail(w, r, errNoCluster)
		return
	}
	items, err := a.releases.List(r.Context(), mux.Vars(r)["namespace"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	q := pagination.ParseQuery(r.URL.Query())
	WriteJSON(w, r, http.StatusOK, apiv1.ReleaseList{
		ListMeta: apiv1.ListMeta{TotalItems: len(items)},
		Items:    pagination.Paginate(items, q),
	})
}

func (a *API) getRelease(w http.ResponseWriter, r *http.Request) {
	if a.releases == nil {
		a.fail(w, r, errNoCluster)
		return
	}
	vars := mux.Vars(r)
	rel, err := a.releases.Get(r.Context(), vars["name"], vars["namespace"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, rel)
}

func (a *API) listDeployments(w http.ResponseWriter, r *http.Request) {
	if a.deployments == nil {
		a.fail(w, r, errNoCluster)
		return
	}
	items, err := a.deployments.List(r.Context(), mux.Vars(r)["namespace"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	q := pagination.ParseQuery(r.URL.Query())
	WriteJSON(w, r, http.StatusOK, apiv1.DeploymentList{
		ListMeta: apiv1.ListMeta{TotalItems: len(items)},
		Items:    pagination.Paginate(items, q),
	})
}

func (a *API) getDeployment(w http.ResponseWriter, r *http.Request) {
	if a.deployments == nil {
		a.fail(w, r, errNoCluster)
		return
	}
	vars := mux.Vars(r)
	detail, err := a.deployments.Get(r.Context(), vars["namespace"], vars["name"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, detail)
}
