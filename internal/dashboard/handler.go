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

// Package dashboard serves the view models of the dashboard pages.
package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"

	"github.com/stefanprodan/kubedeck/internal/backend"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/state"
)

// Prefix is the path the pages are mounted on.
const Prefix = "/ui"

// Register mounts every non-abstract state of the router on r.
func Register(r *mux.Router, router *state.Router) {
	ui := r.PathPrefix(Prefix).Subrouter()
	for _, s := range router.States() {
		if s.Abstract {
			continue
		}
		ui.Handle(muxPath(router.PathPattern(s.Name)), pageHandler(router, s.Name)).
			Methods(http.MethodGet).
			Name(s.Name)
	}
	ui.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, Prefix)
		backend.WriteError(w, r, http.StatusNotFound, fmt.Errorf("%w for %s", state.ErrNoRoute, path))
	})
}

// NewHandler returns a handler serving the pages of the router.
func NewHandler(router *state.Router, log logr.Logger) http.Handler {
	r := mux.NewRouter()
	Register(r, router)
	return withLogger(r, log)
}

func pageHandler(router *state.Router, name string) http.HandlerFunc {
	queryParams := router.QueryParams(name)
	return func(w http.ResponseWriter, r *http.Request) {
		params := state.Params{}
		for k, v := range mux.Vars(r) {
			params[k] = v
		}
		query := r.URL.Query()
		for _, q := range queryParams {
			if v := query.Get(q); v != "" {
				params[q] = v
			}
		}

		page, err := router.Navigate(r.Context(), name, params)
		if err != nil {
			backend.WriteError(w, r, StatusCode(err), err)
			return
		}
		backend.WriteJSON(w, r, http.StatusOK, page)
	}
}

// StatusCode maps a navigation error to an HTTP status code.
func StatusCode(err error) int {
	var se *resource.StatusError
	var ue *url.Error
	switch {
	case errors.Is(err, state.ErrNoRoute):
		return http.StatusNotFound
	case errors.As(err, &se):
		if se.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.As(err, &ue):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// muxPath converts ':name' segments to '{name}' variables.
func muxPath(pattern string) string {
	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}
