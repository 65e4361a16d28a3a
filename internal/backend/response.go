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

package backend

import (
	"errors"
	"net/http"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/util/json"

	"github.com/stefanprodan/kubedeck/internal/chartrepo"
)

// ErrorResponse is the body written for failed requests.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

var (
	errBadRequest       = errors.New("bad request")
	errNoCluster        = errors.New("no cluster configured")
	errMethodNotAllowed = errors.New("method not allowed")
)

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logr.FromContextOrDiscard(r.Context()).Error(err, "encoding response failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

// WriteError writes an ErrorResponse, server errors are logged.
func WriteError(w http.ResponseWriter, r *http.Request, code int, err error) {
	if code >= http.StatusInternalServerError {
		logr.FromContextOrDiscard(r.Context()).Error(err, "request failed",
			"method", r.Method, "path", r.URL.Path, "status", code)
	}
	WriteJSON(w, r, code, ErrorResponse{Error: err.Error(), Status: code})
}

// statusCode maps the API errors to HTTP status codes.
func statusCode(err error) int {
	switch {
	case errors.Is(err, chartrepo.ErrNotFound), apierrors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, chartrepo.ErrExists):
		return http.StatusConflict
	case errors.Is(err, errBadRequest), errors.Is(err, chartrepo.ErrInvalid), errors.Is(err, chartrepo.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, errNoCluster):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
