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

package main

import (
	"context"
	"fmt"

	"github.com/stefanprodan/kubedeck/internal/logger"
	"github.com/stefanprodan/kubedeck/internal/pagination"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/state"
	"github.com/stefanprodan/kubedeck/internal/views"
)

const defaultAPIURL = "http://127.0.0.1:9090"

// newRouter returns the page router with the resource clients
// pointing at --api-url.
func newRouter(itemsPerPage int) (*state.Router, error) {
	apiURL := rootArgs.apiURL.String()
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	resources, err := resource.NewFactory(apiURL, nil)
	if err != nil {
		return nil, err
	}

	return views.NewRouter(views.Deps{
		Resources:  resources,
		Pagination: pagination.NewService(itemsPerPage),
	})
}

// navigate enters the named state and returns the controller of its main view.
func navigate[T any](ctx context.Context, router *state.Router, name string, params state.Params) (T, error) {
	var ctrl T

	sp := logger.StartSpinner(fmt.Sprintf("fetching %s", name))
	page, err := router.Navigate(ctx, name, params)
	sp.Stop()
	if err != nil {
		return ctrl, err
	}

	return pageController[T](page, name, "")
}

func pageController[T any](page *state.Page, name, region string) (T, error) {
	var ctrl T
	v, ok := page.View(name, region)
	if !ok {
		return ctrl, fmt.Errorf("state %s has no view %q", name, region)
	}
	ctrl, ok = v.Controller.(T)
	if !ok {
		return ctrl, fmt.Errorf("state %s: view %q has controller %T", name, region, v.Controller)
	}
	return ctrl, nil
}
