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

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/i18n"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/state"
	"github.com/stefanprodan/kubedeck/internal/views/chrome"
)

const (
	StateName = "repositorylist"
	stateURL  = "/repository"

	// ResourceTemplate is the API path of the repository list.
	ResourceTemplate = "api/v1/repository"

	itemTemplate   = "api/v1/repository/:name"
	updateTemplate = "api/v1/repository/:name/update"
)

// StateConfig returns the state of the repository list page.
func StateConfig(resources *resource.Factory, catalog *i18n.Catalog) state.Descriptor {
	listResource := resources.New(ResourceTemplate)
	itemResource := resources.New(itemTemplate)
	updateResource := resources.New(updateTemplate)
	msg := catalog.Localize(Messages)

	return state.Descriptor{
		Name:   StateName,
		URL:    stateURL,
		Parent: chrome.StateName,
		Resolve: []state.Resolver{
			{
				Name: "repositoryList",
				Fn: func(ctx context.Context, _ state.Transition) (any, error) {
					return resource.Fetch[apiv1.RepositoryList](ctx, listResource, nil)
				},
			},
		},
		Breadcrumb: &state.Breadcrumb{Label: msg["MSG_BREADCRUMBS_REPOSITORIES_LABEL"]},
		Views: map[string]state.View{
			"": {
				Controller: func(l state.Locals) (any, error) {
					list, err := state.Local[*apiv1.RepositoryList](l, "repositoryList")
					if err != nil {
						return nil, err
					}
					return NewRepositoryListController(list, listResource), nil
				},
				ControllerAs: "$ctrl",
				TemplateURL:  "repositorylist/repositorylist.html",
			},
			chrome.ActionbarViewName: {
				Controller: func(state.Locals) (any, error) {
					return NewActionBarController(itemResource, updateResource), nil
				},
				ControllerAs: "$ctrl",
				TemplateURL:  "repositorylist/actionbar.html",
			},
		},
	}
}
