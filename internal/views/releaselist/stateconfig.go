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

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/i18n"
	"github.com/stefanprodan/kubedeck/internal/pagination"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/state"
	"github.com/stefanprodan/kubedeck/internal/views/chrome"
)

const (
	StateName = "releaselist"
	stateURL  = "/release"

	// ResourceTemplate is the API path of the release list.
	ResourceTemplate = "api/v1/release/:namespace"
)

// StateConfig returns the state of the release list page.
func StateConfig(resources *resource.Factory, pager *pagination.Service, catalog *i18n.Catalog) state.Descriptor {
	listResource := resources.New(ResourceTemplate)
	msg := catalog.Localize(Messages)

	return state.Descriptor{
		Name:   StateName,
		URL:    stateURL,
		Parent: chrome.StateName,
		Resolve: []state.Resolver{
			{
				Name: "releaseList",
				Fn: func(ctx context.Context, t state.Transition) (any, error) {
					query := pager.DefaultResourceQuery(t.Params[pagination.NamespaceParam])
					return resource.Fetch[apiv1.ReleaseList](ctx, listResource, query)
				},
			},
		},
		Breadcrumb: &state.Breadcrumb{Label: msg["MSG_BREADCRUMBS_RELEASES_LABEL"]},
		Views: map[string]state.View{
			"": {
				Controller: func(l state.Locals) (any, error) {
					list, err := state.Local[*apiv1.ReleaseList](l, "releaseList")
					if err != nil {
						return nil, err
					}
					return NewReleaseListController(list, listResource), nil
				},
				ControllerAs: "$ctrl",
				TemplateURL:  "releaselist/releaselist.html",
			},
			chrome.ActionbarViewName: {
				TemplateURL: "releaselist/actionbar.html",
			},
		},
	}
}
