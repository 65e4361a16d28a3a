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

package deploymentlist

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
	StateName = "deploymentlist"
	stateURL  = "/deployment"

	// ResourceTemplate is the API path of the deployment list.
	ResourceTemplate = "api/v1/deployment/:namespace"
)

// StateConfig returns the state of the deployment list page.
func StateConfig(resources *resource.Factory, pager *pagination.Service, catalog *i18n.Catalog) state.Descriptor {
	listResource := resources.New(ResourceTemplate)
	msg := catalog.Localize(Messages)

	return state.Descriptor{
		Name:   StateName,
		URL:    stateURL,
		Parent: chrome.StateName,
		Resolve: []state.Resolver{
			{Name: "deploymentList", Fn: resolveDeploymentList(listResource, pager)},
		},
		Breadcrumb: &state.Breadcrumb{Label: msg["MSG_BREADCRUMBS_DEPLOYMENTS_LABEL"]},
		Views: map[string]state.View{
			"": {
				Controller: func(l state.Locals) (any, error) {
					list, err := state.Local[*apiv1.DeploymentList](l, "deploymentList")
					if err != nil {
						return nil, err
					}
					return NewDeploymentListController(list, listResource), nil
				},
				ControllerAs: "$ctrl",
				TemplateURL:  "deploymentlist/deploymentlist.html",
			},
			chrome.ActionbarViewName: {
				TemplateURL: "deploymentlist/actionbar.html",
			},
		},
	}
}

func resolveDeploymentList(c resource.Client, pager *pagination.Service) state.ResolveFunc {
	return func(ctx context.Context, t state.Transition) (any, error) {
		query := pager.DefaultResourceQuery(t.Params[pagination.NamespaceParam])
		return resource.Fetch[apiv1.DeploymentList](ctx, c, query)
	}
}
