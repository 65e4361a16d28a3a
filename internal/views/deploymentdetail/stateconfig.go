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
	"net/url"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/i18n"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/state"
	"github.com/stefanprodan/kubedeck/internal/views/chrome"
	"github.com/stefanprodan/kubedeck/internal/views/deploymentlist"
)

const (
	StateName = "deploymentdetail"
	stateURL  = "/deployment"

	resourcePath = "api/v1/deployment"
)

// StateConfig returns the state of the deployment detail page.
func StateConfig(resources *resource.Factory, catalog *i18n.Catalog) state.Descriptor {
	return state.Descriptor{
		Name:   StateName,
		URL:    state.AppendDetailParams(stateURL),
		Parent: chrome.StateName,
		Resolve: []state.Resolver{
			{
				Name: "deploymentDetailResource",
				Fn: func(_ context.Context, t state.Transition) (any, error) {
					return DetailResource(resources, t.Params["objectNamespace"], t.Params["objectName"]), nil
				},
			},
			{
				Name: "deploymentDetail",
				Deps: []string{"deploymentDetailResource"},
				Fn:   resolveDeploymentDetail,
			},
		},
		Breadcrumb: &state.Breadcrumb{
			Label:  "{{$stateParams.objectName}}",
			Parent: deploymentlist.StateName,
		},
		Views: map[string]state.View{
			"": {
				Controller: func(l state.Locals) (any, error) {
					detail, err := state.Local[*apiv1.DeploymentDetail](l, "deploymentDetail")
					if err != nil {
						return nil, err
					}
					return NewDeploymentDetailController(detail, catalog.Localize(Messages)), nil
				},
				ControllerAs: "ctrl",
				TemplateURL:  "deploymentdetail/deploymentdetail.html",
			},
			chrome.ActionbarViewName: {
				Controller: func(l state.Locals) (any, error) {
					detail, err := state.Local[*apiv1.DeploymentDetail](l, "deploymentDetail")
					if err != nil {
						return nil, err
					}
					return NewActionBarController(detail), nil
				},
				ControllerAs: "$ctrl",
				TemplateURL:  "deploymentdetail/actionbar.html",
			},
		},
	}
}

// DetailResource returns a resource bound to the given deployment.
func DetailResource(resources *resource.Factory, namespace, name string) resource.Client {
	return resources.New(resourcePath + "/" + url.PathEscape(namespace) + "/" + url.PathEscape(name))
}

func resolveDeploymentDetail(ctx context.Context, t state.Transition) (any, error) {
	c, err := state.Local[resource.Client](t.Locals, "deploymentDetailResource")
	if err != nil {
		return nil, err
	}
	return resource.Fetch[apiv1.DeploymentDetail](ctx, c, nil)
}
