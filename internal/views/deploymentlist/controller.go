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
	"k8s.io/apimachinery/pkg/util/json"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/resource"
)

// DeploymentListController backs the deployment list view.
type DeploymentListController struct {
	DeploymentList         *apiv1.DeploymentList `json:"deploymentList"`
	DeploymentListResource resource.Client       `json:"deploymentListResource"`
}

func NewDeploymentListController(list *apiv1.DeploymentList, listResource resource.Client) *DeploymentListController {
	return &DeploymentListController{
		DeploymentList:         list,
		DeploymentListResource: listResource,
	}
}

// ShouldShowZeroState returns true if the list has no items.
func (c *DeploymentListController) ShouldShowZeroState() bool {
	return len(c.DeploymentList.Items) == 0
}

func (c *DeploymentListController) MarshalJSON() ([]byte, error) {
	type controller DeploymentListController
	return json.Marshal(struct {
		*controller
		ShouldShowZeroState bool `json:"shouldShowZeroState"`
	}{(*controller)(c), c.ShouldShowZeroState()})
}
