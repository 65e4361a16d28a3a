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
	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/i18n"
)

// DeploymentDetailController backs the deployment detail view.
type DeploymentDetailController struct {
	DeploymentDetail *apiv1.DeploymentDetail `json:"deploymentDetail"`

	// NewReplicaSetList wraps the new replica set in a list
	// so that it can be rendered by the replica set list component.
	NewReplicaSetList apiv1.ReplicaSetList `json:"newReplicaSetList"`

	I18n i18n.Table `json:"i18n"`
}

func NewDeploymentDetailController(detail *apiv1.DeploymentDetail, msg i18n.Table) *DeploymentDetailController {
	return &DeploymentDetailController{
		DeploymentDetail: detail,
		NewReplicaSetList: apiv1.ReplicaSetList{
			ListMeta: apiv1.ListMeta{TotalItems: 1},
			Items:    []apiv1.ReplicaSet{detail.NewReplicaSet},
		},
		I18n: msg,
	}
}

// ActionBarController backs the action bar of the deployment detail page.
type ActionBarController struct {
	Details  apiv1.ObjectMeta `json:"details"`
	TypeMeta apiv1.TypeMeta   `json:"typeMeta"`
}

func NewActionBarController(detail *apiv1.DeploymentDetail) *ActionBarController {
	return &ActionBarController{
		Details:  detail.ObjectMeta,
		TypeMeta: detail.TypeMeta,
	}
}
