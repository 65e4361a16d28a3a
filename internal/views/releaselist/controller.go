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
	"k8s.io/apimachinery/pkg/util/json"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/resource"
)

// ReleaseListController backs the release list view.
type ReleaseListController struct {
	ReleaseList         *apiv1.ReleaseList `json:"releaseList"`
	ReleaseListResource resource.Client    `json:"releaseListResource"`
}

func NewReleaseListController(list *apiv1.ReleaseList, listResource resource.Client) *ReleaseListController {
	return &ReleaseListController{
		ReleaseList:         list,
		ReleaseListResource: listResource,
	}
}

// ShouldShowZeroState returns true if there are no releases to show.
func (c *ReleaseListController) ShouldShowZeroState() bool {
	return len(c.ReleaseList.Items) == 0
}

func (c *ReleaseListController) MarshalJSON() ([]byte, error) {
	type controller ReleaseListController
	return json.Marshal(struct {
		*controller
		ShouldShowZeroState bool `json:"shouldShowZeroState"`
	}{(*controller)(c), c.ShouldShowZeroState()})
}
