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
	"errors"

	"k8s.io/apimachinery/pkg/util/json"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/resource"
)

// RepositoryListController backs the repository list view.
type RepositoryListController struct {
	RepositoryList         *apiv1.RepositoryList `json:"repositoryList"`
	RepositoryListResource resource.Client       `json:"repositoryListResource"`
}

func NewRepositoryListController(list *apiv1.RepositoryList, listResource resource.Client) *RepositoryListController {
	return &RepositoryListController{
		RepositoryList:         list,
		RepositoryListResource: listResource,
	}
}

// ShouldShowZeroState returns true if no repository is configured.
func (c *RepositoryListController) ShouldShowZeroState() bool {
	return len(c.RepositoryList.Items) == 0
}

func (c *RepositoryListController) MarshalJSON() ([]byte, error) {
	type controller RepositoryListController
	return json.Marshal(struct {
		*controller
		ShouldShowZeroState bool `json:"shouldShowZeroState"`
	}{(*controller)(c), c.ShouldShowZeroState()})
}

// ActionBarController backs the add, update and remove repository actions.
type ActionBarController struct {
	RepositoryResource       resource.Client `json:"repositoryResource"`
	RepositoryUpdateResource resource.Client `json:"repositoryUpdateResource"`
}

func NewActionBarController(repositoryResource, updateResource resource.Client) *ActionBarController {
	return &ActionBarController{
		RepositoryResource:       repositoryResource,
		RepositoryUpdateResource: updateResource,
	}
}

// AddRepository registers a chart repository and returns it as stored by the API.
func (c *ActionBarController) AddRepository(ctx context.Context, name, url string) (*apiv1.Repository, error) {
	if name == "" || url == "" {
		return nil, errors.New("repository name and URL are required")
	}
	var out apiv1.Repository
	if err := c.RepositoryResource.Save(ctx, nil, apiv1.Repository{Name: name, URL: url}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRepository downloads the repository index again and returns
// the repository with its new phase.
func (c *ActionBarController) UpdateRepository(ctx context.Context, name string) (*apiv1.Repository, error) {
	if name == "" {
		return nil, errors.New("repository name is required")
	}
	var out apiv1.Repository
	if err := c.RepositoryUpdateResource.Save(ctx, resource.Params{"name": name}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveRepository deletes a chart repository.
func (c *ActionBarController) RemoveRepository(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("repository name is required")
	}
	return c.RepositoryResource.Delete(ctx, resource.Params{"name": name})
}
