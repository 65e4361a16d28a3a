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

package v1alpha1

const (
	// RepositoryAvailable is the phase of a repository with a cached index.
	RepositoryAvailable = "Available"

	// RepositoryPending is the phase of a repository whose index was never downloaded.
	RepositoryPending = "Pending"
)

// Repository is a chart repository.
type Repository struct {
	// Name of the repository.
	Name string `json:"name"`
	// URL of the repository.
	URL string `json:"url"`
	// Phase of the repository.
	Phase string `json:"phase,omitempty"`
}

// RepositoryList is the payload of api/v1/repository.
type RepositoryList struct {
	ListMeta ListMeta     `json:"listMeta"`
	Items    []Repository `json:"items"`
}

// Chart is a chart version published in a repository index.
type Chart struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	AppVersion  string `json:"appVersion,omitempty"`
	FullURL     string `json:"fullURL"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ChartList is the payload of api/v1/repository/:name/chart.
type ChartList struct {
	ListMeta ListMeta `json:"listMeta"`
	Items    []Chart  `json:"items"`
}
