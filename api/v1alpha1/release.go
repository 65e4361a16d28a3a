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

// Release holds the information about an installed chart.
type Release struct {
	ObjectMeta ObjectMeta `json:"objectMeta"`

	// Chart is the name of the chart the release was installed from.
	Chart string `json:"chart"`

	// ChartVersion is the chart version in semver format.
	ChartVersion string `json:"chartVersion"`

	// AppVersion is the version of the packaged application.
	// +optional
	AppVersion string `json:"appVersion,omitempty"`

	// Revision is incremented on every upgrade.
	Revision int `json:"revision"`

	// Status is the last known state of the release e.g. deployed, failed.
	Status string `json:"status"`

	// LastDeployed is the timestamp (UTC RFC3339) of the last upgrade.
	// +optional
	LastDeployed string `json:"lastDeployed,omitempty"`
}

// ReleaseList is the payload of api/v1/release/:namespace.
type ReleaseList struct {
	ListMeta ListMeta  `json:"listMeta"`
	Items    []Release `json:"items"`
}
