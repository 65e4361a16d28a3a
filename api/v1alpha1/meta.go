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

// ListMeta describes the list payloads, e.g. the number of items
// available on the server before pagination.
type ListMeta struct {
	// TotalItems is the number of items in the full list.
	TotalItems int `json:"totalItems"`
}

// ObjectMeta is the subset of Kubernetes object metadata shown by the dashboard.
type ObjectMeta struct {
	Name              string            `json:"name"`
	Namespace         string            `json:"namespace,omitempty"`
	Labels            map[string]string `json:"labels,omitempty"`
	Annotations       map[string]string `json:"annotations,omitempty"`
	CreationTimestamp string            `json:"creationTimestamp,omitempty"`
}

// TypeMeta holds the kind of the object the payload was built from.
type TypeMeta struct {
	Kind string `json:"kind"`
}

// PodInfo summarizes the pods of a workload.
type PodInfo struct {
	Current int32 `json:"current"`
	Desired int32 `json:"desired"`
}
