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

// Deployment is a list entry of the deployment list page.
type Deployment struct {
	ObjectMeta      ObjectMeta `json:"objectMeta"`
	TypeMeta        TypeMeta   `json:"typeMeta"`
	Pods            PodInfo    `json:"pods"`
	ContainerImages []string   `json:"containerImages"`
}

// DeploymentList is the payload of api/v1/deployment/:namespace.
type DeploymentList struct {
	ListMeta ListMeta     `json:"listMeta"`
	Items    []Deployment `json:"items"`
}

// ReplicaSet is a replica set owned by a deployment.
type ReplicaSet struct {
	ObjectMeta      ObjectMeta `json:"objectMeta"`
	TypeMeta        TypeMeta   `json:"typeMeta"`
	Pods            PodInfo    `json:"pods"`
	ContainerImages []string   `json:"containerImages"`
}

// ReplicaSetList holds the replica sets shown on the deployment detail page.
type ReplicaSetList struct {
	ListMeta ListMeta     `json:"listMeta"`
	Items    []ReplicaSet `json:"items"`
}

// StatusInfo contains the replica counters of a deployment.
type StatusInfo struct {
	Replicas    int32 `json:"replicas"`
	Updated     int32 `json:"updated"`
	Available   int32 `json:"available"`
	Unavailable int32 `json:"unavailable"`
}

// RollingUpdateStrategy mirrors the deployment rolling update parameters.
type RollingUpdateStrategy struct {
	MaxSurge       string `json:"maxSurge"`
	MaxUnavailable string `json:"maxUnavailable"`
}

// DeploymentDetail is the payload of api/v1/deployment/:namespace/:name.
type DeploymentDetail struct {
	ObjectMeta ObjectMeta        `json:"objectMeta"`
	TypeMeta   TypeMeta          `json:"typeMeta"`
	Selector   map[string]string `json:"selector"`
	StatusInfo StatusInfo        `json:"statusInfo"`

	// Status is the computed readiness of the deployment,
	// one of Current, InProgress, Failed, Terminating or Unknown.
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`

	Strategy              string                 `json:"strategy"`
	MinReadySeconds       int32                  `json:"minReadySeconds"`
	RevisionHistoryLimit  *int32                 `json:"revisionHistoryLimit,omitempty"`
	RollingUpdateStrategy *RollingUpdateStrategy `json:"rollingUpdateStrategy,omitempty"`

	OldReplicaSetList ReplicaSetList `json:"oldReplicaSetList"`
	NewReplicaSet     ReplicaSet     `json:"newReplicaSet"`
}
