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

import "k8s.io/apimachinery/pkg/runtime/schema"

const (
	// FieldManager is the name used to label the cluster objects owned by kubedeck.
	FieldManager = "kubedeck"

	// ReleaseKind is the kind of the release payload.
	ReleaseKind = "Release"
)

// GroupVersion is the API group and version served under api/v1.
var GroupVersion = schema.GroupVersion{Group: "dashboard.kubedeck.dev", Version: "v1alpha1"}
