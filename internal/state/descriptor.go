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

package state

import (
	"context"
	"fmt"
)

// Params holds the route parameters of a navigation,
// taken from the URL path and the declared query parameters.
type Params map[string]string

// Locals holds the values produced by the resolvers of a navigation, by resolver name.
type Locals map[string]any

// Local returns the resolved value stored under name as T.
func Local[T any](l Locals, name string) (T, error) {
	var zero T
	v, ok := l[name]
	if !ok {
		return zero, fmt.Errorf("local %q is not resolved", name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("local %q is %T, not %T", name, v, zero)
	}
	return t, nil
}

// Transition is handed to resolvers while a state is being entered.
type Transition struct {
	State  string
	Params Params

	// Locals contains the values of the ancestors' resolvers
	// and of the resolvers listed in Deps.
	Locals Locals
}

// ResolveFunc fetches one value needed before a state's views are built.
type ResolveFunc func(ctx context.Context, t Transition) (any, error)

// Resolver is a named dependency of a state.
type Resolver struct {
	Name string

	// Deps lists the resolvers of the same state or of its ancestors
	// that must settle before this one runs.
	Deps []string

	Fn ResolveFunc
}

// ControllerFunc builds a view controller from the resolved values.
type ControllerFunc func(l Locals) (any, error)

// View binds a named region to a controller and a template.
type View struct {
	// Controller is optional, template only views don't have one.
	Controller   ControllerFunc
	ControllerAs string
	TemplateURL  string
}

// Breadcrumb configures the trail entry of a state.
type Breadcrumb struct {
	// Label can reference route params with {{$stateParams.<name>}}.
	Label string

	// Parent is the state the trail continues with,
	// when empty the state parent is used.
	Parent string
}

// Descriptor declares a page: its URL, its place in the state tree,
// what has to be fetched before it is shown and how it is rendered.
type Descriptor struct {
	Name string

	// URL is appended to the parent's URL. Path params are written
	// as ':name' segments, query params as a '?a&b' suffix.
	URL string

	Parent     string
	Abstract   bool
	Resolve    []Resolver
	Breadcrumb *Breadcrumb

	// Views maps region names to views, "" is the default region.
	Views map[string]View
}

// AppendDetailParams appends the namespace and name params
// of a detail page to a state URL.
func AppendDetailParams(u string) string {
	return u + "/:objectNamespace/:objectName"
}
