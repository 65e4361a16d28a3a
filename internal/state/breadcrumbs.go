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
	"regexp"
)

// Crumb is one entry of the breadcrumb trail.
type Crumb struct {
	Label string `json:"label"`
	State string `json:"state"`
	Href  string `json:"href,omitempty"`
}

var stateParamExpr = regexp.MustCompile(`\{\{\s*\$stateParams\.([A-Za-z0-9_]+)\s*\}\}`)

// InterpolateLabel replaces the {{$stateParams.<name>}} expressions
// of a breadcrumb label with the route params.
func InterpolateLabel(label string, params Params) string {
	return stateParamExpr.ReplaceAllStringFunc(label, func(m string) string {
		name := stateParamExpr.FindStringSubmatch(m)[1]
		return params[name]
	})
}

// Breadcrumbs returns the trail of the named state ordered from the root.
// The trail follows the breadcrumb parent when set, else the state parent,
// and skips the states without a breadcrumb.
func (r *Router) Breadcrumbs(name string, params Params) []Crumb {
	var trail []Crumb
	seen := map[string]bool{}
	for name != "" && !seen[name] {
		seen[name] = true
		s, ok := r.Get(name)
		if !ok {
			break
		}
		next := s.Parent
		if s.Breadcrumb != nil {
			c := Crumb{
				Label: InterpolateLabel(s.Breadcrumb.Label, params),
				State: s.Name,
			}
			if !s.Abstract {
				if href, err := r.Href(s.Name, params); err == nil {
					c.Href = href
				}
			}
			trail = append([]Crumb{c}, trail...)
			if s.Breadcrumb.Parent != "" {
				next = s.Breadcrumb.Parent
			}
		}
		name = next
	}
	return trail
}
