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

package chrome

import (
	"github.com/stefanprodan/kubedeck/internal/i18n"
	"github.com/stefanprodan/kubedeck/internal/state"
)

const (
	// StateName is the abstract root state every page inherits from.
	StateName = "chrome"

	// ActionbarViewName is the region of the action bar shown above the page content.
	ActionbarViewName = "actionbar"

	stateURL = "?namespace"
)

// StateConfig returns the root state. It carries the namespace
// query param shared by all pages and the navigation chrome.
func StateConfig(catalog *i18n.Catalog) state.Descriptor {
	msg := catalog.Localize(Messages)
	return state.Descriptor{
		Name:     StateName,
		URL:      stateURL,
		Abstract: true,
		Views: map[string]state.View{
			"": {
				Controller: func(state.Locals) (any, error) {
					return NewChromeController(msg), nil
				},
				ControllerAs: "$ctrl",
				TemplateURL:  "chrome/chrome.html",
			},
		},
	}
}
