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

// NavEntry is a link of the navigation menu.
type NavEntry struct {
	Label string `json:"label"`
	State string `json:"state"`
}

// ChromeController backs the page frame.
type ChromeController struct {
	Nav []NavEntry `json:"nav"`
}

// NewChromeController returns the controller with the
// navigation entries labelled from the given messages.
func NewChromeController(msg map[string]string) *ChromeController {
	return &ChromeController{
		Nav: []NavEntry{
			{Label: msg["MSG_NAV_RELEASES_LABEL"], State: "releaselist"},
			{Label: msg["MSG_NAV_DEPLOYMENTS_LABEL"], State: "deploymentlist"},
			{Label: msg["MSG_NAV_REPOSITORIES_LABEL"], State: "repositorylist"},
		},
	}
}
