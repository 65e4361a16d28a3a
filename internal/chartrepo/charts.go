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

package chartrepo

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
	"sigs.k8s.io/yaml"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
)

const (
	// DefaultIcon is shown for charts without an icon.
	DefaultIcon = "https://helm.sh/img/helm.svg"

	maxDescription = 45
	cutDescription = 41
)

type chartVersion struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	AppVersion  string   `json:"appVersion,omitempty"`
	Description string   `json:"description,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	URLs        []string `json:"urls"`
}

type indexFile struct {
	APIVersion string                     `json:"apiVersion"`
	Entries    map[string][]*chartVersion `json:"entries"`
}

// Charts returns the chart versions listed in the cached index of the named repository.
func (h *Home) Charts(name string) (*apiv1.ChartList, error) {
	repo, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(h.cacheIndex(name))
	if errors.Is(err, os.ErrNotExist) {
		return &apiv1.ChartList{Items: []apiv1.Chart{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index of %s: %w", name, err)
	}
	var idx indexFile
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse index of %s: %w", name, err)
	}

	items := make([]apiv1.Chart, 0)
	for _, versions := range idx.Entries {
		for _, c := range versions {
			if c == nil {
				continue
			}
			items = append(items, toChart(repo.URL, c))
		}
	}
	sortCharts(items)

	return &apiv1.ChartList{
		ListMeta: apiv1.ListMeta{TotalItems: len(items)},
		Items:    items,
	}, nil
}

func toChart(repoURL string, c *chartVersion) apiv1.Chart {
	icon := c.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	desc := c.Description
	if utf8.RuneCountInString(desc) > maxDescription {
		desc = string([]rune(desc)[:cutDescription]) + "..."
	}
	var full string
	if len(c.URLs) > 0 {
		full = resolveURL(repoURL, c.URLs[0])
	}
	return apiv1.Chart{
		Name:        c.Name,
		Version:     c.Version,
		AppVersion:  c.AppVersion,
		FullURL:     full,
		Description: desc,
		Icon:        icon,
	}
}

// resolveURL makes relative chart URLs absolute to the repository URL.
func resolveURL(repoURL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	base, err := url.Parse(repoURL)
	if err != nil {
		return ref
	}
	if base.Path != "" && base.Path[len(base.Path)-1] != '/' {
		base.Path += "/"
	}
	return base.ResolveReference(u).String()
}

// sortCharts orders charts by name then by version, newest first.
// Versions that are not semver are sorted as strings after the semver ones.
func sortCharts(items []apiv1.Chart) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		vi, erri := semver.NewVersion(items[i].Version)
		vj, errj := semver.NewVersion(items[j].Version)
		switch {
		case erri == nil && errj == nil:
			return vi.GreaterThan(vj)
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return items[i].Version > items[j].Version
		}
	})
}
