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
	"errors"
	"net/url"
	"testing"

	. "github.com/onsi/gomega"
)

func constant(v any) ResolveFunc {
	return func(context.Context, Transition) (any, error) { return v, nil }
}

func testStates() []Descriptor {
	return []Descriptor{
		{
			Name:     "chrome",
			URL:      "?namespace",
			Abstract: true,
			Views:    map[string]View{"": {TemplateURL: "chrome/chrome.html"}},
		},
		{
			Name:       "releaselist",
			URL:        "/release",
			Parent:     "chrome",
			Resolve:    []Resolver{{Name: "releaseList", Fn: constant("list")}},
			Breadcrumb: &Breadcrumb{Label: "Releases"},
			Views: map[string]View{
				"": {
					Controller:   func(l Locals) (any, error) { return Local[string](l, "releaseList") },
					ControllerAs: "$ctrl",
					TemplateURL:  "releaselist/releaselist.html",
				},
				"actionbar": {TemplateURL: "releaselist/actionbar.html"},
			},
		},
		{
			Name:       "releasedetail",
			URL:        "/release/:objectNamespace/:objectName",
			Parent:     "chrome",
			Breadcrumb: &Breadcrumb{Label: "{{$stateParams.objectName}}", Parent: "releaselist"},
			Views:      map[string]View{"": {TemplateURL: "releasedetail/releasedetail.html"}},
		},
	}
}

func TestNewRouter_Valid(t *testing.T) {
	g := NewWithT(t)

	r, err := NewRouter(testStates()...)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(r.States()).To(HaveLen(3))
	g.Expect(r.URLPattern("releasedetail")).To(Equal("/release/:objectNamespace/:objectName?namespace"))
	g.Expect(r.URLPattern("missing")).To(BeEmpty())
	g.Expect(r.PathPattern("releasedetail")).To(Equal("/release/:objectNamespace/:objectName"))
	g.Expect(r.PathPattern("chrome")).To(Equal("/"))
	g.Expect(r.QueryParams("releaselist")).To(Equal([]string{"namespace"}))
	g.Expect(r.QueryParams("missing")).To(BeEmpty())
}

func TestNewRouter_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Descriptor) []Descriptor
		want   string
	}{
		{
			name: "duplicate state",
			mutate: func(s []Descriptor) []Descriptor {
				return append(s, s[1])
			},
			want: "declared twice",
		},
		{
			name: "parent declared after child",
			mutate: func(s []Descriptor) []Descriptor {
				return []Descriptor{s[1], s[0]}
			},
			want: "must be declared before",
		},
		{
			name: "duplicate resolver",
			mutate: func(s []Descriptor) []Descriptor {
				s[1].Resolve = append(s[1].Resolve, Resolver{Name: "releaseList", Fn: constant(1)})
				return s
			},
			want: "resolver releaseList is declared twice",
		},
		{
			name: "undeclared dependency",
			mutate: func(s []Descriptor) []Descriptor {
				s[1].Resolve[0].Deps = []string{"releaseListResource"}
				return s
			},
			want: "depends on undeclared",
		},
		{
			name: "dependency cycle",
			mutate: func(s []Descriptor) []Descriptor {
				s[1].Resolve = []Resolver{
					{Name: "a", Deps: []string{"b"}, Fn: constant(1)},
					{Name: "b", Deps: []string{"a"}, Fn: constant(2)},
				}
				return s
			},
			want: "dependency cycle",
		},
		{
			name: "resolver without function",
			mutate: func(s []Descriptor) []Descriptor {
				s[1].Resolve[0].Fn = nil
				return s
			},
			want: "has no function",
		},
		{
			name: "view without template",
			mutate: func(s []Descriptor) []Descriptor {
				s[1].Views["actionbar"] = View{}
				return s
			},
			want: "has no template",
		},
		{
			name: "dangling controller alias",
			mutate: func(s []Descriptor) []Descriptor {
				s[1].Views["actionbar"] = View{ControllerAs: "$ctrl", TemplateURL: "releaselist/actionbar.html"}
				return s
			},
			want: "names controller",
		},
		{
			name: "unknown breadcrumb parent",
			mutate: func(s []Descriptor) []Descriptor {
				s[2].Breadcrumb.Parent = "deploymentlist"
				return s
			},
			want: "breadcrumb parent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			_, err := NewRouter(tt.mutate(testStates())...)
			g.Expect(err).To(MatchError(ContainSubstring(tt.want)))
		})
	}
}

func TestRouter_Match(t *testing.T) {
	g := NewWithT(t)

	r, err := NewRouter(testStates()...)
	g.Expect(err).ToNot(HaveOccurred())

	s, params, err := r.Match("/release", url.Values{"namespace": {"apps"}, "other": {"x"}})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(s.Name).To(Equal("releaselist"))
	g.Expect(params).To(Equal(Params{"namespace": "apps"}))

	s, params, err = r.Match("/release/apps/redis/", nil)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(s.Name).To(Equal("releasedetail"))
	g.Expect(params).To(Equal(Params{"objectNamespace": "apps", "objectName": "redis"}))

	_, _, err = r.Match("/deployment", nil)
	g.Expect(errors.Is(err, ErrNoRoute)).To(BeTrue())

	// abstract states are never matched
	_, _, err = r.Match("/", nil)
	g.Expect(errors.Is(err, ErrNoRoute)).To(BeTrue())
}

func TestRouter_Href(t *testing.T) {
	g := NewWithT(t)

	r, err := NewRouter(testStates()...)
	g.Expect(err).ToNot(HaveOccurred())

	href, err := r.Href("releasedetail", Params{"objectNamespace": "apps", "objectName": "redis", "namespace": "apps"})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(href).To(Equal("/release/apps/redis?namespace=apps"))

	_, err = r.Href("releasedetail", Params{"objectNamespace": "apps"})
	g.Expect(err).To(MatchError(ContainSubstring("objectName is required")))

	_, err = r.Href("nope", nil)
	g.Expect(errors.Is(err, ErrNoRoute)).To(BeTrue())
}

func TestRouter_Breadcrumbs(t *testing.T) {
	g := NewWithT(t)

	r, err := NewRouter(testStates()...)
	g.Expect(err).ToNot(HaveOccurred())

	trail := r.Breadcrumbs("releasedetail", Params{"objectNamespace": "apps", "objectName": "redis"})
	g.Expect(trail).To(Equal([]Crumb{
		{Label: "Releases", State: "releaselist", Href: "/release"},
		{Label: "redis", State: "releasedetail", Href: "/release/apps/redis"},
	}))
}

func TestInterpolateLabel(t *testing.T) {
	g := NewWithT(t)
	g.Expect(InterpolateLabel("{{$stateParams.objectName}}", Params{"objectName": "nginx"})).To(Equal("nginx"))
	g.Expect(InterpolateLabel("{{ $stateParams.objectNamespace }}/{{$stateParams.objectName}}",
		Params{"objectNamespace": "default", "objectName": "nginx"})).To(Equal("default/nginx"))
	g.Expect(InterpolateLabel("Deployments", nil)).To(Equal("Deployments"))
}
