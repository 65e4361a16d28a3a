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
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrNoRoute is returned when no state matches a URL or name.
	ErrNoRoute = errors.New("no matching state")
)

type pattern struct {
	segments []string
	query    []string
}

func (p pattern) String() string {
	s := "/" + strings.Join(p.segments, "/")
	if len(p.query) > 0 {
		s += "?" + strings.Join(p.query, "&")
	}
	return s
}

func (p pattern) extend(u string) pattern {
	path, query, _ := strings.Cut(u, "?")
	out := pattern{
		segments: append(append([]string{}, p.segments...), splitPath(path)...),
		query:    append([]string{}, p.query...),
	}
	if query != "" {
		for _, q := range strings.Split(query, "&") {
			if q != "" {
				out.query = append(out.query, q)
			}
		}
	}
	return out
}

func (p pattern) match(path string, query url.Values) (Params, bool) {
	segments := splitPath(path)
	if len(segments) != len(p.segments) {
		return nil, false
	}
	params := Params{}
	for i, seg := range p.segments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			v, err := url.PathUnescape(segments[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[name] = v
			continue
		}
		if seg != segments[i] {
			return nil, false
		}
	}
	for _, q := range p.query {
		if v := query.Get(q); v != "" {
			params[q] = v
		}
	}
	return params, true
}

func splitPath(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Router holds the state table and navigates between states.
type Router struct {
	states   []Descriptor
	byName   map[string]int
	patterns map[string]pattern
}

// NewRouter validates the ordered state table and returns a Router for it.
func NewRouter(states ...Descriptor) (*Router, error) {
	r := &Router{
		byName:   make(map[string]int, len(states)),
		patterns: make(map[string]pattern, len(states)),
	}
	var errs []error
	for i := range states {
		s := states[i]
		if err := r.add(s); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range r.states {
		if s.Breadcrumb != nil && s.Breadcrumb.Parent != "" {
			if _, ok := r.byName[s.Breadcrumb.Parent]; !ok {
				errs = append(errs, fmt.Errorf("state %s: breadcrumb parent %q is not declared", s.Name, s.Breadcrumb.Parent))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

func (r *Router) add(s Descriptor) error {
	if s.Name == "" {
		return errors.New("state name is required")
	}
	if _, ok := r.byName[s.Name]; ok {
		return fmt.Errorf("state %s is declared twice", s.Name)
	}

	var base pattern
	if s.Parent != "" {
		if _, ok := r.byName[s.Parent]; !ok {
			return fmt.Errorf("state %s: parent %q must be declared before its children", s.Name, s.Parent)
		}
		base = r.patterns[s.Parent]
	}

	if err := r.validateResolvers(s); err != nil {
		return err
	}
	if err := validateViews(s); err != nil {
		return err
	}

	r.states = append(r.states, s)
	r.byName[s.Name] = len(r.states) - 1
	r.patterns[s.Name] = base.extend(s.URL)
	return nil
}

func (r *Router) validateResolvers(s Descriptor) error {
	inherited := map[string]bool{}
	for _, a := range r.ancestors(s.Parent) {
		for _, res := range a.Resolve {
			inherited[res.Name] = true
		}
	}

	own := map[string]Resolver{}
	for _, res := range s.Resolve {
		if res.Name == "" {
			return fmt.Errorf("state %s: resolver name is required", s.Name)
		}
		if _, ok := own[res.Name]; ok {
			return fmt.Errorf("state %s: resolver %s is declared twice", s.Name, res.Name)
		}
		if res.Fn == nil {
			return fmt.Errorf("state %s: resolver %s has no function", s.Name, res.Name)
		}
		own[res.Name] = res
	}

	for _, res := range s.Resolve {
		for _, d := range res.Deps {
			if _, ok := own[d]; !ok && !inherited[d] {
				return fmt.Errorf("state %s: resolver %s depends on undeclared %q", s.Name, res.Name, d)
			}
		}
	}

	// detect cycles between the resolvers of the state
	const (
		visiting = 1
		done     = 2
	)
	marks := map[string]int{}
	var visit func(name string) error
	visit = func(name string) error {
		switch marks[name] {
		case visiting:
			return fmt.Errorf("state %s: resolver %s has a dependency cycle", s.Name, name)
		case done:
			return nil
		}
		marks[name] = visiting
		for _, d := range own[name].Deps {
			if _, ok := own[d]; ok {
				if err := visit(d); err != nil {
					return err
				}
			}
		}
		marks[name] = done
		return nil
	}
	for _, res := range s.Resolve {
		if err := visit(res.Name); err != nil {
			return err
		}
	}
	return nil
}

func validateViews(s Descriptor) error {
	for region, v := range s.Views {
		if v.TemplateURL == "" {
			return fmt.Errorf("state %s: view %q has no template", s.Name, region)
		}
		if v.ControllerAs != "" && v.Controller == nil {
			return fmt.Errorf("state %s: view %q names controller %q but has none", s.Name, region, v.ControllerAs)
		}
		if v.Controller != nil && v.ControllerAs == "" {
			return fmt.Errorf("state %s: view %q has a controller without alias", s.Name, region)
		}
	}
	return nil
}

// States returns the state table in declaration order.
func (r *Router) States() []Descriptor {
	return append([]Descriptor{}, r.states...)
}

// Get returns the state with the given name.
func (r *Router) Get(name string) (Descriptor, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.states[i], true
}

// URLPattern returns the full URL of a state, including the ancestors' URLs.
func (r *Router) URLPattern(name string) string {
	p, ok := r.patterns[name]
	if !ok {
		return ""
	}
	return p.String()
}

// PathPattern returns the path part of the full URL of a state,
// e.g. '/deployment/:objectNamespace/:objectName'.
func (r *Router) PathPattern(name string) string {
	p, ok := r.patterns[name]
	if !ok {
		return ""
	}
	return "/" + strings.Join(p.segments, "/")
}

// QueryParams returns the query params declared along the state chain.
func (r *Router) QueryParams(name string) []string {
	return append([]string{}, r.patterns[name].query...)
}

// Match returns the first non-abstract state matching the path
// and the params extracted from the path and the query.
func (r *Router) Match(path string, query url.Values) (Descriptor, Params, error) {
	for _, s := range r.states {
		if s.Abstract {
			continue
		}
		if params, ok := r.patterns[s.Name].match(path, query); ok {
			return s, params, nil
		}
	}
	return Descriptor{}, nil, fmt.Errorf("%w for %s", ErrNoRoute, path)
}

// Href returns the URL of a state filled with the given params.
func (r *Router) Href(name string, params Params) (string, error) {
	p, ok := r.patterns[name]
	if !ok {
		return "", fmt.Errorf("%w named %s", ErrNoRoute, name)
	}
	segments := make([]string, 0, len(p.segments))
	for _, seg := range p.segments {
		if pn, ok := strings.CutPrefix(seg, ":"); ok {
			v := params[pn]
			if v == "" {
				return "", fmt.Errorf("state %s: param %s is required", name, pn)
			}
			segments = append(segments, url.PathEscape(v))
			continue
		}
		segments = append(segments, seg)
	}
	href := "/" + strings.Join(segments, "/")
	query := url.Values{}
	for _, q := range p.query {
		if v := params[q]; v != "" {
			query.Set(q, v)
		}
	}
	if len(query) > 0 {
		href += "?" + query.Encode()
	}
	return href, nil
}

// ancestors returns the chain from the root to the named state.
func (r *Router) ancestors(name string) []Descriptor {
	var chain []Descriptor
	for name != "" {
		i, ok := r.byName[name]
		if !ok {
			break
		}
		chain = append([]Descriptor{r.states[i]}, chain...)
		name = r.states[i].Parent
	}
	return chain
}
