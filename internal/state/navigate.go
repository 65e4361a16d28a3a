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
	"sort"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
)

// Phase is the lifecycle step of a navigation.
type Phase string

const (
	PhaseResolving Phase = "resolving"
	PhaseActive    Phase = "active"
)

// RenderedView is a view region with its controller built.
type RenderedView struct {
	ControllerAs string `json:"controllerAs,omitempty"`
	TemplateURL  string `json:"templateUrl"`
	Controller   any    `json:"controller,omitempty"`
}

// Layer holds the views contributed by one state of the chain.
type Layer struct {
	State string                  `json:"state"`
	Views map[string]RenderedView `json:"views"`
}

// Page is the result of a navigation: the views of every state
// from the root to the target, ready to be bound to templates.
type Page struct {
	State       string  `json:"state"`
	Params      Params  `json:"params"`
	Locals      Locals  `json:"-"`
	Layers      []Layer `json:"layers"`
	Breadcrumbs []Crumb `json:"breadcrumbs"`
}

// View returns the rendered view of a region declared by the given state.
func (p *Page) View(state, region string) (RenderedView, bool) {
	for _, l := range p.Layers {
		if l.State == state {
			v, ok := l.Views[region]
			return v, ok
		}
	}
	return RenderedView{}, false
}

// Navigate enters the named state. The resolvers of every state in the chain
// run before any controller is built, a failed resolver aborts the navigation.
func (r *Router) Navigate(ctx context.Context, name string, params Params) (*Page, error) {
	target, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w named %s", ErrNoRoute, name)
	}
	if target.Abstract {
		return nil, fmt.Errorf("state %s is abstract", name)
	}
	if params == nil {
		params = Params{}
	}

	log := logr.FromContextOrDiscard(ctx).WithValues("state", name)
	log.V(1).Info(string(PhaseResolving))

	chain := r.ancestors(name)
	locals := Locals{}
	for _, s := range chain {
		if err := resolveState(ctx, s, params, locals); err != nil {
			return nil, err
		}
	}

	page := &Page{
		State:  name,
		Params: params,
		Locals: locals,
	}
	for _, s := range chain {
		layer := Layer{State: s.Name, Views: make(map[string]RenderedView, len(s.Views))}
		for region, v := range s.Views {
			rv := RenderedView{ControllerAs: v.ControllerAs, TemplateURL: v.TemplateURL}
			if v.Controller != nil {
				ctrl, err := v.Controller(locals)
				if err != nil {
					return nil, fmt.Errorf("state %s: view %q: %w", s.Name, region, err)
				}
				rv.Controller = ctrl
			}
			layer.Views[region] = rv
		}
		page.Layers = append(page.Layers, layer)
	}
	page.Breadcrumbs = r.Breadcrumbs(name, params)

	log.V(1).Info(string(PhaseActive))
	return page, nil
}

// resolveState runs the resolvers of a state in waves: every resolver
// whose dependencies are settled runs concurrently with the others of its wave.
func resolveState(ctx context.Context, s Descriptor, params Params, locals Locals) error {
	pending := make([]Resolver, len(s.Resolve))
	copy(pending, s.Resolve)

	for len(pending) > 0 {
		var wave, rest []Resolver
		for _, res := range pending {
			if settled(res, locals) {
				wave = append(wave, res)
			} else {
				rest = append(rest, res)
			}
		}
		if len(wave) == 0 {
			names := make([]string, 0, len(rest))
			for _, res := range rest {
				names = append(names, res.Name)
			}
			sort.Strings(names)
			return fmt.Errorf("state %s: resolvers %v can't be settled", s.Name, names)
		}

		var mu sync.Mutex
		results := make(map[string]any, len(wave))
		g, gctx := errgroup.WithContext(ctx)
		for _, res := range wave {
			g.Go(func() error {
				v, err := res.Fn(gctx, Transition{State: s.Name, Params: params, Locals: locals})
				if err != nil {
					return fmt.Errorf("state %s: resolve %s: %w", s.Name, res.Name, err)
				}
				mu.Lock()
				results[res.Name] = v
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for k, v := range results {
			locals[k] = v
		}
		pending = rest
	}
	return nil
}

func settled(res Resolver, locals Locals) bool {
	for _, d := range res.Deps {
		if _, ok := locals[d]; !ok {
			return false
		}
	}
	return true
}
