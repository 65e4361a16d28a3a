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

package pagination

import (
	"net/url"
	"strconv"

	"github.com/stefanprodan/kubedeck/internal/resource"
)

const (
	// DefaultItemsPerPage is the page size used by the list pages.
	DefaultItemsPerPage = 10

	ItemsPerPageParam = "itemsPerPage"
	PageParam         = "page"
	NamespaceParam    = "namespace"
	NameParam         = "name"
)

// Query selects one page of a list.
type Query struct {
	ItemsPerPage int
	Page         int
	Namespace    string
	Name         string
}

// Params returns the query as resource params.
// Empty namespace and name are left out so that optional
// path segments bound to them are dropped.
func (q Query) Params() resource.Params {
	p := resource.Params{}
	if q.ItemsPerPage > 0 {
		p[ItemsPerPageParam] = strconv.Itoa(q.ItemsPerPage)
	}
	if q.Page > 0 {
		p[PageParam] = strconv.Itoa(q.Page)
	}
	if q.Namespace != "" {
		p[NamespaceParam] = q.Namespace
	}
	if q.Name != "" {
		p[NameParam] = q.Name
	}
	return p
}

// Service builds the list queries issued by the list pages.
type Service struct {
	ItemsPerPage int
}

// NewService returns a Service with the given page size,
// falling back to DefaultItemsPerPage for non-positive values.
func NewService(itemsPerPage int) *Service {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	return &Service{ItemsPerPage: itemsPerPage}
}

// DefaultResourceQuery returns the query for the first page
// of a list in the given namespace.
func (s *Service) DefaultResourceQuery(namespace string) resource.Params {
	return s.ResourceQuery(1, namespace, "")
}

// ResourceQuery returns the query for the given page.
func (s *Service) ResourceQuery(page int, namespace, name string) resource.Params {
	return Query{
		ItemsPerPage: s.ItemsPerPage,
		Page:         page,
		Namespace:    namespace,
		Name:         name,
	}.Params()
}

// ParseQuery reads the paging parameters from URL query values.
// Malformed numbers are treated as absent.
func ParseQuery(values url.Values) Query {
	q := Query{
		Namespace: values.Get(NamespaceParam),
		Name:      values.Get(NameParam),
	}
	if n, err := strconv.Atoi(values.Get(ItemsPerPageParam)); err == nil {
		q.ItemsPerPage = n
	}
	if n, err := strconv.Atoi(values.Get(PageParam)); err == nil {
		q.Page = n
	}
	return q
}

// Paginate returns the items of the page selected by q.
// A query without a positive page or page size returns all items.
func Paginate[T any](items []T, q Query) []T {
	if q.Page <= 0 || q.ItemsPerPage <= 0 {
		return items
	}
	start := (q.Page - 1) * q.ItemsPerPage
	if start >= len(items) {
		return []T{}
	}
	end := start + q.ItemsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
