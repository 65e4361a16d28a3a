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

// Package views assembles the dashboard pages into the
// ordered state table consumed by the router.
package views

import (
	"golang.org/x/text/language"

	"github.com/stefanprodan/kubedeck/internal/i18n"
	"github.com/stefanprodan/kubedeck/internal/pagination"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/state"
	"github.com/stefanprodan/kubedeck/internal/views/chrome"
	"github.com/stefanprodan/kubedeck/internal/views/deploymentdetail"
	"github.com/stefanprodan/kubedeck/internal/views/deploymentlist"
	"github.com/stefanprodan/kubedeck/internal/views/releaselist"
	"github.com/stefanprodan/kubedeck/internal/views/repositorylist"
)

// Deps are the collaborators shared by the pages.
type Deps struct {
	Resources  *resource.Factory
	Pagination *pagination.Service

	// Catalog is optional, the default strings are used when nil.
	Catalog *i18n.Catalog
}

// Messages returns the message tables of all pages.
func Messages() []i18n.Table {
	return []i18n.Table{
		chrome.Messages,
		deploymentlist.Messages,
		deploymentdetail.Messages,
		releaselist.Messages,
		repositorylist.Messages,
	}
}

// NewCatalog returns a catalog holding the messages of all pages.
func NewCatalog(tag language.Tag) (*i18n.Catalog, error) {
	return i18n.NewCatalog(tag, Messages()...)
}

// States returns the state table, parents first.
func States(d Deps) []state.Descriptor {
	pager := d.Pagination
	if pager == nil {
		pager = pagination.NewService(pagination.DefaultItemsPerPage)
	}
	return []state.Descriptor{
		chrome.StateConfig(d.Catalog),
		deploymentlist.StateConfig(d.Resources, pager, d.Catalog),
		deploymentdetail.StateConfig(d.Resources, d.Catalog),
		releaselist.StateConfig(d.Resources, pager, d.Catalog),
		repositorylist.StateConfig(d.Resources, d.Catalog),
	}
}

// NewRouter validates the state table and returns its router.
func NewRouter(d Deps) (*state.Router, error) {
	return state.NewRouter(States(d)...)
}
