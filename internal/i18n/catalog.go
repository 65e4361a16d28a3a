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

package i18n

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"sigs.k8s.io/yaml"
)

// Table maps symbolic message keys to UI strings.
type Table map[string]string

// Keys returns the table keys in alphabetical order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Catalog holds the default (English) strings of all tables
// and the translations loaded for the catalog language.
type Catalog struct {
	tag        language.Tag
	builder    *catalog.Builder
	known      map[string]bool
	translated map[string]bool
}

// NewCatalog registers the default strings of the given tables.
func NewCatalog(tag language.Tag, tables ...Table) (*Catalog, error) {
	c := &Catalog{
		tag:        tag,
		builder:    catalog.NewBuilder(catalog.Fallback(language.English)),
		known:      make(map[string]bool),
		translated: make(map[string]bool),
	}
	for _, t := range tables {
		for _, k := range t.Keys() {
			if c.known[k] {
				return nil, fmt.Errorf("duplicate message key %s", k)
			}
			if err := c.builder.SetString(language.English, k, escapeVerbs(t[k])); err != nil {
				return nil, fmt.Errorf("invalid message %s: %w", k, err)
			}
			c.known[k] = true
		}
	}
	return c, nil
}

// Language returns the catalog language.
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// Override loads translated strings for the catalog language from
// a YAML file containing a flat map of message keys to strings.
func (c *Catalog) Override(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read messages: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("parse messages %s: %w", path, err)
	}
	for _, k := range t.Keys() {
		if !c.known[k] {
			return fmt.Errorf("unknown message key %s in %s", k, path)
		}
		if err := c.builder.SetString(c.tag, k, escapeVerbs(t[k])); err != nil {
			return fmt.Errorf("invalid message %s: %w", k, err)
		}
		c.translated[k] = true
	}
	return nil
}

// Localize returns a copy of the table with the strings
// resolved for the catalog language. A nil catalog returns the
// default strings.
func (c *Catalog) Localize(t Table) Table {
	if c == nil {
		out := make(Table, len(t))
		for k, v := range t {
			out[k] = v
		}
		return out
	}
	local := message.NewPrinter(c.tag, message.Catalog(c.builder))
	fallback := message.NewPrinter(language.English, message.Catalog(c.builder))
	out := make(Table, len(t))
	for k, v := range t {
		switch {
		case c.translated[k]:
			out[k] = local.Sprintf(k)
		case c.known[k]:
			out[k] = fallback.Sprintf(k)
		default:
			out[k] = v
		}
	}
	return out
}

// escapeVerbs keeps the printer from reading a '%' in
// a message as a formatting verb.
func escapeVerbs(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
