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
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	. "github.com/onsi/gomega"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/testutils"
)

const testIndex = `apiVersion: v1
entries:
  redis:
  - name: redis
    version: 1.9.0
    appVersion: "7.0"
    description: Open source, advanced key-value store. It is often referred to as a data structure server.
    urls:
    - charts/redis-1.9.0.tgz
  - name: redis
    version: 1.10.0
    appVersion: "7.2"
    description: Redis
    icon: https://example.com/redis.png
    urls:
    - https://example.com/charts/redis-1.10.0.tgz
  memcached:
  - name: memcached
    version: 0.1.0
    description: Free & open source, high-performance, distributed memory object caching system.
    urls:
    - charts/memcached-0.1.0.tgz
`

func newTestHome(t *testing.T, repos ...apiv1.Repository) *Home {
	t.Helper()
	h := NewHome(filepath.Join(t.TempDir(), ".helm"), WithDefaults(repos...))
	if err := h.EnsureHome(); err != nil {
		t.Fatal(err)
	}
	return h
}

func TestEnsureHome(t *testing.T) {
	g := NewWithT(t)

	h := newTestHome(t, apiv1.Repository{Name: "stable", URL: "https://charts.example.com"})
	g.Expect(filepath.Join(h.Path(), "repository", "repositories.yaml")).To(BeARegularFile())
	g.Expect(filepath.Join(h.Path(), "repository", "cache")).To(BeADirectory())

	list, err := h.List()
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(list.ListMeta.TotalItems).To(Equal(1))
	g.Expect(list.Items).To(Equal([]apiv1.Repository{
		{Name: "stable", URL: "https://charts.example.com", Phase: apiv1.RepositoryPending},
	}))

	// existing files are kept
	g.Expect(h.Remove("stable")).To(Succeed())
	g.Expect(h.EnsureHome()).To(Succeed())
	list, err = h.List()
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(list.Items).To(BeEmpty())
}

func TestAddGetRemove(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()

	srv := testutils.NewChartRepositoryServer(t, testIndex)
	h := newTestHome(t)

	repo, err := h.Add(ctx, "bitnami", srv.URL)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(repo.Phase).To(Equal(apiv1.RepositoryAvailable))

	_, err = h.Add(ctx, "bitnami", srv.URL)
	g.Expect(errors.Is(err, ErrExists)).To(BeTrue())

	got, err := h.Get("bitnami")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(got.URL).To(Equal(srv.URL))

	_, err = h.Update(ctx, "bitnami")
	g.Expect(err).ToNot(HaveOccurred())

	g.Expect(h.Remove("bitnami")).To(Succeed())
	_, err = os.Stat(h.cacheIndex("bitnami"))
	g.Expect(os.IsNotExist(err)).To(BeTrue())

	_, err = h.Get("bitnami")
	g.Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
	g.Expect(errors.Is(h.Remove("bitnami"), ErrNotFound)).To(BeTrue())
}

func TestAdd_InvalidRepository(t *testing.T) {
	g := NewWithT(t)

	srv := testutils.NewChartRepositoryServer(t, "entries: {}\n")
	h := newTestHome(t)

	_, err := h.Add(context.Background(), "broken", srv.URL)
	g.Expect(err).To(MatchError(ContainSubstring("is not a valid chart repository or cannot be reached")))

	g.Expect(errors.Is(err, ErrInvalid)).To(BeTrue())

	_, err = h.Add(context.Background(), "missing", srv.URL+"/missing")
	g.Expect(err).To(MatchError(ContainSubstring("is not a valid chart repository or cannot be reached")))

	list, err := h.List()
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(list.Items).To(BeEmpty())
}

func TestCharts(t *testing.T) {
	g := NewWithT(t)

	srv := testutils.NewChartRepositoryServer(t, testIndex)
	h := newTestHome(t)

	_, err := h.Add(context.Background(), "bitnami", srv.URL+"/")
	g.Expect(err).ToNot(HaveOccurred())

	charts, err := h.Charts("bitnami")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(charts.ListMeta.TotalItems).To(Equal(3))

	var names []string
	for _, c := range charts.Items {
		names = append(names, c.Name+"@"+c.Version)
	}
	g.Expect(names).To(Equal([]string{"memcached@0.1.0", "redis@1.10.0", "redis@1.9.0"}))

	memcached := charts.Items[0]
	g.Expect(memcached.Description).To(HaveLen(44))
	g.Expect(memcached.Description).To(Equal("Free & open source, high-performance, dis..."))
	g.Expect(memcached.Icon).To(Equal(DefaultIcon))
	g.Expect(memcached.FullURL).To(Equal(srv.URL + "/charts/memcached-0.1.0.tgz"))

	g.Expect(charts.Items[1].Icon).To(Equal("https://example.com/redis.png"))
	g.Expect(charts.Items[1].FullURL).To(Equal("https://example.com/charts/redis-1.10.0.tgz"))
	g.Expect(charts.Items[1].Description).To(Equal("Redis"))

	_, err = h.Charts("unknown")
	g.Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
}

func TestCharts_MultibyteDescription(t *testing.T) {
	g := NewWithT(t)

	index := `apiVersion: v1
entries:
  keydb:
  - name: keydb
    version: 1.0.0
    description: Entrepôt clé-valeur en mémoire, très rapide, écrit en C, distribué.
  valkey:
  - name: valkey
    version: 1.0.0
    description: ` + strings.Repeat("é", 45) + `
`
	srv := testutils.NewChartRepositoryServer(t, index)
	h := newTestHome(t)

	_, err := h.Add(context.Background(), "fr", srv.URL)
	g.Expect(err).ToNot(HaveOccurred())

	charts, err := h.Charts("fr")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(charts.Items).To(HaveLen(2))

	keydb := charts.Items[0].Description
	g.Expect(utf8.ValidString(keydb)).To(BeTrue())
	g.Expect(keydb).To(Equal("Entrepôt clé-valeur en mémoire, très rapi..."))

	// the limit counts characters, not bytes
	g.Expect(charts.Items[1].Description).To(Equal(strings.Repeat("é", 45)))
}

func TestAdd_InvalidName(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()

	srv := testutils.NewChartRepositoryServer(t, testIndex)
	root := t.TempDir()
	h := NewHome(filepath.Join(root, "home", ".helm"), WithDefaults())
	g.Expect(h.EnsureHome()).To(Succeed())

	for _, name := range []string{"../../../escaped", "../escaped", "a/b", `a\b`, "..", "Bitnami", ""} {
		_, err := h.Add(ctx, name, srv.URL)
		g.Expect(errors.Is(err, ErrInvalidName)).To(BeTrue(), name)
	}

	matches, err := filepath.Glob(filepath.Join(root, "*", "*escaped*"))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(matches).To(BeEmpty())
	matches, err = filepath.Glob(filepath.Join(root, "*escaped*"))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(matches).To(BeEmpty())

	list, err := h.List()
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(list.Items).To(BeEmpty())

	_, err = h.Update(ctx, "../escaped")
	g.Expect(errors.Is(err, ErrInvalidName)).To(BeTrue())
	g.Expect(errors.Is(h.Remove("../escaped"), ErrInvalidName)).To(BeTrue())

	_, err = h.Add(ctx, "prometheus-community", srv.URL)
	g.Expect(err).ToNot(HaveOccurred())
}

func TestUpdate_PendingRepository(t *testing.T) {
	g := NewWithT(t)

	srv := testutils.NewChartRepositoryServer(t, testIndex)
	h := newTestHome(t, apiv1.Repository{Name: "stable", URL: srv.URL})

	repo, err := h.Get("stable")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(repo.Phase).To(Equal(apiv1.RepositoryPending))

	repo, err = h.Update(context.Background(), "stable")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(repo.Phase).To(Equal(apiv1.RepositoryAvailable))

	charts, err := h.Charts("stable")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(charts.Items).To(HaveLen(3))

	_, err = h.Update(context.Background(), "missing")
	g.Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
}
