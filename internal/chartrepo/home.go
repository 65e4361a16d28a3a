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
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"k8s.io/apimachinery/pkg/util/validation"
	"sigs.k8s.io/yaml"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
)

const (
	repositoryDir    = "repository"
	cacheDir         = "cache"
	repositoriesFile = "repositories.yaml"
	fileAPIVersion   = "v1"
)

var (
	ErrNotFound = errors.New("repository not found")
	ErrExists   = errors.New("repository already exists")
	ErrInvalid  = errors.New("not a valid chart repository")

	// ErrInvalidName is returned for names that can't be used as a cache file name.
	ErrInvalidName = errors.New("invalid repository name")
)

// DefaultRepositories are written to a new repositories file.
var DefaultRepositories = []apiv1.Repository{
	{Name: "stable", URL: "https://charts.helm.sh/stable"},
}

// ValidateName checks that the name is a DNS-1123 label,
// e.g. 'bitnami' or 'prometheus-community'.
func ValidateName(name string) error {
	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidName, name, strings.Join(errs, "; "))
	}
	return nil
}

// entry is a line of the repositories file.
type entry struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Cache string `json:"cache"`
}

type repoFile struct {
	APIVersion   string    `json:"apiVersion"`
	Generated    time.Time `json:"generated"`
	Repositories []entry   `json:"repositories"`
}

func (f *repoFile) index(name string) int {
	for i, e := range f.Repositories {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Home manages a Helm style repository home directory.
type Home struct {
	path       string
	defaults   []apiv1.Repository
	httpClient *http.Client

	mu sync.Mutex
}

// Option configures a Home.
type Option func(*Home)

// WithDefaults sets the repositories written by EnsureHome.
func WithDefaults(repos ...apiv1.Repository) Option {
	return func(h *Home) {
		h.defaults = repos
	}
}

// WithHTTPClient sets the client used to download the repository indexes.
func WithHTTPClient(c *http.Client) Option {
	return func(h *Home) {
		h.httpClient = c
	}
}

// NewHome returns a Home rooted at the given path.
func NewHome(path string, opts ...Option) *Home {
	h := &Home{
		path:       path,
		defaults:   DefaultRepositories,
		httpClient: cleanhttp.DefaultClient(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Path returns the home directory.
func (h *Home) Path() string {
	return h.path
}

func (h *Home) repositoryFile() string {
	return filepath.Join(h.path, repositoryDir, repositoriesFile)
}

func (h *Home) cacheIndex(name string) string {
	return filepath.Join(h.path, repositoryDir, cacheDir, fmt.Sprintf("%s-index.yaml", name))
}

// EnsureHome creates the home directories and a repositories
// file containing the default repositories if missing.
// The indexes of the default repositories are not downloaded.
func (h *Home) EnsureHome() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, p := range []string{h.path, filepath.Join(h.path, repositoryDir), filepath.Join(h.path, repositoryDir, cacheDir)} {
		fi, err := os.Stat(p)
		switch {
		case errors.Is(err, os.ErrNotExist):
			if err := os.MkdirAll(p, 0o755); err != nil {
				return fmt.Errorf("could not create %s: %w", p, err)
			}
		case err != nil:
			return err
		case !fi.IsDir():
			return fmt.Errorf("%s must be a directory", p)
		}
	}

	fi, err := os.Stat(h.repositoryFile())
	if errors.Is(err, os.ErrNotExist) {
		f := &repoFile{APIVersion: fileAPIVersion}
		for _, r := range h.defaults {
			f.Repositories = append(f.Repositories, entry{
				Name:  r.Name,
				URL:   r.URL,
				Cache: filepath.Base(h.cacheIndex(r.Name)),
			})
		}
		return h.writeFile(f)
	}
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s must be a file, not a directory", h.repositoryFile())
	}
	return nil
}

func (h *Home) loadFile() (*repoFile, error) {
	data, err := os.ReadFile(h.repositoryFile())
	if err != nil {
		return nil, fmt.Errorf("read repositories file: %w", err)
	}
	var f repoFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", h.repositoryFile(), err)
	}
	return &f, nil
}

func (h *Home) writeFile(f *repoFile) error {
	f.APIVersion = fileAPIVersion
	f.Generated = time.Now().UTC()
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(h.repositoryFile(), data, 0o644); err != nil {
		return fmt.Errorf("write repositories file: %w", err)
	}
	return nil
}
