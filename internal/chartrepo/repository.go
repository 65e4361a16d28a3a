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
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
)

// List returns the configured repositories in file order.
func (h *Home) List() (*apiv1.RepositoryList, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := h.loadFile()
	if err != nil {
		return nil, err
	}
	list := &apiv1.RepositoryList{Items: make([]apiv1.Repository, 0, len(f.Repositories))}
	for _, e := range f.Repositories {
		list.Items = append(list.Items, h.repository(e))
	}
	list.ListMeta.TotalItems = len(list.Items)
	return list, nil
}

// Get returns the named repository.
func (h *Home) Get(name string) (*apiv1.Repository, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := h.loadFile()
	if err != nil {
		return nil, err
	}
	i := f.index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	r := h.repository(f.Repositories[i])
	return &r, nil
}

// Add downloads the repository index and appends the repository to the file.
func (h *Home) Add(ctx context.Context, name, url string) (*apiv1.Repository, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: repository url is required", ErrInvalid)
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := h.loadFile()
	if err != nil {
		return nil, err
	}
	if f.index(name) >= 0 {
		return nil, fmt.Errorf("%w: the repository name you provided (%s) already exists, please specify a different name", ErrExists, name)
	}

	if err := h.download(ctx, name, url); err != nil {
		return nil, err
	}

	e := entry{Name: name, URL: url, Cache: filepath.Base(h.cacheIndex(name))}
	f.Repositories = append(f.Repositories, e)
	if err := h.writeFile(f); err != nil {
		return nil, err
	}
	r := h.repository(e)
	return &r, nil
}

// Remove deletes the repository from the file together with its cached index.
func (h *Home) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := h.loadFile()
	if err != nil {
		return err
	}
	i := f.index(name)
	if i < 0 {
		return fmt.Errorf("%w: no repo named %q found", ErrNotFound, name)
	}
	f.Repositories = append(f.Repositories[:i], f.Repositories[i+1:]...)
	if err := h.writeFile(f); err != nil {
		return err
	}
	if err := os.Remove(h.cacheIndex(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cached index: %w", err)
	}
	return nil
}

// Update downloads the index of the named repository.
func (h *Home) Update(ctx context.Context, name string) (*apiv1.Repository, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := h.loadFile()
	if err != nil {
		return nil, err
	}
	i := f.index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	e := f.Repositories[i]
	if err := h.download(ctx, e.Name, e.URL); err != nil {
		return nil, err
	}
	r := h.repository(e)
	return &r, nil
}

func (h *Home) repository(e entry) apiv1.Repository {
	phase := apiv1.RepositoryPending
	if _, err := os.Stat(h.cacheIndex(e.Name)); err == nil {
		phase = apiv1.RepositoryAvailable
	}
	return apiv1.Repository{Name: e.Name, URL: e.URL, Phase: phase}
}

func (h *Home) download(ctx context.Context, name, url string) error {
	data, err := h.fetchIndex(ctx, url)
	if err != nil {
		return fmt.Errorf("looks like %q is %w or cannot be reached: %w", url, ErrInvalid, err)
	}
	if err := os.WriteFile(h.cacheIndex(name), data, 0o644); err != nil {
		return fmt.Errorf("write index of %s: %w", name, err)
	}
	return nil
}

func (h *Home) fetchIndex(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(url, "/")+"/index.yaml", nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s : %s", req.URL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var idx indexFile
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	if idx.APIVersion == "" {
		return nil, errors.New("no API version specified")
	}
	return data, nil
}
