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

package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"k8s.io/apimachinery/pkg/util/json"
)

// Params holds the values used to expand a URL template.
// Values not consumed by the template are sent as query parameters.
type Params map[string]string

// Client is a handle bound to one URL template.
type Client interface {
	Template() string
	Get(ctx context.Context, params Params, out any) error
	Save(ctx context.Context, params Params, body any, out any) error
	Delete(ctx context.Context, params Params) error
}

// Factory creates resource clients for an API server.
type Factory struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewFactory returns a Factory for the given API base URL.
// When httpClient is nil a pooled client is used.
func NewFactory(baseURL string, httpClient *http.Client) (*Factory, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q: scheme and host are required", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}
	return &Factory{baseURL: u, httpClient: httpClient}, nil
}

// BaseURL returns the API server address.
func (f *Factory) BaseURL() string {
	return f.baseURL.String()
}

// New returns a Resource bound to the given template,
// e.g. 'api/v1/deployment/:namespace/:name'.
func (f *Factory) New(template string) *Resource {
	return &Resource{
		template:   strings.TrimPrefix(template, "/"),
		baseURL:    f.baseURL,
		httpClient: f.httpClient,
	}
}

// Resource is a REST client bound to a URL template.
// It holds no state besides the template and is safe for concurrent use.
type Resource struct {
	template   string
	baseURL    *url.URL
	httpClient *http.Client
}

// Template returns the URL template the resource is bound to.
func (r *Resource) Template() string {
	return r.template
}

// Path expands the template with the given params.
// Segments whose param is missing or empty are dropped.
// The params that don't appear in the template are returned as query values.
func (r *Resource) Path(params Params) (string, url.Values) {
	used := make(map[string]bool)
	var segments []string
	for _, seg := range strings.Split(r.template, "/") {
		if !strings.HasPrefix(seg, ":") {
			if seg != "" {
				segments = append(segments, seg)
			}
			continue
		}
		name := seg[1:]
		used[name] = true
		if v := params[name]; v != "" {
			segments = append(segments, url.PathEscape(v))
		}
	}

	query := url.Values{}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if used[k] || params[k] == "" {
			continue
		}
		query.Set(k, params[k])
	}

	return strings.Join(segments, "/"), query
}

// MarshalJSON exposes the template of the resource to the view model.
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"template": r.template})
}

// URL returns the absolute request URL for the given params.
func (r *Resource) URL(params Params) string {
	p, query := r.Path(params)
	u := r.baseURL.JoinPath(p)
	u.RawQuery = query.Encode()
	return u.String()
}

// Get fetches the resource and decodes the JSON response into out.
func (r *Resource) Get(ctx context.Context, params Params, out any) error {
	return r.do(ctx, http.MethodGet, params, nil, out)
}

// Save posts the body to the resource and decodes the JSON response into out.
func (r *Resource) Save(ctx context.Context, params Params, body any, out any) error {
	return r.do(ctx, http.MethodPost, params, body, out)
}

// Delete removes the resource.
func (r *Resource) Delete(ctx context.Context, params Params) error {
	return r.do(ctx, http.MethodDelete, params, nil, nil)
}

// Fetch issues a GET request and returns the decoded payload.
func Fetch[T any](ctx context.Context, c Client, params Params) (*T, error) {
	var out T
	if err := c.Get(ctx, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource) do(ctx context.Context, method string, params Params, payload any, out any) error {
	target := r.URL(params)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, target, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response of %s %s: %w", method, target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(respBody)), 300),
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response of %s %s: %w", method, target, err)
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
