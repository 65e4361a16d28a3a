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

package flags

import (
	"fmt"
	"net/url"
)

// URL is an absolute HTTP(S) address.
type URL string

func (f *URL) String() string {
	return string(*f)
}

func (f *URL) Set(str string) error {
	if str == "" {
		*f = ""
		return nil
	}
	u, err := url.Parse(str)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", str, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", str)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: host is required", str)
	}
	*f = URL(str)
	return nil
}

func (f *URL) Type() string {
	return "url"
}

func (f *URL) Description() string {
	return "The address of the kubedeck API e.g. 'http://localhost:9090'."
}
