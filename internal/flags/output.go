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
	"strings"
)

// Output is the format of the command results.
type Output string

const (
	OutputTable Output = "table"
	OutputJSON  Output = "json"
	OutputYAML  Output = "yaml"
)

var supportedOutputs = []Output{OutputTable, OutputJSON, OutputYAML}

func (f *Output) String() string {
	return string(*f)
}

func (f *Output) Set(str string) error {
	for _, o := range supportedOutputs {
		if string(o) == str {
			*f = o
			return nil
		}
	}
	return fmt.Errorf("unsupported output format %q, must be one of: %s", str, f.allowed())
}

func (f *Output) Type() string {
	return "output"
}

func (f *Output) Description() string {
	return fmt.Sprintf("The format in which the result should be printed, can be %s.", f.allowed())
}

func (f *Output) allowed() string {
	values := make([]string, 0, len(supportedOutputs))
	for _, o := range supportedOutputs {
		values = append(values, "'"+string(o)+"'")
	}
	return strings.Join(values, ", ")
}
