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

package testutils

import (
	"fmt"
	"reflect"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

// Implement succeeds if the actual value implements the interface
// the expected nil pointer refers to, e.g. Implement((*resource.Client)(nil)).
func Implement(expected interface{}) types.GomegaMatcher {
	return &implementsMatcher{
		expected: expected,
	}
}

type implementsMatcher struct {
	expected interface{}
}

func (m *implementsMatcher) Match(actual interface{}) (bool, error) {
	if actual == nil {
		return false, fmt.Errorf("Implement matcher expects a non-nil value")
	}
	iface := reflect.TypeOf(m.expected)
	if iface == nil || iface.Kind() != reflect.Ptr || iface.Elem().Kind() != reflect.Interface {
		return false, fmt.Errorf("Implement matcher expects a pointer to an interface, got %T", m.expected)
	}
	return reflect.TypeOf(actual).Implements(iface.Elem()), nil
}

func (m *implementsMatcher) FailureMessage(actual interface{}) string {
	return format.Message(actual, fmt.Sprintf("to implement %s", reflect.TypeOf(m.expected).Elem()))
}

func (m *implementsMatcher) NegatedFailureMessage(actual interface{}) string {
	return format.Message(actual, fmt.Sprintf("not to implement %s", reflect.TypeOf(m.expected).Elem()))
}
