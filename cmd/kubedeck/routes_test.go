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

package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"
)

func TestRoutes(t *testing.T) {
	g := NewWithT(t)

	router, err := newRouter(0)
	g.Expect(err).ToNot(HaveOccurred())

	want := [][]string{
		{"chrome (abstract)", "/?namespace", "", "", "@"},
		{"deploymentlist", "/deployment?namespace", "chrome", "deploymentList", "@,actionbar"},
		{"deploymentdetail", "/deployment/:objectNamespace/:objectName?namespace", "chrome", "deploymentDetailResource,deploymentDetail", "@,actionbar"},
		{"releaselist", "/release?namespace", "chrome", "releaseList", "@,actionbar"},
		{"repositorylist", "/repository?namespace", "chrome", "repositoryList", "@,actionbar"},
	}
	if diff := cmp.Diff(want, routeRows(router)); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}

	output, err := executeCommand("routes")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(output).To(ContainSubstring("RESOLVERS"))
	g.Expect(output).To(ContainSubstring("/deployment/:objectNamespace/:objectName?namespace"))
}
