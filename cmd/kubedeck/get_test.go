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
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"sigs.k8s.io/yaml"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
)

func TestGet_Releases(t *testing.T) {
	g := NewWithT(t)
	srv := newTestBackend(t, true)

	t.Run("prints table", func(t *testing.T) {
		g := NewWithT(t)
		output, err := executeCommand(fmt.Sprintf("get releases -n apps --api-url %s", srv.URL))
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(output).To(ContainSubstring("NAME"))
		g.Expect(output).To(ContainSubstring("podinfo-6.6.0"))
		g.Expect(output).To(ContainSubstring("deployed"))
		g.Expect(output).ToNot(ContainSubstring("NAMESPACE"))
	})

	t.Run("prints yaml across namespaces", func(t *testing.T) {
		g := NewWithT(t)
		output, err := executeCommand(fmt.Sprintf("get releases -A -o yaml --api-url %s", srv.URL))
		g.Expect(err).ToNot(HaveOccurred())

		var list apiv1.ReleaseList
		g.Expect(yaml.Unmarshal([]byte(output), &list)).To(Succeed())
		g.Expect(list.ListMeta.TotalItems).To(Equal(1))
		g.Expect(list.Items[0].ObjectMeta.Namespace).To(Equal("apps"))
		g.Expect(list.Items[0].Revision).To(Equal(2))
	})

	t.Run("prints nothing for empty namespace", func(t *testing.T) {
		g := NewWithT(t)
		output, err := executeCommand(fmt.Sprintf("get releases -n default -o json --api-url %s", srv.URL))
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(output).To(MatchJSON(`{"listMeta":{"totalItems":0},"items":[]}`))
	})

	_, err := executeCommand(fmt.Sprintf("get releases -o xml --api-url %s", srv.URL))
	g.Expect(err).To(HaveOccurred())
}

func TestGet_Deployments(t *testing.T) {
	g := NewWithT(t)
	srv := newTestBackend(t, true)

	output, err := executeCommand(fmt.Sprintf("get deployments -A --api-url %s", srv.URL))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(output).To(ContainSubstring("NAMESPACE"))
	g.Expect(output).To(ContainSubstring("apps"))
	g.Expect(output).To(ContainSubstring("ghcr.io/stefanprodan/podinfo:6.6.0"))
}

func TestGet_Deployment(t *testing.T) {
	g := NewWithT(t)
	srv := newTestBackend(t, true)

	output, err := executeCommand(fmt.Sprintf("get deployment podinfo -n apps --api-url %s", srv.URL))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(output).To(ContainSubstring("podinfo-7d9f5"))
	g.Expect(output).To(ContainSubstring("new"))
	g.Expect(output).To(ContainSubstring("1/1"))

	output, err = executeCommand(fmt.Sprintf("get deployment podinfo -n apps -o json --api-url %s", srv.URL))
	g.Expect(err).ToNot(HaveOccurred())
	var detail apiv1.DeploymentDetail
	g.Expect(yaml.Unmarshal([]byte(output), &detail)).To(Succeed())
	g.Expect(detail.NewReplicaSet.ObjectMeta.Name).To(Equal("podinfo-7d9f5"))

	_, err = executeCommand(fmt.Sprintf("get deployment missing -n apps --api-url %s", srv.URL))
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("404"))
}

func TestGet_NoCluster(t *testing.T) {
	g := NewWithT(t)
	srv := newTestBackend(t, false)

	_, err := executeCommand(fmt.Sprintf("get deployments -n apps --api-url %s", srv.URL))
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("503"))

	output, err := executeCommand(fmt.Sprintf("get repositories --api-url %s", srv.URL))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(output).To(ContainSubstring("NAME"))
}
