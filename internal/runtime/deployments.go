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

package runtime

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fluxcd/cli-utils/pkg/kstatus/status"
	"github.com/fluxcd/pkg/ssa"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/equality"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	apiruntime "k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
)

const (
	deploymentKind = "deployment"
	replicaSetKind = "replicaset"
)

// DeploymentReader builds the deployment payloads from the cluster state.
type DeploymentReader struct {
	resManager *ssa.ResourceManager
}

// NewDeploymentReader creates a deployment reader for the given cluster.
func NewDeploymentReader(resManager *ssa.ResourceManager) *DeploymentReader {
	return &DeploymentReader{
		resManager: resManager,
	}
}

// List returns the deployments found in the given namespace sorted by name,
// an empty namespace selects all namespaces.
func (r *DeploymentReader) List(ctx context.Context, namespace string) ([]apiv1.Deployment, error) {
	list := &appsv1.DeploymentList{}
	var opts []client.ListOption
	if namespace != "" {
		opts = append(opts, client.InNamespace(namespace))
	}
	if err := r.resManager.Client().List(ctx, list, opts...); err != nil {
		return nil, err
	}

	res := make([]apiv1.Deployment, 0, len(list.Items))
	for _, d := range list.Items {
		res = append(res, apiv1.Deployment{
			ObjectMeta:      toObjectMeta(d.ObjectMeta),
			TypeMeta:        apiv1.TypeMeta{Kind: deploymentKind},
			Pods:            apiv1.PodInfo{Current: d.Status.Replicas, Desired: desiredReplicas(d.Spec.Replicas)},
			ContainerImages: containerImages(d.Spec.Template.Spec),
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].ObjectMeta.Namespace != res[j].ObjectMeta.Namespace {
			return res[i].ObjectMeta.Namespace < res[j].ObjectMeta.Namespace
		}
		return res[i].ObjectMeta.Name < res[j].ObjectMeta.Name
	})
	return res, nil
}

// Get returns the deployment detail including its replica sets and computed status.
// A missing deployment is reported with a Kubernetes NotFound error.
func (r *DeploymentReader) Get(ctx context.Context, namespace, name string) (*apiv1.DeploymentDetail, error) {
	d := &appsv1.Deployment{}
	if err := r.resManager.Client().Get(ctx, client.ObjectKey{Namespace: namespace, Name: name}, d); err != nil {
		return nil, err
	}

	owned, err := r.replicaSets(ctx, d)
	if err != nil {
		return nil, err
	}

	detail := &apiv1.DeploymentDetail{
		ObjectMeta:           toObjectMeta(d.ObjectMeta),
		TypeMeta:             apiv1.TypeMeta{Kind: deploymentKind},
		Selector:             map[string]string{},
		Strategy:             string(d.Spec.Strategy.Type),
		MinReadySeconds:      d.Spec.MinReadySeconds,
		RevisionHistoryLimit: d.Spec.RevisionHistoryLimit,
		StatusInfo: apiv1.StatusInfo{
			Replicas:    d.Status.Replicas,
			Updated:     d.Status.UpdatedReplicas,
			Available:   d.Status.AvailableReplicas,
			Unavailable: d.Status.UnavailableReplicas,
		},
		OldReplicaSetList: apiv1.ReplicaSetList{Items: []apiv1.ReplicaSet{}},
	}
	if d.Spec.Selector != nil {
		for k, v := range d.Spec.Selector.MatchLabels {
			detail.Selector[k] = v
		}
	}
	if ru := d.Spec.Strategy.RollingUpdate; ru != nil {
		detail.RollingUpdateStrategy = &apiv1.RollingUpdateStrategy{}
		if ru.MaxSurge != nil {
			detail.RollingUpdateStrategy.MaxSurge = ru.MaxSurge.String()
		}
		if ru.MaxUnavailable != nil {
			detail.RollingUpdateStrategy.MaxUnavailable = ru.MaxUnavailable.String()
		}
	}

	newRS, oldRS := splitReplicaSets(d, owned)
	if newRS != nil {
		detail.NewReplicaSet = toReplicaSet(newRS)
	}
	for i := range oldRS {
		detail.OldReplicaSetList.Items = append(detail.OldReplicaSetList.Items, toReplicaSet(oldRS[i]))
	}
	detail.OldReplicaSetList.ListMeta.TotalItems = len(detail.OldReplicaSetList.Items)

	res, err := computeStatus(d)
	if err != nil {
		return nil, fmt.Errorf("computing status of Deployment/%s/%s failed: %w", namespace, name, err)
	}
	detail.Status = res.Status.String()
	detail.Message = res.Message

	return detail, nil
}

// replicaSets returns the replica sets controlled by the deployment.
func (r *DeploymentReader) replicaSets(ctx context.Context, d *appsv1.Deployment) ([]*appsv1.ReplicaSet, error) {
	list := &appsv1.ReplicaSetList{}
	opts := []client.ListOption{client.InNamespace(d.Namespace)}
	if d.Spec.Selector != nil && len(d.Spec.Selector.MatchLabels) > 0 {
		opts = append(opts, client.MatchingLabels(d.Spec.Selector.MatchLabels))
	}
	if err := r.resManager.Client().List(ctx, list, opts...); err != nil {
		return nil, err
	}

	var owned []*appsv1.ReplicaSet
	for i := range list.Items {
		if metav1.IsControlledBy(&list.Items[i], d) {
			owned = append(owned, &list.Items[i])
		}
	}
	return owned, nil
}

// splitReplicaSets returns the replica set running the current pod template
// and the ones left from previous rollouts, newest first.
func splitReplicaSets(d *appsv1.Deployment, owned []*appsv1.ReplicaSet) (*appsv1.ReplicaSet, []*appsv1.ReplicaSet) {
	sort.SliceStable(owned, func(i, j int) bool {
		ti, tj := owned[i].CreationTimestamp, owned[j].CreationTimestamp
		if ti.Equal(&tj) {
			return owned[i].Name < owned[j].Name
		}
		return ti.Before(&tj)
	})

	var newRS *appsv1.ReplicaSet
	var oldRS []*appsv1.ReplicaSet
	for _, rs := range owned {
		if newRS == nil && equalIgnoreHash(&rs.Spec.Template, &d.Spec.Template) {
			newRS = rs
			continue
		}
		oldRS = append(oldRS, rs)
	}
	for i, j := 0, len(oldRS)-1; i < j; i, j = i+1, j-1 {
		oldRS[i], oldRS[j] = oldRS[j], oldRS[i]
	}
	return newRS, oldRS
}

// equalIgnoreHash compares two pod templates ignoring the hash label
// added by the deployment controller.
func equalIgnoreHash(a, b *corev1.PodTemplateSpec) bool {
	a1, b1 := a.DeepCopy(), b.DeepCopy()
	delete(a1.Labels, appsv1.DefaultDeploymentUniqueLabelKey)
	delete(b1.Labels, appsv1.DefaultDeploymentUniqueLabelKey)
	if len(a1.Labels) == 0 {
		a1.Labels = nil
	}
	if len(b1.Labels) == 0 {
		b1.Labels = nil
	}
	return equality.Semantic.DeepEqual(a1, b1)
}

func computeStatus(d *appsv1.Deployment) (*status.Result, error) {
	obj, err := apiruntime.DefaultUnstructuredConverter.ToUnstructured(d)
	if err != nil {
		return nil, err
	}
	u := &unstructured.Unstructured{Object: obj}
	u.SetGroupVersionKind(appsv1.SchemeGroupVersion.WithKind("Deployment"))
	return status.Compute(u)
}

func toReplicaSet(rs *appsv1.ReplicaSet) apiv1.ReplicaSet {
	return apiv1.ReplicaSet{
		ObjectMeta:      toObjectMeta(rs.ObjectMeta),
		TypeMeta:        apiv1.TypeMeta{Kind: replicaSetKind},
		Pods:            apiv1.PodInfo{Current: rs.Status.Replicas, Desired: desiredReplicas(rs.Spec.Replicas)},
		ContainerImages: containerImages(rs.Spec.Template.Spec),
	}
}

func toObjectMeta(m metav1.ObjectMeta) apiv1.ObjectMeta {
	om := apiv1.ObjectMeta{
		Name:        m.Name,
		Namespace:   m.Namespace,
		Labels:      m.Labels,
		Annotations: m.Annotations,
	}
	if !m.CreationTimestamp.IsZero() {
		om.CreationTimestamp = m.CreationTimestamp.UTC().Format(time.RFC3339)
	}
	return om
}

func desiredReplicas(r *int32) int32 {
	if r == nil {
		return 1
	}
	return *r
}

func containerImages(spec corev1.PodSpec) []string {
	images := make([]string, 0, len(spec.Containers))
	for _, c := range spec.Containers {
		images = append(images, c.Image)
	}
	return images
}
