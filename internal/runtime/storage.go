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
	"strings"
	"time"

	"github.com/fluxcd/pkg/ssa"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/json"
	"sigs.k8s.io/controller-runtime/pkg/client"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
)

var (
	storagePrefix     = fmt.Sprintf("%s.", apiv1.FieldManager)
	storageDataKey    = strings.ToLower(apiv1.ReleaseKind)
	nameLabelKey      = "app.kubernetes.io/name"
	componentLabelKey = "app.kubernetes.io/component"
	createdByLabelKey = "app.kubernetes.io/created-by"
)

// ReleaseStorage manages the releases stored in-cluster as Secrets.
type ReleaseStorage struct {
	resManager *ssa.ResourceManager
}

// NewReleaseStorage creates a release storage for the given cluster.
func NewReleaseStorage(resManager *ssa.ResourceManager) *ReleaseStorage {
	return &ReleaseStorage{
		resManager: resManager,
	}
}

// Apply creates or updates the storage object for the given release.
func (s *ReleaseStorage) Apply(ctx context.Context, r *apiv1.Release) error {
	if r.LastDeployed == "" {
		r.LastDeployed = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	secret := s.newSecret(r.ObjectMeta.Name, r.ObjectMeta.Namespace)
	secret.Data = map[string][]byte{
		storageDataKey: data,
	}

	key := client.ObjectKeyFromObject(secret)
	existing := &corev1.Secret{}
	err = s.resManager.Client().Get(ctx, key, existing)
	switch {
	case apierrors.IsNotFound(err):
		return s.resManager.Client().Create(ctx, secret, client.FieldOwner(ownerRef.Field))
	case err != nil:
		return err
	}
	existing.Labels = secret.Labels
	existing.Data = secret.Data
	return s.resManager.Client().Update(ctx, existing, client.FieldOwner(ownerRef.Field))
}

// Get retrieves the release from the storage.
// A missing release is reported with a Kubernetes NotFound error.
func (s *ReleaseStorage) Get(ctx context.Context, name, namespace string) (*apiv1.Release, error) {
	secret := s.newSecret(name, namespace)

	key := client.ObjectKeyFromObject(secret)
	if err := s.resManager.Client().Get(ctx, key, secret); err != nil {
		return nil, err
	}

	return decodeRelease(secret)
}

// List returns the releases found in the given namespace,
// an empty namespace selects all namespaces.
func (s *ReleaseStorage) List(ctx context.Context, namespace string) ([]apiv1.Release, error) {
	secrets := &corev1.SecretList{}
	opts := []client.ListOption{s.getOwnerLabels()}
	if namespace != "" {
		opts = append(opts, client.InNamespace(namespace))
	}
	if err := s.resManager.Client().List(ctx, secrets, opts...); err != nil {
		return nil, err
	}

	res := make([]apiv1.Release, 0, len(secrets.Items))
	for i := range secrets.Items {
		r, err := decodeRelease(&secrets.Items[i])
		if err != nil {
			return nil, err
		}
		res = append(res, *r)
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].ObjectMeta.Namespace != res[j].ObjectMeta.Namespace {
			return res[i].ObjectMeta.Namespace < res[j].ObjectMeta.Namespace
		}
		return res[i].ObjectMeta.Name < res[j].ObjectMeta.Name
	})
	return res, nil
}

// Delete removes the storage for the given release name and namespace.
func (s *ReleaseStorage) Delete(ctx context.Context, name, namespace string) error {
	secret := s.newSecret(name, namespace)

	key := client.ObjectKeyFromObject(secret)
	err := s.resManager.Client().Delete(ctx, secret)
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to delete Secret/%s, error: %w", key, err)
	}
	return nil
}

func decodeRelease(secret *corev1.Secret) (*apiv1.Release, error) {
	data, ok := secret.Data[storageDataKey]
	if !ok {
		return nil, fmt.Errorf("release data not found in Secret/%s/%s",
			secret.GetNamespace(), secret.GetName())
	}

	var r apiv1.Release
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid release found in Secret/%s/%s, error: %w",
			secret.GetNamespace(), secret.GetName(), err)
	}
	if r.ObjectMeta.Name == "" {
		r.ObjectMeta.Name = secret.Labels[nameLabelKey]
	}
	r.ObjectMeta.Namespace = secret.GetNamespace()
	return &r, nil
}

// getOwnerLabels returns a label selector matching the storage owner.
func (s *ReleaseStorage) getOwnerLabels() client.MatchingLabels {
	return client.MatchingLabels{
		componentLabelKey: storageDataKey,
		createdByLabelKey: ownerRef.Field,
	}
}

func (s *ReleaseStorage) newSecret(name, namespace string) *corev1.Secret {
	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      storagePrefix + name,
			Namespace: namespace,
			Labels: map[string]string{
				nameLabelKey:      name,
				componentLabelKey: storageDataKey,
				createdByLabelKey: ownerRef.Field,
			},
		},
	}
}
