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
	"testing"

	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/testutils"
)

func TestReleaseStorage(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()

	// a Secret created by another tool is ignored
	foreign := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "sh.helm.release.v1.redis.v1",
			Namespace: "apps",
			Labels:    map[string]string{"owner": "helm"},
		},
	}
	storage := NewReleaseStorage(testutils.NewFakeResourceManager(foreign))

	for _, r := range []apiv1.Release{
		{ObjectMeta: apiv1.ObjectMeta{Name: "redis", Namespace: "apps"}, Chart: "redis", ChartVersion: "1.10.0", Revision: 1, Status: "deployed"},
		{ObjectMeta: apiv1.ObjectMeta{Name: "nginx", Namespace: "web"}, Chart: "nginx", ChartVersion: "2.0.0", Revision: 4, Status: "failed"},
		{ObjectMeta: apiv1.ObjectMeta{Name: "cache", Namespace: "apps"}, Chart: "memcached", ChartVersion: "0.1.0", Revision: 2, Status: "deployed"},
	} {
		g.Expect(storage.Apply(ctx, &r)).To(Succeed())
	}

	all, err := storage.List(ctx, "")
	g.Expect(err).ToNot(HaveOccurred())
	var names []string
	for _, r := range all {
		names = append(names, r.ObjectMeta.Namespace+"/"+r.ObjectMeta.Name)
	}
	g.Expect(names).To(Equal([]string{"apps/cache", "apps/redis", "web/nginx"}))

	apps, err := storage.List(ctx, "apps")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(apps).To(HaveLen(2))

	redis, err := storage.Get(ctx, "redis", "apps")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(redis.ChartVersion).To(Equal("1.10.0"))
	g.Expect(redis.LastDeployed).ToNot(BeEmpty())

	redis.Revision = 2
	redis.ChartVersion = "1.11.0"
	g.Expect(storage.Apply(ctx, redis)).To(Succeed())
	redis, err = storage.Get(ctx, "redis", "apps")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(redis.Revision).To(Equal(2))

	secret := &corev1.Secret{}
	g.Expect(storage.resManager.Client().Get(ctx,
		clientKey("apps", "kubedeck.redis"), secret)).To(Succeed())
	g.Expect(secret.Labels).To(HaveKeyWithValue("app.kubernetes.io/component", "release"))
	g.Expect(secret.Labels).To(HaveKeyWithValue("app.kubernetes.io/created-by", "kubedeck"))
	g.Expect(secret.Data).To(HaveKey("release"))

	g.Expect(storage.Delete(ctx, "redis", "apps")).To(Succeed())
	g.Expect(storage.Delete(ctx, "redis", "apps")).To(Succeed())
	_, err = storage.Get(ctx, "redis", "apps")
	g.Expect(apierrors.IsNotFound(err)).To(BeTrue())
}

func TestReleaseStorage_InvalidData(t *testing.T) {
	g := NewWithT(t)

	broken := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "kubedeck.broken",
			Namespace: "apps",
			Labels: map[string]string{
				"app.kubernetes.io/component":  "release",
				"app.kubernetes.io/created-by": "kubedeck",
			},
		},
		Data: map[string][]byte{"release": []byte("{")},
	}
	storage := NewReleaseStorage(testutils.NewFakeResourceManager(broken))

	_, err := storage.List(context.Background(), "apps")
	g.Expect(err).To(MatchError(ContainSubstring("invalid release found in Secret/apps/kubedeck.broken")))
}
