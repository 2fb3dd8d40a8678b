// Copyright Amazon.com Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may
// not use this file except in compliance with the License. A copy of the
// License is located at
//
//     http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

package cache_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sfake "k8s.io/client-go/kubernetes/fake"
	ctrlrtzap "sigs.k8s.io/controller-runtime/pkg/log/zap"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	ackrtcache "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime/cache"
)

const (
	prodNS  = "production"
	waitFor = 5 * time.Second
	tick    = 10 * time.Millisecond
)

func discardLogger() logr.Logger {
	return ctrlrtzap.New(ctrlrtzap.UseFlagOptions(&ctrlrtzap.Options{
		Development: true,
		Level:       zapcore.InfoLevel,
		DestWriter:  io.Discard,
	}))
}

func namespaceWith(name string, annotations map[string]string) *corev1.Namespace {
	return &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name, Annotations: annotations},
	}
}

func TestNamespaceCacheFollowsInformer(t *testing.T) {
	ctx := context.Background()
	kc := k8sfake.NewSimpleClientset()
	caches := ackrtcache.New(discardLogger(), ackrtcache.Config{})
	nsc := caches.Namespaces
	caches.Run(kc)
	t.Cleanup(caches.Stop)
	require.Eventually(t, nsc.HasSynced, waitFor, tick)

	regionIs := func(want string) func() bool {
		return func() bool {
			got, ok := nsc.GetDefaultRegion(prodNS)
			return ok == (want != "") && got == want
		}
	}

	_, err := kc.CoreV1().Namespaces().Create(ctx, namespaceWith(prodNS, map[string]string{
		ackv1alpha1.AnnotationDefaultRegion:                       "us-west-2",
		ackv1alpha1.AnnotationEndpointURL:                         "https://route53resolver.us-west-2.amazonaws.com",
		"route53resolver." + ackv1alpha1.AnnotationDeletionPolicy: "retain",
	}), metav1.CreateOptions{})
	require.NoError(t, err)
	require.Eventually(t, regionIs("us-west-2"), waitFor, tick)

	url, ok := nsc.GetEndpointURL(prodNS)
	require.True(t, ok)
	require.Equal(t, "https://route53resolver.us-west-2.amazonaws.com", url)

	// service alias lookup ignores case
	policy, ok := nsc.GetDeletionPolicy(prodNS, "Route53Resolver")
	require.True(t, ok)
	require.Equal(t, "retain", policy)
	_, ok = nsc.GetDeletionPolicy(prodNS, "s3")
	require.False(t, ok)

	// an update replaces every default, dropped annotations included
	_, err = kc.CoreV1().Namespaces().Update(ctx, namespaceWith(prodNS, map[string]string{
		ackv1alpha1.AnnotationDefaultRegion: "us-east-1",
	}), metav1.UpdateOptions{})
	require.NoError(t, err)
	require.Eventually(t, regionIs("us-east-1"), waitFor, tick)
	_, ok = nsc.GetEndpointURL(prodNS)
	require.False(t, ok)

	require.NoError(t, kc.CoreV1().Namespaces().Delete(ctx, prodNS, metav1.DeleteOptions{}))
	require.Eventually(t, regionIs(""), waitFor, tick)
}

func TestNamespaceCacheScope(t *testing.T) {
	scoped := ackrtcache.Config{
		WatchScope: []string{"team-a", "team-b"},
		Ignored:    []string{"sandbox", "scratch"},
	}
	for name, tc := range map[string]struct {
		cfg       ackrtcache.Config
		namespace string
		tracked   bool
	}{
		"watched":                 {cfg: scoped, namespace: "team-a", tracked: true},
		"outside watch scope":     {cfg: scoped, namespace: "team-c"},
		"ignored":                 {cfg: scoped, namespace: "sandbox"},
		"all namespaces":          {namespace: "team-a", tracked: true},
		"all namespaces, ignored": {cfg: ackrtcache.Config{Ignored: []string{"kube-system"}}, namespace: "kube-system"},
	} {
		t.Run(name, func(t *testing.T) {
			nsc := ackrtcache.NewNamespaceCache(discardLogger(), tc.cfg.WatchScope, tc.cfg.Ignored)
			nsc.Set(namespaceWith(tc.namespace, map[string]string{
				ackv1alpha1.AnnotationDefaultRegion: "us-west-2",
			}))
			_, found := nsc.GetDefaultRegion(tc.namespace)
			require.Equal(t, tc.tracked, found)
		})
	}
}
