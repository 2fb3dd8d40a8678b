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

package cache

import (
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
	corev1 "k8s.io/api/core/v1"
	informersv1 "k8s.io/client-go/informers/core/v1"
	kubernetes "k8s.io/client-go/kubernetes"
	k8scache "k8s.io/client-go/tools/cache"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
)

// namespaceDefaults holds the controller annotations of one Namespace
type namespaceDefaults struct {
	region      string
	endpointURL string
	// deletion policies keyed by lower-cased service alias
	deletionPolicies map[string]string
}

func defaultsFrom(ns *corev1.Namespace) *namespaceDefaults {
	annotations := ns.GetAnnotations()
	suffix := "." + ackv1alpha1.AnnotationDeletionPolicy
	policies := lo.MapEntries(
		lo.PickBy(annotations, func(key string, _ string) bool {
			return strings.HasSuffix(key, suffix)
		}),
		func(key string, policy string) (string, string) {
			return strings.ToLower(strings.TrimSuffix(key, suffix)), policy
		},
	)
	return &namespaceDefaults{
		region:           annotations[ackv1alpha1.AnnotationDefaultRegion],
		endpointURL:      annotations[ackv1alpha1.AnnotationEndpointURL],
		deletionPolicies: policies,
	}
}

// NamespaceCache tracks the controller annotations of the Namespaces in the
// watch scope
type NamespaceCache struct {
	sync.RWMutex
	log        logr.Logger
	defaults   map[string]*namespaceDefaults
	watchScope []string
	ignored    []string
	hasSynced  func() bool
}

// NewNamespaceCache returns an empty NamespaceCache. An empty watchScope
// tracks every Namespace that is not ignored.
func NewNamespaceCache(log logr.Logger, watchScope []string, ignored []string) *NamespaceCache {
	return &NamespaceCache{
		log:        log.WithName("cache.namespace"),
		defaults:   map[string]*namespaceDefaults{},
		watchScope: watchScope,
		ignored:    ignored,
	}
}

func (c *NamespaceCache) tracks(namespace string) bool {
	if lo.Contains(c.ignored, namespace) {
		return false
	}
	return len(c.watchScope) == 0 || lo.Contains(c.watchScope, namespace)
}

// Run starts a Namespace informer feeding the cache until stopCh closes
func (c *NamespaceCache) Run(clientSet kubernetes.Interface, stopCh <-chan struct{}) {
	c.log.V(1).Info("starting namespace cache", "watchScope", c.watchScope, "ignored", c.ignored)
	informer := informersv1.NewNamespaceInformer(
		clientSet,
		informerResyncPeriod,
		k8scache.Indexers{k8scache.NamespaceIndex: k8scache.MetaNamespaceIndexFunc},
	)
	_, err := informer.AddEventHandler(k8scache.ResourceEventHandlerFuncs{
		AddFunc: func(obj interface{}) {
			if ns, ok := obj.(*corev1.Namespace); ok {
				c.Set(ns)
			}
		},
		UpdateFunc: func(_, obj interface{}) {
			if ns, ok := obj.(*corev1.Namespace); ok {
				c.Set(ns)
			}
		},
		DeleteFunc: func(obj interface{}) {
			if tombstone, ok := obj.(k8scache.DeletedFinalStateUnknown); ok {
				obj = tombstone.Obj
			}
			if ns, ok := obj.(*corev1.Namespace); ok {
				c.remove(ns.Name)
			}
		},
	})
	if err != nil {
		c.log.Error(err, "unable to watch namespaces")
		return
	}
	c.Lock()
	c.hasSynced = informer.HasSynced
	c.Unlock()
	go informer.Run(stopCh)
}

// HasSynced returns true once the informer delivered the initial list of
// Namespaces
func (c *NamespaceCache) HasSynced() bool {
	c.RLock()
	defer c.RUnlock()
	return c.hasSynced != nil && c.hasSynced()
}

// Set caches the annotations of ns when it is in the watch scope
func (c *NamespaceCache) Set(ns *corev1.Namespace) {
	if !c.tracks(ns.Name) {
		return
	}
	d := defaultsFrom(ns)
	c.Lock()
	c.defaults[ns.Name] = d
	c.Unlock()
	c.log.V(1).Info("cached namespace", "name", ns.Name)
}

func (c *NamespaceCache) remove(namespace string) {
	c.Lock()
	defer c.Unlock()
	if _, ok := c.defaults[namespace]; ok {
		delete(c.defaults, namespace)
		c.log.V(1).Info("forgot namespace", "name", namespace)
	}
}

func (c *NamespaceCache) lookup(namespace string, field func(*namespaceDefaults) string) (string, bool) {
	c.RLock()
	d, ok := c.defaults[namespace]
	c.RUnlock()
	if !ok {
		return "", false
	}
	v := field(d)
	return v, v != ""
}

// GetDefaultRegion returns the default-region annotation of namespace
func (c *NamespaceCache) GetDefaultRegion(namespace string) (string, bool) {
	return c.lookup(namespace, func(d *namespaceDefaults) string { return d.region })
}

// GetEndpointURL returns the endpoint-url annotation of namespace
func (c *NamespaceCache) GetEndpointURL(namespace string) (string, bool) {
	return c.lookup(namespace, func(d *namespaceDefaults) string { return d.endpointURL })
}

// GetDeletionPolicy returns the deletion policy namespace sets for the
// supplied service alias
func (c *NamespaceCache) GetDeletionPolicy(namespace string, service string) (string, bool) {
	return c.lookup(namespace, func(d *namespaceDefaults) string {
		return d.deletionPolicies[strings.ToLower(service)]
	})
}
