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

// Package cache keeps the Namespace annotations the reconcilers consult when
// a custom resource does not carry its own region, endpoint or deletion
// policy.
package cache

import (
	"sync"

	"github.com/go-logr/logr"
	kubernetes "k8s.io/client-go/kubernetes"
)

// informerResyncPeriod of zero disables periodic resyncs; the caches only
// react to watch events.
const informerResyncPeriod = 0

// Config scopes the namespaces the caches track
type Config struct {
	// WatchScope is the list of namespaces to track. Empty means all.
	WatchScope []string
	// Ignored is the list of namespaces never tracked
	Ignored []string
}

// Caches groups the informer-backed caches of the controller
type Caches struct {
	mu     sync.Mutex
	stopCh chan struct{}

	Namespaces *NamespaceCache
}

// New returns Caches scoped by cfg. Nothing is watched until Run.
func New(log logr.Logger, cfg Config) *Caches {
	return &Caches{
		Namespaces: NewNamespaceCache(log, cfg.WatchScope, cfg.Ignored),
	}
}

// Run starts the informers of every cache. Calling Run again before Stop
// is a no-op.
func (c *Caches) Run(clientSet kubernetes.Interface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopCh != nil {
		return
	}
	c.stopCh = make(chan struct{})
	if c.Namespaces != nil {
		c.Namespaces.Run(clientSet, c.stopCh)
	}
}

// Stop stops the informers started by Run
func (c *Caches) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}
}
