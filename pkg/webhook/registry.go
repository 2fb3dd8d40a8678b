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

package webhook

import (
	"fmt"
	"sort"
	"sync"

	ctrlrt "sigs.k8s.io/controller-runtime"
)

var (
	registryMu sync.RWMutex
	// webhooksRegistry is a map of webhooks, keyed by their unique
	// identifier.
	webhooksRegistry = map[string]*Webhook{}
)

// GetWebhooks returns the webhooks registered with RegisterWebhook, ordered
// by their unique identifier.
func GetWebhooks() []*Webhook {
	registryMu.RLock()
	defer registryMu.RUnlock()
	webhooks := make([]*Webhook, 0, len(webhooksRegistry))
	for _, wh := range webhooksRegistry {
		webhooks = append(webhooks, wh)
	}
	sort.Slice(webhooks, func(i, j int) bool {
		return webhooks[i].UID() < webhooks[j].UID()
	})
	return webhooks
}

// RegisterWebhook registers a new webhook within the webhook registry.
// This function will return an error if it tries to register two webhooks
// with the same unique identifier.
func RegisterWebhook(w *Webhook) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := webhooksRegistry[w.UID()]; ok {
		return fmt.Errorf("webhook %s already registered", w.UID())
	}
	webhooksRegistry[w.UID()] = w
	return nil
}

// SetupAll registers every known webhook with the supplied manager
func SetupAll(mgr ctrlrt.Manager) error {
	for _, wh := range GetWebhooks() {
		if err := wh.Setup(mgr); err != nil {
			return fmt.Errorf("setting up webhook %s: %w", wh.UID(), err)
		}
	}
	return nil
}
