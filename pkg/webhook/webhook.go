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

// Package webhook serves admission webhooks for the resolver custom
// resources.
package webhook

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
	ctrlrt "sigs.k8s.io/controller-runtime"
)

type Kind string

const (
	KindValidating Kind = "validating"
)

// Webhook is an admission webhook of one resource kind
type Webhook struct {
	Kind Kind
	GVK  schema.GroupVersionKind
	// Setup registers the webhook with the manager's webhook server
	Setup func(ctrlrt.Manager) error
}

// UID identifies the webhook; at most one webhook of each kind is served
// per resource kind and API version.
func (w *Webhook) UID() string {
	return string(w.Kind) + "/" + w.GVK.Kind + "/" + w.GVK.GroupVersion().String()
}
