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

package types

import (
	"context"

	"k8s.io/apimachinery/pkg/runtime/schema"
	k8stypes "k8s.io/apimachinery/pkg/types"
)

// ResourceStore is the Reconciler's view of the custom resource store. It is
// the only way the Reconciler reads or persists custom resources.
type ResourceStore interface {
	// Get returns the custom resource with the supplied kind and key. A
	// Kubernetes NotFound error is returned when it does not exist.
	Get(context.Context, schema.GroupVersionKind, k8stypes.NamespacedName) (AWSResource, error)
	// List returns all custom resources of the supplied kind
	List(context.Context, schema.GroupVersionKind) ([]AWSResource, error)
	// PatchMetadata persists the metadata and Spec of desired, using latest
	// as the base of the patch, and returns the stored resource. This is the
	// path used to add and remove finalizers.
	PatchMetadata(ctx context.Context, desired, latest AWSResource) (AWSResource, error)
	// PatchStatus persists the Status of desired, using latest as the base of
	// the patch. A resource that is no longer stored is not an error.
	PatchStatus(ctx context.Context, desired, latest AWSResource) error
}
