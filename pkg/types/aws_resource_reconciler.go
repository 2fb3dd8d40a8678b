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
	ctrlreconcile "sigs.k8s.io/controller-runtime/pkg/reconcile"
)

// AWSResourceReconciler reconciles one kind of custom resource against the
// backend AWS service API
type AWSResourceReconciler interface {
	ctrlreconcile.Reconciler
	// GroupVersionKind returns the schema.GroupVersionKind reconciled by this
	// reconciler
	GroupVersionKind() schema.GroupVersionKind
	// Sync drives one reconcile of the supplied resource through the
	// supplied manager. Tests call it directly with a fake manager.
	Sync(
		context.Context,
		AWSResourceManager,
		AWSResource,
	) (AWSResource, error)
}
