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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	rtclient "sigs.k8s.io/controller-runtime/pkg/client"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
)

// AWSResource represents a custom resource object in the Kubernetes API that
// corresponds to a resource in an AWS service API.
type AWSResource interface {
	ConditionManager
	// Identifiers returns an AWSResourceIdentifiers object containing various
	// identifying information, including the AWS account ID that owns the
	// resource, the resource's AWS Resource Name (ARN) and the provider ID
	// once the resource has been created or adopted
	Identifiers() AWSResourceIdentifiers
	// IsBeingDeleted returns true if the Kubernetes resource has a non-zero
	// deletion timestamp
	IsBeingDeleted() bool
	// RuntimeObject returns the Kubernetes apimachinery/runtime representation
	// of the AWSResource
	RuntimeObject() rtclient.Object
	// MetaObject returns the Kubernetes apimachinery/apis/meta/v1.Object
	// representation of the AWSResource
	MetaObject() metav1.Object
	// SetObjectMeta sets the ObjectMeta field for the resource
	SetObjectMeta(meta metav1.ObjectMeta)
	// SetIdentifiers binds the resource to a backend resource identifier. It
	// returns ackerr.IdentifierImmutable if the resource is already bound to
	// a different identifier.
	SetIdentifiers(*ackv1alpha1.AWSIdentifiers) error
	// SetStatus copies the provider-observed Status fields of the supplied
	// resource into this one. Conditions and the reconcile bookkeeping in
	// the ACKResourceMetadata (State, RetryCount, ObservedGeneration) are
	// left untouched.
	SetStatus(AWSResource)
	// Metadata returns the resource's ACKResourceMetadata, allocating it if
	// needed. It never returns nil.
	Metadata() *ackv1alpha1.ResourceMetadata
	// Tags returns the desired (Spec) tags of the resource
	Tags() tags.Tags
	// SetTags replaces the Spec tags of the resource
	SetTags(tags.Tags)
	// Validate checks the Spec before any backend call is made
	Validate() error
	// DeepCopy will return a copy of the resource
	DeepCopy() AWSResource
}

// ConditionManager describes a thing that can set and retrieve Condition
// objects.
type ConditionManager interface {
	// Conditions returns the ACK Conditions collection for the AWSResource
	Conditions() []*ackv1alpha1.Condition
	// ReplaceConditions replaces the resource's set of Condition structs with
	// the supplied slice of Conditions.
	ReplaceConditions([]*ackv1alpha1.Condition)
}
