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

package resolver_rule

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	rtclient "sigs.k8s.io/controller-runtime/pkg/client"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	svcresource "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource"
	acktags "github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// resource implements the `aws-controller-k8s/runtime/pkg/types.AWSResource`
// interface
type resource struct {
	// The Kubernetes-native CR representing the resource
	ko *svcapitypes.ResolverRule
}

// Identifiers returns an AWSResourceIdentifiers object containing various
// identifying information, including the AWS account ID that owns the
// resource, the resource's AWS Resource Name (ARN) and its provider ID
func (r *resource) Identifiers() acktypes.AWSResourceIdentifiers {
	return &resourceIdentifiers{r.ko.Status.ACKResourceMetadata, r.ko.Status.ID}
}

// IsBeingDeleted returns true if the Kubernetes resource has a non-zero
// deletion timestamp
func (r *resource) IsBeingDeleted() bool {
	return !r.ko.DeletionTimestamp.IsZero()
}

// RuntimeObject returns the Kubernetes apimachinery/runtime representation of
// the AWSResource
func (r *resource) RuntimeObject() rtclient.Object {
	return r.ko
}

// MetaObject returns the Kubernetes apimachinery/apis/meta/v1.Object
// representation of the AWSResource
func (r *resource) MetaObject() metav1.Object {
	return r.ko.GetObjectMeta()
}

// Conditions returns the ACK Conditions collection for the AWSResource
func (r *resource) Conditions() []*ackv1alpha1.Condition {
	return r.ko.Status.Conditions
}

// ReplaceConditions sets the Conditions status field for the resource
func (r *resource) ReplaceConditions(conditions []*ackv1alpha1.Condition) {
	r.ko.Status.Conditions = conditions
}

// SetObjectMeta sets the ObjectMeta field for the resource
func (r *resource) SetObjectMeta(meta metav1.ObjectMeta) {
	r.ko.ObjectMeta = meta
}

// SetStatus will set the Status field for the resource
func (r *resource) SetStatus(desired acktypes.AWSResource) {
	src := desired.(*resource).ko.Status
	dst := &r.ko.Status
	dst.CreationTime = src.CreationTime
	dst.CreatorRequestID = src.CreatorRequestID
	dst.ID = src.ID
	dst.ModificationTime = src.ModificationTime
	dst.OwnerID = src.OwnerID
	dst.ShareStatus = src.ShareStatus
	dst.Status = src.Status
	dst.StatusMessage = src.StatusMessage
	if src.ACKResourceMetadata != nil {
		md := r.Metadata()
		if src.ACKResourceMetadata.ARN != nil {
			md.ARN = src.ACKResourceMetadata.ARN
		}
		if src.ACKResourceMetadata.OwnerAccountID != nil {
			md.OwnerAccountID = src.ACKResourceMetadata.OwnerAccountID
		}
		if src.ACKResourceMetadata.Region != nil {
			md.Region = src.ACKResourceMetadata.Region
		}
	}
}

// SetIdentifiers sets the Spec or Status field that is referenced as the
// unique resource identifier
func (r *resource) SetIdentifiers(identifier *ackv1alpha1.AWSIdentifiers) error {
	if identifier == nil || identifier.NameOrID == "" {
		return ackerr.MissingNameIdentifier
	}
	if r.ko.Status.ID != nil && *r.ko.Status.ID != "" && *r.ko.Status.ID != identifier.NameOrID {
		return ackerr.IdentifierImmutable
	}
	id := identifier.NameOrID
	r.ko.Status.ID = &id
	if identifier.ARN != nil {
		r.Metadata().ARN = identifier.ARN
	}
	return nil
}

// Metadata returns the ACKResourceMetadata of the resource, allocating it
// when missing
func (r *resource) Metadata() *ackv1alpha1.ResourceMetadata {
	if r.ko.Status.ACKResourceMetadata == nil {
		r.ko.Status.ACKResourceMetadata = &ackv1alpha1.ResourceMetadata{}
	}
	return r.ko.Status.ACKResourceMetadata
}

// Tags returns the Spec tags of the resource
func (r *resource) Tags() acktags.Tags {
	return svcresource.ToACKTags(r.ko.Spec.Tags)
}

// SetTags replaces the Spec tags of the resource
func (r *resource) SetTags(tags acktags.Tags) {
	r.ko.Spec.Tags = svcresource.FromACKTags(tags)
}

// Validate checks the Spec before it is sent to the Route 53 Resolver API
func (r *resource) Validate() error {
	return r.ko.Validate()
}

// DeepCopy will return a copy of the resource
func (r *resource) DeepCopy() acktypes.AWSResource {
	koCopy := r.ko.DeepCopy()
	return &resource{koCopy}
}
