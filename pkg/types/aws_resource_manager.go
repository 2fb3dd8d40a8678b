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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-logr/logr"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	ackcompare "github.com/aws-controllers-k8s/route53resolver-controller/pkg/compare"
	ackcfg "github.com/aws-controllers-k8s/route53resolver-controller/pkg/config"
	ackmetrics "github.com/aws-controllers-k8s/route53resolver-controller/pkg/metrics"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
)

// AWSResourceManager is responsible for providing a consistent way to
// perform CRUD+L operations in a backend AWS service API for Kubernetes custom
// resources (CR) corresponding to those AWS service API resources.
//
// Use an AWSResourceManagerFactory to create an AWSResourceManager for a
// particular APIResource and AWS account.
//
// Implementations keep no state between calls; every error they return has
// been through ackerr.Classify.
type AWSResourceManager interface {
	// ReadOne returns the currently-observed state of the supplied AWSResource
	// in the backend AWS service API.
	//
	// Implementers should return (nil, ackerr.NotFound) when the backend AWS
	// service API returns a response indicating that the requested resource
	// does not exist.
	ReadOne(context.Context, AWSResource) (AWSResource, error)
	// Create attempts to create the supplied AWSResource in the backend AWS
	// service API, returning an AWSResource representing the newly-created
	// resource. When the backend resource was created but a follow-up call
	// failed, both the created AWSResource and the error are returned.
	Create(context.Context, AWSResource) (AWSResource, error)
	// Update attempts to mutate the supplied desired AWSResource in the
	// backend AWS service API, returning an AWSResource representing the
	// newly-mutated resource.
	// Note for specialized logic implementers can check to see how the latest
	// observed resource differs from the supplied desired state. The
	// higher-level reonciler determines whether or not the desired differs
	// from the latest observed and decides whether to call the resource
	// manager's Update method
	Update(
		ctx context.Context,
		desired AWSResource,
		latest AWSResource,
		delta *ackcompare.Delta,
	) (AWSResource, error)
	// Delete attempts to destroy the supplied AWSResource in the backend AWS
	// service API. ackerr.NotFound is returned when the resource is already
	// gone.
	Delete(context.Context, AWSResource) error
	// ListTags returns the tags currently set on the backend resource
	ListTags(ctx context.Context, arn string) (tags.Tags, error)
	// SetTags adds or overwrites the added tags and removes the removed keys
	// on the backend resource
	SetTags(ctx context.Context, arn string, added tags.Tags, removed []string) error
	// IsSynced returns true if the backend resource has reached a stable
	// status
	IsSynced(context.Context, AWSResource) (bool, error)
}

// AWSResourceManagerFactory returns an AWSResourceManager that can be used to
// manage AWS resources for a particular AWS account
type AWSResourceManagerFactory interface {
	// ResourceDescriptor returns an AWSResourceDescriptor that can be used by
	// the upstream controller-runtime to introspect the CRs that the resource
	// manager will manage as well as provide upstream with methods for
	// converting between AWS API resource structures and CRs
	ResourceDescriptor() AWSResourceDescriptor
	// ManagerFor returns an AWSResourceManager that manages AWS resources on
	// behalf of a particular AWS account and in a specific AWS region
	ManagerFor(
		ackcfg.Config,
		aws.Config,
		logr.Logger,
		*ackmetrics.Metrics,
		ackv1alpha1.AWSAccountID,
		ackv1alpha1.AWSRegion,
	) (AWSResourceManager, error)
	// RequeueOnSuccessSeconds returns the number of seconds after which to
	// requeue a synced resource. Zero means the controller default is used.
	RequeueOnSuccessSeconds() int
}
