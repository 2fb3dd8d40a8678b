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
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	svcsdk "github.com/aws/aws-sdk-go-v2/service/route53resolver"
	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackcompare "github.com/aws-controllers-k8s/route53resolver-controller/pkg/compare"
	ackcfg "github.com/aws-controllers-k8s/route53resolver-controller/pkg/config"
	ackmetrics "github.com/aws-controllers-k8s/route53resolver-controller/pkg/metrics"
	svcresource "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource"
	acktags "github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// +kubebuilder:rbac:groups=route53resolver.services.k8s.aws,resources=resolverrules,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=route53resolver.services.k8s.aws,resources=resolverrules/status,verbs=get;update;patch

// sdkAPI is the part of the Route 53 Resolver client the rule manager calls
type sdkAPI interface {
	svcresource.TaggingAPI
	GetResolverRule(context.Context, *svcsdk.GetResolverRuleInput, ...func(*svcsdk.Options)) (*svcsdk.GetResolverRuleOutput, error)
	CreateResolverRule(context.Context, *svcsdk.CreateResolverRuleInput, ...func(*svcsdk.Options)) (*svcsdk.CreateResolverRuleOutput, error)
	UpdateResolverRule(context.Context, *svcsdk.UpdateResolverRuleInput, ...func(*svcsdk.Options)) (*svcsdk.UpdateResolverRuleOutput, error)
	DeleteResolverRule(context.Context, *svcsdk.DeleteResolverRuleInput, ...func(*svcsdk.Options)) (*svcsdk.DeleteResolverRuleOutput, error)
	ListResolverRuleAssociations(context.Context, *svcsdk.ListResolverRuleAssociationsInput, ...func(*svcsdk.Options)) (*svcsdk.ListResolverRuleAssociationsOutput, error)
	AssociateResolverRule(context.Context, *svcsdk.AssociateResolverRuleInput, ...func(*svcsdk.Options)) (*svcsdk.AssociateResolverRuleOutput, error)
	DisassociateResolverRule(context.Context, *svcsdk.DisassociateResolverRuleInput, ...func(*svcsdk.Options)) (*svcsdk.DisassociateResolverRuleOutput, error)
}

// resourceManager is responsible for providing a consistent way to perform
// CRUD operations in a backend AWS service API for ResolverRule custom
// resources.
type resourceManager struct {
	// cfg is a copy of the ackcfg.Config object passed on start of the service
	// controller
	cfg ackcfg.Config
	// clientcfg is a copy of the client configuration passed on start of the
	// service controller
	clientcfg aws.Config
	// log refers to the logr.Logger object handling logging for the service
	// controller
	log logr.Logger
	// metrics contains a collection of Prometheus metric objects that the
	// service controller and its reconcilers track
	metrics *ackmetrics.Metrics
	// awsAccountID is the AWS account identifier that contains the resources
	// managed by this resource manager
	awsAccountID ackv1alpha1.AWSAccountID
	// The AWS Region that this resource manager targets
	awsRegion ackv1alpha1.AWSRegion
	// sdkapi is the Route 53 Resolver client
	sdkapi sdkAPI
	// clock stamps creator request IDs
	clock clock.PassiveClock
}

// concreteResource returns a pointer to a resource from the supplied
// generic AWSResource interface
func (rm *resourceManager) concreteResource(
	res acktypes.AWSResource,
) *resource {
	// cast the generic interface into a pointer type specific to the concrete
	// implementing resource type managed by this resource manager
	return res.(*resource)
}

// ReadOne returns the currently-observed state of the supplied AWSResource in
// the backend AWS service API.
func (rm *resourceManager) ReadOne(
	ctx context.Context,
	res acktypes.AWSResource,
) (acktypes.AWSResource, error) {
	r := rm.concreteResource(res)
	if r.ko == nil {
		// Should never happen... if it does, it's buggy code.
		panic("resource manager's ReadOne() method received resource with nil CR object")
	}
	observed, err := rm.sdkFind(ctx, r)
	if err != nil {
		return nil, err
	}
	return observed, nil
}

// Create attempts to create the supplied AWSResource in the backend AWS
// service API, returning an AWSResource representing the newly-created
// resource. A rule created without all of its VPC associations is returned
// together with the association error.
func (rm *resourceManager) Create(
	ctx context.Context,
	res acktypes.AWSResource,
) (acktypes.AWSResource, error) {
	r := rm.concreteResource(res)
	if r.ko == nil {
		// Should never happen... if it does, it's buggy code.
		panic("resource manager's Create() method received resource with nil CR object")
	}
	created, err := rm.sdkCreate(ctx, r)
	if err != nil {
		if created != nil {
			return created, err
		}
		return nil, err
	}
	return created, nil
}

// Update attempts to mutate the supplied desired AWSResource in the backend AWS
// service API, returning an AWSResource representing the newly-mutated
// resource.
func (rm *resourceManager) Update(
	ctx context.Context,
	resDesired acktypes.AWSResource,
	resLatest acktypes.AWSResource,
	delta *ackcompare.Delta,
) (acktypes.AWSResource, error) {
	desired := rm.concreteResource(resDesired)
	latest := rm.concreteResource(resLatest)
	if desired.ko == nil || latest.ko == nil {
		// Should never happen... if it does, it's buggy code.
		panic("resource manager's Update() method received resource with nil CR object")
	}
	updated, err := rm.sdkUpdate(ctx, desired, latest, delta)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete attempts to destroy the supplied AWSResource in the backend AWS
// service API
func (rm *resourceManager) Delete(
	ctx context.Context,
	res acktypes.AWSResource,
) error {
	r := rm.concreteResource(res)
	if r.ko == nil {
		// Should never happen... if it does, it's buggy code.
		panic("resource manager's Delete() method received resource with nil CR object")
	}
	return rm.sdkDelete(ctx, r)
}

// ListTags returns the tags set on the rule with the supplied ARN
func (rm *resourceManager) ListTags(
	ctx context.Context,
	arn string,
) (acktags.Tags, error) {
	return svcresource.ListTags(ctx, rm.sdkapi, rm.metrics, arn)
}

// SetTags adds and removes tags on the rule with the supplied ARN
func (rm *resourceManager) SetTags(
	ctx context.Context,
	arn string,
	added acktags.Tags,
	removed []string,
) error {
	return svcresource.SetTags(ctx, rm.sdkapi, rm.metrics, arn, added, removed)
}

// IsSynced returns true once the rule is COMPLETE
func (rm *resourceManager) IsSynced(
	ctx context.Context,
	res acktypes.AWSResource,
) (bool, error) {
	r := rm.concreteResource(res)
	if r.ko == nil || r.ko.Status.Status == nil {
		return false, nil
	}
	status := svcapitypes.ResolverRuleStatus_SDK(*r.ko.Status.Status)
	return status == svcapitypes.ResolverRuleStatus_SDK_COMPLETE, nil
}

// setStatusDefaults fills the account and region the rule lives in
func (rm *resourceManager) setStatusDefaults(
	ko *svcapitypes.ResolverRule,
) {
	if ko.Status.ACKResourceMetadata == nil {
		ko.Status.ACKResourceMetadata = &ackv1alpha1.ResourceMetadata{}
	}
	if ko.Status.ACKResourceMetadata.Region == nil {
		ko.Status.ACKResourceMetadata.Region = &rm.awsRegion
	}
	if ko.Status.ACKResourceMetadata.OwnerAccountID == nil {
		ko.Status.ACKResourceMetadata.OwnerAccountID = &rm.awsAccountID
	}
	if ko.Status.Conditions == nil {
		ko.Status.Conditions = []*ackv1alpha1.Condition{}
	}
}

// newResourceManager returns a new struct implementing
// acktypes.AWSResourceManager
func newResourceManager(
	cfg ackcfg.Config,
	clientcfg aws.Config,
	log logr.Logger,
	metrics *ackmetrics.Metrics,
	id ackv1alpha1.AWSAccountID,
	region ackv1alpha1.AWSRegion,
) (*resourceManager, error) {
	return &resourceManager{
		cfg:          cfg,
		clientcfg:    clientcfg,
		log:          log,
		metrics:      metrics,
		awsAccountID: id,
		awsRegion:    region,
		sdkapi: svcsdk.NewFromConfig(clientcfg, func(o *svcsdk.Options) {
			o.Region = string(region)
			if cfg.EndpointURL != "" {
				o.BaseEndpoint = aws.String(cfg.EndpointURL)
			}
		}),
		clock: clock.RealClock{},
	}, nil
}
