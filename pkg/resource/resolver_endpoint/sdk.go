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

package resolver_endpoint

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	svcsdk "github.com/aws/aws-sdk-go-v2/service/route53resolver"
	svcsdktypes "github.com/aws/aws-sdk-go-v2/service/route53resolver/types"
	"github.com/samber/lo"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackcompare "github.com/aws-controllers-k8s/route53resolver-controller/pkg/compare"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	svcresource "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource"
	ackrtlog "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime/log"
)

// sdkFind returns SDK-specific information about a supplied resource
func (rm *resourceManager) sdkFind(
	ctx context.Context,
	r *resource,
) (latest *resource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("rm.sdkFind")
	defer func() {
		exit(err)
	}()
	// If any required fields in the input shape are missing, AWS resource is
	// not created yet. Return NotFound here to indicate to callers that the
	// resource isn't yet created.
	if rm.requiredFieldsMissingFromReadOneInput(r) {
		return nil, ackerr.NotFound
	}

	input := rm.newDescribeRequestPayload(r)

	var resp *svcsdk.GetResolverEndpointOutput
	resp, err = rm.sdkapi.GetResolverEndpoint(ctx, input)
	rm.metrics.RecordAPICall("READ_ONE", "GetResolverEndpoint", err)
	if err != nil {
		err = ackerr.Classify(err)
		return nil, err
	}
	if resp.ResolverEndpoint == nil {
		return nil, ackerr.NotFound
	}

	// Merge in the information we read from the API call above to the copy of
	// the original Kubernetes object we passed to the function
	ko := r.ko.DeepCopy()
	setSpecFromEndpoint(ko, resp.ResolverEndpoint)
	setStatusFromEndpoint(ko, resp.ResolverEndpoint)
	rm.setStatusDefaults(ko)

	if err = rm.listAttachedIPAddresses(ctx, ko); err != nil {
		return nil, err
	}
	return &resource{ko}, nil
}

// requiredFieldsMissingFromReadOneInput returns true if there are any fields
// for the ReadOne Input shape that are required but not present in the
// resource's Spec or Status
func (rm *resourceManager) requiredFieldsMissingFromReadOneInput(
	r *resource,
) bool {
	return r.ko.Status.ID == nil || *r.ko.Status.ID == ""
}

// newDescribeRequestPayload returns SDK-specific struct for the HTTP request
// payload of the Describe API call for the resource
func (rm *resourceManager) newDescribeRequestPayload(
	r *resource,
) *svcsdk.GetResolverEndpointInput {
	return &svcsdk.GetResolverEndpointInput{
		ResolverEndpointId: r.ko.Status.ID,
	}
}

// sdkCreate creates the supplied resource in the backend AWS service API and
// returns a copy of the resource with resource fields (in both Spec and
// Status) filled in with values from the CREATE API operation's Output shape.
func (rm *resourceManager) sdkCreate(
	ctx context.Context,
	desired *resource,
) (created *resource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("rm.sdkCreate")
	defer func() {
		exit(err)
	}()
	input := rm.newCreateRequestPayload(desired)

	var resp *svcsdk.CreateResolverEndpointOutput
	resp, err = rm.sdkapi.CreateResolverEndpoint(ctx, input)
	rm.metrics.RecordAPICall("CREATE", "CreateResolverEndpoint", err)
	if err != nil {
		err = ackerr.Classify(err)
		return nil, err
	}

	ko := desired.ko.DeepCopy()
	if resp.ResolverEndpoint != nil {
		setStatusFromEndpoint(ko, resp.ResolverEndpoint)
	}
	rm.setStatusDefaults(ko)
	return &resource{ko}, nil
}

// newCreateRequestPayload returns an SDK-specific struct for the HTTP request
// payload of the Create API call for the resource
func (rm *resourceManager) newCreateRequestPayload(
	r *resource,
) *svcsdk.CreateResolverEndpointInput {
	spec := r.ko.Spec
	name := aws.ToString(spec.Name)
	if name == "" {
		name = r.ko.Name
	}
	input := &svcsdk.CreateResolverEndpointInput{
		CreatorRequestId: svcresource.CreatorRequestID(name, rm.clock.Now()),
		Direction:        svcsdktypes.ResolverEndpointDirection(aws.ToString(spec.Direction)),
		Name:             spec.Name,
		SecurityGroupIds: aws.ToStringSlice(spec.SecurityGroupIDs),
		Tags:             svcresource.SDKTags(svcresource.ToACKTags(spec.Tags)),
	}
	if spec.ResolverEndpointType != nil {
		input.ResolverEndpointType = svcsdktypes.ResolverEndpointType(*spec.ResolverEndpointType)
	}
	input.IpAddresses = lo.FilterMap(spec.IPAddresses, func(ipa *svcapitypes.IPAddressRequest, _ int) (svcsdktypes.IpAddressRequest, bool) {
		if ipa == nil {
			return svcsdktypes.IpAddressRequest{}, false
		}
		return svcsdktypes.IpAddressRequest{
			Ip:       ipa.IP,
			Ipv6:     ipa.IPv6,
			SubnetId: ipa.SubnetID,
		}, true
	})
	return input
}

// sdkUpdate patches the supplied resource in the backend AWS service API and
// returns a new resource with updated fields.
func (rm *resourceManager) sdkUpdate(
	ctx context.Context,
	desired *resource,
	latest *resource,
	delta *ackcompare.Delta,
) (updated *resource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("rm.sdkUpdate")
	defer func() {
		exit(err)
	}()

	ko := desired.ko.DeepCopy()
	ko.Status = *latest.ko.Status.DeepCopy()

	if delta.DifferentAt("Spec.IPAddresses") {
		if err = rm.syncIPAddresses(ctx, desired, latest, ko); err != nil {
			return nil, err
		}
	}
	if !delta.DifferentExcept("Spec.IPAddresses") {
		return &resource{ko}, nil
	}

	input := rm.newUpdateRequestPayload(desired, latest)

	var resp *svcsdk.UpdateResolverEndpointOutput
	resp, err = rm.sdkapi.UpdateResolverEndpoint(ctx, input)
	rm.metrics.RecordAPICall("UPDATE", "UpdateResolverEndpoint", err)
	if err != nil {
		err = ackerr.Classify(err)
		return nil, err
	}
	if resp.ResolverEndpoint != nil {
		setStatusFromEndpoint(ko, resp.ResolverEndpoint)
	}
	rm.setStatusDefaults(ko)
	return &resource{ko}, nil
}

// newUpdateRequestPayload returns an SDK-specific struct for the HTTP request
// payload of the Update API call for the resource
func (rm *resourceManager) newUpdateRequestPayload(
	desired *resource,
	latest *resource,
) *svcsdk.UpdateResolverEndpointInput {
	input := &svcsdk.UpdateResolverEndpointInput{
		ResolverEndpointId: latest.ko.Status.ID,
		Name:               desired.ko.Spec.Name,
	}
	if desired.ko.Spec.ResolverEndpointType != nil {
		input.ResolverEndpointType = svcsdktypes.ResolverEndpointType(*desired.ko.Spec.ResolverEndpointType)
	}
	return input
}

// sdkDelete deletes the supplied resource in the backend AWS service API
func (rm *resourceManager) sdkDelete(
	ctx context.Context,
	r *resource,
) (err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("rm.sdkDelete")
	defer func() {
		exit(err)
	}()
	if rm.requiredFieldsMissingFromReadOneInput(r) {
		return ackerr.NotFound
	}
	// A delete is already in flight.
	if aws.ToString(r.ko.Status.Status) == string(svcapitypes.ResolverEndpointStatus_SDK_DELETING) {
		return nil
	}
	input := &svcsdk.DeleteResolverEndpointInput{
		ResolverEndpointId: r.ko.Status.ID,
	}
	_, err = rm.sdkapi.DeleteResolverEndpoint(ctx, input)
	rm.metrics.RecordAPICall("DELETE", "DeleteResolverEndpoint", err)
	if err != nil {
		err = ackerr.Classify(err)
		return err
	}
	return nil
}

// setSpecFromEndpoint copies the desired-state fields reported by the API
// into the Spec
func setSpecFromEndpoint(
	ko *svcapitypes.ResolverEndpoint,
	ep *svcsdktypes.ResolverEndpoint,
) {
	if ep.Direction != "" {
		ko.Spec.Direction = aws.String(string(ep.Direction))
	} else {
		ko.Spec.Direction = nil
	}
	ko.Spec.Name = ep.Name
	if ep.ResolverEndpointType != "" {
		ko.Spec.ResolverEndpointType = aws.String(string(ep.ResolverEndpointType))
	} else {
		ko.Spec.ResolverEndpointType = nil
	}
	if ep.SecurityGroupIds != nil {
		ko.Spec.SecurityGroupIDs = aws.StringSlice(ep.SecurityGroupIds)
	} else {
		ko.Spec.SecurityGroupIDs = nil
	}
}

// setStatusFromEndpoint copies the observed fields reported by the API into
// the Status
func setStatusFromEndpoint(
	ko *svcapitypes.ResolverEndpoint,
	ep *svcsdktypes.ResolverEndpoint,
) {
	if ko.Status.ACKResourceMetadata == nil {
		ko.Status.ACKResourceMetadata = &ackv1alpha1.ResourceMetadata{}
	}
	if ep.Arn != nil {
		arn := ackv1alpha1.AWSResourceName(*ep.Arn)
		ko.Status.ACKResourceMetadata.ARN = &arn
	}
	ko.Status.CreationTime = ep.CreationTime
	ko.Status.CreatorRequestID = ep.CreatorRequestId
	ko.Status.HostVPCID = ep.HostVPCId
	if ep.Id != nil {
		ko.Status.ID = ep.Id
	}
	if ep.IpAddressCount != nil {
		count := int64(*ep.IpAddressCount)
		ko.Status.IPAddressCount = &count
	}
	ko.Status.ModificationTime = ep.ModificationTime
	if ep.Status != "" {
		ko.Status.Status = aws.String(string(ep.Status))
	} else {
		ko.Status.Status = nil
	}
	ko.Status.StatusMessage = ep.StatusMessage
}
