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
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go-v2/aws"
	svcsdk "github.com/aws/aws-sdk-go-v2/service/route53resolver"
	svcsdktypes "github.com/aws/aws-sdk-go-v2/service/route53resolver/types"

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

	var resp *svcsdk.GetResolverRuleOutput
	resp, err = rm.sdkapi.GetResolverRule(ctx, &svcsdk.GetResolverRuleInput{
		ResolverRuleId: r.ko.Status.ID,
	})
	rm.metrics.RecordAPICall("READ_ONE", "GetResolverRule", err)
	if err != nil {
		err = ackerr.Classify(err)
		return nil, err
	}
	if resp.ResolverRule == nil {
		return nil, ackerr.NotFound
	}

	ko := r.ko.DeepCopy()
	setSpecFromRule(ko, resp.ResolverRule)
	setStatusFromRule(ko, resp.ResolverRule)
	rm.setStatusDefaults(ko)

	var assocs []*svcapitypes.ResolverRuleAssociation
	assocs, err = rm.getAttachedVPCs(ctx, *ko.Status.ID)
	if err != nil {
		return nil, err
	}
	ko.Spec.Associations = assocs
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

// sdkCreate creates the supplied resource in the backend AWS service API and
// returns a copy of the resource with resource fields (in both Spec and
// Status) filled in with values from the CREATE API operation's Output shape.
// The VPC associations of the desired resource are made once the rule
// exists.
func (rm *resourceManager) sdkCreate(
	ctx context.Context,
	desired *resource,
) (created *resource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("rm.sdkCreate")
	defer func() {
		exit(err)
	}()
	var input *svcsdk.CreateResolverRuleInput
	input, err = rm.newCreateRequestPayload(desired)
	if err != nil {
		return nil, err
	}

	var resp *svcsdk.CreateResolverRuleOutput
	resp, err = rm.sdkapi.CreateResolverRule(ctx, input)
	rm.metrics.RecordAPICall("CREATE", "CreateResolverRule", err)
	if err != nil {
		err = ackerr.Classify(err)
		return nil, err
	}

	ko := desired.ko.DeepCopy()
	if resp.ResolverRule != nil {
		setStatusFromRule(ko, resp.ResolverRule)
	}
	rm.setStatusDefaults(ko)

	if ko.Status.ID != nil && len(ko.Spec.Associations) > 0 {
		if err = rm.syncAssociations(ctx, *ko.Status.ID, ko.Spec.Associations, nil); err != nil {
			// The rule exists; hand it back so that its ID is recorded.
			return &resource{ko}, err
		}
	}
	return &resource{ko}, nil
}

// newCreateRequestPayload returns an SDK-specific struct for the HTTP request
// payload of the Create API call for the resource
func (rm *resourceManager) newCreateRequestPayload(
	r *resource,
) (*svcsdk.CreateResolverRuleInput, error) {
	spec := r.ko.Spec
	name := aws.ToString(spec.Name)
	if name == "" {
		name = r.ko.Name
	}
	targets, err := sdkTargetAddresses(spec.TargetIPs)
	if err != nil {
		return nil, err
	}
	return &svcsdk.CreateResolverRuleInput{
		CreatorRequestId:   svcresource.CreatorRequestID(name, rm.clock.Now()),
		DomainName:         spec.DomainName,
		Name:               spec.Name,
		ResolverEndpointId: spec.ResolverEndpointID,
		RuleType:           svcsdktypes.RuleTypeOption(aws.ToString(spec.RuleType)),
		Tags:               svcresource.SDKTags(svcresource.ToACKTags(spec.Tags)),
		TargetIps:          targets,
	}, nil
}

// sdkUpdate patches the supplied resource in the backend AWS service API and
// returns a new resource with updated fields. VPC associations are synced
// first; UpdateResolverRule is only called when the rule configuration
// itself differs.
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

	if delta.DifferentAt("Spec.Associations") {
		err = rm.syncAssociations(ctx, *latest.ko.Status.ID, desired.ko.Spec.Associations, latest.ko.Spec.Associations)
		if err != nil {
			return nil, err
		}
	}
	if !delta.DifferentExcept("Spec.Associations") {
		return &resource{ko}, nil
	}

	var input *svcsdk.UpdateResolverRuleInput
	input, err = rm.newUpdateRequestPayload(desired, latest)
	if err != nil {
		return nil, err
	}

	var resp *svcsdk.UpdateResolverRuleOutput
	resp, err = rm.sdkapi.UpdateResolverRule(ctx, input)
	rm.metrics.RecordAPICall("UPDATE", "UpdateResolverRule", err)
	if err != nil {
		err = ackerr.Classify(err)
		return nil, err
	}
	if resp.ResolverRule != nil {
		setStatusFromRule(ko, resp.ResolverRule)
	}
	rm.setStatusDefaults(ko)
	return &resource{ko}, nil
}

// newUpdateRequestPayload returns an SDK-specific struct for the HTTP request
// payload of the Update API call for the resource
func (rm *resourceManager) newUpdateRequestPayload(
	desired *resource,
	latest *resource,
) (*svcsdk.UpdateResolverRuleInput, error) {
	targets, err := sdkTargetAddresses(desired.ko.Spec.TargetIPs)
	if err != nil {
		return nil, err
	}
	return &svcsdk.UpdateResolverRuleInput{
		ResolverRuleId: latest.ko.Status.ID,
		Config: &svcsdktypes.ResolverRuleConfig{
			Name:               desired.ko.Spec.Name,
			ResolverEndpointId: desired.ko.Spec.ResolverEndpointID,
			TargetIps:          targets,
		},
	}, nil
}

// sdkDelete deletes the supplied resource in the backend AWS service API.
// The rule's VPC associations are removed first since the service refuses
// to delete an associated rule.
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
	if aws.ToString(r.ko.Status.Status) == string(svcapitypes.ResolverRuleStatus_SDK_DELETING) {
		return nil
	}
	if len(r.ko.Spec.Associations) > 0 {
		if err = rm.syncAssociations(ctx, *r.ko.Status.ID, nil, r.ko.Spec.Associations); err != nil {
			return err
		}
	}
	_, err = rm.sdkapi.DeleteResolverRule(ctx, &svcsdk.DeleteResolverRuleInput{
		ResolverRuleId: r.ko.Status.ID,
	})
	rm.metrics.RecordAPICall("DELETE", "DeleteResolverRule", err)
	if err != nil {
		err = ackerr.Classify(err)
		return err
	}
	return nil
}

// sdkTargetAddresses converts the target addresses to the SDK shape, whose
// port is an int32
func sdkTargetAddresses(
	tips []*svcapitypes.TargetAddress,
) ([]svcsdktypes.TargetAddress, error) {
	var res []svcsdktypes.TargetAddress
	for i, tip := range tips {
		if tip == nil {
			continue
		}
		elem := svcsdktypes.TargetAddress{
			Ip:   tip.IP,
			Ipv6: tip.IPv6,
		}
		if tip.Port != nil {
			if *tip.Port > math.MaxInt32 || *tip.Port < math.MinInt32 {
				return nil, ackerr.NewPermanent(fmt.Errorf(
					"%w: targetIPs[%d].port %d does not fit an int32",
					ackerr.Terminal, i, *tip.Port,
				))
			}
			elem.Port = aws.Int32(int32(*tip.Port))
		}
		res = append(res, elem)
	}
	return res, nil
}

// setSpecFromRule copies the desired-state fields reported by the API into
// the Spec
func setSpecFromRule(
	ko *svcapitypes.ResolverRule,
	rule *svcsdktypes.ResolverRule,
) {
	ko.Spec.DomainName = rule.DomainName
	ko.Spec.Name = rule.Name
	ko.Spec.ResolverEndpointID = rule.ResolverEndpointId
	if rule.RuleType != "" {
		ko.Spec.RuleType = aws.String(string(rule.RuleType))
	} else {
		ko.Spec.RuleType = nil
	}
	var targets []*svcapitypes.TargetAddress
	for _, tip := range rule.TargetIps {
		elem := &svcapitypes.TargetAddress{
			IP:   tip.Ip,
			IPv6: tip.Ipv6,
		}
		if tip.Port != nil {
			elem.Port = aws.Int64(int64(*tip.Port))
		}
		targets = append(targets, elem)
	}
	ko.Spec.TargetIPs = targets
}

// setStatusFromRule copies the observed fields reported by the API into the
// Status
func setStatusFromRule(
	ko *svcapitypes.ResolverRule,
	rule *svcsdktypes.ResolverRule,
) {
	if ko.Status.ACKResourceMetadata == nil {
		ko.Status.ACKResourceMetadata = &ackv1alpha1.ResourceMetadata{}
	}
	if rule.Arn != nil {
		arn := ackv1alpha1.AWSResourceName(*rule.Arn)
		ko.Status.ACKResourceMetadata.ARN = &arn
	}
	ko.Status.CreationTime = rule.CreationTime
	ko.Status.CreatorRequestID = rule.CreatorRequestId
	if rule.Id != nil {
		ko.Status.ID = rule.Id
	}
	ko.Status.ModificationTime = rule.ModificationTime
	ko.Status.OwnerID = rule.OwnerId
	if rule.ShareStatus != "" {
		ko.Status.ShareStatus = aws.String(string(rule.ShareStatus))
	} else {
		ko.Status.ShareStatus = nil
	}
	if rule.Status != "" {
		ko.Status.Status = aws.String(string(rule.Status))
	} else {
		ko.Status.Status = nil
	}
	ko.Status.StatusMessage = rule.StatusMessage
}
