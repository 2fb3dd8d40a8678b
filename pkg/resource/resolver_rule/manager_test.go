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
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	svcsdk "github.com/aws/aws-sdk-go-v2/service/route53resolver"
	svcsdktypes "github.com/aws/aws-sdk-go-v2/service/route53resolver/types"
	"github.com/aws/smithy-go"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	clocktesting "k8s.io/utils/clock/testing"

	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
)

type fakeAPI struct {
	rule         *svcsdktypes.ResolverRule
	associations []svcsdktypes.ResolverRuleAssociation
	getErr       error
	assocErr     error

	calls        []string
	created      []*svcsdk.CreateResolverRuleInput
	updated      []*svcsdk.UpdateResolverRuleInput
	listed       []*svcsdk.ListResolverRuleAssociationsInput
	associated   []string
	disassociate []string
}

func (f *fakeAPI) GetResolverRule(_ context.Context, in *svcsdk.GetResolverRuleInput, _ ...func(*svcsdk.Options)) (*svcsdk.GetResolverRuleOutput, error) {
	f.calls = append(f.calls, "GetResolverRule")
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &svcsdk.GetResolverRuleOutput{ResolverRule: f.rule}, nil
}

func (f *fakeAPI) CreateResolverRule(_ context.Context, in *svcsdk.CreateResolverRuleInput, _ ...func(*svcsdk.Options)) (*svcsdk.CreateResolverRuleOutput, error) {
	f.calls = append(f.calls, "CreateResolverRule")
	f.created = append(f.created, in)
	return &svcsdk.CreateResolverRuleOutput{ResolverRule: f.rule}, nil
}

func (f *fakeAPI) UpdateResolverRule(_ context.Context, in *svcsdk.UpdateResolverRuleInput, _ ...func(*svcsdk.Options)) (*svcsdk.UpdateResolverRuleOutput, error) {
	f.calls = append(f.calls, "UpdateResolverRule")
	f.updated = append(f.updated, in)
	return &svcsdk.UpdateResolverRuleOutput{ResolverRule: f.rule}, nil
}

func (f *fakeAPI) DeleteResolverRule(_ context.Context, in *svcsdk.DeleteResolverRuleInput, _ ...func(*svcsdk.Options)) (*svcsdk.DeleteResolverRuleOutput, error) {
	f.calls = append(f.calls, "DeleteResolverRule")
	return &svcsdk.DeleteResolverRuleOutput{}, nil
}

func (f *fakeAPI) ListResolverRuleAssociations(_ context.Context, in *svcsdk.ListResolverRuleAssociationsInput, _ ...func(*svcsdk.Options)) (*svcsdk.ListResolverRuleAssociationsOutput, error) {
	f.calls = append(f.calls, "ListResolverRuleAssociations")
	f.listed = append(f.listed, in)
	return &svcsdk.ListResolverRuleAssociationsOutput{ResolverRuleAssociations: f.associations}, nil
}

func (f *fakeAPI) AssociateResolverRule(_ context.Context, in *svcsdk.AssociateResolverRuleInput, _ ...func(*svcsdk.Options)) (*svcsdk.AssociateResolverRuleOutput, error) {
	f.calls = append(f.calls, "AssociateResolverRule")
	if f.assocErr != nil {
		return nil, f.assocErr
	}
	f.associated = append(f.associated, aws.ToString(in.VPCId))
	return &svcsdk.AssociateResolverRuleOutput{}, nil
}

func (f *fakeAPI) DisassociateResolverRule(_ context.Context, in *svcsdk.DisassociateResolverRuleInput, _ ...func(*svcsdk.Options)) (*svcsdk.DisassociateResolverRuleOutput, error) {
	f.calls = append(f.calls, "DisassociateResolverRule")
	f.disassociate = append(f.disassociate, aws.ToString(in.VPCId))
	return &svcsdk.DisassociateResolverRuleOutput{}, nil
}

func (f *fakeAPI) ListTagsForResource(_ context.Context, in *svcsdk.ListTagsForResourceInput, _ ...func(*svcsdk.Options)) (*svcsdk.ListTagsForResourceOutput, error) {
	return &svcsdk.ListTagsForResourceOutput{}, nil
}

func (f *fakeAPI) TagResource(_ context.Context, in *svcsdk.TagResourceInput, _ ...func(*svcsdk.Options)) (*svcsdk.TagResourceOutput, error) {
	return &svcsdk.TagResourceOutput{}, nil
}

func (f *fakeAPI) UntagResource(_ context.Context, in *svcsdk.UntagResourceInput, _ ...func(*svcsdk.Options)) (*svcsdk.UntagResourceOutput, error) {
	return &svcsdk.UntagResourceOutput{}, nil
}

func newTestManager(api *fakeAPI) *resourceManager {
	return &resourceManager{
		log:          logr.Discard(),
		awsAccountID: "123456789012",
		awsRegion:    "us-west-2",
		sdkapi:       api,
		clock:        clocktesting.NewFakePassiveClock(time.UnixMilli(1700000000000)),
	}
}

func newRule(id string, vpcs ...string) *resource {
	ko := &svcapitypes.ResolverRule{
		ObjectMeta: metav1.ObjectMeta{Name: "corp", Namespace: "default"},
		Spec: svcapitypes.ResolverRuleSpec{
			DomainName:         aws.String("corp.example.com"),
			Name:               aws.String("corp"),
			ResolverEndpointID: aws.String("rslvr-out-1"),
			RuleType:           aws.String("FORWARD"),
			TargetIPs: []*svcapitypes.TargetAddress{
				{IP: aws.String("10.1.0.2")},
			},
		},
	}
	for _, vpc := range vpcs {
		ko.Spec.Associations = append(ko.Spec.Associations, &svcapitypes.ResolverRuleAssociation{VPCID: aws.String(vpc)})
	}
	if id != "" {
		ko.Status.ID = aws.String(id)
	}
	return &resource{ko: ko}
}

func observedRule() *svcsdktypes.ResolverRule {
	return &svcsdktypes.ResolverRule{
		Arn:                aws.String("arn:aws:route53resolver:us-west-2:123456789012:resolver-rule/rslvr-rr-1"),
		Id:                 aws.String("rslvr-rr-1"),
		DomainName:         aws.String("corp.example.com."),
		Name:               aws.String("corp"),
		ResolverEndpointId: aws.String("rslvr-out-1"),
		RuleType:           svcsdktypes.RuleTypeOptionForward,
		OwnerId:            aws.String("123456789012"),
		ShareStatus:        svcsdktypes.ShareStatusNotShared,
		Status:             svcsdktypes.ResolverRuleStatusComplete,
		TargetIps: []svcsdktypes.TargetAddress{
			{Ip: aws.String("10.1.0.2"), Port: aws.Int32(53)},
		},
	}
}

func TestReadOne(t *testing.T) {
	api := &fakeAPI{
		rule: observedRule(),
		associations: []svcsdktypes.ResolverRuleAssociation{
			{VPCId: aws.String("vpc-1"), Status: svcsdktypes.ResolverRuleAssociationStatusComplete},
			{VPCId: aws.String("vpc-2"), Status: svcsdktypes.ResolverRuleAssociationStatusDeleting},
		},
	}
	rm := newTestManager(api)

	res, err := rm.ReadOne(context.Background(), newRule("rslvr-rr-1"))
	require.NoError(t, err)
	ko := res.(*resource).ko

	require.Len(t, ko.Spec.Associations, 1)
	assert.Equal(t, "vpc-1", aws.ToString(ko.Spec.Associations[0].VPCID))
	require.Len(t, api.listed, 1)
	require.Len(t, api.listed[0].Filters, 1)
	assert.Equal(t, "ResolverRuleId", aws.ToString(api.listed[0].Filters[0].Name))
	assert.Equal(t, []string{"rslvr-rr-1"}, api.listed[0].Filters[0].Values)

	assert.Equal(t, "NOT_SHARED", aws.ToString(ko.Status.ShareStatus))
	assert.Equal(t, int64(53), aws.ToInt64(ko.Spec.TargetIPs[0].Port))

	synced, err := rm.IsSynced(context.Background(), res)
	require.NoError(t, err)
	assert.True(t, synced)

	// The observed rule matches its desired state once the trailing dot and
	// the default port are accounted for.
	desired := newRule("rslvr-rr-1", "vpc-1")
	assert.True(t, newResourceDelta(desired, res.(*resource)).Empty())
}

func TestReadOne_Errors(t *testing.T) {
	rm := newTestManager(&fakeAPI{})
	_, err := rm.ReadOne(context.Background(), newRule(""))
	assert.ErrorIs(t, err, ackerr.NotFound)

	rm = newTestManager(&fakeAPI{getErr: &smithy.GenericAPIError{Code: "AccessDeniedException"}})
	_, err = rm.ReadOne(context.Background(), newRule("rslvr-rr-1"))
	assert.Equal(t, ackerr.KindPermanent, ackerr.KindOf(err))
}

func TestCreate_Associates(t *testing.T) {
	api := &fakeAPI{rule: &svcsdktypes.ResolverRule{
		Id:     aws.String("rslvr-rr-1"),
		Status: svcsdktypes.ResolverRuleStatusUpdating,
	}}
	rm := newTestManager(api)
	desired := newRule("", "vpc-2", "vpc-1")
	desired.ko.Spec.TargetIPs[0].Port = aws.Int64(5353)

	res, err := rm.Create(context.Background(), desired)
	require.NoError(t, err)
	assert.Equal(t, "rslvr-rr-1", res.Identifiers().ID())

	require.Len(t, api.created, 1)
	in := api.created[0]
	assert.Equal(t, "corp-1700000000000", aws.ToString(in.CreatorRequestId))
	assert.Equal(t, svcsdktypes.RuleTypeOptionForward, in.RuleType)
	require.Len(t, in.TargetIps, 1)
	assert.Equal(t, int32(5353), aws.ToInt32(in.TargetIps[0].Port))
	assert.Equal(t, []string{"vpc-1", "vpc-2"}, api.associated)
}

func TestCreate_AssociationFailureKeepsID(t *testing.T) {
	api := &fakeAPI{
		rule:     &svcsdktypes.ResolverRule{Id: aws.String("rslvr-rr-1")},
		assocErr: &smithy.GenericAPIError{Code: "ThrottlingException"},
	}
	rm := newTestManager(api)

	res, err := rm.Create(context.Background(), newRule("", "vpc-1"))
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "rslvr-rr-1", res.Identifiers().ID())
	assert.Equal(t, ackerr.KindTransient, ackerr.KindOf(err))
}

func TestUpdate(t *testing.T) {
	t.Run("associations only", func(t *testing.T) {
		api := &fakeAPI{rule: observedRule()}
		rm := newTestManager(api)
		latest := newRule("rslvr-rr-1", "vpc-1", "vpc-2")
		desired := newRule("rslvr-rr-1", "vpc-2", "vpc-3")

		delta := newResourceDelta(desired, latest)
		require.Equal(t, []string{"Spec.Associations"}, delta.Paths())
		_, err := rm.Update(context.Background(), desired, latest, delta)
		require.NoError(t, err)

		assert.Equal(t, []string{"vpc-3"}, api.associated)
		assert.Equal(t, []string{"vpc-1"}, api.disassociate)
		assert.Empty(t, api.updated)
	})
	t.Run("target addresses", func(t *testing.T) {
		api := &fakeAPI{rule: observedRule()}
		rm := newTestManager(api)
		latest := newRule("rslvr-rr-1")
		desired := newRule("rslvr-rr-1")
		desired.ko.Spec.TargetIPs = append(desired.ko.Spec.TargetIPs, &svcapitypes.TargetAddress{IP: aws.String("10.1.0.3")})

		delta := newResourceDelta(desired, latest)
		_, err := rm.Update(context.Background(), desired, latest, delta)
		require.NoError(t, err)

		require.Len(t, api.updated, 1)
		cfg := api.updated[0].Config
		assert.Equal(t, "rslvr-rr-1", aws.ToString(api.updated[0].ResolverRuleId))
		assert.Equal(t, "rslvr-out-1", aws.ToString(cfg.ResolverEndpointId))
		assert.Len(t, cfg.TargetIps, 2)
		assert.Empty(t, api.associated)
	})
}

func TestDelete_DisassociatesFirst(t *testing.T) {
	api := &fakeAPI{}
	rm := newTestManager(api)

	require.NoError(t, rm.Delete(context.Background(), newRule("rslvr-rr-1", "vpc-1")))
	assert.Equal(t, []string{"DisassociateResolverRule", "DeleteResolverRule"}, api.calls)
}

func TestDescriptor(t *testing.T) {
	rd := &resourceDescriptor{}
	res := rd.ResourceFromRuntimeObject(newRule("").ko)

	assert.Equal(t, "ResolverRule", rd.GroupVersionKind().Kind)
	refs := rd.References(res)
	require.Len(t, refs, 1)
	assert.Equal(t, "ResolverEndpoint", refs[0].Kind)
	assert.Equal(t, "rslvr-out-1", refs[0].ID)

	desired := newRule("")
	desired.ko.Spec.DomainName = aws.String("other.example.com")
	delta := rd.Delta(desired, newRule("rslvr-rr-1"))
	assert.Equal(t, []string{"Spec.DomainName"}, delta.DifferentAtAny(rd.ImmutableFields()...))

	rd.MarkManaged(res)
	assert.True(t, rd.IsManaged(res))
}
