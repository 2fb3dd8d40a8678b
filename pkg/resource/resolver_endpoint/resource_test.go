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
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/annotation"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	acktags "github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
)

func TestDescriptor_Management(t *testing.T) {
	rd := &resourceDescriptor{}
	res := rd.ResourceFromRuntimeObject(&svcapitypes.ResolverEndpoint{})

	assert.Equal(t, "ResolverEndpoint", rd.GroupVersionKind().Kind)
	assert.Equal(t, "ResolverEndpoint", res.RuntimeObject().GetObjectKind().GroupVersionKind().Kind)
	assert.False(t, rd.IsManaged(res))

	rd.MarkManaged(res)
	assert.True(t, rd.IsManaged(res))
	assert.Equal(t, []string{FinalizerString}, res.MetaObject().GetFinalizers())

	rd.MarkAdopted(res)
	assert.True(t, annotation.IsAdopted(res.MetaObject()))

	rd.MarkUnmanaged(res)
	assert.False(t, rd.IsManaged(res))
	assert.Empty(t, rd.References(res))
}

func TestDelta(t *testing.T) {
	rd := &resourceDescriptor{}

	t.Run("service assigned addresses match", func(t *testing.T) {
		desired := newEndpoint("")
		observed := newEndpoint("rslvr-in-1")
		observed.ko.Spec.IPAddresses[0].IP = aws.String("10.0.0.10")
		observed.ko.Spec.ResolverEndpointType = aws.String("IPV4")
		assert.True(t, rd.Delta(desired, observed).Empty())
	})
	t.Run("explicit address differs", func(t *testing.T) {
		desired := newEndpoint("")
		desired.ko.Spec.IPAddresses[0].IP = aws.String("10.0.0.11")
		observed := newEndpoint("rslvr-in-1")
		observed.ko.Spec.IPAddresses[0].IP = aws.String("10.0.0.10")
		assert.Equal(t, []string{"Spec.IPAddresses"}, rd.Delta(desired, observed).Paths())
	})
	t.Run("security group order ignored", func(t *testing.T) {
		desired := newEndpoint("")
		desired.ko.Spec.SecurityGroupIDs = aws.StringSlice([]string{"sg-1", "sg-2"})
		observed := newEndpoint("rslvr-in-1")
		observed.ko.Spec.SecurityGroupIDs = aws.StringSlice([]string{"sg-2", "sg-1"})
		assert.True(t, rd.Delta(desired, observed).Empty())
	})
	t.Run("immutable fields", func(t *testing.T) {
		desired := newEndpoint("")
		desired.ko.Spec.Direction = aws.String("OUTBOUND")
		observed := newEndpoint("rslvr-in-1")
		delta := rd.Delta(desired, observed)
		assert.Equal(t, []string{"Spec.Direction"}, delta.DifferentAtAny(rd.ImmutableFields()...))
	})
	t.Run("tags are not part of the delta", func(t *testing.T) {
		desired := newEndpoint("")
		desired.SetTags(acktags.Tags{"team": "dns"})
		assert.True(t, rd.Delta(desired, newEndpoint("rslvr-in-1")).Empty())
	})
}

func TestResource_SetIdentifiers(t *testing.T) {
	r := newEndpoint("")
	arn := ackv1alpha1.AWSResourceName("arn:aws:route53resolver:us-west-2:123456789012:resolver-endpoint/rslvr-in-1")

	assert.ErrorIs(t, r.SetIdentifiers(&ackv1alpha1.AWSIdentifiers{}), ackerr.MissingNameIdentifier)
	require.NoError(t, r.SetIdentifiers(&ackv1alpha1.AWSIdentifiers{NameOrID: "rslvr-in-1", ARN: &arn}))
	assert.Equal(t, "rslvr-in-1", r.Identifiers().ID())
	assert.Equal(t, string(arn), aws.ToString(r.Identifiers().ARN()))

	require.NoError(t, r.SetIdentifiers(&ackv1alpha1.AWSIdentifiers{NameOrID: "rslvr-in-1"}))
	assert.ErrorIs(t, r.SetIdentifiers(&ackv1alpha1.AWSIdentifiers{NameOrID: "rslvr-in-2"}), ackerr.IdentifierImmutable)
	assert.Equal(t, "rslvr-in-1", r.Identifiers().ID())
}

func TestResource_SetStatus(t *testing.T) {
	r := newEndpoint("")
	r.Metadata().State = ackv1alpha1.StateCreating
	r.ReplaceConditions([]*ackv1alpha1.Condition{{Type: ackv1alpha1.ConditionTypeResourceSynced}})

	observed := newEndpoint("rslvr-in-1")
	observed.ko.Status.Status = aws.String("OPERATIONAL")
	region := ackv1alpha1.AWSRegion("us-west-2")
	observed.Metadata().Region = &region

	r.SetStatus(observed)
	assert.Equal(t, "rslvr-in-1", r.Identifiers().ID())
	assert.Equal(t, "OPERATIONAL", aws.ToString(r.ko.Status.Status))
	assert.Equal(t, &region, r.Identifiers().Region())
	assert.Equal(t, ackv1alpha1.StateCreating, r.Metadata().State)
	assert.Len(t, r.Conditions(), 1)
}

func TestResource_Validate(t *testing.T) {
	r := newEndpoint("")
	require.NoError(t, r.Validate())

	r.ko.Spec.IPAddresses = r.ko.Spec.IPAddresses[:1]
	err := r.Validate()
	assert.ErrorIs(t, err, svcapitypes.ErrInvalidSpec)
	assert.True(t, ackerr.IsPermanent(err))
}
