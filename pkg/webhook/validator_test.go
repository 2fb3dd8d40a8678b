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

package webhook_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"

	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/testutil"
	ackwebhook "github.com/aws-controllers-k8s/route53resolver-controller/pkg/webhook"
)

func TestRegistry(t *testing.T) {
	webhooks := ackwebhook.GetWebhooks()
	uids := make([]string, 0, len(webhooks))
	for _, wh := range webhooks {
		uids = append(uids, wh.UID())
	}
	assert.Equal(t, []string{
		"validating/ResolverEndpoint/route53resolver.services.k8s.aws/v1alpha1",
		"validating/ResolverRule/route53resolver.services.k8s.aws/v1alpha1",
	}, uids)

	err := ackwebhook.RegisterWebhook(ackwebhook.NewValidating(testutil.DescriptorFor(testutil.RuleKind)))
	assert.ErrorContains(t, err, "already registered")
}

func validatorFor(t *testing.T, kind string) admission.CustomValidator {
	t.Helper()
	return ackwebhook.ValidatorFor(testutil.DescriptorFor(kind))
}

func TestValidateCreate(t *testing.T) {
	v := validatorFor(t, testutil.EndpointKind)
	ctx := context.Background()

	_, err := v.ValidateCreate(ctx, testutil.NewEndpoint("dns", "inbound"))
	assert.NoError(t, err)

	single := testutil.NewEndpoint("dns", "single")
	single.Spec.IPAddresses = single.Spec.IPAddresses[:1]
	_, err = v.ValidateCreate(ctx, single)
	assert.ErrorIs(t, err, svcapitypes.ErrInvalidSpec)

	_, err = v.ValidateCreate(ctx, testutil.NewRule("dns", "forward", "rslvr-in-1"))
	assert.ErrorContains(t, err, "expected a ResolverEndpoint")
}

func TestValidateUpdate(t *testing.T) {
	v := validatorFor(t, testutil.EndpointKind)
	ctx := context.Background()

	t.Run("immutable field before create", func(t *testing.T) {
		old := testutil.NewEndpoint("dns", "inbound")
		updated := old.DeepCopy()
		updated.Spec.Direction = aws.String(string(svcapitypes.ResolverEndpointDirection_OUTBOUND))
		_, err := v.ValidateUpdate(ctx, old, updated)
		assert.NoError(t, err)
	})

	t.Run("immutable field after create", func(t *testing.T) {
		old := testutil.NewEndpoint("dns", "inbound")
		old.Status.ID = aws.String("rslvr-in-1")
		updated := old.DeepCopy()
		updated.Spec.SecurityGroupIDs = aws.StringSlice([]string{"sg-2"})
		_, err := v.ValidateUpdate(ctx, old, updated)
		assert.ErrorIs(t, err, ackerr.ImmutableFieldChanged)
		assert.ErrorContains(t, err, "Spec.SecurityGroupIDs")
	})

	t.Run("mutable field after create", func(t *testing.T) {
		old := testutil.NewEndpoint("dns", "inbound")
		old.Status.ID = aws.String("rslvr-in-1")
		updated := old.DeepCopy()
		updated.Spec.Name = aws.String("renamed")
		_, err := v.ValidateUpdate(ctx, old, updated)
		assert.NoError(t, err)
	})

	t.Run("deleting resource", func(t *testing.T) {
		old := testutil.NewEndpoint("dns", "inbound")
		updated := old.DeepCopy()
		updated.Spec.IPAddresses = nil
		now := metav1.Now()
		updated.DeletionTimestamp = &now
		_, err := v.ValidateUpdate(ctx, old, updated)
		assert.NoError(t, err)
	})
}

func TestValidateDelete(t *testing.T) {
	v := validatorFor(t, testutil.RuleKind)
	_, err := v.ValidateDelete(context.Background(), testutil.NewRule("dns", "forward", "rslvr-in-1"))
	assert.NoError(t, err)
}
