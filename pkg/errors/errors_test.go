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

package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
)

func apiErr(code string, fault smithy.ErrorFault) error {
	return &smithy.GenericAPIError{Code: code, Message: "boom", Fault: fault}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ackerr.Kind
	}{
		{"throttling", apiErr("ThrottlingException", smithy.FaultClient), ackerr.KindTransient},
		{"limit exceeded", apiErr("LimitExceededException", smithy.FaultClient), ackerr.KindTransient},
		{"internal", apiErr("InternalServiceErrorException", smithy.FaultServer), ackerr.KindTransient},
		{"in use", apiErr("ResourceInUseException", smithy.FaultClient), ackerr.KindTransient},
		{"invalid parameter", apiErr("InvalidParameterException", smithy.FaultClient), ackerr.KindPermanent},
		{"invalid request", apiErr("InvalidRequestException", smithy.FaultClient), ackerr.KindPermanent},
		{"exists", apiErr("ResourceExistsException", smithy.FaultClient), ackerr.KindPermanent},
		{"access denied", apiErr("AccessDeniedException", smithy.FaultClient), ackerr.KindPermanent},
		{"unknown client fault", apiErr("SomethingNewException", smithy.FaultClient), ackerr.KindPermanent},
		{"unknown server fault", apiErr("SomethingNewException", smithy.FaultServer), ackerr.KindTransient},
		{"plain error", fmt.Errorf("connection reset"), ackerr.KindTransient},
		{"deadline", context.DeadlineExceeded, ackerr.KindTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := ackerr.Classify(tt.err)
			require.Error(t, classified)
			assert.Equal(t, tt.kind, ackerr.KindOf(classified))
			// the provider error stays reachable for status messages
			assert.ErrorIs(t, classified, tt.err)
		})
	}
}

func TestClassify_NotFound(t *testing.T) {
	err := ackerr.Classify(apiErr("ResourceNotFoundException", smithy.FaultClient))
	assert.True(t, ackerr.IsNotFound(err))
	assert.Nil(t, ackerr.Classify(nil))

	already := ackerr.NewPermanent(fmt.Errorf("x"))
	assert.Same(t, already, ackerr.Classify(already))
}

func TestKindOf(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(ackerr.KindNone, ackerr.KindOf(nil))
	assert.Equal(ackerr.KindAdoptionMismatch, ackerr.KindOf(ackerr.AdoptedResourceNotFound))
	assert.Equal(ackerr.KindAdoptionMismatch, ackerr.KindOf(ackerr.AdoptedResourceAlreadyOwned))
	assert.Equal(ackerr.KindPermanent, ackerr.KindOf(ackerr.NewImmutableFieldChanged([]string{"Spec.Direction"})))
	assert.Equal(ackerr.KindPermanent, ackerr.KindOf(fmt.Errorf("wrapped: %w", v1alpha1.ErrInvalidSpec)))
	assert.Equal(ackerr.KindNotFoundTransitional, ackerr.KindOf(ackerr.NewReadOneFailAfterCreate(4)))
	assert.Equal(ackerr.KindTransient, ackerr.KindOf(ackerr.DependentsExist))

	assert.True(ackerr.IsPermanent(ackerr.AdoptedResourceNotFound))
	assert.True(ackerr.IsPermanent(ackerr.NewMaxRetriesExceeded(3, fmt.Errorf("throttled"))))
	assert.False(ackerr.IsPermanent(ackerr.NewTransient(fmt.Errorf("throttled"))))

	assert.Nil(ackerr.NewTransient(nil))
	assert.Contains(ackerr.NewReadOneFailAfterCreate(4).Error(), "4 attempts")
}
