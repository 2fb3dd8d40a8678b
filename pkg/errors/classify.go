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

package errors

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/smithy-go"
)

var (
	transientCodes = map[string]struct{}{
		"ThrottlingException":           {},
		"LimitExceededException":        {},
		"InternalServiceErrorException": {},
		"ResourceInUseException":        {},
		"ResourceUnavailableException":  {},
		"ServiceUnavailable":            {},
		"RequestTimeout":                {},
	}
	permanentCodes = map[string]struct{}{
		"InvalidParameterException": {},
		"InvalidRequestException":   {},
		"InvalidPolicyDocument":     {},
		"InvalidTagException":       {},
		"ResourceExistsException":   {},
		"AccessDeniedException":     {},
		"UnauthorizedException":     {},
		"ValidationException":       {},
		"UnknownResourceException":  {},
	}
	retryables = retry.IsErrorRetryables(retry.DefaultRetryables)
	throttles  = retry.IsErrorThrottles(retry.DefaultThrottles)
)

// Classify normalizes an error returned by the AWS SDK into the controller's
// error taxonomy. ResourceNotFoundException becomes NotFound. Errors that are
// already classified are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var re *ReconcileError
	if errors.As(err, &re) || errors.Is(err, NotFound) {
		return err
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if code == "ResourceNotFoundException" {
			return fmt.Errorf("%w: %s", NotFound, apiErr.ErrorMessage())
		}
		if _, ok := permanentCodes[code]; ok {
			return NewPermanent(err)
		}
		if _, ok := transientCodes[code]; ok {
			return NewTransient(err)
		}
	}
	if throttles.IsErrorThrottle(err) == aws.TrueTernary ||
		retryables.IsErrorRetryable(err) == aws.TrueTernary {
		return NewTransient(err)
	}
	if apiErr != nil && apiErr.ErrorFault() == smithy.FaultClient {
		return NewPermanent(err)
	}
	return NewTransient(err)
}
