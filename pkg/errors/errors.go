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
	"fmt"
)

var (
	// NotFound is returned when the backend AWS service resource does not
	// exist. ReadOne and Delete return it as a typed outcome rather than a
	// failure.
	NotFound = fmt.Errorf("resource not found")
	// Terminal is returned when a resource's desired state cannot be reached
	// without a change to its spec.
	Terminal = fmt.Errorf("resource is in terminal condition")
	// AdoptionMismatch is wrapped by every error raised while binding a CR to
	// a pre-existing backend resource.
	AdoptionMismatch = fmt.Errorf("adoption mismatch")
	// AdoptedResourceNotFound is returned when the adoption target does not
	// exist in the backend AWS service.
	AdoptedResourceNotFound = fmt.Errorf("%w: adopted resource not found", AdoptionMismatch)
	// AdoptedResourceAlreadyOwned is returned when another CR of the same kind
	// is already bound to the adoption target.
	AdoptedResourceAlreadyOwned = fmt.Errorf("%w: adopted resource is already owned by another custom resource", AdoptionMismatch)
	// AdoptionFieldsMissing is returned when the adoption policy annotation is
	// set without the identifier of the resource to adopt.
	AdoptionFieldsMissing = fmt.Errorf("%w: adoption fields are missing an id", AdoptionMismatch)
	// AdoptionNotEnabled is returned when a CR asks for adoption but the
	// ResourceAdoption feature gate is disabled.
	AdoptionNotEnabled = fmt.Errorf("adoption by annotation is not enabled")
	// ImmutableFieldChanged is returned when the desired state changes a
	// field that cannot be updated on an existing backend resource.
	ImmutableFieldChanged = fmt.Errorf("immutable field changed")
	// IdentifierImmutable is returned when a CR already bound to a backend
	// resource would be rebound to a different identifier.
	IdentifierImmutable = fmt.Errorf("resource identifier is immutable once bound")
	// DependentsExist is returned when a resource cannot be deleted because
	// other custom resources still reference it.
	DependentsExist = fmt.Errorf("dependent resources still reference this resource")
	// ReadOneFailAfterCreate is returned when a freshly created resource does
	// not become readable within the post-create backoff window.
	ReadOneFailAfterCreate = fmt.Errorf("resource not readable after create")
	// ReadOnlyOutOfSync is reported when a read-only resource's observed state
	// differs from its desired state.
	ReadOnlyOutOfSync = fmt.Errorf("read-only resource differs from its desired state")
	// ReadOnlyNoIdentifier is returned when a read-only resource has neither a
	// bound identifier nor adoption fields to observe.
	ReadOnlyNoIdentifier = fmt.Errorf("read-only resource has no identifier to observe")
	// MaxRetriesExceeded is reported when a transient error has been retried
	// more than the configured maximum.
	MaxRetriesExceeded = fmt.Errorf("maximum number of retries exceeded")
	// MissingNameIdentifier is returned when a resource without an ID is read
	MissingNameIdentifier = fmt.Errorf("resource identifier is missing")
)

// NewImmutableFieldChanged returns an ImmutableFieldChanged error naming the
// changed fields
func NewImmutableFieldChanged(fields []string) error {
	return NewPermanent(fmt.Errorf("%w: %v", ImmutableFieldChanged, fields))
}

// NewReadOneFailAfterCreate returns a ReadOneFailAfterCreate error including
// the number of attempts made
func NewReadOneFailAfterCreate(attempts int) error {
	return NewNotFoundTransitional(fmt.Errorf("%w: %d attempts", ReadOneFailAfterCreate, attempts))
}

// NewMaxRetriesExceeded wraps the last transient error seen for a resource
func NewMaxRetriesExceeded(retries int, last error) error {
	return NewPermanent(fmt.Errorf("%w (%d): %v", MaxRetriesExceeded, retries, last))
}
