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

	"github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
)

// Kind classifies an error by how the reconciler reacts to it.
type Kind string

const (
	// KindNone is the Kind of a nil error
	KindNone Kind = ""
	// KindNotFoundTransitional is a resource not yet visible after a create.
	// It is retried briefly.
	KindNotFoundTransitional Kind = "NotFoundTransitional"
	// KindTransient covers throttling, network and 5xx errors. They are
	// retried with backoff.
	KindTransient Kind = "Transient"
	// KindPermanent covers validation, conflict, authorization and
	// immutable-field errors. They are never retried.
	KindPermanent Kind = "Permanent"
	// KindAdoptionMismatch is raised when the adoption target is not found
	// or already owned. It is permanent.
	KindAdoptionMismatch Kind = "AdoptionMismatch"
)

// ReconcileError attaches a Kind to an error
type ReconcileError struct {
	Kind Kind
	Err  error
}

func (e *ReconcileError) Error() string {
	if e == nil || e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *ReconcileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewTransient marks err as retryable with backoff
func NewTransient(err error) error {
	return newReconcileError(KindTransient, err)
}

// NewPermanent marks err as not retryable
func NewPermanent(err error) error {
	return newReconcileError(KindPermanent, err)
}

// NewNotFoundTransitional marks err as a not-yet-visible resource
func NewNotFoundTransitional(err error) error {
	return newReconcileError(KindNotFoundTransitional, err)
}

// NewAdoptionMismatch marks err as an adoption failure
func NewAdoptionMismatch(err error) error {
	return newReconcileError(KindAdoptionMismatch, err)
}

func newReconcileError(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &ReconcileError{Kind: kind, Err: err}
}

// KindOf returns the Kind of the supplied error. Errors that carry no Kind
// are considered Transient so they are never silently dropped.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var re *ReconcileError
	if errors.As(err, &re) {
		return re.Kind
	}
	switch {
	case errors.Is(err, AdoptionMismatch):
		return KindAdoptionMismatch
	case errors.Is(err, Terminal),
		errors.Is(err, ImmutableFieldChanged),
		errors.Is(err, IdentifierImmutable),
		errors.Is(err, AdoptionNotEnabled),
		errors.Is(err, ReadOnlyNoIdentifier),
		errors.Is(err, v1alpha1.ErrInvalidSpec):
		return KindPermanent
	case errors.Is(err, ReadOneFailAfterCreate):
		return KindNotFoundTransitional
	}
	return KindTransient
}

// IsPermanent returns true if the error must not be retried
func IsPermanent(err error) bool {
	k := KindOf(err)
	return k == KindPermanent || k == KindAdoptionMismatch
}

// IsNotFound returns true if the error denotes a missing backend resource
func IsNotFound(err error) bool {
	return errors.Is(err, NotFound)
}
