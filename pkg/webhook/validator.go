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

package webhook

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/runtime"
	ctrlrt "sigs.k8s.io/controller-runtime"
	rtclient "sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"

	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// resourceValidator rejects custom resources the controller could never
// reconcile: invalid specs and changes to fields that are immutable once the
// backend resource exists.
type resourceValidator struct {
	rd acktypes.AWSResourceDescriptor
}

var _ admission.CustomValidator = &resourceValidator{}

// NewValidating returns the validating webhook of the kind described by rd
func NewValidating(rd acktypes.AWSResourceDescriptor) *Webhook {
	gvk := rd.GroupVersionKind()
	v := ValidatorFor(rd)
	return &Webhook{
		Kind: KindValidating,
		GVK:  gvk,
		Setup: func(mgr ctrlrt.Manager) error {
			return ctrlrt.NewWebhookManagedBy(mgr).
				For(rd.EmptyRuntimeObject()).
				WithValidator(v).
				Complete()
		},
	}
}

// ValidatorFor returns the admission validator of the kind described by rd
func ValidatorFor(rd acktypes.AWSResourceDescriptor) admission.CustomValidator {
	return &resourceValidator{rd: rd}
}

func (v *resourceValidator) resourceFrom(obj runtime.Object) (acktypes.AWSResource, error) {
	o, ok := obj.(rtclient.Object)
	if !ok || o.GetObjectKind().GroupVersionKind().Kind != "" &&
		o.GetObjectKind().GroupVersionKind().Kind != v.rd.GroupVersionKind().Kind {
		return nil, fmt.Errorf("expected a %s, got %T", v.rd.GroupVersionKind().Kind, obj)
	}
	return v.rd.ResourceFromRuntimeObject(o), nil
}

func (v *resourceValidator) ValidateCreate(
	_ context.Context,
	obj runtime.Object,
) (admission.Warnings, error) {
	res, err := v.resourceFrom(obj)
	if err != nil {
		return nil, err
	}
	return nil, res.Validate()
}

func (v *resourceValidator) ValidateUpdate(
	_ context.Context,
	oldObj runtime.Object,
	newObj runtime.Object,
) (admission.Warnings, error) {
	oldRes, err := v.resourceFrom(oldObj)
	if err != nil {
		return nil, err
	}
	newRes, err := v.resourceFrom(newObj)
	if err != nil {
		return nil, err
	}
	if newRes.IsBeingDeleted() {
		return nil, nil
	}
	if err := newRes.Validate(); err != nil {
		return nil, err
	}
	// immutable fields only bind once the backend resource exists
	if oldRes.Identifiers() == nil || oldRes.Identifiers().ID() == "" {
		return nil, nil
	}
	changed := v.rd.Delta(newRes, oldRes).DifferentAtAny(v.rd.ImmutableFields()...)
	if len(changed) > 0 {
		return nil, errors.Wrap(ackerr.ImmutableFieldChanged, strings.Join(changed, ", "))
	}
	return nil, nil
}

func (v *resourceValidator) ValidateDelete(
	context.Context,
	runtime.Object,
) (admission.Warnings, error) {
	return nil, nil
}
