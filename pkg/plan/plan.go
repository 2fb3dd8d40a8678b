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

// Package plan computes the ordered set of backend operations that moves a
// resource from its observed state to its desired state.
package plan

import (
	"github.com/samber/lo"

	ackcompare "github.com/aws-controllers-k8s/route53resolver-controller/pkg/compare"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// OperationKind is the kind of a backend operation
type OperationKind string

const (
	OperationCreate OperationKind = "Create"
	OperationAdopt  OperationKind = "Adopt"
	OperationUpdate OperationKind = "Update"
	OperationRetag  OperationKind = "Retag"
)

// Operation is a single backend mutation
type Operation struct {
	Kind OperationKind
	// Delta holds the changed Spec fields of an Update
	Delta *ackcompare.Delta
	// Added holds the tags a Retag sets, new keys and changed values alike
	Added tags.Tags
	// Removed holds the tag keys a Retag removes
	Removed []string
	// AdoptID is the provider ID an Adopt binds to
	AdoptID string
}

// Plan is an ordered list of operations. Structural operations always come
// before a Retag.
type Plan struct {
	Operations []Operation
}

// Empty returns true if there is nothing to do
func (p *Plan) Empty() bool {
	return p == nil || len(p.Operations) == 0
}

// Get returns the first operation of the supplied kind
func (p *Plan) Get(kind OperationKind) (Operation, bool) {
	if p == nil {
		return Operation{}, false
	}
	return lo.Find(p.Operations, func(op Operation) bool {
		return op.Kind == kind
	})
}

// Has returns true if the plan contains an operation of the supplied kind
func (p *Plan) Has(kind OperationKind) bool {
	_, ok := p.Get(kind)
	return ok
}

// Kinds returns the operation kinds in order
func (p *Plan) Kinds() []OperationKind {
	if p == nil {
		return nil
	}
	return lo.Map(p.Operations, func(op Operation, _ int) OperationKind {
		return op.Kind
	})
}

// Compute returns the Plan moving observed to desired.
//
// A nil observed resource yields a single Create, or a single Adopt when
// adoptID is set. Otherwise the Spec delta becomes an Update and the tag
// delta becomes a Retag. A delta touching an immutable field is a permanent
// error and no operation is returned.
func Compute(
	rd acktypes.AWSResourceDescriptor,
	desired acktypes.AWSResource,
	observed acktypes.AWSResource,
	adoptID string,
) (*Plan, error) {
	if ackcompare.IsNil(observed) {
		if adoptID != "" {
			return &Plan{Operations: []Operation{{Kind: OperationAdopt, AdoptID: adoptID}}}, nil
		}
		return &Plan{Operations: []Operation{{Kind: OperationCreate}}}, nil
	}

	p := &Plan{}
	delta := rd.Delta(desired, observed)
	if changed := delta.DifferentAtAny(rd.ImmutableFields()...); len(changed) > 0 {
		return nil, ackerr.NewImmutableFieldChanged(changed)
	}
	if !delta.Empty() {
		p.Operations = append(p.Operations, Operation{Kind: OperationUpdate, Delta: delta})
	}
	added, removed := TagDelta(desired.Tags(), observed.Tags())
	if len(added) > 0 || len(removed) > 0 {
		p.Operations = append(p.Operations, Operation{
			Kind:    OperationRetag,
			Added:   added,
			Removed: removed,
		})
	}
	return p, nil
}

// TagDelta returns the tags to set and the keys to remove so that observed
// becomes desired. Observed keys that are reserved (controller system keys
// and provider-managed aws: keys) are never removed; desired system keys are
// always enforced.
func TagDelta(desired, observed tags.Tags) (tags.Tags, []string) {
	added, _, _ := tags.Difference(observed, desired)
	added = lo.OmitBy(added, func(k string, _ string) bool {
		return tags.IsAWSKey(k)
	})
	// a changed value is overwritten by setting it, so only user keys
	// missing from desired are removed
	removed := lo.Reject(observed.User().Keys(), func(k string, _ int) bool {
		_, kept := desired[k]
		return kept
	})
	return added, removed
}
