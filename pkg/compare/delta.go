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

package compare

import (
	"strings"

	"github.com/samber/lo"
)

// Path is the dotted field route to a difference, e.g. Spec.TargetIPs
type Path []string

// NewPath splits a dotted field route into a Path
func NewPath(dotted string) Path {
	return strings.Split(dotted, ".")
}

// Contains returns true if subject is a prefix of p, field by field. For
// the Path Spec.Name the subjects Spec and Spec.Name match while Name and
// Spec.Name.Suffix do not.
func (p Path) Contains(subject string) bool {
	parts := strings.Split(subject, ".")
	if len(parts) > len(p) {
		return false
	}
	for i, part := range parts {
		if p[i] != part {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Difference holds the two values found at Path in the compared resources
type Difference struct {
	Path Path
	A    interface{}
	B    interface{}
}

// Delta lists the Spec differences between two resources of the same kind
type Delta struct {
	Differences []*Difference
}

// NewDelta returns an empty Delta
func NewDelta() *Delta {
	return &Delta{Differences: []*Difference{}}
}

// Add records a Difference at the supplied dotted path
func (d *Delta) Add(path string, a interface{}, b interface{}) {
	d.Differences = append(d.Differences, &Difference{Path: NewPath(path), A: a, B: b})
}

// Empty returns true when the Delta holds no Difference
func (d *Delta) Empty() bool {
	return d == nil || len(d.Differences) == 0
}

// DifferentAt returns true if any Difference lies at or below subject
func (d *Delta) DifferentAt(subject string) bool {
	if d.Empty() {
		return false
	}
	return lo.ContainsBy(d.Differences, func(diff *Difference) bool {
		return diff.Path.Contains(subject)
	})
}

// DifferentExcept returns true if some Difference lies outside all of the
// supplied paths. Resource managers use it to skip an update call when only
// fields handled by a dedicated API changed:
//
//	if !delta.DifferentExcept("Spec.Associations") {
//		return desired, nil
//	}
func (d *Delta) DifferentExcept(exceptPaths ...string) bool {
	if d.Empty() {
		return false
	}
	return lo.ContainsBy(d.Differences, func(diff *Difference) bool {
		return !lo.ContainsBy(exceptPaths, diff.Path.Contains)
	})
}

// DifferentAtAny returns the supplied subjects the resources differ at, in
// the order they were supplied
func (d *Delta) DifferentAtAny(subjects ...string) []string {
	return lo.Filter(subjects, func(subject string, _ int) bool {
		return d.DifferentAt(subject)
	})
}

// Paths returns the dotted path of every Difference
func (d *Delta) Paths() []string {
	if d.Empty() {
		return []string{}
	}
	return lo.Map(d.Differences, func(diff *Difference, _ int) string {
		return diff.Path.String()
	})
}
