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
	"github.com/aws/aws-sdk-go-v2/aws"

	ackcompare "github.com/aws-controllers-k8s/route53resolver-controller/pkg/compare"
)

// newResourceDelta returns a new `ackcompare.Delta` used to compare two
// resources. Tags and Status fields are never part of the result.
func newResourceDelta(
	a *resource,
	b *resource,
) *ackcompare.Delta {
	delta := ackcompare.NewDelta()
	if (a == nil && b != nil) ||
		(a != nil && b == nil) {
		delta.Add("", a, b)
		return delta
	}

	if ackcompare.HasNilDifference(a.ko.Spec.Direction, b.ko.Spec.Direction) {
		delta.Add("Spec.Direction", a.ko.Spec.Direction, b.ko.Spec.Direction)
	} else if a.ko.Spec.Direction != nil && b.ko.Spec.Direction != nil {
		if *a.ko.Spec.Direction != *b.ko.Spec.Direction {
			delta.Add("Spec.Direction", a.ko.Spec.Direction, b.ko.Spec.Direction)
		}
	}
	if !ipAddressesEqual(a.ko.Spec.IPAddresses, b.ko.Spec.IPAddresses) {
		delta.Add("Spec.IPAddresses", a.ko.Spec.IPAddresses, b.ko.Spec.IPAddresses)
	}
	if ackcompare.HasNilDifference(a.ko.Spec.Name, b.ko.Spec.Name) {
		delta.Add("Spec.Name", a.ko.Spec.Name, b.ko.Spec.Name)
	} else if a.ko.Spec.Name != nil && b.ko.Spec.Name != nil {
		if *a.ko.Spec.Name != *b.ko.Spec.Name {
			delta.Add("Spec.Name", a.ko.Spec.Name, b.ko.Spec.Name)
		}
	}
	// An unset endpoint type takes the service default.
	if a.ko.Spec.ResolverEndpointType != nil {
		if aws.ToString(a.ko.Spec.ResolverEndpointType) != aws.ToString(b.ko.Spec.ResolverEndpointType) {
			delta.Add("Spec.ResolverEndpointType", a.ko.Spec.ResolverEndpointType, b.ko.Spec.ResolverEndpointType)
		}
	}
	if !ackcompare.EqualStringSets(a.ko.Spec.SecurityGroupIDs, b.ko.Spec.SecurityGroupIDs) {
		delta.Add("Spec.SecurityGroupIDs", a.ko.Spec.SecurityGroupIDs, b.ko.Spec.SecurityGroupIDs)
	}

	return delta
}
