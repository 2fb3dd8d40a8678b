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

package resolver_rule

import (
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackcompare "github.com/aws-controllers-k8s/route53resolver-controller/pkg/compare"
)

// defaultTargetPort is the port the service fills in for a target address
// without one
const defaultTargetPort = int64(53)

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

	if !cmp.Equal(associatedVPCs(a.ko.Spec.Associations), associatedVPCs(b.ko.Spec.Associations)) {
		delta.Add("Spec.Associations", a.ko.Spec.Associations, b.ko.Spec.Associations)
	}
	if ackcompare.HasNilDifference(a.ko.Spec.DomainName, b.ko.Spec.DomainName) {
		delta.Add("Spec.DomainName", a.ko.Spec.DomainName, b.ko.Spec.DomainName)
	} else if a.ko.Spec.DomainName != nil && b.ko.Spec.DomainName != nil {
		if normalizeDomainName(*a.ko.Spec.DomainName) != normalizeDomainName(*b.ko.Spec.DomainName) {
			delta.Add("Spec.DomainName", a.ko.Spec.DomainName, b.ko.Spec.DomainName)
		}
	}
	if ackcompare.HasNilDifference(a.ko.Spec.Name, b.ko.Spec.Name) {
		delta.Add("Spec.Name", a.ko.Spec.Name, b.ko.Spec.Name)
	} else if a.ko.Spec.Name != nil && b.ko.Spec.Name != nil {
		if *a.ko.Spec.Name != *b.ko.Spec.Name {
			delta.Add("Spec.Name", a.ko.Spec.Name, b.ko.Spec.Name)
		}
	}
	if aws.ToString(a.ko.Spec.ResolverEndpointID) != aws.ToString(b.ko.Spec.ResolverEndpointID) {
		delta.Add("Spec.ResolverEndpointID", a.ko.Spec.ResolverEndpointID, b.ko.Spec.ResolverEndpointID)
	}
	if ackcompare.HasNilDifference(a.ko.Spec.RuleType, b.ko.Spec.RuleType) {
		delta.Add("Spec.RuleType", a.ko.Spec.RuleType, b.ko.Spec.RuleType)
	} else if a.ko.Spec.RuleType != nil && b.ko.Spec.RuleType != nil {
		if *a.ko.Spec.RuleType != *b.ko.Spec.RuleType {
			delta.Add("Spec.RuleType", a.ko.Spec.RuleType, b.ko.Spec.RuleType)
		}
	}
	if !cmp.Equal(
		normalizeTargets(a.ko.Spec.TargetIPs), normalizeTargets(b.ko.Spec.TargetIPs),
		cmpopts.EquateEmpty(),
	) {
		delta.Add("Spec.TargetIPs", a.ko.Spec.TargetIPs, b.ko.Spec.TargetIPs)
	}

	return delta
}

// normalizeDomainName drops the trailing dot the service appends to fully
// qualified names
func normalizeDomainName(name string) string {
	return strings.TrimSuffix(name, ".")
}

// associatedVPCs returns the sorted VPC IDs of the associations
func associatedVPCs(assocs []*svcapitypes.ResolverRuleAssociation) []string {
	res := []string{}
	for _, a := range assocs {
		if a != nil && a.VPCID != nil {
			res = append(res, *a.VPCID)
		}
	}
	sort.Strings(res)
	return res
}

type target struct {
	IP   string
	IPv6 string
	Port int64
}

// normalizeTargets returns the target addresses sorted, with unset ports
// replaced by the service default
func normalizeTargets(tips []*svcapitypes.TargetAddress) []target {
	res := []target{}
	for _, tip := range tips {
		if tip == nil {
			continue
		}
		t := target{
			IP:   aws.ToString(tip.IP),
			IPv6: aws.ToString(tip.IPv6),
			Port: defaultTargetPort,
		}
		if tip.Port != nil {
			t.Port = *tip.Port
		}
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].IP != res[j].IP {
			return res[i].IP < res[j].IP
		}
		if res[i].IPv6 != res[j].IPv6 {
			return res[i].IPv6 < res[j].IPv6
		}
		return res[i].Port < res[j].Port
	})
	return res
}
