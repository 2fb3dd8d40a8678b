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

package v1alpha1

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSpec is wrapped by every error returned from Validate
var ErrInvalidSpec = errors.New("invalid spec")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpec, fmt.Sprintf(format, args...))
}

// Validate checks the ResolverEndpoint's desired state before it is sent to
// the Route 53 Resolver API.
func (r *ResolverEndpoint) Validate() error {
	spec := r.Spec
	if spec.Direction == nil {
		return invalid("spec.direction is required")
	}
	switch ResolverEndpointDirection(*spec.Direction) {
	case ResolverEndpointDirection_INBOUND, ResolverEndpointDirection_OUTBOUND:
	default:
		return invalid("spec.direction %q must be INBOUND or OUTBOUND", *spec.Direction)
	}
	if spec.ResolverEndpointType != nil {
		switch ResolverEndpointType(*spec.ResolverEndpointType) {
		case ResolverEndpointType_IPV4, ResolverEndpointType_IPV6, ResolverEndpointType_DUALSTACK:
		default:
			return invalid("spec.resolverEndpointType %q is not supported", *spec.ResolverEndpointType)
		}
	}
	if len(spec.IPAddresses) < 2 {
		return invalid("spec.ipAddresses needs at least two entries, got %d", len(spec.IPAddresses))
	}
	for i, ipa := range spec.IPAddresses {
		if ipa == nil || ipa.SubnetID == nil || *ipa.SubnetID == "" {
			return invalid("spec.ipAddresses[%d].subnetID is required", i)
		}
	}
	if len(spec.SecurityGroupIDs) == 0 {
		return invalid("spec.securityGroupIDs needs at least one entry")
	}
	for i, sg := range spec.SecurityGroupIDs {
		if sg == nil || *sg == "" {
			return invalid("spec.securityGroupIDs[%d] is empty", i)
		}
	}
	return validateTags(spec.Tags)
}

// Validate checks the ResolverRule's desired state before it is sent to the
// Route 53 Resolver API.
func (r *ResolverRule) Validate() error {
	spec := r.Spec
	if spec.RuleType == nil {
		return invalid("spec.ruleType is required")
	}
	ruleType := RuleTypeOption(*spec.RuleType)
	switch ruleType {
	case RuleTypeOption_FORWARD, RuleTypeOption_SYSTEM, RuleTypeOption_RECURSIVE:
	default:
		return invalid("spec.ruleType %q must be FORWARD, SYSTEM or RECURSIVE", *spec.RuleType)
	}
	if ruleType != RuleTypeOption_RECURSIVE && (spec.DomainName == nil || *spec.DomainName == "") {
		return invalid("spec.domainName is required for %s rules", ruleType)
	}
	if ruleType == RuleTypeOption_FORWARD {
		if spec.ResolverEndpointID == nil || *spec.ResolverEndpointID == "" {
			return invalid("spec.resolverEndpointID is required for FORWARD rules")
		}
		if len(spec.TargetIPs) == 0 {
			return invalid("spec.targetIPs needs at least one entry for FORWARD rules")
		}
	} else if len(spec.TargetIPs) > 0 {
		return invalid("spec.targetIPs is only supported for FORWARD rules")
	}
	for i, tip := range spec.TargetIPs {
		if tip == nil || (tip.IP == nil && tip.IPv6 == nil) {
			return invalid("spec.targetIPs[%d] needs ip or ipv6", i)
		}
		if tip.Port != nil && (*tip.Port < 0 || *tip.Port > 65535) {
			return invalid("spec.targetIPs[%d].port %d is out of range", i, *tip.Port)
		}
	}
	seen := map[string]struct{}{}
	for i, assoc := range spec.Associations {
		if assoc == nil || assoc.VPCID == nil || *assoc.VPCID == "" {
			return invalid("spec.associations[%d].vpcID is required", i)
		}
		if _, dup := seen[*assoc.VPCID]; dup {
			return invalid("spec.associations contains %s twice", *assoc.VPCID)
		}
		seen[*assoc.VPCID] = struct{}{}
	}
	return validateTags(spec.Tags)
}

func validateTags(tags []*Tag) error {
	seen := make(map[string]struct{}, len(tags))
	for i, t := range tags {
		if t == nil || t.Key == nil || strings.TrimSpace(*t.Key) == "" {
			return invalid("spec.tags[%d].key is required", i)
		}
		if strings.HasPrefix(*t.Key, "aws:") {
			return invalid("spec.tags[%d].key %q uses the reserved aws: prefix", i, *t.Key)
		}
		if _, dup := seen[*t.Key]; dup {
			return invalid("spec.tags contains key %q twice", *t.Key)
		}
		seen[*t.Key] = struct{}{}
	}
	return nil
}
