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

type ResolverEndpointDirection string

const (
	ResolverEndpointDirection_INBOUND  ResolverEndpointDirection = "INBOUND"
	ResolverEndpointDirection_OUTBOUND ResolverEndpointDirection = "OUTBOUND"
)

type ResolverEndpointType string

const (
	ResolverEndpointType_IPV4      ResolverEndpointType = "IPV4"
	ResolverEndpointType_IPV6      ResolverEndpointType = "IPV6"
	ResolverEndpointType_DUALSTACK ResolverEndpointType = "DUALSTACK"
)

type ResolverEndpointStatus_SDK string

const (
	ResolverEndpointStatus_SDK_CREATING        ResolverEndpointStatus_SDK = "CREATING"
	ResolverEndpointStatus_SDK_OPERATIONAL     ResolverEndpointStatus_SDK = "OPERATIONAL"
	ResolverEndpointStatus_SDK_UPDATING        ResolverEndpointStatus_SDK = "UPDATING"
	ResolverEndpointStatus_SDK_AUTO_RECOVERING ResolverEndpointStatus_SDK = "AUTO_RECOVERING"
	ResolverEndpointStatus_SDK_ACTION_NEEDED   ResolverEndpointStatus_SDK = "ACTION_NEEDED"
	ResolverEndpointStatus_SDK_DELETING        ResolverEndpointStatus_SDK = "DELETING"
)

type RuleTypeOption string

const (
	RuleTypeOption_FORWARD   RuleTypeOption = "FORWARD"
	RuleTypeOption_SYSTEM    RuleTypeOption = "SYSTEM"
	RuleTypeOption_RECURSIVE RuleTypeOption = "RECURSIVE"
)

type ResolverRuleStatus_SDK string

const (
	ResolverRuleStatus_SDK_COMPLETE ResolverRuleStatus_SDK = "COMPLETE"
	ResolverRuleStatus_SDK_DELETING ResolverRuleStatus_SDK = "DELETING"
	ResolverRuleStatus_SDK_UPDATING ResolverRuleStatus_SDK = "UPDATING"
	ResolverRuleStatus_SDK_FAILED   ResolverRuleStatus_SDK = "FAILED"
)

// In a CreateResolverEndpoint request, the IP address that DNS queries
// originate from (for outbound endpoints) or that you forward DNS queries to
// (for inbound endpoints). IPAddressRequest also includes the ID of the subnet
// that contains the IP address.
type IPAddressRequest struct {
	IP       *string `json:"ip,omitempty"`
	IPv6     *string `json:"ipv6,omitempty"`
	SubnetID *string `json:"subnetID,omitempty"`
}

// In the response to a GetResolverEndpoint request, information about the IP
// addresses that the Resolver endpoint uses for DNS queries.
type IPAddressResponse struct {
	CreationTime     *string `json:"creationTime,omitempty"`
	IP               *string `json:"ip,omitempty"`
	IPID             *string `json:"ipID,omitempty"`
	IPv6             *string `json:"ipv6,omitempty"`
	ModificationTime *string `json:"modificationTime,omitempty"`
	Status           *string `json:"status,omitempty"`
	StatusMessage    *string `json:"statusMessage,omitempty"`
	SubnetID         *string `json:"subnetID,omitempty"`
}

// In the response to an AssociateResolverRule request, information about the
// VPC a Resolver rule is associated with.
type ResolverRuleAssociation struct {
	VPCID *string `json:"vpcID,omitempty"`
}

// One tag that you want to add to the specified resource. A tag consists of a
// Key (a name for the tag) and a Value.
type Tag struct {
	Key   *string `json:"key,omitempty"`
	Value *string `json:"value,omitempty"`
}

// In a CreateResolverRule request, an array of the IPs that you want to
// forward DNS queries to.
type TargetAddress struct {
	IP   *string `json:"ip,omitempty"`
	IPv6 *string `json:"ipv6,omitempty"`
	Port *int64  `json:"port,omitempty"`
}
