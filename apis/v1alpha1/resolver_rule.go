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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
)

// ResolverRuleSpec defines the desired state of ResolverRule.
type ResolverRuleSpec struct {
	// VPCs the rule is associated with.
	Associations []*ResolverRuleAssociation `json:"associations,omitempty"`
	// DNS queries for this domain name are forwarded to the IP addresses that
	// you specify in TargetIps. Cannot be changed once the rule exists.
	DomainName *string `json:"domainName,omitempty"`
	// A friendly name that lets you easily find a rule in the Resolver
	// dashboard in the Route 53 console.
	Name *string `json:"name,omitempty"`
	// The ID of the outbound Resolver endpoint that you want to use to route
	// DNS queries to the IP addresses that you specify in TargetIps.
	ResolverEndpointID *string `json:"resolverEndpointID,omitempty"`
	// One of FORWARD, SYSTEM or RECURSIVE. Cannot be changed once the rule
	// exists.
	// +kubebuilder:validation:Required
	RuleType *string `json:"ruleType"`
	// A list of the tag keys and values that you want to associate with the
	// endpoint.
	Tags []*Tag `json:"tags,omitempty"`
	// The IPs that you want Resolver to forward DNS queries to. TargetIps is
	// available only when the value of Rule type is FORWARD.
	TargetIPs []*TargetAddress `json:"targetIPs,omitempty"`
}

// ResolverRuleStatus defines the observed state of ResolverRule
type ResolverRuleStatus struct {
	// All CRs managed by ACK have a common `Status.ACKResourceMetadata` member
	// that is used to contain resource sync state, account ownership,
	// constructed ARN for the resource
	// +kubebuilder:validation:Optional
	ACKResourceMetadata *ackv1alpha1.ResourceMetadata `json:"ackResourceMetadata"`
	// All CRs managed by ACK have a common `Status.Conditions` member that
	// contains a collection of `ackv1alpha1.Condition` objects that describe
	// the various terminal states of the CR and its backend AWS service API
	// resource
	// +kubebuilder:validation:Optional
	Conditions []*ackv1alpha1.Condition `json:"conditions"`
	// +kubebuilder:validation:Optional
	CreationTime *string `json:"creationTime,omitempty"`
	// +kubebuilder:validation:Optional
	CreatorRequestID *string `json:"creatorRequestID,omitempty"`
	// The ID that Resolver assigned to the Resolver rule when you created it.
	// +kubebuilder:validation:Optional
	ID *string `json:"id,omitempty"`
	// +kubebuilder:validation:Optional
	ModificationTime *string `json:"modificationTime,omitempty"`
	// When a rule is shared with another Amazon Web Services account, the
	// account ID of the account that the rule is shared with.
	// +kubebuilder:validation:Optional
	OwnerID *string `json:"ownerID,omitempty"`
	// Whether the rule is shared and, if so, whether the current account is
	// sharing the rule with another account, or another account is sharing
	// the rule with the current account.
	// +kubebuilder:validation:Optional
	ShareStatus *string `json:"shareStatus,omitempty"`
	// A code that specifies the current status of the Resolver rule.
	// +kubebuilder:validation:Optional
	Status *string `json:"status,omitempty"`
	// A detailed description of the status of a Resolver rule.
	// +kubebuilder:validation:Optional
	StatusMessage *string `json:"statusMessage,omitempty"`
}

// ResolverRule is the Schema for the ResolverRules API
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="ID",type=string,JSONPath=`.status.id`
// +kubebuilder:printcolumn:name="STATE",type=string,JSONPath=`.status.ackResourceMetadata.state`
// +kubebuilder:printcolumn:name="SYNCED",type="string",priority=0,JSONPath=".status.conditions[?(@.type==\"ACK.ResourceSynced\")].status"
type ResolverRule struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              ResolverRuleSpec   `json:"spec,omitempty"`
	Status            ResolverRuleStatus `json:"status,omitempty"`
}

// ResolverRuleList contains a list of ResolverRule
// +kubebuilder:object:root=true
type ResolverRuleList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ResolverRule `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ResolverRule{}, &ResolverRuleList{})
}
