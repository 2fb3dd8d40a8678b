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

// ResolverEndpointSpec defines the desired state of ResolverEndpoint.
type ResolverEndpointSpec struct {
	// Specify the applicable value:
	//
	//   - INBOUND: Resolver forwards DNS queries to the DNS service for a VPC
	//     from your network
	//
	//   - OUTBOUND: Resolver forwards DNS queries from the DNS service for a VPC
	//     to your network
	//
	// The direction cannot be changed once the endpoint exists.
	// +kubebuilder:validation:Required
	Direction *string `json:"direction"`
	// The subnets and IP addresses in your VPC that DNS queries originate from
	// (for outbound endpoints) or that you forward DNS queries to (for inbound
	// endpoints). The subnet ID uniquely identifies a VPC.
	//
	// Even though the minimum is 1, Route 53 requires that you create at least
	// two.
	// +kubebuilder:validation:Required
	IPAddresses []*IPAddressRequest `json:"ipAddresses,omitempty"`
	// A friendly name that lets you easily find a configuration in the Resolver
	// dashboard in the Route 53 console.
	Name *string `json:"name,omitempty"`
	// For the endpoint type you can choose either IPv4, IPv6, or dual-stack.
	ResolverEndpointType *string `json:"resolverEndpointType,omitempty"`
	// The ID of one or more security groups that you want to use to control
	// access to this VPC.
	SecurityGroupIDs []*string `json:"securityGroupIDs,omitempty"`
	// A list of the tag keys and values that you want to associate with the
	// endpoint.
	Tags []*Tag `json:"tags,omitempty"`
}

// ResolverEndpointStatus defines the observed state of ResolverEndpoint
type ResolverEndpointStatus struct {
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
	// A unique string that identifies the request that created the Resolver
	// endpoint.
	// +kubebuilder:validation:Optional
	CreatorRequestID *string `json:"creatorRequestID,omitempty"`
	// The ID of the VPC that the Resolver endpoint lives in.
	// +kubebuilder:validation:Optional
	HostVPCID *string `json:"hostVPCID,omitempty"`
	// +kubebuilder:validation:Optional
	IPAddresses []*IPAddressResponse `json:"ipAddresses,omitempty"`
	// The ID of the Resolver endpoint.
	// +kubebuilder:validation:Optional
	ID *string `json:"id,omitempty"`
	// The number of IP addresses that the Resolver endpoint can use for DNS
	// queries.
	// +kubebuilder:validation:Optional
	IPAddressCount *int64 `json:"ipAddressCount,omitempty"`
	// +kubebuilder:validation:Optional
	ModificationTime *string `json:"modificationTime,omitempty"`
	// A code that specifies the current status of the Resolver endpoint. One
	// of CREATING, OPERATIONAL, UPDATING, AUTO_RECOVERING, ACTION_NEEDED or
	// DELETING.
	// +kubebuilder:validation:Optional
	Status *string `json:"status,omitempty"`
	// A detailed description of the status of the Resolver endpoint.
	// +kubebuilder:validation:Optional
	StatusMessage *string `json:"statusMessage,omitempty"`
}

// ResolverEndpoint is the Schema for the ResolverEndpoints API
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="ID",type=string,JSONPath=`.status.id`
// +kubebuilder:printcolumn:name="STATE",type=string,JSONPath=`.status.ackResourceMetadata.state`
// +kubebuilder:printcolumn:name="SYNCED",type="string",priority=0,JSONPath=".status.conditions[?(@.type==\"ACK.ResourceSynced\")].status"
type ResolverEndpoint struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              ResolverEndpointSpec   `json:"spec,omitempty"`
	Status            ResolverEndpointStatus `json:"status,omitempty"`
}

// ResolverEndpointList contains a list of ResolverEndpoint
// +kubebuilder:object:root=true
type ResolverEndpointList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ResolverEndpoint `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ResolverEndpoint{}, &ResolverEndpointList{})
}
