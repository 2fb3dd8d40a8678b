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

// AWSAccountID represents an AWS account identifier
type AWSAccountID string

// AWSRegion represents an AWS regional identifier
type AWSRegion string

// AWSResourceName represents an AWS Resource Name (ARN)
type AWSResourceName string

// ReconcileState is the position of a custom resource in the reconciler's
// state machine
type ReconcileState string

const (
	// StateAbsent is the initial state: no backend resource is bound
	StateAbsent ReconcileState = "Absent"
	// StateCreating means a create call is being issued
	StateCreating ReconcileState = "Creating"
	// StateAdopting means a pre-existing backend resource is being bound
	StateAdopting ReconcileState = "Adopting"
	// StateSyncing means a backend resource is bound and is being converged
	// to the desired state
	StateSyncing ReconcileState = "Syncing"
	// StateSynced means the backend resource matches the desired state
	StateSynced ReconcileState = "Synced"
	// StateDeleting means the backend resource is being deleted
	StateDeleting ReconcileState = "Deleting"
	// StateRetained means the custom resource is being removed while the
	// backend resource is left intact
	StateRetained ReconcileState = "Retained"
	// StateFailed means a permanent error occurred. The resource stays here
	// until its spec changes.
	StateFailed ReconcileState = "Failed"
)

// IsTerminal returns true for states that are not left without a change to
// the custom resource
func (s ReconcileState) IsTerminal() bool {
	return s == StateFailed
}

// ResourceMetadata is common metadata that all CRs managed by the controller
// expose in their `Status.ACKResourceMetadata` member
type ResourceMetadata struct {
	// ARN is the Amazon Resource Name for the resource. This is a
	// globally-unique identifier and is set only by the controller once the
	// controller has orchestrated the creation of the resource OR when it
	// has verified that an "adopted" resource (a resource where the
	// ARN annotation was set by the Kubernetes user on the CR) exists and
	// matches the supplied CR's Spec field values.
	// +kubebuilder:validation:Optional
	ARN *AWSResourceName `json:"arn,omitempty"`
	// OwnerAccountID is the AWS Account ID of the account that owns the
	// backend AWS service API resource.
	OwnerAccountID *AWSAccountID `json:"ownerAccountID"`
	// Region is the AWS region in which the resource exists or will exist.
	Region *AWSRegion `json:"region"`
	// State is the reconciler state the resource was last left in.
	// +optional
	State ReconcileState `json:"state,omitempty"`
	// RetryCount is the number of consecutive failed reconciliation
	// attempts. It is reset to zero on success.
	// +optional
	RetryCount int `json:"retryCount,omitempty"`
	// ObservedGeneration is the metadata.generation of the custom resource
	// that the State refers to.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

// AWSIdentifiers provide all unique ways to reference an AWS resource.
type AWSIdentifiers struct {
	// ARN is the AWS Resource Name for the resource. It is a globally
	// unique identifier.
	ARN *AWSResourceName `json:"arn,omitempty"`
	// NameOrId is a user-supplied string identifier for the resource. It may
	// or may not be globally unique, depending on the type of resource.
	NameOrID string `json:"nameOrID,omitempty"`
	// AdditionalKeys represents any additional arbitrary identifiers used when
	// describing the target resource.
	AdditionalKeys map[string]string `json:"additionalKeys,omitempty"`
}
