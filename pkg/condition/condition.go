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

package condition

import (
	"github.com/samber/lo"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/clock"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

var (
	NotSyncedMessage   = "Resource not synced"
	SyncedMessage      = "Resource synced successfully"
	ReadOnlyMessage    = "Resource is read-only; observed state differs from desired state"
	AdoptedMessage     = "Resource was adopted from an existing backend resource"
	AdoptedReason      = "Adopted"
	UnknownSyncMessage = "Unable to determine if desired resource state matches latest observed state"
)

// Clock is used to stamp LastTransitionTime
var Clock clock.PassiveClock = clock.RealClock{}

// Synced returns the ResourceSynced condition, or nil
func Synced(subject acktypes.ConditionManager) *ackv1alpha1.Condition {
	return FirstOfType(subject, ackv1alpha1.ConditionTypeResourceSynced)
}

// Terminal returns the Terminal condition, or nil
func Terminal(subject acktypes.ConditionManager) *ackv1alpha1.Condition {
	return FirstOfType(subject, ackv1alpha1.ConditionTypeTerminal)
}

// Recoverable returns the Recoverable condition, or nil
func Recoverable(subject acktypes.ConditionManager) *ackv1alpha1.Condition {
	return FirstOfType(subject, ackv1alpha1.ConditionTypeRecoverable)
}

// Adopted returns the Adopted condition, or nil
func Adopted(subject acktypes.ConditionManager) *ackv1alpha1.Condition {
	return FirstOfType(subject, ackv1alpha1.ConditionTypeAdopted)
}

// FirstOfType returns the first condition of condType, or nil
func FirstOfType(
	subject acktypes.ConditionManager,
	condType ackv1alpha1.ConditionType,
) *ackv1alpha1.Condition {
	c, _ := lo.Find(subject.Conditions(), func(c *ackv1alpha1.Condition) bool {
		return c.Type == condType
	})
	return c
}

// Set updates the first condition of condType, appending one when the
// subject has none. Message and reason are overwritten, nil included.
// LastTransitionTime only moves when the status changes.
func Set(
	subject acktypes.ConditionManager,
	condType ackv1alpha1.ConditionType,
	status corev1.ConditionStatus,
	message *string,
	reason *string,
) {
	conds := subject.Conditions()
	c := FirstOfType(subject, condType)
	if c == nil {
		c = &ackv1alpha1.Condition{Type: condType}
		conds = append(conds, c)
	}
	if c.LastTransitionTime == nil || c.Status != status {
		now := metav1.NewTime(Clock.Now())
		c.LastTransitionTime = &now
	}
	c.Status, c.Message, c.Reason = status, message, reason
	subject.ReplaceConditions(conds)
}

func SetSynced(subject acktypes.ConditionManager, status corev1.ConditionStatus, message, reason *string) {
	Set(subject, ackv1alpha1.ConditionTypeResourceSynced, status, message, reason)
}

func SetTerminal(subject acktypes.ConditionManager, status corev1.ConditionStatus, message, reason *string) {
	Set(subject, ackv1alpha1.ConditionTypeTerminal, status, message, reason)
}

func SetRecoverable(subject acktypes.ConditionManager, status corev1.ConditionStatus, message, reason *string) {
	Set(subject, ackv1alpha1.ConditionTypeRecoverable, status, message, reason)
}

// SetAdopted marks the resource as bound to a pre-existing backend resource
func SetAdopted(subject acktypes.ConditionManager) {
	Set(
		subject, ackv1alpha1.ConditionTypeAdopted, corev1.ConditionTrue,
		&AdoptedMessage, &AdoptedReason,
	)
}

// Remove drops every condition of condType
func Remove(
	subject acktypes.ConditionManager,
	condType ackv1alpha1.ConditionType,
) {
	if FirstOfType(subject, condType) == nil {
		return
	}
	subject.ReplaceConditions(lo.Reject(subject.Conditions(), func(c *ackv1alpha1.Condition, _ int) bool {
		return c.Type == condType
	}))
}

// IsSynced returns true if the ResourceSynced condition is True
func IsSynced(subject acktypes.ConditionManager) bool {
	c := Synced(subject)
	return c != nil && c.Status == corev1.ConditionTrue
}
