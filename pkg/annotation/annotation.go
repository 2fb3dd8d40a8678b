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

package annotation

import (
	"encoding/json"
	"fmt"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	ackcompare "github.com/aws-controllers-k8s/route53resolver-controller/pkg/compare"
)

// AdoptionPolicy stores adoptionPolicy values we expect users to
// provide in the resources `adoption-policy` annotation
type AdoptionPolicy string

const (
	// AdoptionPolicyAdopt binds the CR to an existing backend resource and
	// fails if it does not exist
	AdoptionPolicyAdopt AdoptionPolicy = "adopt"
	// AdoptionPolicyAdoptOrCreate binds the CR to an existing backend
	// resource and creates it if it does not exist
	AdoptionPolicyAdoptOrCreate AdoptionPolicy = "adopt-or-create"

	// AdoptionFieldID is the key in the adoption-fields JSON object holding
	// the provider ID of the backend resource
	AdoptionFieldID = "id"
)

var (
	ErrUnknownAdoptionPolicy = fmt.Errorf("unrecognized adoption policy")
	ErrInvalidAdoptionFields = fmt.Errorf("invalid %s annotation", ackv1alpha1.AnnotationAdoptionFields)
)

// Adoption is the parsed adoption marker of a CR
type Adoption struct {
	Policy AdoptionPolicy
	// ID is the provider ID of the backend resource to adopt
	ID string
	// Fields holds every key of the adoption-fields annotation
	Fields map[string]string
}

// OrCreate returns true if a missing adoption target should be created
func (a *Adoption) OrCreate() bool {
	return a != nil && a.Policy == AdoptionPolicyAdoptOrCreate
}

func get(mo metav1.Object, key string) (string, bool) {
	if ackcompare.IsNil(mo) {
		return "", false
	}
	v, ok := mo.GetAnnotations()[key]
	return v, ok
}

func isTrue(mo metav1.Object, key string) bool {
	v, ok := get(mo, key)
	return ok && strings.EqualFold(strings.TrimSpace(v), "true")
}

// IsAdopted returns true if the object carries the adopted annotation set by
// the controller once it bound the CR to a pre-existing backend resource
func IsAdopted(mo metav1.Object) bool {
	return isTrue(mo, ackv1alpha1.AnnotationAdopted)
}

// SetAdopted records on the object that it was bound to a pre-existing
// backend resource
func SetAdopted(mo metav1.Object) {
	if ackcompare.IsNil(mo) {
		return
	}
	annotations := mo.GetAnnotations()
	if annotations == nil {
		annotations = map[string]string{}
	}
	annotations[ackv1alpha1.AnnotationAdopted] = "true"
	mo.SetAnnotations(annotations)
}

// IsReadOnly returns true if the object asks the controller to only observe
// the backend resource
func IsReadOnly(mo metav1.Object) bool {
	return isTrue(mo, ackv1alpha1.AnnotationReadOnly)
}

// GetAdoption returns the parsed adoption marker of the object, or nil if
// the object carries no adoption policy.
//
// adopt keeps failing until the resource is found, adopt-or-create creates
// the resource if it does not exist.
func GetAdoption(mo metav1.Object) (*Adoption, error) {
	policy, ok := get(mo, ackv1alpha1.AnnotationAdoptionPolicy)
	if !ok || policy == "" {
		return nil, nil
	}
	p := AdoptionPolicy(strings.ToLower(strings.TrimSpace(policy)))
	if p != AdoptionPolicyAdopt && p != AdoptionPolicyAdoptOrCreate {
		return nil, fmt.Errorf("%w %q", ErrUnknownAdoptionPolicy, policy)
	}
	a := &Adoption{Policy: p, Fields: map[string]string{}}
	raw, ok := get(mo, ackv1alpha1.AnnotationAdoptionFields)
	if !ok || strings.TrimSpace(raw) == "" {
		return a, nil
	}
	if err := json.Unmarshal([]byte(raw), &a.Fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAdoptionFields, err)
	}
	a.ID = a.Fields[AdoptionFieldID]
	return a, nil
}

// GetDeletionPolicy returns the deletion policy set on the object, or the
// empty string when the annotation is absent
func GetDeletionPolicy(mo metav1.Object) (ackv1alpha1.DeletionPolicy, error) {
	v, ok := get(mo, ackv1alpha1.AnnotationDeletionPolicy)
	if !ok {
		return "", nil
	}
	return ackv1alpha1.ParseDeletionPolicy(v)
}

// GetRegion returns the region annotation of the object, or the empty string
func GetRegion(mo metav1.Object) ackv1alpha1.AWSRegion {
	v, _ := get(mo, ackv1alpha1.AnnotationRegion)
	return ackv1alpha1.AWSRegion(v)
}
