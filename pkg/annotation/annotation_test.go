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

package annotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/annotation"
)

func meta(annotations map[string]string) *metav1.ObjectMeta {
	return &metav1.ObjectMeta{Name: "ep", Namespace: "default", Annotations: annotations}
}

func TestIsAdopted(t *testing.T) {
	assert.True(t, annotation.IsAdopted(meta(map[string]string{ackv1alpha1.AnnotationAdopted: "true"})))
	assert.True(t, annotation.IsAdopted(meta(map[string]string{ackv1alpha1.AnnotationAdopted: "True"})))
	assert.False(t, annotation.IsAdopted(meta(map[string]string{ackv1alpha1.AnnotationAdopted: "false"})))
	assert.False(t, annotation.IsAdopted(meta(nil)))
	assert.False(t, annotation.IsAdopted(nil))

	mo := meta(nil)
	annotation.SetAdopted(mo)
	assert.True(t, annotation.IsAdopted(mo))
}

func TestIsReadOnly(t *testing.T) {
	assert.True(t, annotation.IsReadOnly(meta(map[string]string{ackv1alpha1.AnnotationReadOnly: "true"})))
	assert.False(t, annotation.IsReadOnly(meta(map[string]string{ackv1alpha1.AnnotationReadOnly: "yes"})))
	assert.False(t, annotation.IsReadOnly(meta(nil)))
}

func TestGetAdoption(t *testing.T) {
	tests := []struct {
		name        string
		annotations map[string]string
		want        *annotation.Adoption
		wantErr     error
	}{
		{
			name: "no policy",
			annotations: map[string]string{
				ackv1alpha1.AnnotationAdoptionFields: `{"id": "rslvr-out-1"}`,
			},
		},
		{
			name: "adopt with id",
			annotations: map[string]string{
				ackv1alpha1.AnnotationAdoptionPolicy: "adopt",
				ackv1alpha1.AnnotationAdoptionFields: `{"id": "rslvr-out-1"}`,
			},
			want: &annotation.Adoption{
				Policy: annotation.AdoptionPolicyAdopt,
				ID:     "rslvr-out-1",
				Fields: map[string]string{"id": "rslvr-out-1"},
			},
		},
		{
			name: "adopt-or-create without fields",
			annotations: map[string]string{
				ackv1alpha1.AnnotationAdoptionPolicy: "adopt-or-create",
			},
			want: &annotation.Adoption{
				Policy: annotation.AdoptionPolicyAdoptOrCreate,
				Fields: map[string]string{},
			},
		},
		{
			name: "unknown policy",
			annotations: map[string]string{
				ackv1alpha1.AnnotationAdoptionPolicy: "steal",
			},
			wantErr: annotation.ErrUnknownAdoptionPolicy,
		},
		{
			name: "malformed fields",
			annotations: map[string]string{
				ackv1alpha1.AnnotationAdoptionPolicy: "adopt",
				ackv1alpha1.AnnotationAdoptionFields: `{"id":`,
			},
			wantErr: annotation.ErrInvalidAdoptionFields,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := annotation.GetAdoption(meta(tt.annotations))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	a, _ := annotation.GetAdoption(meta(map[string]string{ackv1alpha1.AnnotationAdoptionPolicy: "adopt-or-create"}))
	assert.True(t, a.OrCreate())
	var none *annotation.Adoption
	assert.False(t, none.OrCreate())
}

func TestGetDeletionPolicy(t *testing.T) {
	p, err := annotation.GetDeletionPolicy(meta(map[string]string{ackv1alpha1.AnnotationDeletionPolicy: "retain"}))
	require.NoError(t, err)
	assert.Equal(t, ackv1alpha1.DeletionPolicyRetain, p)

	p, err = annotation.GetDeletionPolicy(meta(nil))
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = annotation.GetDeletionPolicy(meta(map[string]string{ackv1alpha1.AnnotationDeletionPolicy: "shred"}))
	assert.ErrorIs(t, err, ackv1alpha1.ErrInvalidDeletionPolicy)
}

func TestGetRegion(t *testing.T) {
	assert.Equal(t, ackv1alpha1.AWSRegion("eu-west-1"),
		annotation.GetRegion(meta(map[string]string{ackv1alpha1.AnnotationRegion: "eu-west-1"})))
	assert.Empty(t, annotation.GetRegion(meta(nil)))
}
