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

package featuregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEnabled(t *testing.T) {
	gates := FeatureGates{
		"enabledFeature":  {Stage: Alpha, Enabled: true},
		"disabledFeature": {Stage: Beta, Enabled: false},
	}

	tests := []struct {
		name     string
		feature  string
		expected bool
	}{
		{"Enabled feature", "enabledFeature", true},
		{"Disabled feature", "disabledFeature", false},
		{"Non-existent feature", "nonExistentFeature", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gates.IsEnabled(tt.feature))
		})
	}
}

func TestGetFeature(t *testing.T) {
	gates := FeatureGates{
		"existingFeature": {Stage: GA, Enabled: true},
	}

	feature, found := gates.GetFeature("existingFeature")
	require.True(t, found)
	assert.Equal(t, Feature{Stage: GA, Enabled: true}, feature)

	_, found = gates.GetFeature("nonExistentFeature")
	assert.False(t, found)
}

func TestDefaultFeatureGates(t *testing.T) {
	gates := GetDefaultFeatureGates()
	assert.True(t, gates.IsEnabled(ResourceAdoption))
	assert.True(t, gates.IsEnabled(ReadOnlyResources))
	assert.True(t, gates.IsEnabled(DependencyOrderedDeletion))
	assert.Equal(t, []string{DependencyOrderedDeletion, ReadOnlyResources, ResourceAdoption}, gates.GetFeatureNames())

	// the defaults are copied, not shared
	gates[ResourceAdoption] = Feature{Stage: Beta, Enabled: false}
	assert.True(t, GetDefaultFeatureGates().IsEnabled(ResourceAdoption))
}

func TestGetFeatureGatesWithOverrides(t *testing.T) {
	// Temporarily replace defaultFeatureGates for this test
	oldDefaultFeatureGates := defaultACKFeatureGates
	defaultACKFeatureGates = FeatureGates{
		"feature1": {Stage: Alpha, Enabled: false},
		"feature2": {Stage: Beta, Enabled: true},
		"feature3": {Stage: GA, Enabled: false},
	}
	defer func() { defaultACKFeatureGates = oldDefaultFeatureGates }()

	gates, err := GetFeatureGatesWithOverrides(map[string]bool{
		"feature1": true,
		"feature2": false,
	})
	require.NoError(t, err)
	assert.True(t, gates.IsEnabled("feature1"))
	assert.False(t, gates.IsEnabled("feature2"))
	assert.False(t, gates.IsEnabled("feature3"))
	assert.Len(t, gates, 3)
	assert.Equal(t, []string{"feature1"}, gates.GetEnabledFeatures())

	_, err = GetFeatureGatesWithOverrides(map[string]bool{"feature4": true})
	assert.ErrorContains(t, err, "unknown feature gate: feature4")
}
