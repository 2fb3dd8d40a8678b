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

package compare_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/compare"
)

func TestDifferentAt(t *testing.T) {
	require := require.New(t)

	d := compare.NewDelta()
	d.Add("", "a", nil)
	require.True(d.DifferentAt(""))

	d = compare.NewDelta()
	d.Add("Spec.Name", "old", "new")
	require.True(d.DifferentAt("Spec"))
	require.True(d.DifferentAt("Spec.Name"))
	// no top-level field "Name"
	require.False(d.DifferentAt("Name"))
	// diff exists but was not added to Delta
	require.False(d.DifferentAt("Spec.Direction"))
	// subject longer than diff Path
	require.False(d.DifferentAt("Spec.Name.Suffix"))
}

func TestDifferentExcept(t *testing.T) {
	require := require.New(t)

	d := compare.NewDelta()
	d.Add("", "a", nil)
	require.False(d.DifferentExcept(""))

	d = compare.NewDelta()
	d.Add("Spec.Associations", []string{"vpc-1"}, []string{"vpc-2"})
	require.True(d.DifferentExcept("Spec.Name"))
	require.False(d.DifferentExcept("Spec.Associations"))

	d.Add("Spec.TargetIPs", "10.0.0.1", "10.0.0.2")
	require.True(d.DifferentExcept("Spec.Associations"))
	require.False(d.DifferentExcept("Spec.Associations", "Spec.TargetIPs"))
}

func TestDifferentAtAny(t *testing.T) {
	require := require.New(t)

	d := compare.NewDelta()
	require.True(d.Empty())
	d.Add("Spec.Direction", "INBOUND", "OUTBOUND")
	d.Add("Spec.Name", "a", "b")
	require.False(d.Empty())

	require.Equal(
		[]string{"Spec.Direction"},
		d.DifferentAtAny("Spec.Direction", "Spec.SecurityGroupIDs"),
	)
	require.Empty(d.DifferentAtAny("Spec.SecurityGroupIDs"))
	require.Equal([]string{"Spec.Direction", "Spec.Name"}, d.Paths())

	var nilDelta *compare.Delta
	require.True(nilDelta.Empty())
}
