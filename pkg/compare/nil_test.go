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

func TestNilDifference(t *testing.T) {
	require := require.New(t)

	var nullPtr *string
	empty := ""
	var nullMap map[string]string
	var nullSlice []*string

	require.False(compare.HasNilDifference(nil, nil))
	require.False(compare.HasNilDifference("rslvr-out-1", "rslvr-out-2"))
	require.True(compare.HasNilDifference(nil, "rslvr-out-2"))
	require.True(compare.HasNilDifference("rslvr-out-1", nil))

	require.False(compare.HasNilDifference(nullPtr, nil))
	require.True(compare.HasNilDifference(nullPtr, &empty))

	require.False(compare.HasNilDifference(nullMap, nil))
	require.True(compare.HasNilDifference(nullMap, map[string]string{}))

	require.False(compare.HasNilDifference(nullSlice, nil))
	require.True(compare.HasNilDifference(nullSlice, []*string{}))

	require.True(compare.IsNil(nullPtr))
	require.True(compare.IsNotNil(&empty))
}
