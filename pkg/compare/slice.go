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

package compare

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// EqualStringSets returns true if a and b hold the same strings with the
// same multiplicity, in any order. A nil element counts as "".
func EqualStringSets(a, b []*string) bool {
	if len(a) != len(b) {
		return false
	}
	return cmp.Equal(
		aws.ToStringSlice(a), aws.ToStringSlice(b),
		cmpopts.SortSlices(func(x, y string) bool { return x < y }),
	)
}
