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

package tags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	acktags "github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
)

func TestNewTags(t *testing.T) {
	assert := assert.New(t)
	tags := acktags.NewTags()
	assert.NotNil(tags)
	assert.Empty(tags)
}

func TestTags_User(t *testing.T) {
	all := acktags.Tags{
		"k1":                                  "v1",
		"services.k8s.aws/controller-version": "route53resolver-v1.0.0",
		"aws:cloudformation:stack-name":       "stack",
	}
	assert.Equal(t, acktags.Tags{"k1": "v1"}, all.User())
	assert.Equal(t, []string{"aws:cloudformation:stack-name", "k1", "services.k8s.aws/controller-version"}, all.Keys())
}

func TestWithDefaults(t *testing.T) {
	assert := assert.New(t)

	user := acktags.Tags{
		"k1":                         "v1",
		"team":                       "dns",
		"services.k8s.aws/namespace": "spoofed",
	}
	defaults := acktags.Tags{
		"team":                       "platform",
		"services.k8s.aws/namespace": "default",
	}
	res := acktags.WithDefaults(user, defaults)
	assert.Equal(acktags.Tags{
		"k1":                         "v1",
		"team":                       "dns",
		"services.k8s.aws/namespace": "default",
	}, res)
	// inputs are not mutated
	assert.Equal("spoofed", user["services.k8s.aws/namespace"])

	assert.Equal(acktags.Tags{}, acktags.WithDefaults(nil, nil))
}

func TestDifference(t *testing.T) {
	assert := assert.New(t)

	observed := acktags.Tags{"k1": "v1", "k2": "v2"}
	desired := acktags.Tags{"k2": "v2", "k3": "v3", "k4": "v4"}
	added, unchanged, removed := acktags.Difference(observed, desired)
	assert.Equal(acktags.Tags{"k3": "v3", "k4": "v4"}, added)
	assert.Equal(acktags.Tags{"k2": "v2"}, unchanged)
	assert.Equal(acktags.Tags{"k1": "v1"}, removed)

	observed = acktags.Tags{"k1": "v1"}
	desired = acktags.Tags{"k1": "v11", "k3": "v3"}
	added, unchanged, removed = acktags.Difference(observed, desired)
	assert.Equal(acktags.Tags{"k1": "v11", "k3": "v3"}, added)
	assert.Empty(unchanged)
	assert.Equal(acktags.Tags{"k1": "v1"}, removed)

	added, unchanged, removed = acktags.Difference(nil, nil)
	assert.Empty(added)
	assert.Empty(unchanged)
	assert.Empty(removed)
}
