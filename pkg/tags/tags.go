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

package tags

import (
	"sort"
	"strings"
)

const (
	// SystemTagPrefix is the key prefix of tags owned by the controller.
	// User-supplied diffs never add, change or remove these keys.
	SystemTagPrefix = "services.k8s.aws/"
	// AWSTagPrefix is the key prefix of tags managed by AWS itself, which
	// cannot be modified through the tagging APIs.
	AWSTagPrefix = "aws:"

	// ServiceAliasTagFormat is expanded to the service alias, e.g.
	// route53resolver
	ServiceAliasTagFormat = "%CONTROLLER_SERVICE%"
	// ControllerVersionTagFormat is expanded to the controller version
	ControllerVersionTagFormat = "%CONTROLLER_VERSION%"
	// NamespaceTagFormat is expanded to the namespace of the resource
	NamespaceTagFormat = "%K8S_NAMESPACE%"
	// ResourceNameTagFormat is expanded to the name of the resource
	ResourceNameTagFormat = "%K8S_RESOURCE_NAME%"
)

// Tags represents the AWS tags which will be added to the AWS resource.
// Inside aws-sdk-go, Tags are represented using multiple types, Ex: map of
// string, list of structs etc...
// Tags type will be used as a hub/mediator to merge tags represented
// using different types.
type Tags map[string]string

// NewTags returns Tags with empty tags
func NewTags() Tags {
	return map[string]string{}
}

// IsSystemKey returns true if the tag key is owned by the controller
func IsSystemKey(key string) bool {
	return strings.HasPrefix(key, SystemTagPrefix)
}

// IsAWSKey returns true if the tag key is managed by AWS
func IsAWSKey(key string) bool {
	return strings.HasPrefix(key, AWSTagPrefix)
}

// IsReservedKey returns true if the tag key must never be driven by a user
// diff
func IsReservedKey(key string) bool {
	return IsSystemKey(key) || IsAWSKey(key)
}

// User returns a copy of the tags that excludes system and AWS managed keys
func (t Tags) User() Tags {
	res := NewTags()
	for k, v := range t {
		if !IsReservedKey(k) {
			res[k] = v
		}
	}
	return res
}

// Copy returns a shallow copy of the tags
func (t Tags) Copy() Tags {
	res := make(Tags, len(t))
	for k, v := range t {
		res[k] = v
	}
	return res
}

// Keys returns the sorted tag keys
func (t Tags) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithDefaults returns the user tags combined with the controller default
// tags. Any user key carrying the system prefix is dropped and the default
// value is used instead. Non-system default tags only fill keys the user did
// not set.
func WithDefaults(user Tags, defaults Tags) Tags {
	res := NewTags()
	for k, v := range user {
		if IsSystemKey(k) {
			continue
		}
		res[k] = v
	}
	for k, v := range defaults {
		if IsSystemKey(k) {
			res[k] = v
			continue
		}
		if _, found := res[k]; !found {
			res[k] = v
		}
	}
	return res
}

// Difference splits the tags going from `from` to `to`. A key whose value
// changed is part of both added (new value) and removed (old value).
func Difference(from, to Tags) (added, unchanged, removed Tags) {
	added, unchanged, removed = NewTags(), NewTags(), NewTags()
	for k, v := range to {
		if old, ok := from[k]; ok && old == v {
			unchanged[k] = v
			continue
		}
		added[k] = v
	}
	for k, v := range from {
		if _, ok := unchanged[k]; !ok {
			removed[k] = v
		}
	}
	return added, unchanged, removed
}
