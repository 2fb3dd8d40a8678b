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

package config

import (
	"strings"

	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Option narrows what Validate accepts
type Option struct {
	// managed lists the resource kinds served by the controller. Per-kind
	// flags naming any other kind are rejected.
	managed []schema.GroupVersionKind
}

// WithGVKs restricts per-kind flags to the supplied resource kinds
func WithGVKs(gvks []schema.GroupVersionKind) Option {
	return Option{managed: gvks}
}

// mergeOptions folds opts into one Option; later non-empty values win
func mergeOptions(opts []Option) Option {
	return lo.Reduce(opts, func(merged Option, opt Option, _ int) Option {
		if len(opt.managed) > 0 {
			merged.managed = opt.managed
		}
		return merged
	}, Option{})
}

// hasKind returns true if kind is managed, ignoring case
func (o Option) hasKind(kind string) bool {
	return lo.ContainsBy(o.managed, func(gvk schema.GroupVersionKind) bool {
		return strings.EqualFold(gvk.Kind, kind)
	})
}
