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

package runtime

import (
	"strings"

	"github.com/samber/lo"
	rtclient "sigs.k8s.io/controller-runtime/pkg/client"

	ackconfig "github.com/aws-controllers-k8s/route53resolver-controller/pkg/config"
	acktags "github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

const (
	// MissingImageTagValue is the placeholder value when the controller
	// image tag (release semver) cannot be determined.
	MissingImageTagValue = "unknown"
)

// tagValueReplacer returns the replacer expanding every tag format in a
// configured default tag value for the supplied resource
func tagValueReplacer(
	obj rtclient.Object,
	md acktypes.ServiceControllerMetadata,
) *strings.Replacer {
	version := md.GitVersion
	// Locally built images carry no version ldflags
	if version == "" {
		version = MissingImageTagValue
	}
	return strings.NewReplacer(
		acktags.ServiceAliasTagFormat, md.ServiceAlias,
		acktags.ControllerVersionTagFormat, version,
		acktags.NamespaceTagFormat, obj.GetNamespace(),
		acktags.ResourceNameTagFormat, obj.GetName(),
	)
}

// GetDefaultTags returns the controller's default tags for the supplied
// resource. Every configured "key=value" pair has its value expanded;
// malformed pairs and pairs with an empty key or value are skipped.
func GetDefaultTags(
	config *ackconfig.Config,
	obj rtclient.Object,
	md acktypes.ServiceControllerMetadata,
) acktags.Tags {
	defaultTags := acktags.NewTags()
	if obj == nil || config == nil || len(config.ResourceTags) == 0 {
		return defaultTags
	}
	replacer := tagValueReplacer(obj, md)
	for _, pair := range config.ResourceTags {
		kv := lo.Map(strings.Split(pair, "="), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			continue
		}
		defaultTags[kv[0]] = replacer.Replace(kv[1])
	}
	return defaultTags
}
