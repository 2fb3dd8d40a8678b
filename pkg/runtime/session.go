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
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"k8s.io/apimachinery/pkg/runtime/schema"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
)

const (
	appName = "aws-controllers-k8s"
	// userAgentMiddlewareID names the build step that stamps the controller
	// identity on every request
	userAgentMiddlewareID = appName + "/user-agent"
)

// NewAWSConfig returns the SDK configuration used for the resources of the
// supplied kind in the supplied region
func (c *serviceController) NewAWSConfig(
	ctx context.Context,
	region ackv1alpha1.AWSRegion,
	endpointURL string,
	roleARN ackv1alpha1.AWSResourceName,
	groupVersionKind schema.GroupVersionKind,
) (aws.Config, error) {
	ua := formatUserAgent(
		appName,
		groupVersionKind.Group+"-"+c.VersionInfo.GitVersion,
		"GitCommit/"+c.VersionInfo.GitCommit,
		"BuildDate/"+c.VersionInfo.BuildDate,
		"CRDKind/"+groupVersionKind.Kind,
		"CRDVersion/"+groupVersionKind.Version,
	)

	awsCfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(string(region)),
		config.WithAPIOptions(withUserAgent(ua)),
	)
	if err != nil {
		return awsCfg, err
	}

	if endpointURL != "" {
		awsCfg.BaseEndpoint = aws.String(endpointURL)
	}

	if roleARN != "" {
		client := sts.NewFromConfig(awsCfg)
		creds := stscreds.NewAssumeRoleProvider(client, string(roleARN), func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = appName + "-" + c.ServiceAlias
		})
		awsCfg.Credentials = aws.NewCredentialsCache(creds)
	}
	return awsCfg, nil
}

// withUserAgent returns the API option adding the supplied value to the
// User-Agent header. The SDK's own user agent is prepended to it later in
// the build step.
func withUserAgent(value string) []func(*middleware.Stack) error {
	return []func(stack *middleware.Stack) error{
		func(stack *middleware.Stack) error {
			return stack.Build.Add(middleware.BuildMiddlewareFunc(userAgentMiddlewareID, func(
				ctx context.Context, in middleware.BuildInput, next middleware.BuildHandler,
			) (
				middleware.BuildOutput, middleware.Metadata, error,
			) {
				if req, ok := in.Request.(*smithyhttp.Request); ok {
					req.Header.Set("User-Agent", value)
				}
				return next.HandleBuild(ctx, in)
			}), middleware.Before)
		},
	}
}

func formatUserAgent(name, version string, extra ...string) string {
	ua := fmt.Sprintf("%s/%s", name, version)
	if len(extra) > 0 {
		ua += fmt.Sprintf(" (%s)", strings.Join(extra, "; "))
	}
	return ua
}
