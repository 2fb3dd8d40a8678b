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

package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	svcsdk "github.com/aws/aws-sdk-go-v2/service/route53resolver"
	svcsdktypes "github.com/aws/aws-sdk-go-v2/service/route53resolver/types"
	"github.com/samber/lo"

	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	ackmetrics "github.com/aws-controllers-k8s/route53resolver-controller/pkg/metrics"
	ackrtlog "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime/log"
	acktags "github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
)

// TaggingAPI is the part of the Route 53 Resolver client used to read and
// write resource tags
type TaggingAPI interface {
	ListTagsForResource(context.Context, *svcsdk.ListTagsForResourceInput, ...func(*svcsdk.Options)) (*svcsdk.ListTagsForResourceOutput, error)
	TagResource(context.Context, *svcsdk.TagResourceInput, ...func(*svcsdk.Options)) (*svcsdk.TagResourceOutput, error)
	UntagResource(context.Context, *svcsdk.UntagResourceInput, ...func(*svcsdk.Options)) (*svcsdk.UntagResourceOutput, error)
}

// ListTags returns every tag set on the resource with the supplied ARN
func ListTags(
	ctx context.Context,
	client TaggingAPI,
	metrics *ackmetrics.Metrics,
	arn string,
) (res acktags.Tags, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("svcresource.ListTags")
	defer func() {
		exit(err)
	}()

	res = acktags.NewTags()
	var nextToken *string
	for {
		var resp *svcsdk.ListTagsForResourceOutput
		resp, err = client.ListTagsForResource(ctx, &svcsdk.ListTagsForResourceInput{
			ResourceArn: aws.String(arn),
			NextToken:   nextToken,
		})
		metrics.RecordAPICall("READ_MANY", "ListTagsForResource", err)
		if err != nil {
			err = ackerr.Classify(err)
			return nil, err
		}
		for _, t := range resp.Tags {
			if t.Key == nil {
				continue
			}
			res[*t.Key] = aws.ToString(t.Value)
		}
		if resp.NextToken == nil || *resp.NextToken == "" {
			break
		}
		nextToken = resp.NextToken
	}
	return res, nil
}

// SetTags writes the added tags and removes the removed keys on the resource
// with the supplied ARN. Removal happens first so that a key moving between
// the two sets ends up present.
func SetTags(
	ctx context.Context,
	client TaggingAPI,
	metrics *ackmetrics.Metrics,
	arn string,
	added acktags.Tags,
	removed []string,
) (err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("svcresource.SetTags")
	defer func() {
		exit(err)
	}()

	if len(removed) > 0 {
		_, err = client.UntagResource(ctx, &svcsdk.UntagResourceInput{
			ResourceArn: aws.String(arn),
			TagKeys:     removed,
		})
		metrics.RecordAPICall("UPDATE", "UntagResource", err)
		if err != nil {
			err = ackerr.Classify(err)
			return err
		}
	}
	if len(added) > 0 {
		_, err = client.TagResource(ctx, &svcsdk.TagResourceInput{
			ResourceArn: aws.String(arn),
			Tags:        SDKTags(added),
		})
		metrics.RecordAPICall("UPDATE", "TagResource", err)
		if err != nil {
			err = ackerr.Classify(err)
			return err
		}
	}
	return nil
}

// SDKTags converts Tags into the SDK representation, ordered by key
func SDKTags(t acktags.Tags) []svcsdktypes.Tag {
	return lo.Map(t.Keys(), func(k string, _ int) svcsdktypes.Tag {
		return svcsdktypes.Tag{Key: aws.String(k), Value: aws.String(t[k])}
	})
}

// ToACKTags converts the custom resource tag list into Tags. Entries without
// a key are skipped.
func ToACKTags(in []*svcapitypes.Tag) acktags.Tags {
	res := acktags.NewTags()
	for _, t := range in {
		if t == nil || t.Key == nil {
			continue
		}
		res[*t.Key] = aws.ToString(t.Value)
	}
	return res
}

// FromACKTags converts Tags into the custom resource tag list, ordered by
// key. Empty Tags become a nil list.
func FromACKTags(t acktags.Tags) []*svcapitypes.Tag {
	if len(t) == 0 {
		return nil
	}
	return lo.Map(t.Keys(), func(k string, _ int) *svcapitypes.Tag {
		return &svcapitypes.Tag{Key: aws.String(k), Value: aws.String(t[k])}
	})
}

// CreatorRequestID returns the idempotency token sent with a create call
func CreatorRequestID(name string, now time.Time) *string {
	return aws.String(fmt.Sprintf("%s-%d", name, now.UnixMilli()))
}
