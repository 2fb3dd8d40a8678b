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
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime/schema"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/featuregate"
)

func TestParseReconcileFlagArgument(t *testing.T) {
	tests := []struct {
		flagArgument   string
		expectedKey    string
		expectedVal    int
		expectedErr    bool
		expectedErrMsg string
	}{
		// Test valid flag arguments
		{"ResolverRule=1", "ResolverRule", 1, false, ""},
		{"ResolverEndpoint=123456", "ResolverEndpoint", 123456, false, ""},
		{"key=600", "key", 600, false, ""},
		{"k=0", "k", 0, false, ""},

		// Test invalid flag arguments
		{"key", "", 0, true, "invalid flag argument format: expected key=value"},
		{"key=", "", 0, true, "missing value in flag argument"},
		{"=value", "", 0, true, "missing key in flag argument"},
		{"key=value1=value2", "", 0, true, "invalid flag argument format: expected key=value"},
		{"key=a", "", 0, true, "invalid value in flag argument: strconv.Atoi: parsing \"a\": invalid syntax"},
		{"key=-1", "", 0, true, "invalid value in flag argument: expected non-negative integer, got -1"},
		{"key=1.1", "", 0, true, "invalid value in flag argument: strconv.Atoi: parsing \"1.1\": invalid syntax"},
	}
	for _, test := range tests {
		t.Run(test.flagArgument, func(t *testing.T) {
			key, val, err := parseReconcileFlagArgument(test.flagArgument)
			if test.expectedErr {
				require.EqualError(t, err, test.expectedErrMsg)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, test.expectedKey, key)
			assert.Equal(t, test.expectedVal, val)
		})
	}
}

func parsedConfig(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := &Config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlagSet(fs)
	require.NoError(t, fs.Parse(args))
	// skip STS discovery
	cfg.AccountID = "111111111111"
	return cfg
}

func TestBindFlagSet_Defaults(t *testing.T) {
	t.Setenv("AWS_REGION", "us-west-2")
	t.Setenv("AWS_ENDPOINT_URL", "")
	cfg := parsedConfig(t)

	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, ackv1alpha1.DeletionPolicyDelete, cfg.DeletionPolicy)
	assert.Equal(t, 4, cfg.MaxConcurrentSyncs)
	assert.Equal(t, 10, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.BackoffInitial)
	assert.Equal(t, DefaultResourceTags, cfg.ResourceTags)

	require.NoError(t, cfg.Validate(context.Background()))
	assert.True(t, cfg.FeatureGates.IsEnabled(featuregate.ResourceAdoption))
}

func TestValidate(t *testing.T) {
	gvks := WithGVKs([]schema.GroupVersionKind{
		{Group: "route53resolver.services.k8s.aws", Version: "v1alpha1", Kind: "ResolverEndpoint"},
		{Group: "route53resolver.services.k8s.aws", Version: "v1alpha1", Kind: "ResolverRule"},
	})
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name: "valid overrides",
			args: []string{
				"--aws-region=eu-west-1",
				"--deletion-policy=retain",
				"--reconcile-resource-resync-seconds=ResolverRule=60",
				"--feature-gates=ReadOnlyResources=false",
				"--aws-endpoint-url=http://localhost:4566",
			},
		},
		{
			name: "role to assume",
			args: []string{
				"--aws-region=eu-west-1",
				"--aws-role-arn=arn:aws:iam::123456789012:role/resolver-controller",
			},
		},
		{
			name:    "role ARN of another service",
			args:    []string{"--aws-region=eu-west-1", "--aws-role-arn=arn:aws:s3:::bucket"},
			wantErr: "not an IAM role ARN",
		},
		{
			name:    "missing region",
			args:    []string{"--aws-region="},
			wantErr: "AWS region is missing",
		},
		{
			name:    "bad endpoint",
			args:    []string{"--aws-region=eu-west-1", "--aws-endpoint-url=localhost"},
			wantErr: "invalid service endpoint",
		},
		{
			name:    "unknown resource",
			args:    []string{"--aws-region=eu-west-1", "--reconcile-resource-resync-seconds=Bucket=60"},
			wantErr: "not managed by this controller",
		},
		{
			name:    "unknown feature gate",
			args:    []string{"--aws-region=eu-west-1", "--feature-gates=Teleport=true"},
			wantErr: "unknown feature gate",
		},
		{
			name:    "bad feature gate value",
			args:    []string{"--aws-region=eu-west-1", "--feature-gates=ResourceAdoption=maybe"},
			wantErr: "invalid value for feature gate",
		},
		{
			name:    "no workers",
			args:    []string{"--aws-region=eu-west-1", "--max-concurrent-syncs=0"},
			wantErr: "max-concurrent-syncs",
		},
		{
			name:    "backoff max below initial",
			args:    []string{"--aws-region=eu-west-1", "--backoff-initial=10s", "--backoff-max=1s"},
			wantErr: "invalid backoff",
		},
		{
			name:    "bad health probe address",
			args:    []string{"--aws-region=eu-west-1", "--health-probe-addr=probe"},
			wantErr: "health-probe-addr",
		},
		{
			name: "metrics disabled",
			args: []string{"--aws-region=eu-west-1", "--metrics-addr=0"},
		},
		{
			name:    "jitter out of range",
			args:    []string{"--aws-region=eu-west-1", "--backoff-jitter=1.5"},
			wantErr: "backoff-jitter",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parsedConfig(t, tt.args...)
			err := cfg.Validate(context.Background(), gvks)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidate_Parsed(t *testing.T) {
	cfg := parsedConfig(t,
		"--aws-region=eu-west-1",
		"--deletion-policy=retain",
		"--reconcile-resource-resync-seconds=ResolverRule=60",
		"--feature-gates=ReadOnlyResources=false",
	)
	require.NoError(t, cfg.Validate(context.Background()))

	assert.Equal(t, ackv1alpha1.DeletionPolicyRetain, cfg.DeletionPolicy)
	assert.False(t, cfg.FeatureGates.IsEnabled(featuregate.ReadOnlyResources))
	assert.True(t, cfg.FeatureGates.IsEnabled(featuregate.ResourceAdoption))

	d, ok := cfg.GetReconcileResourceResyncSeconds("resolverrule")
	assert.True(t, ok)
	assert.Equal(t, time.Minute, d)
	_, ok = cfg.GetReconcileResourceResyncSeconds("ResolverEndpoint")
	assert.False(t, ok)
}

func TestBindFlagSet_RejectsBadDeletionPolicy(t *testing.T) {
	cfg := &Config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlagSet(fs)
	assert.Error(t, fs.Parse([]string{"--deletion-policy=shred"}))
}

type fakeSTS struct {
	account *string
	err     error
}

func (f *fakeSTS) GetCallerIdentity(
	context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options),
) (*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Account: f.account}, nil
}

func TestSetAccountIDFrom(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.setAccountIDFrom(context.Background(), &fakeSTS{account: aws.String("123456789012")}))
	assert.Equal(t, "123456789012", cfg.AccountID)

	err := cfg.setAccountIDFrom(context.Background(), &fakeSTS{err: fmt.Errorf("expired token")})
	assert.ErrorContains(t, err, "expired token")

	err = cfg.setAccountIDFrom(context.Background(), &fakeSTS{})
	assert.Error(t, err)
}
