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

package log_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	ackrtlog "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime/log"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/testutil"
)

func newCapture(verbosity int) (*[]string, funcr.Options) {
	lines := []string{}
	return &lines, funcr.Options{Verbosity: verbosity}
}

func TestResourceLogger(t *testing.T) {
	lines, opts := newCapture(1)
	log := funcr.New(func(prefix, args string) {
		*lines = append(*lines, args)
	}, opts)

	rd := testutil.DescriptorFor(testutil.EndpointKind)
	res := rd.ResourceFromRuntimeObject(testutil.NewEndpoint("default", "inbound"))
	require.NoError(t, res.SetIdentifiers(&ackv1alpha1.AWSIdentifiers{NameOrID: "rslvr-in-1"}))

	rlog := ackrtlog.NewResourceLogger(log, res, "account", "123456789012")
	require.True(t, rlog.IsDebugEnabled())

	exit := rlog.Trace("rm.sdkFind")
	rlog.Info("found")
	exit(errors.New("boom"))

	require.Len(t, *lines, 3)
	for _, l := range *lines {
		assert.Contains(t, l, `"kind"="ResolverEndpoint"`)
		assert.Contains(t, l, `"namespace"="default"`)
		assert.Contains(t, l, `"name"="inbound"`)
		assert.Contains(t, l, `"id"="rslvr-in-1"`)
		assert.Contains(t, l, `"account"="123456789012"`)
	}
	assert.Contains(t, (*lines)[0], `"msg"="> rm.sdkFind"`)
	assert.Contains(t, (*lines)[1], `"msg"="found"`)
	assert.Contains(t, (*lines)[2], `"msg"="< rm.sdkFind"`)
	assert.Contains(t, (*lines)[2], `"error"="boom"`)
}

func TestResourceLogger_DebugDisabled(t *testing.T) {
	lines, opts := newCapture(0)
	log := funcr.New(func(prefix, args string) {
		*lines = append(*lines, args)
	}, opts)

	rd := testutil.DescriptorFor(testutil.RuleKind)
	res := rd.ResourceFromRuntimeObject(testutil.NewRule("default", "corp", "rslvr-out-1"))
	rlog := ackrtlog.NewResourceLogger(log, res)

	exit := rlog.Trace("rm.sdkFind")
	rlog.Debug("hidden")
	exit(nil)
	rlog.Info("shown")

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], `"msg"="shown"`)
	assert.NotContains(t, (*lines)[0], `"id"=`)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	noop := ackrtlog.FromContext(ctx)
	assert.False(t, noop.IsDebugEnabled())
	noop.Trace("nothing")(nil)

	rd := testutil.DescriptorFor(testutil.EndpointKind)
	res := rd.ResourceFromRuntimeObject(testutil.NewEndpoint("default", "inbound"))
	rlog := ackrtlog.NewResourceLogger(funcr.New(func(string, string) {}, funcr.Options{}), res)

	ctx = ackrtlog.IntoContext(ctx, rlog)
	assert.Same(t, rlog, ackrtlog.FromContext(ctx))
}
