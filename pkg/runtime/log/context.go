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

package log

import (
	"context"

	"github.com/go-logr/logr"

	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

type contextKey struct{}

// FromContext returns the resource logger stored in ctx. Without one, the
// returned logger discards everything.
func FromContext(ctx context.Context) acktypes.Logger {
	if v, ok := ctx.Value(contextKey{}).(acktypes.Logger); ok {
		return v
	}
	return &ResourceLogger{log: logr.Discard()}
}

// IntoContext returns a copy of ctx carrying the supplied logger
func IntoContext(ctx context.Context, l acktypes.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}
