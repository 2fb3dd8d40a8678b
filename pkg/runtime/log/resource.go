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
	"strings"

	"github.com/go-logr/logr"

	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

const debugLevel = 1

// ResourceLogger is a Logger that writes the identifying values of one
// resource with every message
type ResourceLogger struct {
	log        logr.Logger
	res        acktypes.AWSResource
	blockDepth int
}

var _ acktypes.Logger = &ResourceLogger{}

// NewResourceLogger returns a ResourceLogger for the supplied resource
func NewResourceLogger(
	log logr.Logger,
	res acktypes.AWSResource,
	additionalValues ...interface{},
) *ResourceLogger {
	return &ResourceLogger{
		log: AdaptResource(log, res, additionalValues...),
		res: res,
	}
}

// WithValues adapts the internal logger with a set of additional key/value
// data
func (rl *ResourceLogger) WithValues(values ...interface{}) {
	rl.log = rl.log.WithValues(values...)
}

// IsDebugEnabled returns true when debug messages are written
func (rl *ResourceLogger) IsDebugEnabled() bool {
	return rl.log.V(debugLevel).Enabled()
}

func (rl *ResourceLogger) Debug(msg string, additionalValues ...interface{}) {
	rl.log.V(debugLevel).Info(msg, additionalValues...)
}

func (rl *ResourceLogger) Info(msg string, additionalValues ...interface{}) {
	rl.log.V(0).Info(msg, additionalValues...)
}

// Enter logs an entry to a function or code block at debug level
func (rl *ResourceLogger) Enter(name string, additionalValues ...interface{}) {
	if !rl.IsDebugEnabled() {
		return
	}
	rl.blockDepth++
	rl.log.V(debugLevel).Info(strings.Repeat(">", rl.blockDepth)+" "+name, additionalValues...)
}

// Exit logs an exit from a function or code block at debug level
func (rl *ResourceLogger) Exit(name string, err error, additionalValues ...interface{}) {
	if !rl.IsDebugEnabled() {
		return
	}
	if err != nil {
		additionalValues = append(additionalValues, "error", err.Error())
	}
	depth := rl.blockDepth
	if depth < 1 {
		depth = 1
	}
	rl.log.V(debugLevel).Info(strings.Repeat("<", depth)+" "+name, additionalValues...)
	if rl.blockDepth > 0 {
		rl.blockDepth--
	}
}

// Trace logs an entry to a function or code block and returns a functor
// that can be called to log the exit of the function or code block
func (rl *ResourceLogger) Trace(name string, additionalValues ...interface{}) acktypes.TraceExiter {
	rl.Enter(name, additionalValues...)
	return func(err error, args ...interface{}) {
		rl.Exit(name, err, args...)
	}
}

// AdaptResource returns a logger with log values set for the resource's kind,
// namespace, name, etc
func AdaptResource(
	log logr.Logger,
	res acktypes.AWSResource,
	additionalValues ...interface{},
) logr.Logger {
	metaObj := res.MetaObject()
	vals := []interface{}{
		"kind", res.RuntimeObject().GetObjectKind().GroupVersionKind().Kind,
		"namespace", metaObj.GetNamespace(),
		"name", metaObj.GetName(),
		"generation", metaObj.GetGeneration(),
	}
	if id := res.Identifiers().ID(); id != "" {
		vals = append(vals, "id", id)
	}
	vals = append(vals, additionalValues...)
	return log.WithValues(vals...)
}
