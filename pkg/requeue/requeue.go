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

package requeue

import (
	"errors"
	"time"
)

// DefaultRequeueAfterDuration is how long a resource waiting on something
// outside itself sits before the next attempt
const DefaultRequeueAfterDuration = 30 * time.Second

// RequeueNeededAfter marks an expected, non-failing wait: a dependency that
// is not ready yet. The reconciler requeues the resource after Duration and
// does not count the attempt as a retry.
type RequeueNeededAfter struct {
	err      error
	duration time.Duration
}

var _ error = &RequeueNeededAfter{}

// Needed asks for a requeue after DefaultRequeueAfterDuration
func Needed(err error) *RequeueNeededAfter {
	return NeededAfter(err, DefaultRequeueAfterDuration)
}

// NeededAfter asks for a requeue after the supplied duration
func NeededAfter(err error, duration time.Duration) *RequeueNeededAfter {
	return &RequeueNeededAfter{err: err, duration: duration}
}

func (e *RequeueNeededAfter) Error() string {
	if e == nil || e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *RequeueNeededAfter) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

func (e *RequeueNeededAfter) Duration() time.Duration {
	if e == nil {
		return 0
	}
	return e.duration
}

// AfterDuration returns the requeue duration carried by err
func AfterDuration(err error) (time.Duration, bool) {
	var after *RequeueNeededAfter
	if errors.As(err, &after) {
		return after.Duration(), true
	}
	return 0, false
}
