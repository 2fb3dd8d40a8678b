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

package types

import (
	"math"
	"time"
)

// Exponential type helps in implementing exponential backoff strategy.
type Exponential struct {
	// Initial holds the delay used for the first retry.
	Initial time.Duration
	// Factor holds the factor that the delay time will be multiplied
	// by on each iteration. If this is zero, a factor of two will be used.
	Factor float64
	// MaxDelay holds the maximum delay between two attempts.
	// If this is zero, there is no maximum delay.
	MaxDelay time.Duration
}

// GetBackoff returns the delay before retry number numAttempt, counting from
// zero: Initial * Factor^numAttempt, capped at MaxDelay.
func (l *Exponential) GetBackoff(numAttempt int) time.Duration {
	if l.Initial <= 0 {
		return 0
	}
	if numAttempt < 0 {
		numAttempt = 0
	}
	base := 2.0
	if l.Factor != 0 {
		base = l.Factor
	}
	delay := float64(l.Initial) * math.Pow(base, float64(numAttempt))
	return l.Cap(delay)
}

// Cap clamps a delay expressed in nanoseconds to MaxDelay
func (l *Exponential) Cap(delay float64) time.Duration {
	if l.MaxDelay > 0 && delay > float64(l.MaxDelay) {
		return l.MaxDelay
	}
	// float64 can overflow time.Duration long before it reaches +Inf
	if delay >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(delay)
}
