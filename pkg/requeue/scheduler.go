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
	"math/rand/v2"
	"time"

	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// Outcome is the result of one reconcile attempt as seen by the Scheduler
type Outcome int

const (
	// OutcomeSuccess means the resource reached its desired state
	OutcomeSuccess Outcome = iota
	// OutcomeInProgress means the backend resource is still converging
	OutcomeInProgress
	// OutcomeTransient means the attempt failed with a retryable error
	OutcomeTransient
	// OutcomePermanent means the attempt failed and retrying cannot help
	OutcomePermanent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeTransient:
		return "transient"
	case OutcomePermanent:
		return "permanent"
	}
	return "unknown"
}

// Action tells the dispatcher what to do with a key after a reconcile
type Action int

const (
	// ActionNone leaves the key alone until the next event
	ActionNone Action = iota
	// ActionRequeueAfter reconciles the key again after Decision.After
	ActionRequeueAfter
	// ActionTerminal stops retrying; the resource is Failed until its spec
	// changes
	ActionTerminal
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionRequeueAfter:
		return "requeue_after"
	case ActionTerminal:
		return "terminal"
	}
	return "unknown"
}

// Decision is the Scheduler's answer for one Outcome
type Decision struct {
	Action Action
	After  time.Duration
	// RetryCount is the retry count to persist on the resource
	RetryCount int
}

// Scheduler decides when a resource is reconciled again
type Scheduler struct {
	// Backoff computes the base delay before retry N
	Backoff acktypes.Exponential
	// Jitter stretches each delay by up to this fraction
	Jitter float64
	// MaxRetries is the number of consecutive transient failures tolerated
	// before a resource is Failed. Zero means unlimited.
	MaxRetries int
	// InProgressAfter is the delay used while a resource converges
	InProgressAfter time.Duration
	// ResyncPeriod is the delay before a synced resource is checked for
	// drift. Zero disables drift resync.
	ResyncPeriod time.Duration
	// Rand returns a number in [0, 1)
	Rand func() float64
}

// NewScheduler returns a Scheduler using the default in-progress delay and
// a process-wide random source
func NewScheduler(
	backoff acktypes.Exponential,
	jitter float64,
	maxRetries int,
	resyncPeriod time.Duration,
) *Scheduler {
	return &Scheduler{
		Backoff:         backoff,
		Jitter:          jitter,
		MaxRetries:      maxRetries,
		InProgressAfter: DefaultRequeueAfterDuration,
		ResyncPeriod:    resyncPeriod,
		Rand:            rand.Float64,
	}
}

// Decide returns the Decision for a reconcile that ended with outcome, given
// the number of consecutive transient failures that preceded it.
func (s *Scheduler) Decide(outcome Outcome, retryCount int) Decision {
	switch outcome {
	case OutcomeSuccess:
		if s.ResyncPeriod <= 0 {
			return Decision{Action: ActionNone}
		}
		return Decision{Action: ActionRequeueAfter, After: s.ResyncPeriod}
	case OutcomeInProgress:
		after := s.InProgressAfter
		if after <= 0 {
			after = DefaultRequeueAfterDuration
		}
		return Decision{Action: ActionRequeueAfter, After: after, RetryCount: retryCount}
	case OutcomeTransient:
		next := retryCount + 1
		if s.MaxRetries > 0 && next > s.MaxRetries {
			return Decision{Action: ActionTerminal, RetryCount: next}
		}
		return Decision{Action: ActionRequeueAfter, After: s.Delay(retryCount), RetryCount: next}
	default:
		return Decision{Action: ActionTerminal, RetryCount: retryCount}
	}
}

// Delay returns the jittered backoff before retry number retryCount
func (s *Scheduler) Delay(retryCount int) time.Duration {
	base := s.Backoff.GetBackoff(retryCount)
	if s.Jitter <= 0 || s.Rand == nil {
		return base
	}
	return s.Backoff.Cap(float64(base) * (1 + s.Jitter*s.Rand()))
}
