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

package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

func TestExponential_GetBackoff(t *testing.T) {
	type fields struct {
		Initial  time.Duration
		Factor   float64
		MaxDelay time.Duration
	}
	tests := []struct {
		name       string
		fields     fields
		numAttempt int
		want       time.Duration
	}{
		{
			name:       "zero value",
			fields:     fields{},
			numAttempt: 3,
			want:       0,
		},
		{
			name:       "first retry is Initial",
			fields:     fields{Initial: time.Second},
			numAttempt: 0,
			want:       time.Second,
		},
		{
			name:       "negative attempt is first retry",
			fields:     fields{Initial: time.Second},
			numAttempt: -2,
			want:       time.Second,
		},
		{
			name:       "default factor doubles",
			fields:     fields{Initial: time.Second},
			numAttempt: 4,
			want:       16 * time.Second,
		},
		{
			name:       "factor 3",
			fields:     fields{Initial: 2 * time.Second, Factor: 3},
			numAttempt: 2,
			want:       18 * time.Second,
		},
		{
			name:       "capped at MaxDelay",
			fields:     fields{Initial: time.Second, MaxDelay: 10 * time.Second},
			numAttempt: 5,
			want:       10 * time.Second,
		},
		{
			name:       "below MaxDelay",
			fields:     fields{Initial: time.Second, MaxDelay: 10 * time.Second},
			numAttempt: 2,
			want:       4 * time.Second,
		},
		{
			name:       "huge attempt does not overflow",
			fields:     fields{Initial: time.Second, MaxDelay: time.Minute},
			numAttempt: 5000,
			want:       time.Minute,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &types.Exponential{
				Initial:  tt.fields.Initial,
				Factor:   tt.fields.Factor,
				MaxDelay: tt.fields.MaxDelay,
			}
			assert.Equal(t, tt.want, l.GetBackoff(tt.numAttempt))
		})
	}
}

func TestExponential_Monotonic(t *testing.T) {
	l := &types.Exponential{Initial: 100 * time.Millisecond, Factor: 1.5, MaxDelay: 30 * time.Second}
	prev := time.Duration(0)
	for i := 0; i < 50; i++ {
		d := l.GetBackoff(i)
		assert.GreaterOrEqual(t, d, prev)
		assert.LessOrEqual(t, d, l.MaxDelay)
		prev = d
	}
}
