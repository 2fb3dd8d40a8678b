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

package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelService    = "service"
	labelOpType     = "op_type"
	labelOpID       = "op_id"
	labelErrorCode  = "error_code"
	labelStatusCode = "status_code"
	labelKind       = "kind"
	labelOutcome    = "outcome"
)

// Metrics holds the Prometheus collectors of the controller. A nil *Metrics
// records nothing.
type Metrics struct {
	serviceAlias string

	// APICallsTotal counts calls made to the AWS service API
	APICallsTotal *prometheus.CounterVec
	// APIErrorsTotal counts failed calls made to the AWS service API
	APIErrorsTotal *prometheus.CounterVec
	// ReconcileTotal counts finished reconciles by kind and outcome
	ReconcileTotal *prometheus.CounterVec
	// ReconcileDuration observes how long reconciles take
	ReconcileDuration *prometheus.HistogramVec
}

// NewMetrics returns the collectors for the supplied service alias. They
// still need to be registered, see Collectors.
func NewMetrics(serviceAlias string) *Metrics {
	return &Metrics{
		serviceAlias: serviceAlias,
		APICallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ack_outbound_api_requests_total",
				Help: "Total number of outbound requests made to the AWS service API, by operation.",
			},
			[]string{labelService, labelOpType, labelOpID},
		),
		APIErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ack_outbound_api_requests_error_total",
				Help: "Total number of failed outbound requests made to the AWS service API, by operation and error code.",
			},
			[]string{labelService, labelOpType, labelOpID, labelErrorCode, labelStatusCode},
		),
		ReconcileTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ack_reconcile_total",
				Help: "Total number of finished reconciles, by resource kind and outcome.",
			},
			[]string{labelService, labelKind, labelOutcome},
		),
		ReconcileDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ack_reconcile_duration_seconds",
				Help:    "Duration of reconciles in seconds, by resource kind.",
				Buckets: prometheus.ExponentialBucketsRange(0.005, 120, 15),
			},
			[]string{labelService, labelKind},
		),
	}
}

// Collectors returns every collector so it can be registered
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.APICallsTotal,
		m.APIErrorsTotal,
		m.ReconcileTotal,
		m.ReconcileDuration,
	}
}

// MustRegister registers every collector with the supplied registerer
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.Collectors()...)
}

// RecordAPICall records a call to the AWS service API. opType is the
// resource manager operation (READ_ONE, CREATE, UPDATE, DELETE, ...) and
// opID the AWS API operation name.
func (m *Metrics) RecordAPICall(opType string, opID string, err error) {
	if m == nil {
		return
	}
	m.APICallsTotal.WithLabelValues(m.serviceAlias, opType, opID).Inc()
	if err == nil {
		return
	}
	code, status := "Unknown", "0"
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.ErrorCode()
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		status = strconv.Itoa(respErr.HTTPStatusCode())
	}
	m.APIErrorsTotal.WithLabelValues(m.serviceAlias, opType, opID, code, status).Inc()
}

// RecordReconcile records a finished reconcile
func (m *Metrics) RecordReconcile(kind string, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.ReconcileTotal.WithLabelValues(m.serviceAlias, kind, outcome).Inc()
	m.ReconcileDuration.WithLabelValues(m.serviceAlias, kind).Observe(took.Seconds())
}
