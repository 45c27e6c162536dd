// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

// Package metrics provides Prometheus instrumentation for Fittrackd:
// HTTP request throughput/latency and authentication outcomes.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP endpoint metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fittrackd_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fittrackd_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fittrackd_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	// Authentication metrics
	SigninAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fittrackd_signin_attempts_total",
			Help: "Total number of signin attempts by outcome",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	TokenVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fittrackd_token_verifications_total",
			Help: "Total number of token verifications by kind and outcome",
		},
		[]string{"kind", "outcome"}, // kind: "access", "refresh"
	)
)

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordSignin records one signin attempt.
func RecordSignin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	SigninAttempts.WithLabelValues(outcome).Inc()
}

// RecordTokenVerification records one token verification.
func RecordTokenVerification(kind string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	TokenVerifications.WithLabelValues(kind, outcome).Inc()
}
