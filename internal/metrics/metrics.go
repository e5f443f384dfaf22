// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package metrics provides Prometheus instrumentation for the query service:
// query outcomes, resolver stage effectiveness, HTTP latency and cache
// efficiency. All collectors are registered with the default registry and
// exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcome label values.
const (
	OutcomeMatch       = "match"
	OutcomeNoMatch     = "no_match"
	OutcomeUnavailable = "model_unavailable"
)

var (
	// QueriesTotal counts recommendation queries by outcome.
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerec_queries_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"},
	)

	// ResolveStageTotal counts which resolution stage produced the match.
	ResolveStageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerec_resolve_stage_total",
			Help: "Total number of successful title resolutions by stage",
		},
		[]string{"stage"},
	)

	// QueryCacheHits counts response cache hits.
	QueryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinerec_query_cache_hits_total",
			Help: "Total number of recommendation response cache hits",
		},
	)

	// QueryCacheMisses counts response cache misses.
	QueryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinerec_query_cache_misses_total",
			Help: "Total number of recommendation response cache misses",
		},
	)

	// ModelItems reports the catalog size of the loaded model, 0 when the
	// service runs degraded without a model.
	ModelItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinerec_model_items",
			Help: "Number of catalog items in the loaded model (0 when degraded)",
		},
	)

	// APIRequestsTotal counts HTTP requests by method, endpoint and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerec_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// APIRequestDuration observes HTTP request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinerec_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordQuery increments the query counter for an outcome.
func RecordQuery(outcome string) {
	QueriesTotal.WithLabelValues(outcome).Inc()
}

// RecordResolveStage increments the per-stage resolution counter.
func RecordResolveStage(stage string) {
	ResolveStageTotal.WithLabelValues(stage).Inc()
}

// RecordAPIRequest records a completed HTTP request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
