// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

// Package metrics exposes Prometheus instrumentation for dataset loads,
// analytics queries, the result cache and the HTTP API.
//
// Collectors are registered on the default registry through promauto and
// served by promhttp at /metrics. Packages record through the Record*
// helpers rather than touching collectors directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Dataset metrics
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blockbuster_dataset_load_duration_seconds",
			Help:    "Duration of dataset loads in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source", "reason"},
	)

	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockbuster_dataset_loads_total",
			Help: "Total number of dataset load attempts",
		},
		[]string{"source", "reason", "status"},
	)

	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blockbuster_dataset_rows",
			Help: "Rows per entity table in the snapshot being served",
		},
		[]string{"entity"},
	)

	DatasetLastLoad = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockbuster_dataset_last_load_timestamp_seconds",
			Help: "Unix time of the last successful dataset load",
		},
	)

	// Query metrics
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blockbuster_query_duration_seconds",
			Help:    "Duration of analytics view queries in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"view"},
	)

	QueryResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockbuster_query_results_total",
			Help: "Analytics query outcomes by view",
		},
		[]string{"view", "outcome"}, // outcome: ok, empty, invalid, error
	)

	// Cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blockbuster_cache_hits_total",
			Help: "Total number of query cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blockbuster_cache_misses_total",
			Help: "Total number of query cache misses",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockbuster_cache_entries",
			Help: "Current number of cached query results",
		},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockbuster_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blockbuster_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockbuster_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockbuster_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// WebSocket metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockbuster_websocket_connections",
			Help: "Current number of connected dashboard websockets",
		},
	)

	WSMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockbuster_websocket_messages_sent_total",
			Help: "Total websocket messages broadcast, by type",
		},
		[]string{"type"},
	)
)

// Query outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// RecordDatasetLoad records one load attempt. rows is only applied on success.
func RecordDatasetLoad(source, reason string, duration time.Duration, rows map[string]int, err error) {
	DatasetLoadDuration.WithLabelValues(source, reason).Observe(duration.Seconds())
	if err != nil {
		DatasetLoadsTotal.WithLabelValues(source, reason, "error").Inc()
		return
	}
	DatasetLoadsTotal.WithLabelValues(source, reason, "success").Inc()
	DatasetLastLoad.Set(float64(time.Now().Unix()))
	for entity, n := range rows {
		DatasetRows.WithLabelValues(entity).Set(float64(n))
	}
}

// RecordQuery records an analytics query and its outcome.
func RecordQuery(view, outcome string, duration time.Duration) {
	QueryDuration.WithLabelValues(view).Observe(duration.Seconds())
	QueryResultsTotal.WithLabelValues(view, outcome).Inc()
}

// QueryOutcome classifies a query result for RecordQuery. isInvalid reports
// whether err is a user selection error.
func QueryOutcome(err error, empty bool, isInvalid func(error) bool) string {
	switch {
	case err == nil && empty:
		return OutcomeEmpty
	case err == nil:
		return OutcomeOK
	case isInvalid != nil && isInvalid(err):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// SetCacheEntries records the current cache size.
func SetCacheEntries(n int) {
	CacheEntries.Set(float64(n))
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordWSMessage records a broadcast websocket message.
func RecordWSMessage(msgType string) {
	WSMessagesSent.WithLabelValues(msgType).Inc()
}
