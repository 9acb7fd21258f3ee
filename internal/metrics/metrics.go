// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

// Package metrics provides Prometheus instrumentation for the
// storefront: API latency and throughput, document store operation
// timing, and recommendation cache efficiency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Document store metrics
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	StoreOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of document store operation errors",
		},
		[]string{"operation", "collection"},
	)

	// Recommendation cache metrics
	CoOccurrenceCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cooccurrence_cache_hits_total",
			Help: "Total number of co-occurrence matrix cache hits",
		},
	)

	CoOccurrenceCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cooccurrence_cache_misses_total",
			Help: "Total number of co-occurrence matrix cache misses (rebuilds)",
		},
	)

	CoOccurrenceRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cooccurrence_rebuild_duration_seconds",
			Help:    "Duration of full co-occurrence matrix rebuilds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CoOccurrenceMatrixSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cooccurrence_matrix_products",
			Help: "Number of products in the last built co-occurrence matrix",
		},
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOp records a document store operation.
func RecordStoreOp(operation, collection string, duration time.Duration, err error) {
	StoreOpDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		StoreOpErrors.WithLabelValues(operation, collection).Inc()
	}
}
