package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts requests by method, path and outcome.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusadmin_api_requests_total",
			Help: "Total number of admin API requests",
		},
		[]string{"method", "path", "outcome"},
	)

	// errorsTotal counts classified transport failures.
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusadmin_api_errors_total",
			Help: "Total number of classified transport errors",
		},
		[]string{"kind"},
	)

	// requestLatency tracks successful request latency.
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campusadmin_api_request_latency_seconds",
			Help:    "Admin API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
