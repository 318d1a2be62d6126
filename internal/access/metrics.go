package access

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// fallbacksTotal counts operations served by the local store
	// instead of the live API.
	fallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusadmin_fallbacks_total",
			Help: "Total number of operations recovered by the local store",
		},
		[]string{"family", "operation", "reason"},
	)

	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusadmin_cache_hits_total",
			Help: "Total number of cache hits per entity family",
		},
		[]string{"family"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusadmin_cache_misses_total",
			Help: "Total number of cache misses per entity family",
		},
		[]string{"family"},
	)
)
