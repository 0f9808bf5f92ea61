package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_api_requests_total",
			Help: "Total number of API requests by resource, method and status",
		},
		[]string{"resource", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nebula_api_request_duration_seconds",
			Help: "Duration of API requests in seconds",
		},
		[]string{"resource", "method"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_cache_hits_total",
			Help: "Business cache lookups that were served from redis",
		},
		[]string{"resource"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_cache_misses_total",
			Help: "Business cache lookups that fell through to the API",
		},
		[]string{"resource"},
	)
)
