package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups counts read-through cache decisions by endpoint class
	// and outcome (hit|miss|bypass).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinebase_cache_lookups_total",
			Help: "Total number of metadata cache lookups",
		},
		[]string{"class", "result"},
	)

	// UpstreamRequests counts calls to the metadata provider by result
	// (success|error).
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinebase_upstream_requests_total",
			Help: "Total number of upstream metadata API requests",
		},
		[]string{"result"},
	)

	// CacheEntries tracks the number of rows currently held by the cache table.
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinebase_cache_entries",
			Help: "Number of cached metadata responses",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinebase_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
