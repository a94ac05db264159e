package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "murmur_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// CascadeDeletedThoughts counts thoughts removed by user-deletion cascades.
	CascadeDeletedThoughts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "murmur_cascade_deleted_thoughts_total",
		Help: "Total number of thoughts removed by cascading user deletion",
	})

	// CascadeStepFailures counts non-fatal bookkeeping step failures by operation and step.
	CascadeStepFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_cascade_step_failures_total",
		Help: "Total number of best-effort cascade steps that failed after the primary operation succeeded",
	}, []string{"operation", "step"})

	// CacheHits counts read-through cache hits by collection.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_cache_hits_total",
		Help: "Total number of cache hits by collection",
	}, []string{"collection"})

	// CacheMisses counts read-through cache misses by collection.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_cache_misses_total",
		Help: "Total number of cache misses by collection",
	}, []string{"collection"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
