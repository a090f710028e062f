package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_connections",
			Help: "Number of active connections",
		},
	)

	TrendingCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trending_cache_hits_total",
			Help: "Total number of trending cache hits",
		},
	)

	TrendingCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trending_cache_misses_total",
			Help: "Total number of trending cache misses",
		},
	)

	TrendingComputeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trending_compute_duration_seconds",
			Help:    "Duration of trending ranking recomputations",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func Register() {
	prometheus.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		ActiveConnections,
		TrendingCacheHits,
		TrendingCacheMisses,
		TrendingComputeDuration,
	)
}
