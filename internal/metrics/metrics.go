package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Counter: outbound generative API requests (one per Execute call).
	APIRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "genai_requests_total",
			Help: "Total number of generative API requests.",
		},
	)

	// Counter: failed generative API attempts.
	APIErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "genai_attempt_errors_total",
			Help: "Total number of failed generative API attempts.",
		},
	)

	// Counter: how many times we served recommendations from cache.
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits.",
		},
	)

	// Histogram: end-to-end generation latency in seconds.
	GenerationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_seconds",
			Help:    "Latency of generation operations in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)
)

// Register is called once in main() to register metrics.
func Register() {
	prometheus.MustRegister(
		APIRequestsTotal,
		APIErrorsTotal,
		CacheHitsTotal,
		GenerationSeconds,
	)
}

// Handler exposes the /metrics endpoint for Prometheus to scrape.
func Handler() http.Handler {
	return promhttp.Handler()
}
