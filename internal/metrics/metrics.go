// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidio_http_requests_total",
			Help: "Total HTTP requests served by the API",
		},
		[]string{"method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidio_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method"},
	)

	// StatsComputations counts stats requests by result: "success", "failure".
	StatsComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidio_stats_computations_total",
			Help: "Total viewing statistics computations",
		},
		[]string{"result"},
	)

	JellyfinRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidio_jellyfin_requests_total",
			Help: "Total requests sent to the Jellyfin API",
		},
		[]string{"endpoint", "result"},
	)

	SeriesCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidio_series_cache_lookups_total",
			Help: "Series list cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vidio_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidio_circuit_breaker_state_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	ChangelogMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidio_changelog_mutations_total",
			Help: "Changelog mutations by operation (create, update, delete, import)",
		},
		[]string{"op"},
	)
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
