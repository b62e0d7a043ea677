// Package metrics provides Prometheus metrics for the fable client: request
// counts, latencies, and streaming throughput per endpoint.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fable"

// LatencyBuckets covers quick lookups through multi-minute generation calls.
var LatencyBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5,
	1, 2.5, 5, 10, 30, 60, 120, 300,
}

var (
	// RequestsTotal counts completed client requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_requests_total",
			Help:      "Total number of client requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// RequestErrors counts requests that surfaced an error to the caller.
	RequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_request_errors_total",
			Help:      "Total number of client requests that returned an error",
		},
		[]string{"method", "path", "reason"},
	)

	// RequestLatency tracks end-to-end request latency.
	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "client_request_latency_seconds",
			Help:      "End-to-end request latency in seconds",
			Buckets:   LatencyBuckets,
		},
		[]string{"method", "path"},
	)

	// StreamChunks counts text chunks delivered by streaming calls.
	StreamChunks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_chunks_total",
			Help:      "Total number of stream chunks delivered",
		},
		[]string{"path"},
	)

	// StreamDuration tracks how long streaming calls run.
	StreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stream_duration_seconds",
			Help:      "Duration of streaming calls in seconds",
			Buckets:   LatencyBuckets,
		},
		[]string{"path"},
	)
)

// ObserveRequest records one completed non-streaming request.
func ObserveRequest(method, path string, status int, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	RequestLatency.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveError records a request that surfaced an error.
func ObserveError(method, path, reason string) {
	RequestErrors.WithLabelValues(method, path, reason).Inc()
}

// ObserveStream records one completed streaming call.
func ObserveStream(path string, chunks int, elapsed time.Duration) {
	StreamChunks.WithLabelValues(path).Add(float64(chunks))
	StreamDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}
