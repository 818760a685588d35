// Package metrics provides Prometheus metrics for the grading service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sbert_grading"

var (
	// RequestsTotal counts HTTP requests by endpoint and status code.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of grading API requests",
		},
		[]string{"endpoint", "status"},
	)

	// RequestDuration measures request handling time.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of grading API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// VerdictsTotal counts decisions by path and outcome.
	VerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdicts_total",
			Help:      "Total number of grading decisions",
		},
		[]string{"path", "correct"},
	)

	// EncodeDuration measures embedding provider calls.
	EncodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "encode_duration_seconds",
			Help:      "Duration of embedding provider calls in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"model", "status"},
	)

	// EmbeddingCacheTotal counts embedding cache lookups by tier and result.
	EmbeddingCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_cache_total",
			Help:      "Embedding cache lookups",
		},
		[]string{"tier", "result"},
	)

	// BatchSize observes the number of items per batch request.
	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Distribution of batch sizes",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// BatchItemErrorsTotal counts batch items that failed.
	BatchItemErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_item_errors_total",
			Help:      "Total number of failed batch items",
		},
	)
)

// RecordRequest records a finished HTTP request.
func RecordRequest(endpoint string, status int, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RecordVerdict records a grading decision. path is "shortcut" or "semantic".
func RecordVerdict(path string, correct bool) {
	VerdictsTotal.WithLabelValues(path, strconv.FormatBool(correct)).Inc()
}

// RecordEncode records a single embedding provider call.
func RecordEncode(model string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	EncodeDuration.WithLabelValues(model, status).Observe(elapsed.Seconds())
}

// RecordCacheHit records a hit in the given cache tier ("memory" or "sqlite").
func RecordCacheHit(tier string) {
	EmbeddingCacheTotal.WithLabelValues(tier, "hit").Inc()
}

// RecordCacheMiss records a lookup that had to call the provider.
func RecordCacheMiss() {
	EmbeddingCacheTotal.WithLabelValues("all", "miss").Inc()
}

// RecordBatch records a completed batch.
func RecordBatch(size, failed int) {
	BatchSize.Observe(float64(size))
	BatchItemErrorsTotal.Add(float64(failed))
}
