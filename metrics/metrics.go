// metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PredictionsTotal counts served predictions by predicted outcome.
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flight_delay_predictions_total",
		Help: "Number of flight delay predictions served, by outcome.",
	}, []string{"outcome"})

	// RequestDuration observes HTTP request latency per route and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flight_delay_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "status"})

	// TrainingRunsTotal counts completed training runs.
	TrainingRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flight_delay_training_runs_total",
		Help: "Number of completed training runs.",
	})

	// TrainingDuration observes end-to-end training run duration.
	TrainingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flight_delay_training_duration_seconds",
		Help:    "Duration of training runs.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})
)
