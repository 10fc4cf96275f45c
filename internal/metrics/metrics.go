package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the ordering assistant.
type Metrics struct {
	// Turn metrics
	TurnsTotal   *prometheus.CounterVec // labels: kind (text|voice), outcome (ok|no_speech|error)
	ModelLatency prometheus.Histogram

	// Transcription metrics
	TranscriptionFailures prometheus.Counter
	RecognizerLatency     prometheus.Histogram

	// Order metrics
	DishesAdded         prometheus.Counter
	IngredientsExcluded prometheus.Counter
	CheckoutsTotal      *prometheus.CounterVec // labels: outcome (ok|empty)
}

// New creates and registers all metrics with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TurnsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_turns_total",
			Help: "Total number of user turns processed",
		}, []string{"kind", "outcome"}),
		ModelLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "assistant_model_latency_seconds",
			Help:    "Chat model round-trip latency",
			Buckets: prometheus.DefBuckets,
		}),
		TranscriptionFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "assistant_transcription_failures_total",
			Help: "Total number of speech recognition failures",
		}),
		RecognizerLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "assistant_recognizer_latency_seconds",
			Help:    "Speech recognizer round-trip latency",
			Buckets: prometheus.DefBuckets,
		}),
		DishesAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "assistant_dishes_added_total",
			Help: "Total number of dishes added to orders",
		}),
		IngredientsExcluded: factory.NewCounter(prometheus.CounterOpts{
			Name: "assistant_ingredients_excluded_total",
			Help: "Total number of ingredient exclusion instructions applied",
		}),
		CheckoutsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_checkouts_total",
			Help: "Total number of checkout requests",
		}, []string{"outcome"}),
	}
}
