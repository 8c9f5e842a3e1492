package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "protocol_generations_total",
			Help: "Protocol generations by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "protocol_generation_duration_seconds",
			Help:    "End-to-end duration of a protocol generation",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"provider"},
	)

	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "protocol_model_call_duration_seconds",
			Help:    "Duration of the call to the generative model",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"provider"},
	)

	GenerationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "protocol_generations_in_flight",
			Help: "Generations currently waiting on the model",
		},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
		[]string{"route"},
	)
)
