package metrics

import (
	"calc/core/evaluator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calculator_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Calculator
	KeyPresses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_key_presses_total",
			Help: "Total number of keys pressed, by handler",
		},
		[]string{"kind"}, // append, delete, clear, equals, rejected
	)

	Evaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_evaluations_total",
			Help: "Total number of evaluations, by outcome",
		},
		[]string{"outcome"}, // number, invalid_input, division_by_zero
	)

	// Remote keypad sessions
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calculator_active_sessions",
			Help: "Number of open keypad sessions",
		},
	)

	ActiveSockets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calculator_active_websockets",
			Help: "Number of connected keypad websockets",
		},
	)
)

// Outcome is the evaluations label for a result.
func Outcome(r evaluator.Result) string {
	switch r.Kind() {
	case 0:
		return "number"
	case evaluator.InvalidInput:
		return "invalid_input"
	case evaluator.DivisionByZero:
		return "division_by_zero"
	default:
		return "other"
	}
}
