package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Engine request outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport_error"
)

// Engine Prometheus metrics.
var (
	EngineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docgate",
			Name:      "engine_requests_total",
			Help:      "Total number of requests sent to the search engine",
		},
		[]string{"op", "outcome"},
	)

	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docgate",
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"op"},
	)

	EngineConnectFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docgate",
			Name:      "engine_connect_failures_total",
			Help:      "Failed engine connection constructions",
		},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(EngineRequestsTotal)
	prometheus.MustRegister(EngineRequestDuration)
	prometheus.MustRegister(EngineConnectFailuresTotal)
	engineMetricsRegistered = true
}

// ObserveEngineRequest records one engine round trip.
func ObserveEngineRequest(op, outcome string, d time.Duration) {
	EngineRequestsTotal.WithLabelValues(op, outcome).Inc()
	EngineRequestDuration.WithLabelValues(op).Observe(d.Seconds())
}
