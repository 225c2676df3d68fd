package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the client-side request collectors. Register them on
// whichever registerer the host application exposes.
type Metrics struct {
	inFlight  prometheus.Gauge
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sonic_courier",
			Subsystem: "api",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight API requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sonic_courier",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests issued.",
		}, []string{"operation", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sonic_courier",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "method", "status"}),
	}

	if reg != nil {
		reg.MustRegister(m.inFlight, m.requests, m.durations)
	}
	return m
}
