package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Endpoint labels.
const (
	EndpointStatus  = "status"
	EndpointExecute = "execute"
)

// Metrics records gateway calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the gateway collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stepflow_gateway_requests_total",
				Help: "Total number of backend calls by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stepflow_gateway_request_duration_seconds",
				Help:    "Duration of backend calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(endpoint, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.duration.WithLabelValues(endpoint).Observe(seconds)
}
