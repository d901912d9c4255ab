package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RequestsTotal.
const (
	OutcomeSuccess   = "success"
	OutcomeAPIError  = "api_error"
	OutcomeTransport = "transport_error"
	OutcomeParse     = "parse_error"
	OutcomeRejected  = "rejected"
)

// Metrics holds the Prometheus metrics for outbound partner API calls.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on reg. Passing a dedicated registry
// keeps repeated construction (tests, multiple clients) from colliding on the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "netki_requests_total",
			Help: "Total number of partner API requests by method and outcome",
		}, []string{"method", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "netki_request_duration_seconds",
			Help:    "Duration of partner API requests",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
	}
}

// IncrementRequest records one finished request.
func (m *Metrics) IncrementRequest(method, outcome string) {
	m.RequestsTotal.WithLabelValues(method, outcome).Inc()
}

// ObserveRequest records the duration of a request.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRequest(method string, start time.Time) {
	m.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
