package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks registration outcomes and store latency.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registrations *prometheus.CounterVec
	StoreDuration *prometheus.HistogramVec
	ListRequests  prometheus.Counter
}

// New registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "assessment_registrations_total",
			Help: "Registration attempts by outcome (ok, validation, duplicate_email, configuration, permission, transient_store)",
		}, []string{"outcome"}),
		StoreDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assessment_store_duration_seconds",
			Help:    "Duration of candidate store calls",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"op"}),
		ListRequests: f.NewCounter(prometheus.CounterOpts{
			Name: "assessment_candidate_list_requests_total",
			Help: "Authenticated candidate list requests",
		}),
	}
}

// RecordRegistration counts one registration attempt.
func (m *Metrics) RecordRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

// ObserveStore records the duration of a store call started at start.
func (m *Metrics) ObserveStore(op string, start time.Time) {
	if m == nil {
		return
	}
	m.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementList() {
	if m == nil {
		return
	}
	m.ListRequests.Inc()
}
