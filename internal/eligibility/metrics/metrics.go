package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the eligibility module.
type Metrics struct {
	// Decision outcomes by desired course and eligibility
	DecisionOutcome *prometheus.CounterVec

	// Profiles rejected before evaluation
	ValidationFailures prometheus.Counter

	// Audit sink writes that failed, by stream ("request", "response")
	AuditFailures *prometheus.CounterVec

	// Validate + evaluate latency, excluding audit writes
	EvaluateLatency prometheus.Histogram
}

// New creates the eligibility metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DecisionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_eligibility_decisions_total",
			Help: "Total eligibility decisions by desired course and outcome",
		}, []string{"course", "eligible"}),

		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "admissions_eligibility_validation_failures_total",
			Help: "Total student profiles rejected by validation",
		}),

		AuditFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_eligibility_audit_failures_total",
			Help: "Total audit log writes that failed, by stream",
		}, []string{"stream"}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "admissions_eligibility_evaluate_duration_seconds",
			Help:    "Duration of profile validation and rule evaluation",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
		}),
	}
}

// IncrementOutcome records a decision outcome.
func (m *Metrics) IncrementOutcome(course string, eligible bool) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(course, strconv.FormatBool(eligible)).Inc()
	}
}

// IncrementValidationFailure records a rejected profile.
func (m *Metrics) IncrementValidationFailure() {
	if m != nil {
		m.ValidationFailures.Inc()
	}
}

// IncrementAuditFailure records a failed audit write.
func (m *Metrics) IncrementAuditFailure(stream string) {
	if m != nil {
		m.AuditFailures.WithLabelValues(stream).Inc()
	}
}

// ObserveEvaluateLatency records the evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
