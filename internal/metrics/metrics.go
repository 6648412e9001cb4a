// Package metrics exports evaluation pipeline counters to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "checkmycode"

// Outcome labels.
const (
	OutcomeResult  = "result"
	OutcomeFailure = "failure"
	OutcomeCORS    = "cors"
)

// Recorder records pipeline and HTTP metrics. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	submissions *prometheus.CounterVec
	duration    prometheus.Histogram
	envelopes   *prometheus.CounterVec
	grades      *prometheus.CounterVec
	requests    *prometheus.CounterVec
}

// New registers the collectors with reg, or the default registerer when reg
// is nil. Collectors already registered are reused.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Evaluation submissions by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluate_duration_seconds",
			Help:      "Round trip latency of the evaluation service.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}),
		envelopes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payloads_total",
			Help:      "Normalized payloads by envelope form.",
		}, []string{"form"}),
		grades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grades_total",
			Help:      "Letter grades assigned to results.",
		}, []string{"letter"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	var err error
	if r.submissions, err = register(reg, r.submissions); err != nil {
		return nil, err
	}
	if r.duration, err = register(reg, r.duration); err != nil {
		return nil, err
	}
	if r.envelopes, err = register(reg, r.envelopes); err != nil {
		return nil, err
	}
	if r.grades, err = register(reg, r.grades); err != nil {
		return nil, err
	}
	if r.requests, err = register(reg, r.requests); err != nil {
		return nil, err
	}
	return r, nil
}

// register adds c to reg, returning the existing collector when an equal
// one is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("metrics.New: %w", err)
	}
	return c, nil
}

// Submission records the outcome and latency of one evaluation.
func (r *Recorder) Submission(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// Payload records the envelope form of a normalized payload.
func (r *Recorder) Payload(form string) {
	if r == nil {
		return
	}
	r.envelopes.WithLabelValues(form).Inc()
}

// Grade records an assigned letter grade.
func (r *Recorder) Grade(letter string) {
	if r == nil {
		return
	}
	r.grades.WithLabelValues(letter).Inc()
}

// Request records a served HTTP request.
func (r *Recorder) Request(route string, code int) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(route, fmt.Sprint(code)).Inc()
}
