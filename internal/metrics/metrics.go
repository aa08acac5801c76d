// Package metrics records Prometheus metrics for the generation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/uilabs/architect/internal/architect"
	"github.com/uilabs/architect/internal/lint"
)

// Recorder implements architect.Observer with Prometheus collectors. All of
// them are safe for concurrent use, so one Recorder can watch a pipeline
// shared across requests.
type Recorder struct {
	generationsTotal *prometheus.CounterVec
	attemptsTotal    *prometheus.CounterVec
	findingsTotal    *prometheus.CounterVec
	duration         *prometheus.HistogramVec
}

// NewRecorder creates a Recorder registered against the default Prometheus
// registry. Call it at most once per process; registering the same metric
// names twice panics.
func NewRecorder() *Recorder {
	return NewRecorderWith(prometheus.DefaultRegisterer)
}

// NewRecorderWith creates a Recorder registered against reg.
func NewRecorderWith(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		generationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "architect_generations_total",
				Help: "Total pipeline runs by provider and outcome",
			},
			[]string{"provider", "status"},
		),
		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "architect_attempts_total",
				Help: "Total generation attempts by provider",
			},
			[]string{"provider"},
		),
		findingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "architect_findings_total",
				Help: "Total lint findings by rule and severity",
			},
			[]string{"rule", "severity"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "architect_generation_duration_seconds",
				Help:    "Wall-clock pipeline run duration by provider",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
			},
			[]string{"provider"},
		),
	}
}

// RunStarted implements architect.Observer.
func (r *Recorder) RunStarted(_, _ string, _ int) {}

// AttemptStarted implements architect.Observer.
func (r *Recorder) AttemptStarted(_, _ int) {}

// AttemptChecked implements architect.Observer.
func (r *Recorder) AttemptChecked(attempt architect.Attempt, _, _ []lint.Finding) {
	for _, f := range attempt.Findings {
		r.findingsTotal.WithLabelValues(string(f.Rule), string(f.Severity)).Inc()
	}
}

// RunFinished implements architect.Observer.
func (r *Recorder) RunFinished(provider string, result *architect.Result) {
	status := "success"
	if !result.Success {
		status = "exhausted"
	}
	r.generationsTotal.WithLabelValues(provider, status).Inc()
	r.attemptsTotal.WithLabelValues(provider).Add(float64(result.Attempts))
	r.duration.WithLabelValues(provider).Observe(result.Duration.Seconds())
}

// RunFailed implements architect.Observer.
func (r *Recorder) RunFailed(provider string, _ error) {
	r.generationsTotal.WithLabelValues(provider, "error").Inc()
}
