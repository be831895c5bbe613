// Package metrics records lesson runs in a Prometheus registry and exposes
// runtime memory snapshots.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Run status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the lesson collectors in a private registry, so several
// instances (one per test, for example) never collide.
type Metrics struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them together with the Go
// runtime collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lessons",
			Name:      "runs_total",
			Help:      "Number of lesson runs by outcome.",
		}, []string{"lesson", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lessons",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of lesson runs.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 6),
		}, []string{"lesson"}),
	}
	m.registry.MustRegister(m.runs, m.duration, collectors.NewGoCollector())
	return m
}

// ObserveRun records one finished lesson run.
func (m *Metrics) ObserveRun(lesson string, d time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	m.runs.WithLabelValues(lesson, status).Inc()
	m.duration.WithLabelValues(lesson).Observe(d.Seconds())
}

// WriteToTextfile writes a snapshot of every metric to path in the text
// format read by the node exporter's textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
