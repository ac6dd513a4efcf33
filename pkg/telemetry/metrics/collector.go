package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the validations counter.
const (
	OutcomePass = "pass"
	OutcomeFail = "fail"
)

// Collector records validation metrics on a Prometheus registry.
type Collector struct {
	registry      *prometheus.Registry
	validations   *prometheus.CounterVec
	failures      *prometheus.CounterVec
	errorRecords  *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	pipelineDepth prometheus.Histogram
}

// NewCollector creates a collector and registers its metrics. If registry
// is nil a fresh registry is created; retrieve it with Registry if needed.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ganymede",
			Name:      "validations_total",
			Help:      "Validation runs by dataset and outcome.",
		}, []string{"dataset", "outcome"}),

		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ganymede",
			Name:      "validator_failures_total",
			Help:      "Validator runs that produced at least one error record.",
		}, []string{"validator"}),

		errorRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ganymede",
			Name:      "error_records_total",
			Help:      "Error records emitted, by validator kind.",
		}, []string{"validator"}),

		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ganymede",
			Name:      "validation_duration_seconds",
			Help:      "Wall time of one pipeline run.",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		}, []string{"dataset"}),

		pipelineDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ganymede",
			Name:      "pipeline_validators",
			Help:      "Number of validators assembled per pipeline.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13},
		}),
	}

	registry.MustRegister(c.validations, c.failures, c.errorRecords, c.runDuration, c.pipelineDepth)
	return c
}

// Registry returns the registry the collector's metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// RecordRun records the outcome of one pipeline run.
func (c *Collector) RecordRun(dataset string, passed bool, duration time.Duration, validators int) {
	outcome := OutcomeFail
	if passed {
		outcome = OutcomePass
	}
	c.validations.WithLabelValues(dataset, outcome).Inc()
	c.runDuration.WithLabelValues(dataset).Observe(duration.Seconds())
	c.pipelineDepth.Observe(float64(validators))
}

// RecordFailure records one failing validator and the records it emitted.
func (c *Collector) RecordFailure(validator string, records int) {
	c.failures.WithLabelValues(validator).Inc()
	c.errorRecords.WithLabelValues(validator).Add(float64(records))
}
