package guard

import (
	"log/slog"

	"tabular-hq/ganymede/pkg/report"
	"tabular-hq/ganymede/pkg/schema"
	"tabular-hq/ganymede/pkg/telemetry/metrics"
	"tabular-hq/ganymede/pkg/validation"
)

// Option configures one validation boundary. Unset flags fall back to the
// project configuration, then to the built-in defaults.
type Option func(*options)

type options struct {
	name            string
	columns         schema.Spec
	strict          *bool
	lazy            *bool
	allowEmpty      *bool
	maxSamples      *int
	compositeUnique [][]string
	rowValidator    validation.RowPredicate
	minRows         *int
	maxRows         *int
	exactRows       *int

	recorder  *report.Recorder
	collector *metrics.Collector
	logger    *slog.Logger
}

// WithName sets the dataset name used in reports, metrics and logs.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithColumns sets the column specification.
func WithColumns(spec schema.Spec) Option {
	return func(o *options) { o.columns = spec }
}

// WithStrict overrides the strict-mode setting for this boundary.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = &strict }
}

// WithLazy overrides the lazy-mode setting for this boundary.
func WithLazy(lazy bool) Option {
	return func(o *options) { o.lazy = &lazy }
}

// WithAllowEmpty overrides the allow-empty setting for this boundary.
func WithAllowEmpty(allow bool) Option {
	return func(o *options) { o.allowEmpty = &allow }
}

// WithMaxSamples overrides how many values per column the checks
// validator inspects. Must be >= 1.
func WithMaxSamples(n int) Option {
	return func(o *options) { o.maxSamples = &n }
}

// WithCompositeUnique adds a column group whose combined values must be
// unique across rows.
func WithCompositeUnique(columns ...string) Option {
	return func(o *options) { o.compositeUnique = append(o.compositeUnique, columns) }
}

// WithRowValidator sets a per-row predicate, run after all column checks.
func WithRowValidator(predicate validation.RowPredicate) Option {
	return func(o *options) { o.rowValidator = predicate }
}

// WithMinRows requires at least n rows.
func WithMinRows(n int) Option {
	return func(o *options) { o.minRows = &n }
}

// WithMaxRows requires at most n rows.
func WithMaxRows(n int) Option {
	return func(o *options) { o.maxRows = &n }
}

// WithExactRows requires exactly n rows.
func WithExactRows(n int) Option {
	return func(o *options) { o.exactRows = &n }
}

// WithRecorder persists each run's outcome to the given recorder.
func WithRecorder(recorder *report.Recorder) Option {
	return func(o *options) { o.recorder = recorder }
}

// WithMetrics observes each run on the given collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(o *options) { o.collector = collector }
}

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}
