package guard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tabular-hq/ganymede/pkg/config"
	"tabular-hq/ganymede/pkg/frame"
	"tabular-hq/ganymede/pkg/report"
	"tabular-hq/ganymede/pkg/validation"
)

// Check validates a table against the boundary's declared constraints.
// It returns nil when the table satisfies every constraint, a
// *validation.ValidationError when data violates a constraint, and any
// other error for construction-time faults (malformed spec, invalid
// pattern, out-of-range or mistyped project configuration).
func Check(df *frame.DataFrame, opts ...Option) error {
	return CheckContext(context.Background(), df, opts...)
}

// CheckContext is Check with a context for report persistence.
func CheckContext(ctx context.Context, df *frame.DataFrame, opts ...Option) error {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// Invalid values in a present project file are a construction-time
	// fault, not a preference to paper over with defaults. A missing or
	// unparsable file already loads as defaults without error.
	if _, err := config.Get(); err != nil {
		return fmt.Errorf("project configuration: %w", err)
	}

	maxSamples := config.ChecksMaxSamples(o.maxSamples)
	if maxSamples < 1 {
		return fmt.Errorf("checks_max_samples must be >= 1, got %d", maxSamples)
	}
	maxErrors := config.RowValidationMaxErrors()
	if maxErrors < 1 {
		return fmt.Errorf("row_validation_max_errors must be >= 1, got %d", maxErrors)
	}

	params := validation.Params{
		Columns:         o.columns,
		Strict:          config.Strict(o.strict),
		Lazy:            config.Lazy(o.lazy),
		CompositeUnique: o.compositeUnique,
		RowValidator:    o.rowValidator,
		MinRows:         o.minRows,
		MaxRows:         o.maxRows,
		ExactRows:       o.exactRows,
		AllowEmpty:      config.AllowEmpty(o.allowEmpty),
		MaxErrors:       maxErrors,
		MaxSamples:      maxSamples,
	}

	pipeline, err := validation.BuildPipeline(params, df.Columns())
	if err != nil {
		return err
	}

	started := time.Now().UTC()
	records := pipeline.Run(df)
	duration := time.Since(started)

	o.observe(ctx, df, params, pipeline, records, started, duration)

	return validation.AsError(records)
}

// observe feeds the run outcome into the attached metrics collector,
// recorder and logger. Observation failures never mask the validation
// result; they are logged and dropped.
func (o *options) observe(
	ctx context.Context,
	df *frame.DataFrame,
	params validation.Params,
	pipeline *validation.Pipeline,
	records []*validation.ErrorRecord,
	started time.Time,
	duration time.Duration,
) {
	name := o.name
	if name == "" {
		name = "unnamed"
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	if o.collector != nil {
		o.collector.RecordRun(name, len(records) == 0, duration, pipeline.Len())
		byKind := make(map[validation.Kind]int)
		for _, rec := range records {
			byKind[rec.Kind]++
		}
		for kind, count := range byKind {
			o.collector.RecordFailure(string(kind), count)
		}
	}

	if o.recorder != nil {
		info := report.RunInfo{
			Dataset:    name,
			StartedAt:  started,
			Strict:     params.Strict,
			Lazy:       params.Lazy,
			Validators: pipeline.Len(),
		}
		if _, err := o.recorder.Record(ctx, df, info, records); err != nil {
			logger.Error("failed to record validation run",
				"dataset", name,
				"error", err,
			)
		}
	}

	if len(records) > 0 {
		logger.Debug("validation failed",
			"dataset", name,
			"error_count", len(records),
			"lazy", params.Lazy,
			"duration", duration,
		)
	}
}

// In wraps a function that consumes a table, validating the table before
// the function runs. A validation failure short-circuits the call.
func In[T any](fn func(*frame.DataFrame) (T, error), opts ...Option) func(*frame.DataFrame) (T, error) {
	return func(df *frame.DataFrame) (T, error) {
		var zero T
		if err := Check(df, opts...); err != nil {
			return zero, err
		}
		return fn(df)
	}
}

// Out wraps a function that produces a table, validating the table after
// the function returns. The function's own error passes through untouched.
func Out[T any](fn func(T) (*frame.DataFrame, error), opts ...Option) func(T) (*frame.DataFrame, error) {
	return func(arg T) (*frame.DataFrame, error) {
		df, err := fn(arg)
		if err != nil {
			return nil, err
		}
		if err := Check(df, opts...); err != nil {
			return nil, err
		}
		return df, nil
	}
}
