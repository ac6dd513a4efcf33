package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tabular-hq/ganymede/pkg/frame"
	"tabular-hq/ganymede/pkg/validation"
)

// Recorder turns pipeline results into persisted records. It writes
// synchronously; one validation run produces one small record, so the
// async buffering a high-volume recorder would need is not warranted here.
type Recorder struct {
	storage Storage
	logger  *slog.Logger
}

// NewRecorder creates a recorder over the given storage backend.
func NewRecorder(storage Storage, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{storage: storage, logger: logger.With("component", "report.recorder")}
}

// RunInfo describes one completed pipeline run.
type RunInfo struct {
	Dataset    string
	StartedAt  time.Time
	Strict     bool
	Lazy       bool
	Validators int
}

// Record persists the outcome of a run. The records slice is nil or empty
// for a passing run.
func (r *Recorder) Record(ctx context.Context, df *frame.DataFrame, info RunInfo, records []*validation.ErrorRecord) (*Record, error) {
	outcome := OutcomePass
	if len(records) > 0 {
		outcome = OutcomeFail
	}

	rec := &Record{
		ID:          uuid.NewString(),
		Dataset:     info.Dataset,
		StartedAt:   info.StartedAt,
		CompletedAt: time.Now().UTC(),
		Outcome:     outcome,
		Strict:      info.Strict,
		Lazy:        info.Lazy,
		Validators:  info.Validators,
		Rows:        df.NumRows(),
		Columns:     df.NumColumns(),
		Errors:      records,
	}

	if err := r.storage.Store(ctx, rec); err != nil {
		return nil, err
	}

	r.logger.Debug("validation run recorded",
		"record_id", rec.ID,
		"dataset", rec.Dataset,
		"outcome", rec.Outcome,
		"error_count", len(records),
	)

	return rec, nil
}
