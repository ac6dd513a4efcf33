package report

import (
	"context"
	"time"

	"tabular-hq/ganymede/pkg/validation"
)

// Outcome classifies a validation run.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
)

// Record is the persisted outcome of one validation run.
type Record struct {
	// ID is a UUID v4 assigned by the recorder.
	ID string `json:"id"`

	// Dataset is the caller-supplied name of the validated table.
	Dataset string `json:"dataset"`

	// StartedAt and CompletedAt bound the pipeline run.
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	// Outcome is pass or fail.
	Outcome Outcome `json:"outcome"`

	// Strict and Lazy are the effective mode flags of the run.
	Strict bool `json:"strict"`
	Lazy   bool `json:"lazy"`

	// Validators is the number of validators the pipeline held.
	Validators int `json:"validators"`

	// Rows and Columns describe the validated table.
	Rows    int `json:"rows"`
	Columns int `json:"columns"`

	// Errors holds the error records of a failed run, in report order.
	Errors []*validation.ErrorRecord `json:"errors,omitempty"`
}

// Query filters stored records. Zero values mean "no filter".
type Query struct {
	// Dataset restricts results to one dataset name.
	Dataset string

	// Outcome restricts results to pass or fail.
	Outcome Outcome

	// Since and Until bound StartedAt.
	Since time.Time
	Until time.Time

	// Limit and Offset page through results. Limit <= 0 applies the
	// backend default.
	Limit  int
	Offset int
}

// Storage persists validation records. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Store persists one record.
	Store(ctx context.Context, record *Record) error

	// Query returns records matching the query, newest first.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// DeleteOlderThan removes records that started before the cutoff and
	// returns how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Close releases backend resources.
	Close() error
}
