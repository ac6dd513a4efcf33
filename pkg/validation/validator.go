package validation

import "tabular-hq/ganymede/pkg/frame"

// Validator tests one concern against a table. Implementations are
// stateless after construction, never mutate the frame, and report data
// failures exclusively through the returned records.
type Validator interface {
	// Name returns a short identifier used in logs and metrics.
	Name() string

	// Validate inspects the frame and returns zero or more error records,
	// in a deterministic order defined by the validator.
	Validate(df *frame.DataFrame) []*ErrorRecord
}

// RowPredicate is a user-supplied per-row check. A non-nil error marks the
// row as violating; the error text is included in the record message.
type RowPredicate func(row frame.Row) error
