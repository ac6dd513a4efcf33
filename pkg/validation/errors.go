package validation

import (
	"fmt"
	"strings"
)

// Kind identifies which validator produced an error record.
type Kind string

const (
	KindShape           Kind = "shape"
	KindColumnsExist    Kind = "columns_exist"
	KindDType           Kind = "dtype"
	KindNullable        Kind = "nullable"
	KindUnique          Kind = "unique"
	KindCompositeUnique Kind = "composite_unique"
	KindChecks          Kind = "checks"
	KindRow             Kind = "row"
	KindStrict          Kind = "strict"
)

// ErrorRecord describes one failed constraint. Records are plain values;
// they never carry references into the validated frame.
type ErrorRecord struct {
	// Kind is the validator family that produced the record.
	Kind Kind `json:"kind"`

	// Columns names the column(s) the failure relates to, if any.
	Columns []string `json:"columns,omitempty"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Rows holds sample offending row indices, bounded by the configured
	// error cap. Empty for failures with no row granularity.
	Rows []int `json:"rows,omitempty"`
}

// String formats the record for display.
func (r *ErrorRecord) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", r.Kind, r.Message)
	if len(r.Rows) > 0 {
		fmt.Fprintf(&sb, " (rows %v)", r.Rows)
	}
	return sb.String()
}

// ValidationError wraps a non-empty ordered sequence of error records for
// callers who want the whole result as a single error value.
type ValidationError struct {
	Records []*ErrorRecord
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Records) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Records[0])
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "validation failed with %d errors:\n", len(e.Records))
	for _, rec := range e.Records {
		fmt.Fprintf(&sb, "  - %s\n", rec)
	}
	return sb.String()
}

// AsError returns nil for an empty record sequence, otherwise a
// ValidationError wrapping it.
func AsError(records []*ErrorRecord) error {
	if len(records) == 0 {
		return nil
	}
	return &ValidationError{Records: records}
}
