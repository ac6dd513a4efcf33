package validation

import (
	"fmt"

	"tabular-hq/ganymede/pkg/frame"
)

// RowValidator applies a user-supplied predicate to every row. It runs last
// in the pipeline: row predicates typically assume the expected columns
// exist, so column-shape failures get reported first.
type RowValidator struct {
	predicate RowPredicate
	maxErrors int
}

// NewRowValidator builds a row validator. maxErrors caps the number of
// violations reported; scanning stops once the cap is reached.
func NewRowValidator(predicate RowPredicate, maxErrors int) *RowValidator {
	return &RowValidator{predicate: predicate, maxErrors: maxErrors}
}

// Name implements Validator.
func (v *RowValidator) Name() string { return string(KindRow) }

// Validate emits one record per violating row, in row order, up to the cap.
func (v *RowValidator) Validate(df *frame.DataFrame) []*ErrorRecord {
	var records []*ErrorRecord
	for i := 0; i < df.NumRows(); i++ {
		if len(records) >= v.maxErrors {
			break
		}
		if err := v.predicate(df.Row(i)); err != nil {
			records = append(records, &ErrorRecord{
				Kind:    KindRow,
				Message: fmt.Sprintf("row %d: %v", i, err),
				Rows:    []int{i},
			})
		}
	}
	return records
}
