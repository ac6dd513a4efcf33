package validation

import (
	"fmt"

	"tabular-hq/ganymede/pkg/frame"
)

// ShapeValidator checks row-count bounds and emptiness. It runs before any
// column-level validator because an empty or malformed table makes column
// checks meaningless.
type ShapeValidator struct {
	minRows    *int
	maxRows    *int
	exactRows  *int
	allowEmpty bool
}

// NewShapeValidator builds a shape validator. Nil bounds are unenforced.
func NewShapeValidator(minRows, maxRows, exactRows *int, allowEmpty bool) *ShapeValidator {
	return &ShapeValidator{minRows: minRows, maxRows: maxRows, exactRows: exactRows, allowEmpty: allowEmpty}
}

// Name implements Validator.
func (v *ShapeValidator) Name() string { return string(KindShape) }

// Validate emits at most one record per violated bound.
func (v *ShapeValidator) Validate(df *frame.DataFrame) []*ErrorRecord {
	rows := df.NumRows()
	var records []*ErrorRecord

	if rows == 0 && !v.allowEmpty {
		records = append(records, &ErrorRecord{
			Kind:    KindShape,
			Message: "table is empty and allow_empty is false",
		})
	}
	if v.exactRows != nil && rows != *v.exactRows {
		records = append(records, &ErrorRecord{
			Kind:    KindShape,
			Message: fmt.Sprintf("expected exactly %d rows, got %d", *v.exactRows, rows),
		})
	}
	if v.minRows != nil && rows < *v.minRows {
		records = append(records, &ErrorRecord{
			Kind:    KindShape,
			Message: fmt.Sprintf("expected at least %d rows, got %d", *v.minRows, rows),
		})
	}
	if v.maxRows != nil && rows > *v.maxRows {
		records = append(records, &ErrorRecord{
			Kind:    KindShape,
			Message: fmt.Sprintf("expected at most %d rows, got %d", *v.maxRows, rows),
		})
	}

	return records
}
