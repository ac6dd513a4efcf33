package validation

import (
	"fmt"

	"tabular-hq/ganymede/pkg/frame"
)

// ColumnsExistValidator reports required column spec tokens that resolved
// to nothing. It does not resolve columns itself; the builder hands it the
// precomputed missing list plus the table's columns for the message.
type ColumnsExistValidator struct {
	missing   []string
	dfColumns []string
}

// NewColumnsExistValidator builds a columns-exist validator from the
// missing required tokens, in spec-resolution order.
func NewColumnsExistValidator(missing, dfColumns []string) *ColumnsExistValidator {
	return &ColumnsExistValidator{missing: missing, dfColumns: dfColumns}
}

// Name implements Validator.
func (v *ColumnsExistValidator) Name() string { return string(KindColumnsExist) }

// Validate emits one record per missing required token.
func (v *ColumnsExistValidator) Validate(_ *frame.DataFrame) []*ErrorRecord {
	records := make([]*ErrorRecord, 0, len(v.missing))
	for _, token := range v.missing {
		records = append(records, &ErrorRecord{
			Kind:    KindColumnsExist,
			Columns: []string{token},
			Message: fmt.Sprintf("missing required column %q (table has %v)", token, v.dfColumns),
		})
	}
	return records
}

// DTypeValidator compares declared dtypes against actual column dtypes.
type DTypeValidator struct {
	expected []ColumnDType
}

// ColumnDType is an expanded dtype constraint keyed by actual column name.
type ColumnDType struct {
	Column string
	DType  frame.DType
}

// NewDTypeValidator builds a dtype validator from expanded constraints.
func NewDTypeValidator(expected []ColumnDType) *DTypeValidator {
	return &DTypeValidator{expected: expected}
}

// Name implements Validator.
func (v *DTypeValidator) Name() string { return string(KindDType) }

// Validate emits one record per mismatched column. Columns absent from the
// table are skipped; the columns-exist validator owns that failure.
func (v *DTypeValidator) Validate(df *frame.DataFrame) []*ErrorRecord {
	var records []*ErrorRecord
	for _, want := range v.expected {
		s, ok := df.Column(want.Column)
		if !ok {
			continue
		}
		if s.DType() != want.DType {
			records = append(records, &ErrorRecord{
				Kind:    KindDType,
				Columns: []string{want.Column},
				Message: fmt.Sprintf("column %q has dtype %q, expected %q", want.Column, s.DType(), want.DType),
			})
		}
	}
	return records
}

// NullableValidator reports null values in columns declared non-nullable.
type NullableValidator struct {
	columns   []string
	maxErrors int
}

// NewNullableValidator builds a nullable validator over expanded column
// names. maxErrors bounds the sampled row indices per column.
func NewNullableValidator(columns []string, maxErrors int) *NullableValidator {
	return &NullableValidator{columns: columns, maxErrors: maxErrors}
}

// Name implements Validator.
func (v *NullableValidator) Name() string { return string(KindNullable) }

// Validate emits one record per offending column, with a null count and up
// to maxErrors sample row indices.
func (v *NullableValidator) Validate(df *frame.DataFrame) []*ErrorRecord {
	var records []*ErrorRecord
	for _, col := range v.columns {
		s, ok := df.Column(col)
		if !ok {
			continue
		}
		var sample []int
		count := 0
		for i := 0; i < s.Len(); i++ {
			if !s.IsNull(i) {
				continue
			}
			count++
			if len(sample) < v.maxErrors {
				sample = append(sample, i)
			}
		}
		if count > 0 {
			records = append(records, &ErrorRecord{
				Kind:    KindNullable,
				Columns: []string{col},
				Message: fmt.Sprintf("column %q contains %d null value(s) but is declared non-nullable", col, count),
				Rows:    sample,
			})
		}
	}
	return records
}

// StrictModeValidator rejects table columns not declared in the spec.
type StrictModeValidator struct {
	allowed map[string]struct{}
}

// NewStrictModeValidator builds a strict-mode validator from the set of
// actual columns matched by any required or optional token.
func NewStrictModeValidator(allowed map[string]struct{}) *StrictModeValidator {
	return &StrictModeValidator{allowed: allowed}
}

// Name implements Validator.
func (v *StrictModeValidator) Name() string { return string(KindStrict) }

// Validate emits a single record listing every undeclared column, in table
// column order.
func (v *StrictModeValidator) Validate(df *frame.DataFrame) []*ErrorRecord {
	var extra []string
	for _, col := range df.Columns() {
		if _, ok := v.allowed[col]; !ok {
			extra = append(extra, col)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	return []*ErrorRecord{{
		Kind:    KindStrict,
		Columns: extra,
		Message: fmt.Sprintf("strict mode: undeclared column(s) %v", extra),
	}}
}
