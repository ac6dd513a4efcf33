package validation

import (
	"fmt"
	"strings"

	"tabular-hq/ganymede/pkg/frame"
)

// UniqueValidator reports duplicate non-null values within single columns.
type UniqueValidator struct {
	columns   []string
	maxErrors int
}

// NewUniqueValidator builds a unique validator over expanded column names.
// maxErrors bounds the duplicate values reported per column.
func NewUniqueValidator(columns []string, maxErrors int) *UniqueValidator {
	return &UniqueValidator{columns: columns, maxErrors: maxErrors}
}

// Name implements Validator.
func (v *UniqueValidator) Name() string { return string(KindUnique) }

// Validate emits one record per column containing duplicates. Duplicates
// are reported in first-occurrence row order; nulls never count as
// duplicates of each other.
func (v *UniqueValidator) Validate(df *frame.DataFrame) []*ErrorRecord {
	var records []*ErrorRecord
	for _, col := range v.columns {
		s, ok := df.Column(col)
		if !ok {
			continue
		}

		firstSeen := make(map[string]int, s.Len())
		reported := make(map[string]struct{})
		var dups []string
		var rows []int
		total := 0

		for i := 0; i < s.Len(); i++ {
			val, ok := s.Value(i)
			if !ok {
				continue
			}
			key := formatValue(val)
			if _, seen := firstSeen[key]; !seen {
				firstSeen[key] = i
				continue
			}
			total++
			if _, done := reported[key]; done {
				continue
			}
			reported[key] = struct{}{}
			if len(dups) < v.maxErrors {
				dups = append(dups, key)
				rows = append(rows, i)
			}
		}

		if total > 0 {
			records = append(records, &ErrorRecord{
				Kind:    KindUnique,
				Columns: []string{col},
				Message: fmt.Sprintf("column %q contains %d duplicate value(s), e.g. %v", col, total, dups),
				Rows:    rows,
			})
		}
	}
	return records
}

// CompositeUniqueValidator enforces uniqueness over the combination of
// values across a named group of columns.
type CompositeUniqueValidator struct {
	groups    [][]string
	maxErrors int
}

// NewCompositeUniqueValidator builds a validator covering all groups.
func NewCompositeUniqueValidator(groups [][]string, maxErrors int) *CompositeUniqueValidator {
	return &CompositeUniqueValidator{groups: groups, maxErrors: maxErrors}
}

// Name implements Validator.
func (v *CompositeUniqueValidator) Name() string { return string(KindCompositeUnique) }

// Validate emits one record per group containing duplicate combinations.
// Rows where any group column is null are skipped, mirroring single-column
// uniqueness. Groups referencing absent columns are skipped entirely.
func (v *CompositeUniqueValidator) Validate(df *frame.DataFrame) []*ErrorRecord {
	var records []*ErrorRecord

	for _, group := range v.groups {
		series := make([]*frame.Series, 0, len(group))
		missing := false
		for _, col := range group {
			s, ok := df.Column(col)
			if !ok {
				missing = true
				break
			}
			series = append(series, s)
		}
		if missing || len(series) == 0 {
			continue
		}

		firstSeen := make(map[string]struct{}, df.NumRows())
		reported := make(map[string]struct{})
		var dups []string
		var rows []int
		total := 0

		for i := 0; i < df.NumRows(); i++ {
			key, ok := compositeKey(series, i)
			if !ok {
				continue
			}
			if _, seen := firstSeen[key]; !seen {
				firstSeen[key] = struct{}{}
				continue
			}
			total++
			if _, done := reported[key]; done {
				continue
			}
			reported[key] = struct{}{}
			if len(dups) < v.maxErrors {
				dups = append(dups, key)
				rows = append(rows, i)
			}
		}

		if total > 0 {
			records = append(records, &ErrorRecord{
				Kind:    KindCompositeUnique,
				Columns: group,
				Message: fmt.Sprintf("columns %v contain %d duplicate combination(s), e.g. %v", group, total, dups),
				Rows:    rows,
			})
		}
	}

	return records
}

// compositeKey builds a stable key for a row's tuple of group values.
// Returns false when any value in the tuple is null.
func compositeKey(series []*frame.Series, row int) (string, bool) {
	parts := make([]string, len(series))
	for j, s := range series {
		val, ok := s.Value(row)
		if !ok {
			return "", false
		}
		parts[j] = formatValue(val)
	}
	return "(" + strings.Join(parts, ", ") + ")", true
}

func formatValue(v any) string {
	return fmt.Sprint(v)
}
