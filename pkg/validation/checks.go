package validation

import (
	"fmt"

	"tabular-hq/ganymede/pkg/frame"
	"tabular-hq/ganymede/pkg/schema"
)

// ChecksValidator applies user predicates to sampled column values.
type ChecksValidator struct {
	checks     []ColumnChecks
	maxSamples int
}

// ColumnChecks is an expanded checks constraint keyed by actual column name.
type ColumnChecks struct {
	Column string
	Checks []schema.Check
}

// NewChecksValidator builds a checks validator. maxSamples bounds how many
// non-null values per column each predicate is applied to.
func NewChecksValidator(checks []ColumnChecks, maxSamples int) *ChecksValidator {
	return &ChecksValidator{checks: checks, maxSamples: maxSamples}
}

// Name implements Validator.
func (v *ChecksValidator) Name() string { return string(KindChecks) }

// Validate samples the first maxSamples non-null values of each column, in
// row order, and emits one record per predicate violation.
func (v *ChecksValidator) Validate(df *frame.DataFrame) []*ErrorRecord {
	var records []*ErrorRecord
	for _, cc := range v.checks {
		s, ok := df.Column(cc.Column)
		if !ok {
			continue
		}

		sampled := 0
		for i := 0; i < s.Len() && sampled < v.maxSamples; i++ {
			val, ok := s.Value(i)
			if !ok {
				continue
			}
			sampled++
			for _, check := range cc.Checks {
				if check.Fn(val) {
					continue
				}
				records = append(records, &ErrorRecord{
					Kind:    KindChecks,
					Columns: []string{cc.Column},
					Message: fmt.Sprintf("column %q value %v fails check %s", cc.Column, val, check.Name),
					Rows:    []int{i},
				})
			}
		}
	}
	return records
}
