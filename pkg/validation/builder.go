package validation

import (
	"tabular-hq/ganymede/pkg/schema"
)

// Params carries everything the builder needs to assemble a pipeline for
// one validation call. Flag values are the already-resolved effective ones;
// precedence over project configuration is the caller's concern (see
// pkg/config and pkg/guard).
type Params struct {
	// Columns is the raw column specification. Nil or empty builds no
	// column-level validators.
	Columns schema.Spec

	// Strict rejects table columns not declared in the spec. Only applied
	// when a column spec was supplied.
	Strict bool

	// Lazy selects collect-all execution instead of fail-fast.
	Lazy bool

	// CompositeUnique lists column groups whose combined values must be
	// unique.
	CompositeUnique [][]string

	// RowValidator is an optional per-row predicate, run last.
	RowValidator RowPredicate

	// Row-count bounds. Nil means unenforced.
	MinRows   *int
	MaxRows   *int
	ExactRows *int

	// AllowEmpty permits zero-row tables.
	AllowEmpty bool

	// MaxErrors bounds per-validator row sampling and the lazy-mode total
	// record count. Must be >= 1.
	MaxErrors int

	// MaxSamples bounds how many values per column the checks validator
	// inspects. Must be >= 1.
	MaxSamples int
}

// BuildPipeline assembles the ordered validator pipeline for a table with
// the given actual columns. Construction faults (malformed specs, invalid
// patterns) are returned as errors; they are never deferred into records.
//
// Validator order is fixed: shape, columns-exist, dtype, nullable, unique,
// checks, strict, composite-unique, row. The order is a correctness
// requirement for deterministic reports, not an accident of assembly.
func BuildPipeline(p Params, dfColumns []string) (*Pipeline, error) {
	if p.MaxErrors < 1 {
		p.MaxErrors = 1
	}
	if p.MaxSamples < 1 {
		p.MaxSamples = 1
	}

	pipeline := NewPipeline(p.Lazy, p.MaxErrors)

	hasShape := p.MinRows != nil || p.MaxRows != nil || p.ExactRows != nil || !p.AllowEmpty
	if hasShape {
		pipeline.Add(NewShapeValidator(p.MinRows, p.MaxRows, p.ExactRows, p.AllowEmpty))
	}

	if len(p.Columns) > 0 {
		spec, err := schema.Parse(p.Columns)
		if err != nil {
			return nil, err
		}

		missingRequired, resolvedRequired, err := resolveColumns(spec.RequiredColumns, dfColumns)
		if err != nil {
			return nil, err
		}
		if len(missingRequired) > 0 {
			pipeline.Add(NewColumnsExistValidator(missingRequired, dfColumns))
		}

		_, resolvedOptional, err := resolveColumns(spec.OptionalColumns, dfColumns)
		if err != nil {
			return nil, err
		}
		_, resolvedAll, err := resolveColumns(spec.AllColumns, dfColumns)
		if err != nil {
			return nil, err
		}

		if expanded := expandDTypes(spec.DTypes, resolvedAll); len(expanded) > 0 {
			pipeline.Add(NewDTypeValidator(expanded))
		}
		if expanded := expandTokens(spec.NonNullable, resolvedAll); len(expanded) > 0 {
			pipeline.Add(NewNullableValidator(expanded, p.MaxErrors))
		}
		if expanded := expandTokens(spec.Unique, resolvedAll); len(expanded) > 0 {
			pipeline.Add(NewUniqueValidator(expanded, p.MaxErrors))
		}
		if expanded := expandChecks(spec.Checks, resolvedAll); len(expanded) > 0 {
			pipeline.Add(NewChecksValidator(expanded, p.MaxSamples))
		}

		if p.Strict {
			allowed := make(map[string]struct{})
			for _, cols := range resolvedRequired {
				for _, col := range cols {
					allowed[col] = struct{}{}
				}
			}
			for _, cols := range resolvedOptional {
				for _, col := range cols {
					allowed[col] = struct{}{}
				}
			}
			pipeline.Add(NewStrictModeValidator(allowed))
		}
	}

	if len(p.CompositeUnique) > 0 {
		pipeline.Add(NewCompositeUniqueValidator(p.CompositeUnique, p.MaxErrors))
	}

	if p.RowValidator != nil {
		pipeline.Add(NewRowValidator(p.RowValidator, p.MaxErrors))
	}

	return pipeline, nil
}

// resolveColumns maps each token to the actual columns it matches. Literal
// tokens match themselves when present; pattern tokens match the ordered
// subsequence of table columns their expression covers. Tokens with an
// empty resolution are returned as missing, in token order.
func resolveColumns(tokens, dfColumns []string) (missing []string, resolved map[string][]string, err error) {
	resolved = make(map[string][]string, len(tokens))

	for _, token := range tokens {
		var matched []string
		if schema.IsPattern(token) {
			re, err := schema.CompilePattern(token)
			if err != nil {
				return nil, nil, err
			}
			matched = schema.MatchColumns(re, dfColumns)
		} else {
			for _, col := range dfColumns {
				if col == token {
					matched = []string{token}
					break
				}
			}
		}

		resolved[token] = matched
		if len(matched) == 0 {
			missing = append(missing, token)
		}
	}

	return missing, resolved, nil
}

// expandDTypes re-keys dtype constraints by actual column name. A column
// claimed by multiple tokens keeps its first position but takes the last
// token's dtype.
func expandDTypes(constraints []schema.DTypeConstraint, resolved map[string][]string) []ColumnDType {
	idx := make(map[string]int)
	var out []ColumnDType
	for _, c := range constraints {
		for _, col := range resolved[c.Token] {
			if i, ok := idx[col]; ok {
				out[i].DType = c.DType
				continue
			}
			idx[col] = len(out)
			out = append(out, ColumnDType{Column: col, DType: c.DType})
		}
	}
	return out
}

// expandTokens flattens token lists into actual column names, deduplicated
// in first-appearance order.
func expandTokens(tokens []string, resolved map[string][]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, token := range tokens {
		for _, col := range resolved[token] {
			if _, dup := seen[col]; dup {
				continue
			}
			seen[col] = struct{}{}
			out = append(out, col)
		}
	}
	return out
}

// expandChecks re-keys checks constraints by actual column name, last
// token's checks winning on collision.
func expandChecks(constraints []schema.ChecksConstraint, resolved map[string][]string) []ColumnChecks {
	idx := make(map[string]int)
	var out []ColumnChecks
	for _, c := range constraints {
		for _, col := range resolved[c.Token] {
			if i, ok := idx[col]; ok {
				out[i].Checks = c.Checks
				continue
			}
			idx[col] = len(out)
			out = append(out, ColumnChecks{Column: col, Checks: c.Checks})
		}
	}
	return out
}
