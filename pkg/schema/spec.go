package schema

import (
	"tabular-hq/ganymede/pkg/frame"
)

// Spec is a raw column specification: an ordered sequence of column
// definitions. Order is significant; it determines the order columns are
// resolved, checked and reported.
type Spec []ColumnDef

// ColumnDef binds one column spec token (a literal name or a /pattern/) to
// an optional constraint bundle. A nil Rule means "required column, no
// further constraints", which is what the plain-list form produces.
type ColumnDef struct {
	Token string
	Rule  *Rule
}

// Rule is the per-column constraint bundle. All fields are optional; the
// zero value constrains nothing beyond the column's presence.
type Rule struct {
	// DType is the expected column dtype. Empty means unconstrained.
	DType frame.DType

	// Nullable, when set to false, forbids null values in the column.
	// Nil and true both leave nulls unconstrained.
	Nullable *bool

	// Unique requires all non-null values in the column to be distinct.
	Unique bool

	// Checks are per-value predicates applied to sampled values.
	Checks []Check

	// Optional marks the token as allowed to resolve to zero columns.
	Optional bool
}

// List builds a Spec from bare column tokens. Every token is required and
// carries no constraints, matching the plain-sequence spec shape.
func List(tokens ...string) Spec {
	spec := make(Spec, len(tokens))
	for i, tok := range tokens {
		spec[i] = ColumnDef{Token: tok}
	}
	return spec
}
