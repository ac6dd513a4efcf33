package schema

import (
	"fmt"

	"tabular-hq/ganymede/pkg/frame"
)

// ParsedSpec is the normalized decomposition of a raw Spec. Token order in
// every field follows the order tokens first appear in the raw spec.
type ParsedSpec struct {
	// RequiredColumns are tokens that must resolve to at least one column.
	RequiredColumns []string

	// OptionalColumns are tokens allowed to resolve to zero columns.
	OptionalColumns []string

	// AllColumns is the union of required and optional tokens.
	AllColumns []string

	// DTypes are the per-token dtype constraints.
	DTypes []DTypeConstraint

	// NonNullable are tokens whose columns must not contain nulls.
	NonNullable []string

	// Unique are tokens whose columns must hold distinct non-null values.
	Unique []string

	// Checks are the per-token value predicates.
	Checks []ChecksConstraint
}

// DTypeConstraint pairs a token with its expected dtype.
type DTypeConstraint struct {
	Token string
	DType frame.DType
}

// ChecksConstraint pairs a token with its value predicates.
type ChecksConstraint struct {
	Token  string
	Checks []Check
}

// Parse normalizes a raw spec. It fails with an InvalidSpecError when a
// constraint bundle is unusable: an empty token, an unsupported dtype, a
// check without a predicate, or a token that appears both required and
// optional. A token appearing more than once is folded into its first
// position; later constraint values win, consistent with the engine's
// last-token-wins expansion policy.
func Parse(spec Spec) (*ParsedSpec, error) {
	parsed := &ParsedSpec{}

	seen := make(map[string]*Rule, len(spec))
	order := make([]string, 0, len(spec))

	for _, def := range spec {
		if def.Token == "" {
			return nil, &InvalidSpecError{Message: "empty column token"}
		}
		rule := def.Rule
		if rule == nil {
			rule = &Rule{}
		}
		if err := validateRule(def.Token, rule); err != nil {
			return nil, err
		}

		prev, dup := seen[def.Token]
		if !dup {
			seen[def.Token] = rule
			order = append(order, def.Token)
			continue
		}
		if prev.Optional != rule.Optional {
			return nil, &InvalidSpecError{Token: def.Token, Message: "marked both required and optional"}
		}
		merged := mergeRules(prev, rule)
		seen[def.Token] = merged
	}

	for _, token := range order {
		rule := seen[token]

		parsed.AllColumns = append(parsed.AllColumns, token)
		if rule.Optional {
			parsed.OptionalColumns = append(parsed.OptionalColumns, token)
		} else {
			parsed.RequiredColumns = append(parsed.RequiredColumns, token)
		}

		if rule.DType != "" {
			parsed.DTypes = append(parsed.DTypes, DTypeConstraint{Token: token, DType: rule.DType})
		}
		if rule.Nullable != nil && !*rule.Nullable {
			parsed.NonNullable = append(parsed.NonNullable, token)
		}
		if rule.Unique {
			parsed.Unique = append(parsed.Unique, token)
		}
		if len(rule.Checks) > 0 {
			parsed.Checks = append(parsed.Checks, ChecksConstraint{Token: token, Checks: rule.Checks})
		}
	}

	return parsed, nil
}

func validateRule(token string, rule *Rule) error {
	if rule.DType != "" && !rule.DType.Valid() {
		return &InvalidSpecError{Token: token, Message: fmt.Sprintf("unsupported dtype %q", rule.DType)}
	}
	for i, check := range rule.Checks {
		if check.Fn == nil {
			return &InvalidSpecError{Token: token, Message: fmt.Sprintf("check %d has no predicate", i)}
		}
	}
	return nil
}

// mergeRules folds a duplicate token's rule into the earlier one. Later
// values win where both are set.
func mergeRules(prev, next *Rule) *Rule {
	merged := *prev
	if next.DType != "" {
		merged.DType = next.DType
	}
	if next.Nullable != nil {
		merged.Nullable = next.Nullable
	}
	if next.Unique {
		merged.Unique = true
	}
	merged.Checks = append(merged.Checks, next.Checks...)
	return &merged
}
