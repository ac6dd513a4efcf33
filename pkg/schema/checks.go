package schema

import (
	"fmt"
	"regexp"
)

// Check is a named per-value predicate. The name appears in error records
// so a failing check can be identified in reports.
type Check struct {
	// Name identifies the predicate in error messages, e.g. "gte(0)".
	Name string

	// Fn returns true when the value satisfies the predicate.
	Fn func(v any) bool
}

// NamedCheck wraps an arbitrary predicate function with a display name.
func NamedCheck(name string, fn func(v any) bool) Check {
	return Check{Name: name, Fn: fn}
}

// GT requires a numeric value strictly greater than n.
func GT(n float64) Check {
	return Check{Name: fmt.Sprintf("gt(%v)", n), Fn: func(v any) bool {
		f, ok := asFloat(v)
		return ok && f > n
	}}
}

// GTE requires a numeric value greater than or equal to n.
func GTE(n float64) Check {
	return Check{Name: fmt.Sprintf("gte(%v)", n), Fn: func(v any) bool {
		f, ok := asFloat(v)
		return ok && f >= n
	}}
}

// LT requires a numeric value strictly less than n.
func LT(n float64) Check {
	return Check{Name: fmt.Sprintf("lt(%v)", n), Fn: func(v any) bool {
		f, ok := asFloat(v)
		return ok && f < n
	}}
}

// LTE requires a numeric value less than or equal to n.
func LTE(n float64) Check {
	return Check{Name: fmt.Sprintf("lte(%v)", n), Fn: func(v any) bool {
		f, ok := asFloat(v)
		return ok && f <= n
	}}
}

// OneOf requires the value to be one of the allowed values. Values are
// compared after formatting, so int64(1) and "1" are distinct from 1.5.
func OneOf(allowed ...any) Check {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[fmt.Sprint(a)] = struct{}{}
	}
	return Check{Name: fmt.Sprintf("one_of(%v)", allowed), Fn: func(v any) bool {
		_, ok := set[fmt.Sprint(v)]
		return ok
	}}
}

// Matches requires a string value that fully matches the expression.
func Matches(expr string) (Check, error) {
	re, err := regexp.Compile(`\A(?:` + expr + `)\z`)
	if err != nil {
		return Check{}, fmt.Errorf("matches check: %w", err)
	}
	return Check{Name: fmt.Sprintf("matches(%s)", expr), Fn: func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	}}, nil
}

// MinLen requires a string value of at least n bytes.
func MinLen(n int) Check {
	return Check{Name: fmt.Sprintf("min_len(%d)", n), Fn: func(v any) bool {
		s, ok := v.(string)
		return ok && len(s) >= n
	}}
}

// MaxLen requires a string value of at most n bytes.
func MaxLen(n int) Check {
	return Check{Name: fmt.Sprintf("max_len(%d)", n), Fn: func(v any) bool {
		s, ok := v.(string)
		return ok && len(s) <= n
	}}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
