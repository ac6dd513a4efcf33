package schema

import (
	"regexp"
	"strings"
)

// IsPattern reports whether a column spec token is a regular-expression
// pattern. The convention is fixed: a token is a pattern iff it is wrapped
// in slashes, e.g. "/r.*/". Everything else is a literal column name.
func IsPattern(token string) bool {
	return len(token) > 2 && strings.HasPrefix(token, "/") && strings.HasSuffix(token, "/")
}

// CompilePattern compiles a pattern token into an anchored regular
// expression. The expression is applied as a full-string match so an
// unanchored pattern like "/id/" cannot accidentally match "userid".
// A token that fails to compile yields an InvalidPatternError.
func CompilePattern(token string) (*regexp.Regexp, error) {
	inner := token[1 : len(token)-1]
	re, err := regexp.Compile(`\A(?:` + inner + `)\z`)
	if err != nil {
		return nil, &InvalidPatternError{Token: token, Err: err}
	}
	return re, nil
}

// MatchColumns returns the elements of columns matched by the compiled
// pattern, preserving the original column order.
func MatchColumns(re *regexp.Regexp, columns []string) []string {
	var matched []string
	for _, col := range columns {
		if re.MatchString(col) {
			matched = append(matched, col)
		}
	}
	return matched
}
