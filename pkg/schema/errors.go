package schema

import "fmt"

// InvalidSpecError reports a malformed column specification: an unknown
// bundle option, a contradictory flag combination, or an unusable value.
// It is raised at parse time, before any data is inspected.
type InvalidSpecError struct {
	// Token is the column spec token the error relates to, if any.
	Token string

	// Message describes what is wrong with the spec.
	Message string
}

// Error implements the error interface.
func (e *InvalidSpecError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid column spec: %s", e.Message)
	}
	return fmt.Sprintf("invalid column spec for %q: %s", e.Token, e.Message)
}

// InvalidPatternError reports a column spec token that looks like a pattern
// but does not compile under Go's regexp grammar.
type InvalidPatternError struct {
	// Token is the offending pattern token, delimiters included.
	Token string

	// Err is the underlying regexp compilation error.
	Err error
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid column pattern %q: %v", e.Token, e.Err)
}

// Unwrap returns the underlying compilation error.
func (e *InvalidPatternError) Unwrap() error { return e.Err }
