// Package schema defines the declarative column specification language and
// turns raw specifications into a normalized, parsed form.
//
// A specification is an ordered list of column definitions. Each definition
// names a column either literally ("id") or with a regular-expression
// pattern wrapped in slashes ("/r.*/"), and optionally attaches a
// constraint bundle: an expected dtype, a nullability flag, a uniqueness
// flag, per-value checks, and an optional marker.
//
// Specifications can be built in code (List, Spec literals) or loaded from
// YAML schema documents (LoadDocument), both of which normalize through the
// same parser. Parsing rejects malformed bundles and invalid patterns
// immediately; those are programmer errors, not data errors.
package schema
