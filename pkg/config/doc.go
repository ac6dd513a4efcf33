// Package config resolves the effective validation settings for a call:
// strict mode, lazy mode, allow-empty, the row validation error cap, and
// the checks sample size.
//
// Settings come from three layers with fixed precedence: an explicit
// call-site override beats the project configuration file, which beats the
// built-in defaults. The project file is ganymede.yaml in the working
// directory, section "validation". A missing or syntactically unparsable
// file silently falls back to defaults; a present key with the wrong type
// or an out-of-range value fails loading with a ValidationError, since
// that indicates a configuration mistake rather than an absent preference.
//
// The loaded configuration is cached process-wide behind an explicitly
// invalidatable accessor. Tests invalidate the cache between runs instead
// of relying on process restart.
package config
