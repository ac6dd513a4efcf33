// Package validation implements the validation pipeline engine: a family
// of independent validators over a frame.DataFrame, an ordered pipeline
// that executes them under fail-fast or collect-all policies, and a builder
// that assembles a pipeline from a raw column specification and the table's
// actual columns.
//
// Validators never raise for data errors; data that violates a declared
// constraint is reported as ErrorRecord values through the pipeline result.
// Faults (malformed specs, invalid patterns) are returned as errors from
// the builder before any data is inspected.
package validation
