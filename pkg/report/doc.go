// Package report persists the outcome of validation runs for audit and
// later inspection: which dataset was checked, when, under which mode
// flags, and the full set of error records produced.
//
// Storage backends live in the storage subpackage (in-memory for tests,
// SQLite for persistence); retention enforcement lives in the retention
// subpackage.
package report
