// Package metrics exposes Prometheus instrumentation for the validation
// engine: run counts by outcome, failure counts per validator kind, error
// record volume, and run duration.
//
// The Collector registers its metrics on a caller-supplied registry so
// embedding applications keep control of their metrics endpoint.
package metrics
