// Package frame provides the in-memory tabular dataset consumed by the
// validation engine: named, typed columns holding an ordered sequence of
// rows with explicit null tracking.
//
// A DataFrame is immutable from the validation engine's perspective. It is
// built once, either programmatically from Series values or through one of
// the loaders (ReadCSV for delimited files, ReadSQL for database tables),
// and then handed to validators which only ever read from it.
package frame
