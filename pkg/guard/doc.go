// Package guard validates tables at function boundaries. It is the
// integration surface of the engine: it resolves effective mode flags
// through pkg/config (explicit option > project file > default), assembles
// a validation pipeline for the table's actual columns, runs it, and
// optionally records the outcome to a report store and a metrics
// collector.
//
// Check validates a table directly. In and Out wrap functions that consume
// or produce a table, validating at the call boundary:
//
//	loadOrders := guard.In(processOrders,
//		guard.WithColumns(spec),
//		guard.WithStrict(true),
//	)
package guard
