// Package storage provides the report.Storage backends: an in-memory store
// for tests and a SQLite store for persistence.
package storage
