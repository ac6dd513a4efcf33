// Package logging configures structured slog loggers for the CLI and the
// report store: level and format parsing with typed errors, JSON or text
// handlers, optional source locations.
package logging
