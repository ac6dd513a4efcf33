package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tabular-hq/ganymede/pkg/report"
	"tabular-hq/ganymede/pkg/validation"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// DefaultQueryLimit applies when a query carries no limit.
	// Default: 100
	DefaultQueryLimit int
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:              "data/reports.db",
		MaxOpenConns:      10,
		MaxIdleConns:      5,
		WALMode:           true,
		BusyTimeout:       5 * time.Second,
		DefaultQueryLimit: 100,
	}
}

// SQLiteStorage implements report.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend. It initializes
// the schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.DefaultQueryLimit <= 0 {
		config.DefaultQueryLimit = 100
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, report.NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: slog.Default().With("component", "report.storage.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Debug("sqlite report storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return report.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return report.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return report.NewStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return report.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil && err != sql.ErrNoRows {
		return report.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return report.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists one validation run record.
func (s *SQLiteStorage) Store(ctx context.Context, record *report.Record) error {
	var errorsJSON any
	if len(record.Errors) > 0 {
		data, err := json.Marshal(record.Errors)
		if err != nil {
			return report.NewStorageError("sqlite", "marshal_errors", err)
		}
		errorsJSON = string(data)
	}

	const query = `
		INSERT INTO validation_runs (
			id, dataset, started_at, completed_at,
			outcome, strict, lazy,
			validators, rows, columns, errors
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.Dataset, record.StartedAt, record.CompletedAt,
		string(record.Outcome), record.Strict, record.Lazy,
		record.Validators, record.Rows, record.Columns, errorsJSON,
	)
	if err != nil {
		return report.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Query returns records matching the query, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *report.Query) ([]*report.Record, error) {
	if query == nil {
		query = &report.Query{}
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT id, dataset, started_at, completed_at,
		       outcome, strict, lazy,
		       validators, rows, columns, errors
		FROM validation_runs
		WHERE 1=1
	`)
	var args []any

	if query.Dataset != "" {
		sb.WriteString(" AND dataset = ?")
		args = append(args, query.Dataset)
	}
	if query.Outcome != "" {
		sb.WriteString(" AND outcome = ?")
		args = append(args, string(query.Outcome))
	}
	if !query.Since.IsZero() {
		sb.WriteString(" AND started_at >= ?")
		args = append(args, query.Since)
	}
	if !query.Until.IsZero() {
		sb.WriteString(" AND started_at <= ?")
		args = append(args, query.Until)
	}

	sb.WriteString(" ORDER BY started_at DESC LIMIT ? OFFSET ?")
	limit := query.Limit
	if limit <= 0 {
		limit = s.config.DefaultQueryLimit
	}
	args = append(args, limit, query.Offset)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, report.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	var results []*report.Record
	for rows.Next() {
		rec := &report.Record{}
		var outcome string
		var errorsJSON sql.NullString
		if err := rows.Scan(
			&rec.ID, &rec.Dataset, &rec.StartedAt, &rec.CompletedAt,
			&outcome, &rec.Strict, &rec.Lazy,
			&rec.Validators, &rec.Rows, &rec.Columns, &errorsJSON,
		); err != nil {
			return nil, report.NewStorageError("sqlite", "scan", err)
		}
		rec.Outcome = report.Outcome(outcome)
		if errorsJSON.Valid && errorsJSON.String != "" {
			var records []*validation.ErrorRecord
			if err := json.Unmarshal([]byte(errorsJSON.String), &records); err != nil {
				return nil, report.NewStorageError("sqlite", "unmarshal_errors", err)
			}
			rec.Errors = records
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, report.NewStorageError("sqlite", "iterate", err)
	}

	return results, nil
}

// Count returns the total number of stored records.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM validation_runs").Scan(&count); err != nil {
		return 0, report.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// DeleteOlderThan removes records that started before the cutoff.
func (s *SQLiteStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM validation_runs WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, report.NewStorageError("sqlite", "delete", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, report.NewStorageError("sqlite", "rows_affected", err)
	}
	return deleted, nil
}

// Close closes the underlying database.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return report.NewStorageError("sqlite", "close", err)
	}
	return nil
}
