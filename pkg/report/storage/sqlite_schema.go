package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the report database schema.
const Schema = `
CREATE TABLE IF NOT EXISTS validation_runs (
    id TEXT PRIMARY KEY,
    dataset TEXT NOT NULL,

    started_at TIMESTAMP NOT NULL,
    completed_at TIMESTAMP NOT NULL,

    outcome TEXT NOT NULL,
    strict BOOLEAN NOT NULL,
    lazy BOOLEAN NOT NULL,

    validators INTEGER NOT NULL,
    rows INTEGER NOT NULL,
    columns INTEGER NOT NULL,

    errors TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_dataset ON validation_runs(dataset);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON validation_runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_outcome ON validation_runs(outcome);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// InsertSchemaVersion records the schema version, ignoring duplicates.
const InsertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`

// GetSchemaVersion reads the highest recorded schema version.
const GetSchemaVersion = `SELECT MAX(version) FROM schema_version`
