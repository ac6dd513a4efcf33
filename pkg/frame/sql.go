package frame

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"
)

// identRe restricts table names to plain identifiers; table names cannot be
// bound as query parameters, so anything else is rejected up front.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ReadSQL loads an entire database table into a DataFrame. Column dtypes
// are derived from the Go types the driver reports: integers map to Int,
// floats to Float, booleans to Bool, time.Time to Time, and everything
// else (including BLOBs) to String. Columns whose values are all NULL are
// typed as String.
func ReadSQL(ctx context.Context, db *sql.DB, table string) (*DataFrame, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("sql: invalid table name %q", table)
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table) //nolint:gosec // identifier validated above
	if err != nil {
		return nil, fmt.Errorf("sql: query table %q: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sql: columns of %q: %w", table, err)
	}

	// Collect raw cells first; dtype per column is decided by the first
	// non-null value seen.
	raw := make([][]any, 0, 64)
	for rows.Next() {
		scan := make([]any, len(names))
		for i := range scan {
			scan[i] = new(any)
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("sql: scan %q: %w", table, err)
		}
		rec := make([]any, len(names))
		for i, p := range scan {
			rec[i] = *(p.(*any))
		}
		raw = append(raw, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sql: iterate %q: %w", table, err)
	}

	series := make([]*Series, len(names))
	for col, name := range names {
		dtype := String
		for _, rec := range raw {
			if rec[col] == nil {
				continue
			}
			dtype = dtypeOf(rec[col])
			break
		}

		s, err := NewSeries(name, dtype)
		if err != nil {
			return nil, fmt.Errorf("sql: column %d: %w", col, err)
		}
		for _, rec := range raw {
			if rec[col] == nil {
				s.AppendNull()
				continue
			}
			if err := s.Append(convertSQLValue(rec[col], dtype)); err != nil {
				return nil, fmt.Errorf("sql: column %q: %w", name, err)
			}
		}
		series[col] = s
	}

	return New(series...)
}

func dtypeOf(v any) DType {
	switch v.(type) {
	case int64, int, int32:
		return Int
	case float64, float32:
		return Float
	case bool:
		return Bool
	case time.Time:
		return Time
	default:
		return String
	}
}

func convertSQLValue(v any, dtype DType) any {
	if dtype == String {
		switch s := v.(type) {
		case string:
			return s
		case []byte:
			return string(s)
		default:
			return fmt.Sprint(v)
		}
	}
	return v
}
