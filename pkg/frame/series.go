package frame

import (
	"fmt"
	"time"
)

// DType identifies the element type of a Series.
type DType string

const (
	Bool   DType = "bool"
	Int    DType = "int"
	Float  DType = "float"
	String DType = "string"
	Time   DType = "time"
)

// Valid reports whether d is one of the supported dtypes.
func (d DType) Valid() bool {
	switch d {
	case Bool, Int, Float, String, Time:
		return true
	}
	return false
}

// Series is a single named, typed column. Values are stored as any but are
// guaranteed by Append to hold the Go representation of the series dtype
// (bool, int64, float64, string, time.Time). Null slots are tracked
// separately so a zero value and a null are distinguishable.
type Series struct {
	name   string
	dtype  DType
	values []any
	nulls  []bool
}

// NewSeries creates an empty series with the given name and dtype.
func NewSeries(name string, dtype DType) (*Series, error) {
	if name == "" {
		return nil, fmt.Errorf("series name must not be empty")
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("unsupported dtype %q for series %q", dtype, name)
	}
	return &Series{name: name, dtype: dtype}, nil
}

// Name returns the column name.
func (s *Series) Name() string { return s.name }

// DType returns the element type.
func (s *Series) DType() DType { return s.dtype }

// Len returns the number of slots, including nulls.
func (s *Series) Len() int { return len(s.values) }

// Append adds a non-null value. The value's Go type must match the series
// dtype; integer values are accepted as int or int64.
func (s *Series) Append(v any) error {
	cv, err := coerce(v, s.dtype)
	if err != nil {
		return fmt.Errorf("series %q: %w", s.name, err)
	}
	s.values = append(s.values, cv)
	s.nulls = append(s.nulls, false)
	return nil
}

// AppendNull adds a null slot.
func (s *Series) AppendNull() {
	s.values = append(s.values, nil)
	s.nulls = append(s.nulls, true)
}

// Value returns the value at index i and whether it is non-null.
// It panics if i is out of range, mirroring slice indexing.
func (s *Series) Value(i int) (any, bool) {
	if s.nulls[i] {
		return nil, false
	}
	return s.values[i], true
}

// IsNull reports whether slot i is null.
func (s *Series) IsNull(i int) bool { return s.nulls[i] }

// NullCount returns the number of null slots.
func (s *Series) NullCount() int {
	n := 0
	for _, isNull := range s.nulls {
		if isNull {
			n++
		}
	}
	return n
}

func coerce(v any, dtype DType) (any, error) {
	switch dtype {
	case Bool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case Int:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		}
	case Float:
		switch f := v.(type) {
		case float64:
			return f, nil
		case float32:
			return float64(f), nil
		}
	case String:
		if str, ok := v.(string); ok {
			return str, nil
		}
	case Time:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("value %v (%T) does not match dtype %q", v, v, dtype)
}

// Ints builds an int series from literal values. It panics on an invalid
// name, which cannot happen for non-empty literals; intended for tests and
// example code.
func Ints(name string, values ...int64) *Series {
	s := mustSeries(name, Int)
	for _, v := range values {
		s.values = append(s.values, v)
		s.nulls = append(s.nulls, false)
	}
	return s
}

// Floats builds a float series from literal values.
func Floats(name string, values ...float64) *Series {
	s := mustSeries(name, Float)
	for _, v := range values {
		s.values = append(s.values, v)
		s.nulls = append(s.nulls, false)
	}
	return s
}

// Strings builds a string series from literal values.
func Strings(name string, values ...string) *Series {
	s := mustSeries(name, String)
	for _, v := range values {
		s.values = append(s.values, v)
		s.nulls = append(s.nulls, false)
	}
	return s
}

// Bools builds a bool series from literal values.
func Bools(name string, values ...bool) *Series {
	s := mustSeries(name, Bool)
	for _, v := range values {
		s.values = append(s.values, v)
		s.nulls = append(s.nulls, false)
	}
	return s
}

// Times builds a time series from literal values.
func Times(name string, values ...time.Time) *Series {
	s := mustSeries(name, Time)
	for _, v := range values {
		s.values = append(s.values, v)
		s.nulls = append(s.nulls, false)
	}
	return s
}

func mustSeries(name string, dtype DType) *Series {
	s, err := NewSeries(name, dtype)
	if err != nil {
		panic(err)
	}
	return s
}
