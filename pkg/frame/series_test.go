package frame

import (
	"testing"
	"time"
)

func TestNewSeries(t *testing.T) {
	s, err := NewSeries("age", Int)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "age" {
		t.Errorf("expected name %q, got %q", "age", s.Name())
	}
	if s.DType() != Int {
		t.Errorf("expected dtype %q, got %q", Int, s.DType())
	}
	if s.Len() != 0 {
		t.Errorf("expected empty series, got len %d", s.Len())
	}
}

func TestNewSeries_Invalid(t *testing.T) {
	if _, err := NewSeries("", Int); err == nil {
		t.Error("expected error for empty name, got nil")
	}
	if _, err := NewSeries("x", DType("decimal")); err == nil {
		t.Error("expected error for unsupported dtype, got nil")
	}
}

func TestSeries_AppendCoercion(t *testing.T) {
	tests := []struct {
		name    string
		dtype   DType
		value   any
		wantErr bool
	}{
		{"int64 into int", Int, int64(3), false},
		{"int into int", Int, 3, false},
		{"int32 into int", Int, int32(3), false},
		{"float into int", Int, 3.0, true},
		{"float64 into float", Float, 1.5, false},
		{"float32 into float", Float, float32(1.5), false},
		{"string into float", Float, "1.5", true},
		{"bool into bool", Bool, true, false},
		{"string into string", String, "hi", false},
		{"time into time", Time, time.Now(), false},
		{"int into string", String, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSeries("col", tt.dtype)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			err = s.Append(tt.value)
			if tt.wantErr && err == nil {
				t.Errorf("expected coercion error for %v (%T) into %q", tt.value, tt.value, tt.dtype)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSeries_Nulls(t *testing.T) {
	s, err := NewSeries("score", Float)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Append(1.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.AppendNull()
	if err := s.Append(2.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("expected len 3, got %d", s.Len())
	}
	if s.NullCount() != 1 {
		t.Errorf("expected 1 null, got %d", s.NullCount())
	}
	if !s.IsNull(1) {
		t.Error("expected slot 1 to be null")
	}
	if _, ok := s.Value(1); ok {
		t.Error("expected Value(1) to report null")
	}
	v, ok := s.Value(2)
	if !ok {
		t.Fatal("expected Value(2) to be non-null")
	}
	if v.(float64) != 2.5 {
		t.Errorf("expected 2.5, got %v", v)
	}
}

func TestSeriesBuilders(t *testing.T) {
	s := Ints("n", 1, 2, 3)
	if s.Len() != 3 || s.DType() != Int {
		t.Errorf("Ints: expected 3 int values, got len %d dtype %q", s.Len(), s.DType())
	}
	str := Strings("s", "a", "b")
	if str.Len() != 2 || str.DType() != String {
		t.Errorf("Strings: expected 2 string values, got len %d dtype %q", str.Len(), str.DType())
	}
	b := Bools("b", true)
	if b.Len() != 1 || b.DType() != Bool {
		t.Errorf("Bools: expected 1 bool value, got len %d dtype %q", b.Len(), b.DType())
	}
}
