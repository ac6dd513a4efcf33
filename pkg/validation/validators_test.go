package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"tabular-hq/ganymede/pkg/frame"
	"tabular-hq/ganymede/pkg/schema"
)

func intPtr(n int) *int { return &n }

func mustFrame(t *testing.T, series ...*frame.Series) *frame.DataFrame {
	t.Helper()
	df, err := frame.New(series...)
	if err != nil {
		t.Fatalf("failed to build frame: %v", err)
	}
	return df
}

func TestShapeValidator(t *testing.T) {
	twoRows := mustFrame(t, frame.Ints("a", 1, 2))
	empty := mustFrame(t, frame.Ints("a"))

	tests := []struct {
		name      string
		validator *ShapeValidator
		df        *frame.DataFrame
		wantKinds int
	}{
		{"no bounds, allow empty", NewShapeValidator(nil, nil, nil, true), empty, 0},
		{"empty rejected", NewShapeValidator(nil, nil, nil, false), empty, 1},
		{"empty allowed", NewShapeValidator(nil, nil, nil, true), empty, 0},
		{"min satisfied", NewShapeValidator(intPtr(2), nil, nil, true), twoRows, 0},
		{"min violated", NewShapeValidator(intPtr(3), nil, nil, true), twoRows, 1},
		{"max violated", NewShapeValidator(nil, intPtr(1), nil, true), twoRows, 1},
		{"exact violated", NewShapeValidator(nil, nil, intPtr(5), true), twoRows, 1},
		{"exact satisfied", NewShapeValidator(nil, nil, intPtr(2), true), twoRows, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := tt.validator.Validate(tt.df)
			if len(records) != tt.wantKinds {
				t.Errorf("expected %d records, got %d: %v", tt.wantKinds, len(records), records)
			}
			for _, rec := range records {
				if rec.Kind != KindShape {
					t.Errorf("expected kind %q, got %q", KindShape, rec.Kind)
				}
			}
		})
	}
}

func TestColumnsExistValidator(t *testing.T) {
	df := mustFrame(t, frame.Ints("a", 1))
	v := NewColumnsExistValidator([]string{"b", "/c.*/"}, df.Columns())

	records := v.Validate(df)
	if len(records) != 2 {
		t.Fatalf("expected one record per missing token, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0].Columns, []string{"b"}) {
		t.Errorf("expected first record to name token b, got %v", records[0].Columns)
	}
	if !strings.Contains(records[0].Message, `"b"`) || !strings.Contains(records[0].Message, "[a]") {
		t.Errorf("expected message to name the token and the table columns, got %q", records[0].Message)
	}
	if !reflect.DeepEqual(records[1].Columns, []string{"/c.*/"}) {
		t.Errorf("expected pattern token reported verbatim, got %v", records[1].Columns)
	}
}

func TestDTypeValidator(t *testing.T) {
	df := mustFrame(t,
		frame.Ints("age", 30),
		frame.Strings("name", "alice"),
	)

	v := NewDTypeValidator([]ColumnDType{
		{Column: "age", DType: frame.Int},
		{Column: "name", DType: frame.Float},
		{Column: "absent", DType: frame.Int},
	})

	records := v.Validate(df)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d: %v", len(records), records)
	}
	if records[0].Kind != KindDType || records[0].Columns[0] != "name" {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestNullableValidator(t *testing.T) {
	s, err := frame.NewSeries("score", frame.Float)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 4; i++ {
		s.AppendNull()
	}
	if err := s.Append(1.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	df := mustFrame(t, s)

	v := NewNullableValidator([]string{"score"}, 2)
	records := v.Validate(df)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if !strings.Contains(rec.Message, "4 null value(s)") {
		t.Errorf("expected null count in message, got %q", rec.Message)
	}
	// Sampled rows are capped, the count is not.
	if !reflect.DeepEqual(rec.Rows, []int{0, 1}) {
		t.Errorf("expected sampled rows [0 1], got %v", rec.Rows)
	}
}

func TestNullableValidator_CleanColumn(t *testing.T) {
	df := mustFrame(t, frame.Floats("score", 1, 2))
	if records := NewNullableValidator([]string{"score"}, 5).Validate(df); len(records) != 0 {
		t.Errorf("expected no records, got %v", records)
	}
}

func TestStrictModeValidator(t *testing.T) {
	df := mustFrame(t,
		frame.Ints("a", 1),
		frame.Ints("extra1", 1),
		frame.Ints("b", 1),
		frame.Ints("extra2", 1),
	)

	v := NewStrictModeValidator(map[string]struct{}{"a": {}, "b": {}})
	records := v.Validate(df)
	if len(records) != 1 {
		t.Fatalf("expected a single record listing all extras, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0].Columns, []string{"extra1", "extra2"}) {
		t.Errorf("expected extras in table order, got %v", records[0].Columns)
	}
}

func TestStrictModeValidator_AllDeclared(t *testing.T) {
	df := mustFrame(t, frame.Ints("a", 1))
	v := NewStrictModeValidator(map[string]struct{}{"a": {}})
	if records := v.Validate(df); len(records) != 0 {
		t.Errorf("expected no records, got %v", records)
	}
}

func TestUniqueValidator(t *testing.T) {
	df := mustFrame(t, frame.Strings("id", "x", "y", "x", "y", "x"))

	v := NewUniqueValidator([]string{"id"}, 5)
	records := v.Validate(df)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	// x repeats twice, y once: three surplus occurrences.
	if !strings.Contains(records[0].Message, "3 duplicate value(s)") {
		t.Errorf("expected duplicate count in message, got %q", records[0].Message)
	}
}

func TestUniqueValidator_NullsNotDuplicates(t *testing.T) {
	s, err := frame.NewSeries("id", frame.String)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.AppendNull()
	s.AppendNull()
	if err := s.Append("x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	df := mustFrame(t, s)

	if records := NewUniqueValidator([]string{"id"}, 5).Validate(df); len(records) != 0 {
		t.Errorf("expected nulls not to count as duplicates, got %v", records)
	}
}

func TestCompositeUniqueValidator(t *testing.T) {
	df := mustFrame(t,
		frame.Strings("a", "x", "x", "x", "y"),
		frame.Ints("b", 1, 1, 2, 1),
	)

	v := NewCompositeUniqueValidator([][]string{{"a", "b"}}, 5)
	records := v.Validate(df)
	if len(records) != 1 {
		t.Fatalf("expected a single record per group, got %d", len(records))
	}
	if records[0].Kind != KindCompositeUnique {
		t.Errorf("expected kind %q, got %q", KindCompositeUnique, records[0].Kind)
	}
	if !reflect.DeepEqual(records[0].Columns, []string{"a", "b"}) {
		t.Errorf("expected group columns, got %v", records[0].Columns)
	}
	if !reflect.DeepEqual(records[0].Rows, []int{1}) {
		t.Errorf("expected duplicate at row 1, got %v", records[0].Rows)
	}
}

func TestCompositeUniqueValidator_NullTupleSkipped(t *testing.T) {
	a, err := frame.NewSeries("a", frame.String)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Append("x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.AppendNull()
	b := frame.Ints("b", 1, 1)
	df := mustFrame(t, a, b)

	v := NewCompositeUniqueValidator([][]string{{"a", "b"}}, 5)
	if records := v.Validate(df); len(records) != 0 {
		t.Errorf("expected rows with null group values to be skipped, got %v", records)
	}
}

func TestCompositeUniqueValidator_MissingColumnSkipsGroup(t *testing.T) {
	df := mustFrame(t, frame.Strings("a", "x", "x"))
	v := NewCompositeUniqueValidator([][]string{{"a", "absent"}}, 5)
	if records := v.Validate(df); len(records) != 0 {
		t.Errorf("expected group with absent column to be skipped, got %v", records)
	}
}

func TestChecksValidator_SamplesFirstNonNull(t *testing.T) {
	s, err := frame.NewSeries("n", frame.Int)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.AppendNull()
	for _, v := range []int64{-1, -2, -3, -4} {
		if err := s.Append(v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	df := mustFrame(t, s)

	v := NewChecksValidator([]ColumnChecks{
		{Column: "n", Checks: []schema.Check{schema.GT(0)}},
	}, 2)

	records := v.Validate(df)
	// Only the first two non-null values are sampled; the null is skipped
	// without consuming the sample budget.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0].Rows, []int{1}) || !reflect.DeepEqual(records[1].Rows, []int{2}) {
		t.Errorf("expected failures at rows 1 and 2, got %v and %v", records[0].Rows, records[1].Rows)
	}
	if !strings.Contains(records[0].Message, "gt(0)") {
		t.Errorf("expected check name in message, got %q", records[0].Message)
	}
}

func TestChecksValidator_MultipleChecksPerValue(t *testing.T) {
	df := mustFrame(t, frame.Ints("n", 150))

	v := NewChecksValidator([]ColumnChecks{
		{Column: "n", Checks: []schema.Check{schema.GT(0), schema.LT(100)}},
	}, 5)

	records := v.Validate(df)
	if len(records) != 1 {
		t.Fatalf("expected only the failing check to report, got %d", len(records))
	}
	if !strings.Contains(records[0].Message, "lt(100)") {
		t.Errorf("unexpected message: %q", records[0].Message)
	}
}

func TestRowValidator(t *testing.T) {
	df := mustFrame(t,
		frame.Ints("credit", 1, 5, 2, 8),
		frame.Ints("debit", 3, 1, 6, 9),
	)

	predicate := func(row frame.Row) error {
		c, _ := row.Value("credit")
		d, _ := row.Value("debit")
		if c.(int64) < d.(int64) {
			return errors.New("credit below debit")
		}
		return nil
	}

	records := NewRowValidator(predicate, 10).Validate(df)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, wantRow := range []int{0, 2, 3} {
		if !reflect.DeepEqual(records[i].Rows, []int{wantRow}) {
			t.Errorf("record %d: expected row %d, got %v", i, wantRow, records[i].Rows)
		}
		if !strings.Contains(records[i].Message, "credit below debit") {
			t.Errorf("expected predicate error in message, got %q", records[i].Message)
		}
	}
}

func TestRowValidator_Cap(t *testing.T) {
	df := mustFrame(t, frame.Ints("n", 1, 2, 3, 4, 5))
	predicate := func(frame.Row) error { return fmt.Errorf("always fails") }

	records := NewRowValidator(predicate, 2).Validate(df)
	if len(records) != 2 {
		t.Fatalf("expected cap of 2 records, got %d", len(records))
	}
}

func TestErrorRecordString(t *testing.T) {
	rec := &ErrorRecord{Kind: KindUnique, Message: "dup", Rows: []int{3}}
	got := rec.String()
	if !strings.Contains(got, "unique") || !strings.Contains(got, "dup") || !strings.Contains(got, "3") {
		t.Errorf("unexpected formatting: %q", got)
	}
}

func TestAsError(t *testing.T) {
	if err := AsError(nil); err != nil {
		t.Errorf("expected nil for no records, got %v", err)
	}

	err := AsError([]*ErrorRecord{{Kind: KindShape, Message: "empty"}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Records) != 1 {
		t.Errorf("expected 1 record, got %d", len(verr.Records))
	}
}
