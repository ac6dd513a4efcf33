package schema

import (
	"errors"
	"reflect"
	"testing"
)

func TestIsPattern(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"/r.*/", true},
		{"/id/", true},
		{"name", false},
		{"/name", false},
		{"name/", false},
		{"//", false},
		{"/", false},
		{"", false},
		{"/a/", true},
	}

	for _, tt := range tests {
		if got := IsPattern(tt.token); got != tt.want {
			t.Errorf("IsPattern(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestCompilePattern_FullMatch(t *testing.T) {
	re, err := CompilePattern("/id/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !re.MatchString("id") {
		t.Error("expected /id/ to match \"id\"")
	}
	// Unanchored substring matches must not count.
	if re.MatchString("userid") {
		t.Error("expected /id/ not to match \"userid\"")
	}
	if re.MatchString("ids") {
		t.Error("expected /id/ not to match \"ids\"")
	}
}

func TestCompilePattern_Invalid(t *testing.T) {
	_, err := CompilePattern("/[unclosed/")
	if err == nil {
		t.Fatal("expected error for invalid expression, got nil")
	}
	var perr *InvalidPatternError
	if !errors.As(err, &perr) {
		t.Fatalf("expected InvalidPatternError, got %T", err)
	}
	if perr.Token != "/[unclosed/" {
		t.Errorf("expected token in error, got %q", perr.Token)
	}
}

func TestMatchColumns_PreservesOrder(t *testing.T) {
	re, err := CompilePattern("/r.*/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	columns := []string{"zeta", "r2", "alpha", "r1", "radius"}
	got := MatchColumns(re, columns)
	want := []string{"r2", "r1", "radius"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected matches in column order %v, got %v", want, got)
	}
}

func TestMatchColumns_NoMatches(t *testing.T) {
	re, err := CompilePattern("/x+/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := MatchColumns(re, []string{"a", "b"}); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}
