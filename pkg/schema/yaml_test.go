package schema

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tabular-hq/ganymede/pkg/frame"
)

func TestParseDocument_SequenceColumns(t *testing.T) {
	doc, err := ParseDocument([]byte(`
dataset: orders
columns:
  - id
  - customer
  - /amount_.*/
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Dataset != "orders" {
		t.Errorf("expected dataset %q, got %q", "orders", doc.Dataset)
	}
	if len(doc.Columns) != 3 {
		t.Fatalf("expected 3 column defs, got %d", len(doc.Columns))
	}
	for i, want := range []string{"id", "customer", "/amount_.*/"} {
		if doc.Columns[i].Token != want {
			t.Errorf("column %d: expected token %q, got %q", i, want, doc.Columns[i].Token)
		}
		if doc.Columns[i].Rule != nil {
			t.Errorf("column %d: expected nil rule for sequence form", i)
		}
	}
}

func TestParseDocument_MappingColumns(t *testing.T) {
	doc, err := ParseDocument([]byte(`
strict: true
lazy: true
min_rows: 1
composite_unique:
  - [a, b]
columns:
  id:
    dtype: int
    unique: true
    nullable: false
  name:
    dtype: string
    checks:
      - min_len: 1
      - max_len: 64
  note:
    optional: true
  tag:
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Strict == nil || !*doc.Strict {
		t.Error("expected strict=true")
	}
	if doc.Lazy == nil || !*doc.Lazy {
		t.Error("expected lazy=true")
	}
	if doc.AllowEmpty != nil {
		t.Error("expected allow_empty to stay unset")
	}
	if doc.MinRows == nil || *doc.MinRows != 1 {
		t.Error("expected min_rows=1")
	}
	if !reflect.DeepEqual(doc.CompositeUnique, [][]string{{"a", "b"}}) {
		t.Errorf("unexpected composite_unique: %v", doc.CompositeUnique)
	}

	// Mapping order must be preserved.
	var tokens []string
	for _, def := range doc.Columns {
		tokens = append(tokens, def.Token)
	}
	if !reflect.DeepEqual(tokens, []string{"id", "name", "note", "tag"}) {
		t.Errorf("expected columns in document order, got %v", tokens)
	}

	id := doc.Columns[0].Rule
	if id.DType != frame.Int || !id.Unique || id.Nullable == nil || *id.Nullable {
		t.Errorf("unexpected id rule: %+v", id)
	}
	name := doc.Columns[1].Rule
	if len(name.Checks) != 2 {
		t.Errorf("expected 2 checks on name, got %d", len(name.Checks))
	}
	if !doc.Columns[2].Rule.Optional {
		t.Error("expected note to be optional")
	}
	if doc.Columns[3].Rule != nil {
		t.Error("expected bare token to have nil rule")
	}
}

func TestParseDocument_ChecksDecoding(t *testing.T) {
	doc, err := ParseDocument([]byte(`
columns:
  score:
    checks:
      - gte: 0
      - lt: 100
  code:
    checks:
      - matches: "[A-Z]{3}"
      - one_of: [ABC, XYZ]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	score := doc.Columns[0].Rule.Checks
	if !score[0].Fn(int64(0)) || score[0].Fn(int64(-1)) {
		t.Error("gte check decoded wrong")
	}
	if !score[1].Fn(99.0) || score[1].Fn(100.0) {
		t.Error("lt check decoded wrong")
	}

	code := doc.Columns[1].Rule.Checks
	if !code[0].Fn("ABC") || code[0].Fn("ABCD") {
		t.Error("matches check must be a full-string match")
	}
	if !code[1].Fn("XYZ") || code[1].Fn("DEF") {
		t.Error("one_of check decoded wrong")
	}
}

func TestParseDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown top-level key", "colums:\n  - id\n"},
		{"unknown rule option", "columns:\n  id:\n    dtyppe: int\n"},
		{"unknown check", "columns:\n  id:\n    checks:\n      - gtt: 0\n"},
		{"checks not a sequence", "columns:\n  id:\n    checks: gte\n"},
		{"columns scalar", "columns: id\n"},
		{"bad matches expression", "columns:\n  id:\n    checks:\n      - matches: \"[\"\n"},
		{"not yaml", ":\n  -:-\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDocument([]byte(tt.yaml)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	content := "dataset: test\ncolumns:\n  - id\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write schema file: %v", err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Dataset != "test" || len(doc.Columns) != 1 {
		t.Errorf("unexpected document: %+v", doc)
	}

	if _, err := LoadDocument(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
