package validation

import (
	"reflect"
	"testing"

	"tabular-hq/ganymede/pkg/frame"
)

// stubValidator emits a fixed set of records regardless of the table.
type stubValidator struct {
	name    string
	records []*ErrorRecord
	runs    int
}

func (v *stubValidator) Name() string { return v.name }

func (v *stubValidator) Validate(_ *frame.DataFrame) []*ErrorRecord {
	v.runs++
	return v.records
}

func stubRecords(n int, kind Kind) []*ErrorRecord {
	records := make([]*ErrorRecord, n)
	for i := range records {
		records[i] = &ErrorRecord{Kind: kind, Message: "stub"}
	}
	return records
}

func TestPipeline_EagerStopsAtFirstFailure(t *testing.T) {
	df := mustFrame(t, frame.Ints("a", 1))

	passing := &stubValidator{name: "pass"}
	failing := &stubValidator{name: "fail", records: stubRecords(3, KindDType)}
	never := &stubValidator{name: "never", records: stubRecords(1, KindUnique)}

	p := NewPipeline(false, 10)
	p.Add(passing)
	p.Add(failing)
	p.Add(never)

	records := p.Run(df)
	// Eager mode returns the failing validator's full set, not just one.
	if len(records) != 3 {
		t.Fatalf("expected the first failing validator's 3 records, got %d", len(records))
	}
	if never.runs != 0 {
		t.Error("expected validators after the first failure not to run")
	}
}

func TestPipeline_LazyRunsAllAndCaps(t *testing.T) {
	df := mustFrame(t, frame.Ints("a", 1))

	first := &stubValidator{name: "first", records: stubRecords(2, KindDType)}
	second := &stubValidator{name: "second", records: stubRecords(5, KindRow)}

	p := NewPipeline(true, 3)
	p.Add(first)
	p.Add(second)

	records := p.Run(df)
	if len(records) != 3 {
		t.Fatalf("expected cap of 3 records, got %d", len(records))
	}
	// Records accumulate in insertion order, truncated at record granularity.
	wantKinds := []Kind{KindDType, KindDType, KindRow}
	for i, rec := range records {
		if rec.Kind != wantKinds[i] {
			t.Errorf("record %d: expected kind %q, got %q", i, wantKinds[i], rec.Kind)
		}
	}
	if second.runs != 1 {
		t.Error("expected validators past the cap to still run")
	}
}

func TestPipeline_CleanTable(t *testing.T) {
	df := mustFrame(t, frame.Ints("a", 1))

	p := NewPipeline(false, 5)
	p.Add(&stubValidator{name: "pass"})

	if records := p.Run(df); records != nil {
		t.Errorf("expected nil records, got %v", records)
	}
	if err := p.RunError(df); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestPipeline_Idempotent(t *testing.T) {
	df := mustFrame(t, frame.Strings("id", "x", "x", "y"))

	p := NewPipeline(true, 10)
	p.Add(NewUniqueValidator([]string{"id"}, 5))

	first := p.Run(df)
	second := p.Run(df)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical records across reruns:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestPipeline_Accessors(t *testing.T) {
	p := NewPipeline(true, 5)
	p.Add(&stubValidator{name: "a"})
	p.Add(&stubValidator{name: "b"})

	if !p.Lazy() {
		t.Error("expected lazy pipeline")
	}
	if p.Len() != 2 {
		t.Errorf("expected 2 validators, got %d", p.Len())
	}
	if got := p.Validators(); got[0].Name() != "a" || got[1].Name() != "b" {
		t.Error("expected validators in insertion order")
	}
}
