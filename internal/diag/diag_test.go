package diag

import (
	"testing"

	"vellum/internal/source"
)

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynExpectSemicolon, "SYN2012"},
		{SemaDuplicateName, "SEM3002"},
		{SemaDependencyCycle, "SEM3009"},
		{IOFailure, "IO4001"},
		{ProjImportCycle, "PRJ5004"},
		{ObsTimings, "OBS6001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Fatalf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if got := SemaUnsizedType.String(); got != "[SEM3008]: Unsized type" {
		t.Fatalf("unexpected String(): %q", got)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	sp := source.Span{File: 0, Start: 4, End: 9}
	note := source.Span{File: 0, Start: 20, End: 25}

	b := ReportError(r, SemaDuplicateName, sp, "duplicate name `Point`").
		WithLabel("first used here").
		WithNote(note, "used again here").
		WithDetail("names share one namespace")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevError || d.Code != SemaDuplicateName {
		t.Fatalf("unexpected diagnostic header: %+v", d)
	}
	if d.Label != "first used here" {
		t.Fatalf("unexpected label %q", d.Label)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span != note || d.Notes[0].Msg != "used again here" {
		t.Fatalf("unexpected notes: %+v", d.Notes)
	}
	if len(d.Details) != 1 {
		t.Fatalf("unexpected details: %+v", d.Details)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected bag to report errors")
	}
}

func TestBagLimitAndMerge(t *testing.T) {
	a := NewBag(1)
	if !a.Add(New(SevWarning, SynInfo, source.Span{}, "w")) {
		t.Fatalf("first add must succeed")
	}
	if a.Add(New(SevError, SynInfo, source.Span{}, "e")) {
		t.Fatalf("add over limit must fail")
	}
	if a.HasErrors() {
		t.Fatalf("dropped error must not count")
	}

	b := NewBag(4)
	b.Add(NewError(SemaUnsizedType, source.Span{Start: 3}, "x"))
	b.Add(NewError(SemaUnsizedType, source.Span{Start: 1}, "y"))
	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("merge must keep all diagnostics, got %d", a.Len())
	}
	a.Sort()
	if a.Items()[0].Primary.Start != 0 || a.Items()[1].Primary.Start != 1 {
		t.Fatalf("unexpected sort order: %+v", a.Items())
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	d := NewError(SemaWrongKind, source.Span{Start: 1, End: 2}, "not a type")
	bag.Add(d)
	bag.Add(d)
	bag.Add(NewError(SemaWrongKind, source.Span{Start: 5, End: 6}, "not a type"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := NewError(SemaDependencyCycle, source.Span{Start: 1, End: 2}, "cycle")
	r.Report(d)
	r.Report(d)
	r.Report(d.WithLabel("other label"))
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
}

func TestErrorCounter(t *testing.T) {
	bag := NewBag(10)
	c := NewErrorCounter(BagReporter{Bag: bag})
	c.Report(New(SevWarning, SynInfo, source.Span{}, "w"))
	c.Report(NewError(IOFailure, source.Span{}, "e"))
	if c.Errors() != 1 || bag.Len() != 2 {
		t.Fatalf("unexpected counts: errors=%d len=%d", c.Errors(), bag.Len())
	}
}
