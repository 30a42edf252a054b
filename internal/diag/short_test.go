package diag

import (
	"testing"

	"vellum/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	lib := fs.AddVirtual("lib.vellum", []byte("a\nb\n"))
	main := fs.AddVirtual("main.vellum", []byte("x\n"))

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SemaDuplicateName,
			Message:  "duplicate name\n`Point`",
			Primary:  source.Span{File: lib, Start: 2, End: 3},
			Notes: []Note{
				{Span: source.Span{File: main, Start: 0, End: 1}, Msg: "used again here"},
			},
		},
		{
			Severity: SevWarning,
			Code:     SynUnexpectedToken,
			Message:  "another",
			Primary:  source.Span{File: lib, Start: 0, End: 1},
		},
	}

	expected := "warning SYN2001 lib.vellum:1:1 another\n" +
		"error SEM3002 lib.vellum:2:1 duplicate name `Point`\n" +
		"note SEM3002 main.vellum:1:1 used again here"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	withoutNotes := "warning SYN2001 lib.vellum:1:1 another\n" +
		"error SEM3002 lib.vellum:2:1 duplicate name `Point`"
	if got := FormatShortDiagnostics(diags, fs, false); got != withoutNotes {
		t.Fatalf("unexpected short diagnostics without notes:\n%s", got)
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	if got := FormatShortDiagnostics(nil, source.NewFileSet(), true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
