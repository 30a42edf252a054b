package diag

import (
	"fmt"
	"sort"
	"strings"

	"vellum/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation used by tests and `--format short`. Entries are sorted by
// path, position, severity, code and message; notes follow as "note" entries
// when includeNotes is set.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendShort(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendShort(out []shortDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []shortDiagnostic {
	start, _ := fs.Resolve(d.Primary)
	out = append(out, shortDiagnostic{
		Severity: severityLabel(d.Severity),
		Code:     d.Code.ID(),
		Path:     fs.DisplayPath(d.Primary.File),
		Line:     start.Line,
		Column:   start.Col,
		Message:  sanitizeMessage(d.Message),
	})

	if includeNotes {
		for _, note := range d.Notes {
			nstart, _ := fs.Resolve(note.Span)
			out = append(out, shortDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     fs.DisplayPath(note.Span.File),
				Line:     nstart.Line,
				Column:   nstart.Col,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
