package diag

import (
	"vellum/internal/source"
)

// Note is a secondary labelled span attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Label is the caption rendered under the primary span.
	Label   string
	Notes   []Note
	Details []string // free-text notes, e.g. wrapped OS errors
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithLabel(label string) Diagnostic {
	d.Label = label
	return d
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithDetail(text string) Diagnostic {
	d.Details = append(d.Details, text)
	return d
}
