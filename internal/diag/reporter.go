package diag

import (
	"sync"

	"vellum/internal/source"
)

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter, DedupReporter, SyncReporter.
// Report must not fail: a sink that cannot record a diagnostic panics.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, primary, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

// WithLabel sets the caption of the primary span.
func (b *ReportBuilder) WithLabel(label string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Label = label
	return b
}

// WithNote appends a secondary labelled span.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// WithDetail appends a free-text note.
func (b *ReportBuilder) WithDetail(text string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithDetail(text)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// SyncReporter serializes Report calls to a shared reporter.
type SyncReporter struct {
	mu   sync.Mutex
	next Reporter
}

func NewSyncReporter(next Reporter) *SyncReporter {
	return &SyncReporter{next: next}
}

func (r *SyncReporter) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.next != nil {
		r.next.Report(d)
	}
}

// ErrorCounter forwards diagnostics and remembers whether any error passed through.
type ErrorCounter struct {
	next   Reporter
	errors int
}

func NewErrorCounter(next Reporter) *ErrorCounter {
	return &ErrorCounter{next: next}
}

func (r *ErrorCounter) Report(d Diagnostic) {
	if d.Severity >= SevError {
		r.errors++
	}
	if r.next != nil {
		r.next.Report(d)
	}
}

// Errors returns the number of error diagnostics seen so far.
func (r *ErrorCounter) Errors() int {
	return r.errors
}
