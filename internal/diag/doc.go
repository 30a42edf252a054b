// Package diag defines the diagnostic model shared by every compiler phase.
//
// A Diagnostic is a located finding: Severity, a numeric Code with a stable
// string id (SEM3002), a Message, the Primary span with its caption (Label),
// secondary labelled spans (Notes) and free-text notes (Details).
//
// Phases never format or print. They emit through a Reporter, usually with the
// builder helpers:
//
//	diag.ReportError(r, diag.SemaDuplicateName, first, "duplicate name `Point`").
//		WithLabel("first used here").
//		WithNote(second, "used again here").
//		Emit()
//
// BagReporter collects into a Bag (limit, sorting, dedup, merge), DedupReporter
// drops repeated findings, SyncReporter makes a reporter safe for concurrent
// producers. Rendering lives in internal/diagfmt; FormatShortDiagnostics is the
// stable one-line form used by tests.
package diag
