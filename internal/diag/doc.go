// Package diag defines the diagnostic model shared by the checker, the
// driver and the formatters.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: numeric identifier with a stable textual ID (codes.go).
//   - Message: short, human oriented text.
//   - Primary: the source.Span the finding points at.
//   - Notes: secondary spans, e.g. "field declared here".
//
// # Emitting diagnostics
//
// Producers talk to a Reporter and never to storage directly. The usual
// pattern is
//
//	diag.ReportError(r, diag.SemaPrivateField, span, msg).
//		WithNote(declSpan, "field declared here").
//		Emit()
//
// BagReporter collects into a Bag, which supports limits, sorting and
// deduplication. DedupReporter drops repeated findings before they reach
// the next reporter.
//
// Package diag performs no formatting and no IO; see internal/diagfmt.
package diag
