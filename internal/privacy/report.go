package privacy

import (
	"fmt"

	"vischeck/internal/diag"
	"vischeck/internal/source"
)

// InternalError reports input that earlier phases should never produce.
// It is a compiler bug, not a privacy violation.
type InternalError struct {
	Span source.Span
	Msg  string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal compiler error at %s: %s", e.Span, e.Msg)
}

// reporter is the violation sink of one pass run.
type reporter struct {
	sink       diag.Reporter
	violations int
}

func (r *reporter) privacyError(code diag.Code, span source.Span, msg string, decl source.Span, declNote string) {
	r.violations++
	b := diag.ReportError(r.sink, code, span, msg)
	if !decl.Empty() {
		b.WithNote(decl, declNote)
	}
	b.Emit()
}

// internal aborts the walk. Check turns the panic back into an error.
func (r *reporter) internal(span source.Span, format string, args ...any) {
	panic(&InternalError{Span: span, Msg: fmt.Sprintf(format, args...)})
}
