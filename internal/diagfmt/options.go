package diagfmt

import (
	"vischeck/internal/diag"
	"vischeck/internal/source"
)

// Unit is one checked compilation unit as the formatters see it.
type Unit struct {
	Path     string // snapshot path; used for diagnostics without a file
	Name     string
	Digest   string
	Bag      *diag.Bag
	Files    *source.FileSet
	Internal string // internal compiler error message, if the pass crashed
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	TabWidth  int // 0 means 4
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	IncludeNotes     bool
	Max              int // обрезка вывода, не Bag
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

func location(u Unit, sp source.Span) (path string, start, end source.LineCol, ok bool) {
	f := u.Files.Get(sp.File)
	if f == nil || (sp.Empty() && sp.Start == 0) {
		return u.Path, source.LineCol{}, source.LineCol{}, false
	}
	start, end = u.Files.Resolve(sp)
	return f.Path, start, end, true
}
