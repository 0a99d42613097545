package diagfmt

import (
	"encoding/json"
	"io"

	"vischeck/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

type UnitJSON struct {
	Path        string           `json:"path"`
	Unit        string           `json:"unit,omitempty"`
	SHA256      string           `json:"sha256,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Dropped     int              `json:"dropped,omitempty"`
	Internal    string           `json:"internal_error,omitempty"`
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	Units []UnitJSON `json:"units"`
	Count int        `json:"count"`
}

func makeLocation(u Unit, sp source.Span, positions bool) LocationJSON {
	path, start, end, ok := location(u, sp)
	loc := LocationJSON{File: path, StartByte: sp.Start, EndByte: sp.End}
	if ok && positions {
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(units []Unit, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Units: make([]UnitJSON, 0, len(units))}
	for _, u := range units {
		uj := UnitJSON{
			Path:        u.Path,
			Unit:        u.Name,
			SHA256:      u.Digest,
			Diagnostics: []DiagnosticJSON{},
			Internal:    u.Internal,
		}
		if u.Bag != nil {
			uj.Dropped = u.Bag.Dropped()
			for _, d := range u.Bag.Items() {
				if opts.Max > 0 && out.Count >= opts.Max {
					uj.Dropped++
					continue
				}
				dj := DiagnosticJSON{
					Severity: d.Severity.String(),
					Code:     d.Code.ID(),
					Message:  d.Message,
					Location: makeLocation(u, d.Primary, opts.IncludePositions),
				}
				if opts.IncludeNotes {
					for _, n := range d.Notes {
						dj.Notes = append(dj.Notes, NoteJSON{
							Message:  n.Msg,
							Location: makeLocation(u, n.Span, opts.IncludePositions),
						})
					}
				}
				uj.Diagnostics = append(uj.Diagnostics, dj)
				out.Count++
			}
		}
		out.Units = append(out.Units, uj)
	}
	return out
}

// JSON writes units as one indented JSON document.
func JSON(w io.Writer, units []Unit, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(units, opts))
}
