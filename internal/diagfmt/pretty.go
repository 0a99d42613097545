package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vischeck/internal/diag"
	"vischeck/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики юнита в человекочитаемый вид.
// Для каждого diag печатает:
// <path>:<line>:<col>: <sev> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, u Unit, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	if u.Bag != nil {
		for _, d := range u.Bag.Items() {
			path, start, end, ok := location(u, d.Primary)
			header := path
			if ok {
				header = fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
			}
			fmt.Fprintf(w, "%s: %s %s\n",
				pal.bold.Sprint(header),
				pal.severity(d.Severity).Sprintf("%s %s:", d.Severity, d.Code.ID()),
				pal.bold.Sprint(d.Message))
			if ok {
				writeExcerpt(w, pal, u.Files.Get(d.Primary.File), start, end, tab)
			}
			if opts.ShowNotes {
				for _, n := range d.Notes {
					npath, nstart, _, nok := location(u, n.Span)
					where := npath
					if nok {
						where = fmt.Sprintf("%s:%d:%d", npath, nstart.Line, nstart.Col)
					}
					fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), where, n.Msg)
				}
			}
		}
		if dropped := u.Bag.Dropped(); dropped > 0 {
			fmt.Fprintf(w, "%s: %d more diagnostics not shown\n", u.Path, dropped)
		}
	}
	if u.Internal != "" {
		fmt.Fprintf(w, "%s: %s %s\n", pal.bold.Sprint(u.Path), pal.err.Sprint("internal compiler error:"), u.Internal)
	}
}

// writeExcerpt prints the first line of the span with a caret underline.
func writeExcerpt(w io.Writer, pal palette, f *source.File, start, end source.LineCol, tab int) {
	line := f.Line(start.Line)
	if line == "" && start.Col <= 1 {
		return
	}
	expanded, prefixWidth, spanWidth := measure(line, int(start.Col), caretEnd(start, end, line), tab)
	num := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, "%s %s\n", pad, pal.gutter.Sprint("|"))
	fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), expanded)
	marker := "^" + strings.Repeat("~", max(spanWidth-1, 0))
	fmt.Fprintf(w, "%s %s %s%s\n", pad, pal.gutter.Sprint("|"), strings.Repeat(" ", prefixWidth), pal.caret.Sprint(marker))
}

// caretEnd is the 1-based column where the underline stops (exclusive).
// Multi-line spans are underlined to the end of the first line.
func caretEnd(start, end source.LineCol, line string) int {
	if end.Line != start.Line {
		return len(line) + 1
	}
	return int(end.Col)
}

// measure expands tabs and returns the display line, the display width
// before column startCol and the display width of [startCol, endCol).
func measure(line string, startCol, endCol, tab int) (expanded string, prefix, span int) {
	var b strings.Builder
	col := 1
	width := 0
	for _, r := range line {
		var s string
		if r == '\t' {
			s = strings.Repeat(" ", tab-width%tab)
		} else {
			s = string(r)
		}
		rw := runewidth.StringWidth(s)
		switch {
		case col < startCol:
			prefix += rw
		case col < endCol:
			span += rw
		}
		b.WriteString(s)
		width += rw
		col += len(string(r))
	}
	return b.String(), prefix, max(span, 1)
}
