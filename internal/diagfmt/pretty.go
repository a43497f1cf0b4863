package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ashlang/internal/diag"
	"ashlang/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	caret, note     *color.Color
	bold            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.FgHiBlack),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note, p.bold} {
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

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждой диагностики печатает
//
//	error[SEM3003]: <Message>
//	  --> <path>:<line>:<col>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

// PrettyOne renders a single diagnostic.
func PrettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	prettyOne(w, d, fs, opts, newPalette(opts.Color))
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := strings.ToLower(d.Severity.String())
	fmt.Fprintf(w, "%s%s %s\n",
		p.severity(d.Severity).Sprint(sev),
		p.code.Sprintf("[%s]:", d.Code.ID()),
		p.bold.Sprint(truncate(d.Message, opts.Width)),
	)
	if !d.HasSpan || fs == nil || fs.Get(d.Primary.File) == nil {
		return
	}

	start, end := fs.Resolve(d.Primary)
	gutterWidth := len(fmt.Sprint(start.Line + uint32(max(opts.Context, 0))))
	pad := strings.Repeat(" ", gutterWidth)
	fmt.Fprintf(w, "%s%s %s:%d:%d\n", pad, p.gutter.Sprint("-->"), displayPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("|"))

	f := fs.Get(d.Primary.File)
	ctx := uint32(max(opts.Context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	for ln := first; ln < start.Line; ln++ {
		writeSourceLine(w, p, gutterWidth, ln, f.GetLine(ln), opts.Width)
	}

	line := f.GetLine(start.Line)
	writeSourceLine(w, p, gutterWidth, start.Line, line, opts.Width)
	fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("|"), p.caret.Sprint(underline(line, start, end)))

	for ln := start.Line + 1; ln <= start.Line+ctx; ln++ {
		if ln > uint32(len(f.LineIdx))+1 {
			break
		}
		writeSourceLine(w, p, gutterWidth, ln, f.GetLine(ln), opts.Width)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		loc := ""
		if fs.Get(n.Span.File) != nil {
			ns, _ := fs.Resolve(n.Span)
			loc = fmt.Sprintf(" (%s:%d:%d)", displayPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col)
		}
		fmt.Fprintf(w, "%s %s %s%s\n", pad, p.gutter.Sprint("="), p.note.Sprint("note: "+n.Msg), loc)
	}
}

func writeSourceLine(w io.Writer, p palette, gutterWidth int, ln uint32, text string, width uint8) {
	text = strings.ReplaceAll(text, "\t", "    ")
	fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprintf("%*d", gutterWidth, ln), p.gutter.Sprint("|"), truncate(text, width))
}

// underline builds the ^~~~ marker for the primary span on its first line.
// Columns are display cells, so wide runes shift the caret correctly.
func underline(line string, start, end source.LineCol) string {
	startOff := clampOffset(line, start.Col-1)
	endOff := uint32(len(line))
	if end.Line == start.Line {
		endOff = clampOffset(line, end.Col-1)
	}
	if endOff < startOff {
		endOff = startOff
	}
	prefix := strings.ReplaceAll(line[:startOff], "\t", "    ")
	covered := strings.ReplaceAll(line[startOff:endOff], "\t", "    ")
	lead := runewidth.StringWidth(prefix)
	n := runewidth.StringWidth(covered)
	if n <= 1 {
		return strings.Repeat(" ", lead) + "^"
	}
	return strings.Repeat(" ", lead) + "^" + strings.Repeat("~", n-1)
}

func clampOffset(line string, off uint32) uint32 {
	if off > uint32(len(line)) {
		return uint32(len(line))
	}
	return off
}

func truncate(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
