package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vellum/internal/diag"
	"vellum/internal/source"
)

const tabWidth = 4

type palette struct {
	errorC   *color.Color
	warnC    *color.Color
	infoC    *color.Color
	gutter   *color.Color
	caret    *color.Color
	noteC    *color.Color
	location *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		errorC:   color.New(color.FgRed, color.Bold),
		warnC:    color.New(color.FgYellow, color.Bold),
		infoC:    color.New(color.FgCyan, color.Bold),
		gutter:   color.New(color.FgBlue, color.Bold),
		caret:    color.New(color.FgRed, color.Bold),
		noteC:    color.New(color.FgGreen, color.Bold),
		location: color.New(color.FgWhite, color.Bold),
	}
	for _, c := range []*color.Color{p.errorC, p.warnC, p.infoC, p.gutter, p.caret, p.noteC, p.location} {
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
		return p.errorC
	case diag.SevWarning:
		return p.warnC
	default:
		return p.infoC
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <SEV> <CODE>: <Message>
//
//	--> <path>:<line>:<col>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и Label, затем Notes
// с аналогичным форматом и Details.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sevC := pal.severity(d.Severity)
	fmt.Fprintf(w, "%s: %s\n", sevC.Sprintf("%s %s", d.Severity, d.Code.ID()), d.Message)

	if f := fs.Get(d.Primary.File); f != nil {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "  %s %s\n", pal.gutter.Sprint("-->"), pal.location.Sprintf("%s:%d:%d", displayPath(fs, f, opts.PathMode), start.Line, start.Col))
		snippet(w, f, fs, d.Primary, d.Label, opts, pal, pal.caret)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		f := fs.Get(n.Span.File)
		if f == nil {
			fmt.Fprintf(w, "  %s %s\n", pal.noteC.Sprint("= note:"), n.Msg)
			continue
		}
		start, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.noteC.Sprint("= note:"), displayPath(fs, f, opts.PathMode), start.Line, start.Col, n.Msg)
		snippet(w, f, fs, n.Span, "", PrettyOpts{Width: opts.Width, Context: 0}, pal, pal.noteC)
	}
	for _, detail := range d.Details {
		fmt.Fprintf(w, "  %s %s\n", pal.noteC.Sprint("="), detail)
	}
}

// snippet печатает строки вокруг span с подчёркиванием первой строки span.
func snippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, label string, opts PrettyOpts, pal palette, caretC *color.Color) {
	start, end := fs.Resolve(sp)
	ctx := uint32(max(opts.Context, 0))
	first := start.Line
	if first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + ctx
	if lines, err := safecast.Conv[uint32](len(f.LineIdx) + 1); err == nil && last > lines {
		last = lines
	}
	gw := len(strconv.FormatUint(uint64(last), 10))
	pad := strings.Repeat(" ", gw)

	fmt.Fprintf(w, "%s %s\n", pad, pal.gutter.Sprint("|"))
	for ln := first; ln <= last; ln++ {
		raw := f.GetLine(ln)
		line := expandTabs(raw)
		if opts.Width > 0 {
			line = runewidth.Truncate(line, int(opts.Width), "...")
		}
		fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprintf("%*d", gw, ln), pal.gutter.Sprint("|"), line)
		if ln != start.Line {
			continue
		}
		col := int(start.Col) - 1
		col = min(col, len(raw))
		stop := len(raw)
		if end.Line == start.Line {
			stop = min(int(end.Col)-1, len(raw))
		}
		stop = max(stop, col)
		indent := runewidth.StringWidth(expandTabs(raw[:col]))
		width := max(runewidth.StringWidth(expandTabs(raw[col:stop])), 1)
		marks := "^" + strings.Repeat("~", width-1)
		if label != "" {
			marks += " " + label
		}
		fmt.Fprintf(w, "%s %s %s%s\n", pad, pal.gutter.Sprint("|"), strings.Repeat(" ", indent), caretC.Sprint(marks))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode.String(), base)
}
