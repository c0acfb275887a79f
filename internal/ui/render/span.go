// Package render defines the renderable contract shared by every widget and
// the Terminal that turns rendered lines into styled output.
//
// A [Renderable] is measured first ([Renderable.Measure] reports the range of
// widths it can use) and then rendered at a concrete width into [Lines].
// Widgets compose by rendering their children, so tables can hold padded text
// and progress rows can hold tables.
package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// Span is a run of text drawn in a single style.
type Span struct {
	Text  string
	Style styles.TextStyle
}

var zeroStyle styles.TextStyle

// Plain returns an unstyled span.
func Plain(text string) Span {
	return Span{Text: text}
}

// Styled returns a span with the given style.
func Styled(text string, style styles.TextStyle) Span {
	return Span{Text: text, Style: style}
}

// Space returns a span of n spaces.
func Space(n int, style styles.TextStyle) Span {
	if n < 0 {
		n = 0
	}
	return Span{Text: strings.Repeat(" ", n), Style: style}
}

// Width returns the number of terminal cells the span occupies.
func (s Span) Width() int {
	return ansi.StringWidth(s.Text)
}

// Line is a row of spans.
type Line []Span

// Width returns the sum of the span widths.
func (l Line) Width() int {
	w := 0
	for _, s := range l {
		w += s.Width()
	}
	return w
}

// IsEmpty reports whether the line has no spans.
func (l Line) IsEmpty() bool {
	return len(l) == 0
}

// String returns the unstyled text of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Lines is a block of rendered lines.
type Lines []Line

// Height returns the number of lines.
func (ls Lines) Height() int {
	return len(ls)
}

// Width returns the width of the widest line.
func (ls Lines) Width() int {
	w := 0
	for _, l := range ls {
		w = max(w, l.Width())
	}
	return w
}

// Strings returns the unstyled text of every line.
func (ls Lines) Strings() []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.String()
	}
	return out
}

// WidthRange is the range of widths a renderable can use. Min is the
// narrowest width it can render without overflowing, Max the width it would
// take with unlimited space.
type WidthRange struct {
	Min int
	Max int
}

// Grow returns r with n added to both bounds.
func (r WidthRange) Grow(n int) WidthRange {
	return WidthRange{Min: r.Min + n, Max: r.Max + n}
}

// Union returns the range covering both r and o.
func (r WidthRange) Union(o WidthRange) WidthRange {
	return WidthRange{Min: max(r.Min, o.Min), Max: max(r.Max, o.Max)}
}

// Renderable is anything that can be drawn to a terminal.
type Renderable interface {
	Measure(t *Terminal, width int) WidthRange
	Render(t *Terminal, width int) Lines
}

// StaticLines is a renderable that always draws the same lines.
type StaticLines Lines

func (s StaticLines) Measure(_ *Terminal, _ int) WidthRange {
	w := Lines(s).Width()
	return WidthRange{Min: w, Max: w}
}

func (s StaticLines) Render(_ *Terminal, _ int) Lines {
	return Lines(s)
}
