package render

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// Text is a block of styled text that word-wraps to the available width.
// Newlines in span text start a new paragraph. Words wider than the width
// are broken at character boundaries.
type Text struct {
	spans  []Span
	Align  TextAlign
	NoWrap bool
}

// NewText returns a text block in a single style.
func NewText(s string, style styles.TextStyle) *Text {
	return &Text{spans: []Span{{Text: s, Style: style}}}
}

// PlainText returns an unstyled text block.
func PlainText(s string) *Text {
	return NewText(s, zeroStyle)
}

// SpanText returns a text block from spans in order.
func SpanText(spans ...Span) *Text {
	return &Text{spans: spans}
}

// Aligned sets the horizontal alignment and returns t.
func (t *Text) Aligned(a TextAlign) *Text {
	t.Align = a
	return t
}

// word is a run of non-space text, possibly in several styles. sep is the
// style of the whitespace preceding it.
type word struct {
	parts []Span
	sep   styles.TextStyle
	width int
}

type paragraph []word

// paragraphs splits the text into paragraphs of words.
func (t *Text) paragraphs() []paragraph {
	var (
		paras   []paragraph
		current paragraph
		w       *word
		sep     styles.TextStyle
	)
	flushWord := func() {
		if w != nil {
			current = append(current, *w)
			w = nil
		}
	}
	for _, span := range t.spans {
		var buf strings.Builder
		flushPart := func() {
			if buf.Len() == 0 {
				return
			}
			if w == nil {
				w = &word{sep: sep}
			}
			part := Span{Text: buf.String(), Style: span.Style}
			w.parts = append(w.parts, part)
			w.width += part.Width()
			buf.Reset()
		}
		for _, r := range span.Text {
			switch {
			case r == '\n':
				flushPart()
				flushWord()
				paras = append(paras, current)
				current = nil
			case unicode.IsSpace(r):
				flushPart()
				flushWord()
				sep = span.Style
			default:
				buf.WriteRune(r)
			}
		}
		flushPart()
	}
	flushWord()
	return append(paras, current)
}

func (t *Text) Measure(_ *Terminal, _ int) WidthRange {
	var r WidthRange
	for _, p := range t.paragraphs() {
		lineWidth := 0
		for i, w := range p {
			r.Min = max(r.Min, w.width)
			if i > 0 {
				lineWidth++
			}
			lineWidth += w.width
		}
		r.Max = max(r.Max, lineWidth)
	}
	if t.NoWrap {
		r.Min = r.Max
	}
	return r
}

func (t *Text) Render(_ *Terminal, width int) Lines {
	var out Lines
	for _, p := range t.paragraphs() {
		out = append(out, t.wrap(p, width)...)
	}
	if t.Align != AlignLeft && width > 0 {
		for i, l := range out {
			out[i] = AlignLine(l, width, t.Align)
		}
	}
	return out
}

// wrap lays out one paragraph. A width of 0 or less disables wrapping.
func (t *Text) wrap(p paragraph, width int) Lines {
	if t.NoWrap || width <= 0 {
		width = int(^uint(0) >> 1)
	}
	var (
		out     Lines
		line    Line
		lineLen int
	)
	for _, w := range p {
		if lineLen > 0 && lineLen+1+w.width <= width {
			line = append(line, Span{Text: " ", Style: w.sep})
			line = append(line, w.parts...)
			lineLen += 1 + w.width
			continue
		}
		if lineLen > 0 {
			out = append(out, line)
			line, lineLen = nil, 0
		}
		if w.width <= width {
			line = append(line, w.parts...)
			lineLen = w.width
			continue
		}
		chunks := hardBreak(w.parts, width)
		out = append(out, chunks[:len(chunks)-1]...)
		line = chunks[len(chunks)-1]
		lineLen = line.Width()
	}
	return append(out, line)
}

// hardBreak splits a word that is wider than width into lines of at most
// width cells.
func hardBreak(parts []Span, width int) Lines {
	var (
		out  Lines
		line Line
		used int
	)
	for _, part := range parts {
		var buf strings.Builder
		for _, r := range part.Text {
			rw := runewidth.RuneWidth(r)
			if used+rw > width && used > 0 {
				if buf.Len() > 0 {
					line = append(line, Span{Text: buf.String(), Style: part.Style})
					buf.Reset()
				}
				out = append(out, line)
				line, used = nil, 0
			}
			buf.WriteRune(r)
			used += rw
		}
		if buf.Len() > 0 {
			line = append(line, Span{Text: buf.String(), Style: part.Style})
		}
	}
	return append(out, line)
}
