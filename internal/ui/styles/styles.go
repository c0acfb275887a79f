// Package styles provides text styles and the style-to-escape-sequence
// boundary shared by all UI components.
//
// Components describe how text should look with a [TextStyle]. They never
// build escape sequences themselves: a [StyleFunc] turns a style and a run of
// text into terminal output. [LipglossStyler] is the default implementation,
// [PlainStyler] drops all styling.
package styles

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// TextStyle describes how a run of text is drawn. The zero value draws plain
// text in the terminal's default colors.
//
// TextStyle is comparable, so renderers can merge adjacent runs that share a
// style.
type TextStyle struct {
	Fg            string // lipgloss color, e.g. "212" or "#ff79c6"
	Bg            string
	Bold          bool
	Italic        bool
	Underline     bool
	Dim           bool
	Inverse       bool
	Strikethrough bool
	Hyperlink     string
}

// Color returns a style with the given foreground color.
func Color(fg string) TextStyle {
	return TextStyle{Fg: fg}
}

// IsZero reports whether s draws plain text.
func (s TextStyle) IsZero() bool {
	return s == TextStyle{}
}

func (s TextStyle) WithFg(c string) TextStyle { s.Fg = c; return s }
func (s TextStyle) WithBg(c string) TextStyle { s.Bg = c; return s }
func (s TextStyle) WithBold() TextStyle { s.Bold = true; return s }
func (s TextStyle) WithItalic() TextStyle { s.Italic = true; return s }
func (s TextStyle) WithUnderline() TextStyle { s.Underline = true; return s }
func (s TextStyle) WithDim() TextStyle { s.Dim = true; return s }
func (s TextStyle) WithInverse() TextStyle { s.Inverse = true; return s }
func (s TextStyle) WithStrikethrough() TextStyle { s.Strikethrough = true; return s }
func (s TextStyle) WithHyperlink(url string) TextStyle { s.Hyperlink = url; return s }

// Over returns s layered on top of outer: colors and hyperlink set in s win,
// unset ones fall back to outer. Attributes are on if either turns them on.
func (s TextStyle) Over(outer TextStyle) TextStyle {
	if s.Fg == "" {
		s.Fg = outer.Fg
	}
	if s.Bg == "" {
		s.Bg = outer.Bg
	}
	if s.Hyperlink == "" {
		s.Hyperlink = outer.Hyperlink
	}
	s.Bold = s.Bold || outer.Bold
	s.Italic = s.Italic || outer.Italic
	s.Underline = s.Underline || outer.Underline
	s.Dim = s.Dim || outer.Dim
	s.Inverse = s.Inverse || outer.Inverse
	s.Strikethrough = s.Strikethrough || outer.Strikethrough
	return s
}

// Fold merges styles ordered from most to least specific.
func Fold(styles ...TextStyle) TextStyle {
	var out TextStyle
	for _, s := range styles {
		out = out.Over(s)
	}
	return out
}

// StyleFunc renders text in the given style, returning the escaped string.
type StyleFunc func(style TextStyle, text string) string

// PlainStyler ignores the style and returns text unchanged.
func PlainStyler(_ TextStyle, text string) string {
	return text
}

// LipglossStyler renders text with lipgloss. Colors are emitted at full
// depth; downsampling happens in the terminal's output writer.
func LipglossStyler(style TextStyle, text string) string {
	if style.IsZero() || text == "" {
		return text
	}
	out := Lipgloss(style).Render(text)
	if style.Hyperlink != "" {
		out = ansi.SetHyperlink(style.Hyperlink) + out + ansi.ResetHyperlink()
	}
	return out
}

// Lipgloss converts s to a lipgloss style. Hyperlinks are not part of the
// result.
func Lipgloss(s TextStyle) lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s.Fg != "" {
		ls = ls.Foreground(lipgloss.Color(s.Fg))
	}
	if s.Bg != "" {
		ls = ls.Background(lipgloss.Color(s.Bg))
	}
	if s.Bold {
		ls = ls.Bold(true)
	}
	if s.Italic {
		ls = ls.Italic(true)
	}
	if s.Underline {
		ls = ls.Underline(true)
	}
	if s.Dim {
		ls = ls.Faint(true)
	}
	if s.Inverse {
		ls = ls.Reverse(true)
	}
	if s.Strikethrough {
		ls = ls.Strikethrough(true)
	}
	return ls
}
