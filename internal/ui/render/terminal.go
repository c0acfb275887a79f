package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/colorprofile"
	"github.com/raphi011/inkwell/internal/term"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// ColorMode controls whether styled output keeps its colors.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (must be auto, always, or never)", s)
}

// Terminal renders widgets to an output stream.
//
// Styled runs are produced by the terminal's StyleFunc at full color depth;
// the output writer downsamples them to what the stream supports.
type Terminal struct {
	mu     sync.Mutex
	width  int
	file   *os.File
	theme  styles.Theme
	styler styles.StyleFunc
	out    io.Writer
	input  term.Input
	mode   ColorMode
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithWidth fixes the render width. Zero detects it from the output.
func WithWidth(width int) Option {
	return func(t *Terminal) {
		t.width = width
	}
}

// WithOutput sets the output stream. If w is an *os.File it is also used
// for width detection.
func WithOutput(w io.Writer) Option {
	return func(t *Terminal) {
		t.out = w
		if f, ok := w.(*os.File); ok {
			t.file = f
		} else {
			t.file = nil
		}
	}
}

// WithColorMode sets the color handling of the output stream.
func WithColorMode(m ColorMode) Option {
	return func(t *Terminal) {
		t.mode = m
	}
}

// WithTheme sets the theme widgets look their styles up in.
func WithTheme(theme styles.Theme) Option {
	return func(t *Terminal) {
		t.theme = theme
	}
}

// WithStyler replaces the style-to-escape function.
func WithStyler(fn styles.StyleFunc) Option {
	return func(t *Terminal) {
		t.styler = fn
	}
}

// WithInput sets the key input used by interactive widgets.
func WithInput(in term.Input) Option {
	return func(t *Terminal) {
		t.input = in
	}
}

// New returns a terminal writing to stdout and reading keys from stdin
// unless configured otherwise.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		theme:  styles.DefaultTheme(),
		styler: styles.LipglossStyler,
		out:    os.Stdout,
		file:   os.Stdout,
		input:  term.Stdin(),
		mode:   ColorAuto,
	}
	for _, opt := range opts {
		opt(t)
	}

	pw := colorprofile.NewWriter(t.out, os.Environ())
	switch t.mode {
	case ColorAlways:
		pw.Profile = colorprofile.TrueColor
	case ColorNever:
		pw.Profile = colorprofile.Ascii
		t.styler = styles.PlainStyler
	}
	t.out = pw
	return t
}

// Width returns the render width.
func (t *Terminal) Width() int {
	if t.width > 0 {
		return t.width
	}
	if t.file != nil {
		return term.Width(t.file)
	}
	return term.DefaultWidth
}

// Theme returns the terminal's theme.
func (t *Terminal) Theme() styles.Theme {
	return t.theme
}

// Style returns the named theme style.
func (t *Terminal) Style(name string) styles.TextStyle {
	return t.theme.Style(name)
}

// Input returns the key input.
func (t *Terminal) Input() term.Input {
	return t.input
}

// EnterRawMode opens an exclusive input scope. The caller must close it.
func (t *Terminal) EnterRawMode() (term.Scope, error) {
	return t.input.EnterRawMode()
}

// Render draws r at the terminal width and returns the styled text.
func (t *Terminal) Render(r Renderable) string {
	return t.RenderLines(r.Render(t, t.Width()))
}

// RenderLines converts lines to styled text. Consecutive spans that share a
// style are emitted as one styled run. Lines are joined with "\n" and the
// result has no trailing newline.
func (t *Terminal) RenderLines(lines Lines) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		var (
			run   strings.Builder
			style styles.TextStyle
		)
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(t.styler(style, run.String()))
				run.Reset()
			}
		}
		for _, span := range line {
			if span.Text == "" {
				continue
			}
			if span.Style != style {
				flush()
				style = span.Style
			}
			run.WriteString(span.Text)
		}
		flush()
	}
	return b.String()
}

// WriteString writes raw text to the output. Writes are serialized.
func (t *Terminal) WriteString(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.out, s)
	return err
}

// Print renders r and writes it without a trailing newline.
func (t *Terminal) Print(r Renderable) error {
	return t.WriteString(t.Render(r))
}

// Println renders r and writes it followed by a newline.
func (t *Terminal) Println(r Renderable) error {
	return t.WriteString(t.Render(r) + "\n")
}
