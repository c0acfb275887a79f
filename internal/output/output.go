// Package output provides context-aware output for inkwell.
// Stdout is used for primary data output (rendered tables, selections).
// Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/raphi011/inkwell/internal/term"
	"github.com/raphi011/inkwell/internal/ui/render"
)

type ctxKey struct{}

// ErrNoTerminal is returned by Render when the printer has no terminal.
var ErrNoTerminal = errors.New("printer has no terminal")

// Printer writes primary output to stdout. Renderables go through the
// attached terminal so they get its width and theme.
type Printer struct {
	w    io.Writer
	term *render.Terminal
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithTerminal returns a copy of the printer that renders through t.
func (p *Printer) WithTerminal(t *render.Terminal) *Printer {
	return &Printer{w: p.w, term: t}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Lines writes each value on its own line.
func (p *Printer) Lines(values []string) {
	for _, v := range values {
		fmt.Fprintln(p.w, v)
	}
}

// Render draws r through the attached terminal followed by a newline. The
// terminal is expected to write to the printer's writer.
func (p *Printer) Render(r render.Renderable) error {
	if p.term == nil {
		return ErrNoTerminal
	}
	return p.term.Println(r)
}

// Terminal returns the attached terminal, or nil.
func (p *Printer) Terminal() *render.Terminal {
	return p.term
}

// IsTerminal reports whether output goes to an interactive terminal.
func (p *Printer) IsTerminal() bool {
	f, ok := p.w.(*os.File)
	return ok && term.IsTerminal(f)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
