// Package animation repaints a renderable in place.
//
// An [Animation] keeps track of the region it drew last. Each [Animation.Update]
// moves the cursor back to the top of that region, erases it, and draws the
// new frame, so the frame appears to change in place.
package animation

import (
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/inkwell/internal/ui/render"
)

// Animation draws frames built from values of type T. It is safe for
// concurrent use.
type Animation[T any] struct {
	mu     sync.Mutex
	term   *render.Terminal
	draw   func(T) render.Renderable
	last   string
	height int
	drawn  bool
}

// New returns an animation that draws draw(v) for every updated value v.
func New[T any](t *render.Terminal, draw func(T) render.Renderable) *Animation[T] {
	return &Animation[T]{term: t, draw: draw}
}

// Update draws the frame for v over the previous frame. A frame identical to
// the one on screen is not rewritten.
func (a *Animation[T]) Update(v T) error {
	frame := a.term.Render(a.draw(v))

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.drawn && frame == a.last {
		return nil
	}

	var b strings.Builder
	if a.drawn {
		b.WriteString(a.rewind())
	} else {
		b.WriteString(ansi.HideCursor)
	}
	b.WriteString(strings.ReplaceAll(frame, "\n", "\r\n"))
	if err := a.term.WriteString(b.String()); err != nil {
		return err
	}

	a.last = frame
	a.height = strings.Count(frame, "\n") + 1
	a.drawn = true
	return nil
}

// Clear erases the last frame. The next Update starts a fresh region at the
// cursor position.
func (a *Animation[T]) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.drawn {
		return nil
	}
	err := a.term.WriteString(a.rewind() + ansi.ShowCursor)
	a.reset()
	return err
}

// Stop leaves the last frame on screen and moves the cursor below it.
func (a *Animation[T]) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.drawn {
		return nil
	}
	err := a.term.WriteString("\r\n" + ansi.ShowCursor)
	a.reset()
	return err
}

// Height returns the number of lines of the frame on screen.
func (a *Animation[T]) Height() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.height
}

// rewind moves the cursor to the first column of the first frame line and
// erases everything below it.
func (a *Animation[T]) rewind() string {
	s := "\r"
	if a.height > 1 {
		s += ansi.CursorUp(a.height - 1)
	}
	return s + ansi.EraseScreenBelow
}

func (a *Animation[T]) reset() {
	a.last = ""
	a.height = 0
	a.drawn = false
}
