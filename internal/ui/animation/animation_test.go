package animation

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

func newTestAnimation(buf *bytes.Buffer) *Animation[string] {
	t := render.New(
		render.WithOutput(buf),
		render.WithColorMode(render.ColorAlways),
		render.WithStyler(styles.PlainStyler),
		render.WithWidth(20),
	)
	return New(t, func(s string) render.Renderable {
		var ls render.Lines
		for _, part := range strings.Split(s, "|") {
			ls = append(ls, render.Line{render.Plain(part)})
		}
		return render.StaticLines(ls)
	})
}

func TestAnimation_Update(t *testing.T) {
	t.Parallel()

	t.Run("first frame hides cursor", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		a := newTestAnimation(&buf)
		if err := a.Update("a|b"); err != nil {
			t.Fatal(err)
		}
		want := ansi.HideCursor + "a\r\nb"
		if got := buf.String(); got != want {
			t.Errorf("Update() wrote %q, want %q", got, want)
		}
		if got := a.Height(); got != 2 {
			t.Errorf("Height() = %d, want 2", got)
		}
	})

	t.Run("identical frame is skipped", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		a := newTestAnimation(&buf)
		_ = a.Update("a|b")
		n := buf.Len()
		_ = a.Update("a|b")
		if buf.Len() != n {
			t.Errorf("Update() with identical frame wrote %q", buf.String()[n:])
		}
	})

	t.Run("repaint moves up over previous frame", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		a := newTestAnimation(&buf)
		_ = a.Update("a|b|c")
		n := buf.Len()
		_ = a.Update("x")
		want := "\r" + ansi.CursorUp(2) + ansi.EraseScreenBelow + "x"
		if got := buf.String()[n:]; got != want {
			t.Errorf("Update() wrote %q, want %q", got, want)
		}
		if got := a.Height(); got != 1 {
			t.Errorf("Height() = %d, want 1", got)
		}
	})

	t.Run("single line repaint does not move up", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		a := newTestAnimation(&buf)
		_ = a.Update("a")
		n := buf.Len()
		_ = a.Update("b")
		want := "\r" + ansi.EraseScreenBelow + "b"
		if got := buf.String()[n:]; got != want {
			t.Errorf("Update() wrote %q, want %q", got, want)
		}
	})
}

func TestAnimation_Clear(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := newTestAnimation(&buf)
	_ = a.Update("a|b")
	n := buf.Len()
	if err := a.Clear(); err != nil {
		t.Fatal(err)
	}
	want := "\r" + ansi.CursorUp(1) + ansi.EraseScreenBelow + ansi.ShowCursor
	if got := buf.String()[n:]; got != want {
		t.Errorf("Clear() wrote %q, want %q", got, want)
	}

	// After clearing, the next frame starts a new region.
	n = buf.Len()
	_ = a.Update("a|b")
	if got := buf.String()[n:]; got != ansi.HideCursor+"a\r\nb" {
		t.Errorf("Update() after Clear() wrote %q", got)
	}
}

func TestAnimation_Stop(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := newTestAnimation(&buf)
	_ = a.Update("a")
	n := buf.Len()
	if err := a.Stop(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String()[n:]; got != "\r\n"+ansi.ShowCursor {
		t.Errorf("Stop() wrote %q, want %q", got, "\r\n"+ansi.ShowCursor)
	}
	if got := a.Height(); got != 0 {
		t.Errorf("Height() after Stop() = %d, want 0", got)
	}
}

func TestAnimation_NothingDrawn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := newTestAnimation(&buf)
	_ = a.Clear()
	_ = a.Stop()
	if buf.Len() != 0 {
		t.Errorf("Clear()/Stop() without frame wrote %q", buf.String())
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func TestAnimation_ConcurrentUpdates(t *testing.T) {
	t.Parallel()

	out := &lockedBuffer{}
	term := render.New(
		render.WithOutput(out),
		render.WithColorMode(render.ColorAlways),
		render.WithStyler(styles.PlainStyler),
	)
	a := New(term, func(i int) render.Renderable {
		return render.PlainText(strings.Repeat("#", i))
	})

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = a.Update(i)
		}()
	}
	wg.Wait()

	if got := a.Height(); got != 1 {
		t.Errorf("Height() = %d, want 1", got)
	}
}
