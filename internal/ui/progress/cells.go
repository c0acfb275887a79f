package progress

import (
	"fmt"
	"math"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
	"github.com/raphi011/inkwell/internal/ui/table"
)

// TextCell draws fixed text.
func TextCell[T any](text string) Cell[T] {
	r := plain(text)
	return Cell[T]{
		Content: func(State[T]) render.Renderable { return r },
	}
}

// TextFunc draws text computed from the task state, typically its context.
func TextFunc[T any](fn func(State[T]) string) Cell[T] {
	return Cell[T]{
		FPS: TextFPS,
		Content: func(s State[T]) render.Renderable {
			return plain(fn(s))
		},
	}
}

// MarginCell draws n blank columns.
func MarginCell[T any](n int) Cell[T] {
	r := plain(strings.Repeat(" ", n))
	return Cell[T]{
		Width:   table.Fixed(n),
		Content: func(State[T]) render.Renderable { return r },
	}
}

// CompletedCell draws "completed/total" with SI prefixes, e.g. "1.2/4.5MB".
// The total is omitted while unknown.
func CompletedCell[T any](suffix string) Cell[T] {
	return Cell[T]{
		FPS:   TextFPS,
		Align: render.AlignRight,
		Content: func(s State[T]) render.Renderable {
			return plain(formatCompleted(s.Completed, s.Total, suffix))
		},
	}
}

// PercentageCell draws the completed fraction as a percentage.
func PercentageCell[T any]() Cell[T] {
	return Cell[T]{
		FPS:   TextFPS,
		Align: render.AlignRight,
		Content: func(s State[T]) render.Renderable {
			f, ok := s.Fraction()
			if !ok {
				return plain("  -%")
			}
			return plain(fmt.Sprintf("%3d%%", int(f*100)))
		},
	}
}

// SpeedCell draws the current rate, e.g. "12.5Kit/s".
func SpeedCell[T any](suffix string) Cell[T] {
	return Cell[T]{
		FPS:   TextFPS,
		Align: render.AlignRight,
		Content: func(s State[T]) render.Renderable {
			if s.Speed == nil || s.Status != Running {
				return plain("---.-" + suffix + "/s")
			}
			n, unit := siScale(*s.Speed)
			return plain(fmt.Sprintf("%.1f%s%s/s", n, unit, suffix))
		},
	}
}

// TimeRemainingCell draws the estimated time left as "eta H:MM:SS". Once the
// task is finished it draws the elapsed time instead.
func TimeRemainingCell[T any]() Cell[T] {
	return Cell[T]{
		FPS: TextFPS,
		Content: func(s State[T]) render.Renderable {
			text := "eta -:--:--"
			if s.Status == Finished {
				text = "in " + formatDuration(s.Elapsed)
			} else if d, ok := s.Remaining(); ok && s.Status == Running {
				text = "eta " + formatDuration(d)
			}
			return themed(text, "progress.remaining")
		},
	}
}

// TimeElapsedCell draws the time the task has been running as "H:MM:SS".
func TimeElapsedCell[T any]() Cell[T] {
	return Cell[T]{
		FPS: TextFPS,
		Content: func(s State[T]) render.Renderable {
			return themed(formatDuration(s.Elapsed), "progress.elapsed")
		},
	}
}

// SpinnerCell cycles through the frames of a bubbles spinner while the task
// runs, e.g. SpinnerCell[T](spinner.Dot).
func SpinnerCell[T any](sp spinner.Spinner) Cell[T] {
	fps := AnimationFPS
	if sp.FPS > 0 {
		fps = int(time.Second / sp.FPS)
	}
	return Cell[T]{
		FPS: fps,
		Content: func(s State[T]) render.Renderable {
			if len(sp.Frames) == 0 {
				return plain("")
			}
			frame := 0
			if s.Status == Running && sp.FPS > 0 {
				frame = int(s.AnimationTime/sp.FPS) % len(sp.Frames)
			}
			return themed(sp.Frames[frame], "progress.spinner")
		},
	}
}

// BarCell draws a progress bar. A width of zero expands the bar to fill the
// remaining line. Tasks with an unknown total draw a moving pulse.
func BarCell[T any](width int) Cell[T] {
	w := table.Expand(1)
	if width > 0 {
		w = table.Fixed(width)
	}
	return Cell[T]{
		Width: w,
		FPS:   AnimationFPS,
		Content: func(s State[T]) render.Renderable {
			f, ok := s.Fraction()
			return &bar{
				width:         width,
				fraction:      f,
				indeterminate: !ok,
				finished:      s.Status == Finished,
				pulse:         s.AnimationTime,
			}
		},
	}
}

// minBarWidth is the width an expanding bar measures at.
const minBarWidth = 10

// pulsePeriod is the time the indeterminate pulse takes to cross the bar.
const pulsePeriod = 2 * time.Second

type bar struct {
	width         int
	fraction      float64
	indeterminate bool
	finished      bool
	pulse         time.Duration
}

func (b *bar) Measure(_ *render.Terminal, _ int) render.WidthRange {
	w := b.width
	if w <= 0 {
		w = minBarWidth
	}
	return render.WidthRange{Min: w, Max: w}
}

func (b *bar) Render(t *render.Terminal, width int) render.Lines {
	if width <= 0 {
		return render.Lines{nil}
	}
	full, empty := barGlyphs()

	if b.indeterminate {
		seg := max(width/4, 1)
		frac := float64(b.pulse%pulsePeriod) / float64(pulsePeriod)
		start := int(frac*float64(width+seg)) - seg
		line := render.Line{}
		for x := range width {
			if x >= start && x < start+seg {
				line = append(line, render.Styled(full, t.Style("progressbar.indeterminate")))
			} else {
				line = append(line, render.Styled(empty, t.Style("progressbar.pending")))
			}
		}
		return render.Lines{mergeSpans(line)}
	}

	// The bar itself comes from bubbles; only its glyph layout is kept so the
	// theme decides the colors.
	m := progress.New(progress.WithWidth(width), progress.WithoutPercentage())
	cells := []rune(ansi.Strip(m.ViewAs(b.fraction)))
	filled := min(int(math.Round(float64(width)*b.fraction)), len(cells))

	complete := t.Style("progressbar.complete")
	if b.finished {
		complete = t.Style("progressbar.finished")
	}
	line := render.Line{}
	if filled > 0 {
		line = append(line, render.Styled(string(cells[:filled]), complete))
	}
	if filled < len(cells) {
		line = append(line, render.Styled(string(cells[filled:]), t.Style("progressbar.pending")))
	}
	return render.Lines{line}
}

// barGlyphs returns the full and empty cell glyphs bubbles draws bars with.
func barGlyphs() (full, empty string) {
	m := progress.New(progress.WithWidth(1), progress.WithoutPercentage())
	full = ansi.Strip(m.ViewAs(1))
	empty = ansi.Strip(m.ViewAs(0))
	return full, empty
}

func mergeSpans(line render.Line) render.Line {
	var out render.Line
	for _, sp := range line {
		if n := len(out); n > 0 && out[n-1].Style == sp.Style {
			out[n-1].Text += sp.Text
			continue
		}
		out = append(out, sp)
	}
	return out
}

// label is a single line of text drawn as is, in a named theme style.
// Unlike render.Text it keeps leading and repeated spaces.
type label struct {
	text  string
	style string
}

func plain(text string) render.Renderable {
	return label{text: text}
}

func themed(text, style string) render.Renderable {
	return label{text: text, style: style}
}

func (s label) Measure(_ *render.Terminal, _ int) render.WidthRange {
	w := ansi.StringWidth(s.text)
	return render.WidthRange{Min: w, Max: w}
}

func (s label) Render(t *render.Terminal, _ int) render.Lines {
	var style styles.TextStyle
	if s.style != "" {
		style = t.Style(s.style)
	}
	return render.Lines{{render.Styled(s.text, style)}}
}

var siUnits = []string{"", "K", "M", "G", "T", "P", "E"}

// siScale divides n by the largest power of 1000 not exceeding it.
func siScale(n float64) (float64, string) {
	i := 0
	for math.Abs(n) >= 1000 && i < len(siUnits)-1 {
		n /= 1000
		i++
	}
	return n, siUnits[i]
}

func formatCompleted(completed int64, total *int64, suffix string) string {
	ref := completed
	if total != nil {
		ref = max(ref, *total)
	}
	_, unit := siScale(float64(ref))
	div := math.Pow(1000, float64(indexOf(unit)))

	format := func(n int64) string {
		if unit == "" {
			return fmt.Sprintf("%d", n)
		}
		return fmt.Sprintf("%.1f", float64(n)/div)
	}
	if total == nil {
		return format(completed) + unit + suffix
	}
	return format(completed) + "/" + format(*total) + unit + suffix
}

func indexOf(unit string) int {
	for i, u := range siUnits {
		if u == unit {
			return i
		}
	}
	return 0
}

// formatDuration formats d as H:MM:SS.
func formatDuration(d time.Duration) string {
	d = max(d, 0).Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
