package render

import (
	"errors"
	"fmt"
)

// ErrNegativePadding is returned when a padding value is below zero.
var ErrNegativePadding = errors.New("padding values cannot be negative")

// Padding is the space inserted around a renderable.
type Padding struct {
	top, right, bottom, left int
}

// NoPadding is the empty padding.
var NoPadding Padding

// NewPadding returns a padding with explicit values for each side.
func NewPadding(top, right, bottom, left int) (Padding, error) {
	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return Padding{}, fmt.Errorf("%w: top=%d right=%d bottom=%d left=%d",
			ErrNegativePadding, top, right, bottom, left)
	}
	return Padding{top: top, right: right, bottom: bottom, left: left}, nil
}

// Pad builds a padding from one to four values in CSS order:
//
//	Pad(all)
//	Pad(vertical, horizontal)
//	Pad(top, horizontal, bottom)
//	Pad(top, right, bottom, left)
func Pad(values ...int) (Padding, error) {
	switch len(values) {
	case 1:
		v := values[0]
		return NewPadding(v, v, v, v)
	case 2:
		return NewPadding(values[0], values[1], values[0], values[1])
	case 3:
		return NewPadding(values[0], values[1], values[2], values[1])
	case 4:
		return NewPadding(values[0], values[1], values[2], values[3])
	}
	return Padding{}, fmt.Errorf("padding takes 1 to 4 values, got %d", len(values))
}

// MustPad is like Pad but panics on invalid input.
func MustPad(values ...int) Padding {
	p, err := Pad(values...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Padding) Top() int { return p.top }
func (p Padding) Right() int { return p.right }
func (p Padding) Bottom() int { return p.bottom }
func (p Padding) Left() int { return p.left }

// Horizontal returns left + right.
func (p Padding) Horizontal() int {
	return p.left + p.right
}

// IsEmpty reports whether all sides are zero.
func (p Padding) IsEmpty() bool {
	return p == Padding{}
}

func (p Padding) String() string {
	return fmt.Sprintf("Padding(%d %d %d %d)", p.top, p.right, p.bottom, p.left)
}

// WithPadding wraps r in p. An empty padding returns r itself.
//
// If padEmptyLines is false, content lines with no spans are emitted
// without side padding so blank lines carry no trailing spaces.
func WithPadding(r Renderable, p Padding, padEmptyLines bool) Renderable {
	if p.IsEmpty() {
		return r
	}
	return &padded{content: r, padding: p, padEmptyLines: padEmptyLines}
}

// WithPaddingAll pads every side of r by n.
func WithPaddingAll(r Renderable, n int, padEmptyLines bool) (Renderable, error) {
	return padWith(r, padEmptyLines, n)
}

// WithVerticalPadding adds n empty lines above and below r.
func WithVerticalPadding(r Renderable, n int, padEmptyLines bool) (Renderable, error) {
	return padWith(r, padEmptyLines, n, 0)
}

// WithHorizontalPadding adds n spaces left and right of r.
func WithHorizontalPadding(r Renderable, n int, padEmptyLines bool) (Renderable, error) {
	return padWith(r, padEmptyLines, 0, n)
}

func padWith(r Renderable, padEmptyLines bool, values ...int) (Renderable, error) {
	p, err := Pad(values...)
	if err != nil {
		return nil, err
	}
	return WithPadding(r, p, padEmptyLines), nil
}

type padded struct {
	content       Renderable
	padding       Padding
	padEmptyLines bool
}

func (p *padded) Measure(t *Terminal, width int) WidthRange {
	h := p.padding.Horizontal()
	return p.content.Measure(t, width-h).Grow(h)
}

func (p *padded) Render(t *Terminal, width int) Lines {
	pad := p.padding
	content := p.content.Render(t, width-pad.Horizontal())

	out := make(Lines, 0, pad.top+len(content)+pad.bottom)
	for range pad.top {
		out = append(out, Line{})
	}
	for _, line := range content {
		if line.IsEmpty() && !p.padEmptyLines {
			out = append(out, Line{})
			continue
		}
		row := make(Line, 0, len(line)+2)
		if pad.left > 0 {
			row = append(row, Space(pad.left, zeroStyle))
		}
		row = append(row, line...)
		if pad.right > 0 {
			row = append(row, Space(pad.right, zeroStyle))
		}
		out = append(out, row)
	}
	for range pad.bottom {
		out = append(out, Line{})
	}
	return out
}
