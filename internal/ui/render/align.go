package render

import "fmt"

// TextAlign is horizontal alignment within the available width.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

func (a TextAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("TextAlign(%d)", int(a))
}

// ParseTextAlign parses "left", "center" or "right".
func ParseTextAlign(s string) (TextAlign, error) {
	switch s {
	case "left", "":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("invalid alignment %q (must be left, center, or right)", s)
}

// VerticalAlign is vertical alignment within a block taller than the content.
type VerticalAlign int

const (
	AlignTop VerticalAlign = iota
	AlignMiddle
	AlignBottom
)

func (a VerticalAlign) String() string {
	switch a {
	case AlignTop:
		return "top"
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	}
	return fmt.Sprintf("VerticalAlign(%d)", int(a))
}

// ParseVerticalAlign parses "top", "middle" or "bottom".
func ParseVerticalAlign(s string) (VerticalAlign, error) {
	switch s {
	case "top", "":
		return AlignTop, nil
	case "middle":
		return AlignMiddle, nil
	case "bottom":
		return AlignBottom, nil
	}
	return AlignTop, fmt.Errorf("invalid vertical alignment %q (must be top, middle, or bottom)", s)
}

// AlignLine pads l to width according to align. Lines already at least
// width wide are returned unchanged.
func AlignLine(l Line, width int, align TextAlign) Line {
	extra := width - l.Width()
	if extra <= 0 {
		return l
	}
	var left, right int
	switch align {
	case AlignLeft:
		right = extra
	case AlignCenter:
		left = extra / 2
		right = extra - left
	case AlignRight:
		left = extra
	}
	out := make(Line, 0, len(l)+2)
	if left > 0 {
		out = append(out, Space(left, zeroStyle))
	}
	out = append(out, l...)
	if right > 0 {
		out = append(out, Space(right, zeroStyle))
	}
	return out
}

// AlignBlock pads ls with empty lines to height according to align.
func AlignBlock(ls Lines, height int, align VerticalAlign) Lines {
	extra := height - len(ls)
	if extra <= 0 {
		return ls
	}
	var top int
	switch align {
	case AlignMiddle:
		top = extra / 2
	case AlignBottom:
		top = extra
	}
	out := make(Lines, 0, height)
	for range top {
		out = append(out, Line{})
	}
	out = append(out, ls...)
	for len(out) < height {
		out = append(out, Line{})
	}
	return out
}
