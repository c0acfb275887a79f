package render

// Stack draws renderables one below the other.
type Stack []Renderable

// VStack returns a vertical stack of rs.
func VStack(rs ...Renderable) Stack {
	return Stack(rs)
}

func (s Stack) Measure(t *Terminal, width int) WidthRange {
	var r WidthRange
	for _, c := range s {
		r = r.Union(c.Measure(t, width))
	}
	return r
}

func (s Stack) Render(t *Terminal, width int) Lines {
	var out Lines
	for _, c := range s {
		out = append(out, c.Render(t, width)...)
	}
	return out
}
