package progress

import (
	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/table"
)

// Default refresh rates for the provided cells.
const (
	TextFPS      = 5
	AnimationFPS = 30
)

// Cell describes one column of a progress row.
type Cell[T any] struct {
	Width         table.ColumnWidth
	FPS           int // redraw rate; zero draws the cell once per reset
	Align         render.TextAlign
	VerticalAlign render.VerticalAlign
	Content       func(State[T]) render.Renderable
}

// Definition is the layout of a progress row. Tasks added with the same
// definition pointer are drawn as one table so their columns line up.
type Definition[T any] struct {
	Cells        []Cell[T]
	Spacing      int // blank columns between cells
	AlignColumns bool
}

// NewDefinition returns a definition with the given cells, two spaces
// between cells, and aligned columns.
func NewDefinition[T any](cells ...Cell[T]) *Definition[T] {
	return &Definition[T]{
		Cells:        cells,
		Spacing:      2,
		AlignColumns: true,
	}
}

// grid lays out rows of rendered cells as a borderless table.
func (d *Definition[T]) grid(rows [][]render.Renderable) *table.Table {
	b := table.Grid()
	for i, c := range d.Cells {
		pad := 0
		if i > 0 {
			pad = d.Spacing
		}
		w := c.Width
		if n, ok := w.FixedWidth(); ok {
			w = table.Fixed(n + pad)
		}
		col := b.Column(i).Width(w).Align(c.Align).VerticalAlign(c.VerticalAlign)
		if pad > 0 {
			col.Padding(render.MustPad(0, 0, 0, pad))
		}
	}
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, r := range row {
			cells[i] = r
		}
		b.Body().Row(cells...)
	}
	return b.MustBuild()
}
