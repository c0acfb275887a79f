package table

import (
	"fmt"
	"strings"

	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// Borders is a set of cell edges.
type Borders uint8

const (
	BorderTop Borders = 1 << iota
	BorderRight
	BorderBottom
	BorderLeft
)

const (
	BordersNone      Borders = 0
	BordersAll               = BorderTop | BorderRight | BorderBottom | BorderLeft
	BordersTopBottom         = BorderTop | BorderBottom
	BordersLeftRight         = BorderLeft | BorderRight
)

// Has reports whether every edge in e is part of b.
func (b Borders) Has(e Borders) bool {
	return b&e == e
}

// With returns b with e turned on or off.
func (b Borders) With(e Borders, on bool) Borders {
	if on {
		return b | e
	}
	return b &^ e
}

func (b Borders) String() string {
	if b == BordersNone {
		return "none"
	}
	var parts []string
	for _, e := range []struct {
		b    Borders
		name string
	}{{BorderTop, "top"}, {BorderRight, "right"}, {BorderBottom, "bottom"}, {BorderLeft, "left"}} {
		if b.Has(e.b) {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseBorders parses "all", "none", "top-bottom", "left-right" or a
// comma separated list of edges.
func ParseBorders(s string) (Borders, error) {
	switch s {
	case "all", "":
		return BordersAll, nil
	case "none":
		return BordersNone, nil
	case "top-bottom":
		return BordersTopBottom, nil
	case "left-right":
		return BordersLeftRight, nil
	}
	var b Borders
	for _, part := range strings.Split(s, ",") {
		switch strings.TrimSpace(part) {
		case "top":
			b |= BorderTop
		case "right":
			b |= BorderRight
		case "bottom":
			b |= BorderBottom
		case "left":
			b |= BorderLeft
		default:
			return 0, fmt.Errorf("invalid border %q", part)
		}
	}
	return b, nil
}

// Cell is one position of a built table grid. It is one of [EmptyCell],
// [ContentCell] or [SpanRef].
type Cell interface {
	isCell()
}

// EmptyCell is a position no cell was placed in.
type EmptyCell struct{}

// ContentCell holds the content of a cell. For spanning cells it sits at the
// top-left position of the span.
type ContentCell struct {
	Content       render.Renderable // already wrapped in the cell's padding
	RowSpan       int
	ColumnSpan    int
	Borders       Borders
	Style         styles.TextStyle
	Align         render.TextAlign
	VerticalAlign render.VerticalAlign
}

// SpanRef marks a position covered by a spanning cell other than its anchor.
// X and Y index the anchor ContentCell in the table grid.
type SpanRef struct {
	X, Y    int
	Borders Borders
}

func (EmptyCell) isCell() {}
func (ContentCell) isCell() {}
func (SpanRef) isCell() {}

// cellBorders returns the edges drawn at a grid position.
func cellBorders(c Cell) Borders {
	switch c := c.(type) {
	case EmptyCell:
		return BordersNone
	case ContentCell:
		return c.Borders
	case SpanRef:
		return c.Borders
	default:
		panic(fmt.Sprintf("table: unknown cell type %T", c))
	}
}
