// Package table builds and renders bordered tables with row and column
// spans.
//
// A [Builder] collects a sparse description of header, body and footer rows.
// [Builder.Build] resolves it into a [Table], a dense immutable grid where
// every position holds exactly one [Cell]. Tables are [render.Renderable].
package table

import (
	"charm.land/lipgloss/v2"
	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// Table is a built table. It has no mutating methods.
type Table struct {
	rows          [][]Cell
	columns       int
	expand        bool
	borderSet     lipgloss.Border
	separator     *lipgloss.Border
	borderStyle   *styles.TextStyle
	headerRows    int
	footerRows    int
	columnWidths  map[int]ColumnWidth
	captionTop    render.Renderable
	captionBottom render.Renderable
}

// RowCount returns the number of rows, including header and footer rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// ColumnCount returns the length of the longest row.
func (t *Table) ColumnCount() int {
	return t.columns
}

// Cell returns the cell at column x, row y. Positions outside the grid are
// empty.
func (t *Table) Cell(x, y int) Cell {
	if y < 0 || y >= len(t.rows) || x < 0 || x >= len(t.rows[y]) {
		return EmptyCell{}
	}
	return t.rows[y][x]
}

// Anchor returns the content cell occupying column x, row y along with its
// position. It reports false for empty positions.
func (t *Table) Anchor(x, y int) (ContentCell, int, int, bool) {
	switch c := t.Cell(x, y).(type) {
	case EmptyCell:
		return ContentCell{}, 0, 0, false
	case ContentCell:
		return c, x, y, true
	case SpanRef:
		anchor, ok := t.Cell(c.X, c.Y).(ContentCell)
		return anchor, c.X, c.Y, ok
	default:
		panic("table: unknown cell type")
	}
}

// HeaderRowCount returns the number of header rows.
func (t *Table) HeaderRowCount() int {
	return t.headerRows
}

// FooterRowCount returns the number of footer rows.
func (t *Table) FooterRowCount() int {
	return t.footerRows
}

// Expands reports whether the table grows to fill the available width,
// either because the table is set to expand or because a column has an
// [Expand] width.
func (t *Table) Expands() bool {
	if t.expand {
		return true
	}
	for _, w := range t.columnWidths {
		if _, ok := w.ExpandWeight(); ok {
			return true
		}
	}
	return false
}

// ColumnWidth returns the width constraint of column i.
func (t *Table) ColumnWidth(i int) ColumnWidth {
	return t.columnWidths[i]
}

// BorderSet returns the characters borders are drawn with.
func (t *Table) BorderSet() lipgloss.Border {
	return t.borderSet
}
