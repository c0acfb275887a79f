package table

import (
	"errors"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// ErrOverlappingSpans is returned by Build when two cells cover the same
// grid position.
var ErrOverlappingSpans = errors.New("invalid table: cell spans cannot overlap")

// Build resolves the builder into a dense grid.
//
// Cells are placed left to right into the first empty column of their row.
// Spans are truncated to the table bounds rather than growing it. Padding,
// borders and alignment come from the most specific of cell, row, column and
// table; styles are folded over cell, row, section row style, column and
// table.
func (b *Builder) Build() (*Table, error) {
	width := 0
	for _, s := range []*SectionBuilder{&b.header, &b.body, &b.footer} {
		for _, r := range s.rows {
			width = max(width, len(r.cells))
		}
	}

	header, err := b.buildSection(&b.header, width, 0)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	body, err := b.buildSection(&b.body, width, len(header))
	if err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}
	footer, err := b.buildSection(&b.footer, width, len(header)+len(body))
	if err != nil {
		return nil, fmt.Errorf("footer: %w", err)
	}

	rows := make([][]Cell, 0, len(header)+len(body)+len(footer))
	rows = append(rows, header...)
	rows = append(rows, body...)
	rows = append(rows, footer...)

	columns := 0
	for _, r := range rows {
		columns = max(columns, len(r))
	}
	widths := make(map[int]ColumnWidth, len(b.columns))
	for i, c := range b.columns {
		widths[i] = c.width
	}

	var borderStyle *styles.TextStyle
	if b.borderStyle != nil {
		s := *b.borderStyle
		borderStyle = &s
	}
	var separator *lipgloss.Border
	if b.separator != nil {
		s := *b.separator
		separator = &s
	}

	return &Table{
		rows:          rows,
		columns:       columns,
		expand:        b.expand,
		borderSet:     b.borderSet,
		separator:     separator,
		borderStyle:   borderStyle,
		headerRows:    len(header),
		footerRows:    len(footer),
		columnWidths:  widths,
		captionTop:    b.captionTop,
		captionBottom: b.captionBot,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// buildSection lays out one section. yOffset is the index of the section's
// first row in the final table, used for span references.
func (b *Builder) buildSection(s *SectionBuilder, builderWidth, yOffset int) ([][]Cell, error) {
	rows := make([][]Cell, len(s.rows))
	for y, row := range s.rows {
		x := 0
		for _, cell := range row.cells {
			x = findEmptyColumn(rows, x, y)
			if err := b.insertCell(cell, s, rows, x, y, builderWidth, yOffset); err != nil {
				return nil, err
			}
			x++
		}
	}
	return rows, nil
}

// findEmptyColumn returns the first column at or after x in row y that holds
// no cell, growing the row as needed.
func findEmptyColumn(rows [][]Cell, x, y int) int {
	row := rows[y]
	if x >= len(row) {
		rows[y] = ensureSize(row, x+1)
		return x
	}
	for i := x; i < len(row); i++ {
		if _, ok := row[i].(EmptyCell); ok {
			return i
		}
	}
	rows[y] = append(row, EmptyCell{})
	return len(row)
}

func ensureSize(row []Cell, size int) []Cell {
	for len(row) < size {
		row = append(row, EmptyCell{})
	}
	return row
}

func (b *Builder) insertCell(cell *CellBuilder, s *SectionBuilder, rows [][]Cell, startX, startY, builderWidth, yOffset int) error {
	maxRowSize := 0
	for y := startY; y < startY+cell.rowSpan && y < len(s.rows); y++ {
		maxRowSize = max(maxRowSize, len(s.rows[y].cells))
	}
	columnSpan := min(cell.columnSpan, builderWidth-maxRowSize+1)
	rowSpan := min(cell.rowSpan, len(rows)-startY)

	content, borders := b.resolveCell(cell, s, s.rows[startY], b.columns[startX], startY, rowSpan, columnSpan)

	lastX := startX + columnSpan - 1
	lastY := startY + rowSpan - 1
	for x := startX; x <= lastX; x++ {
		for y := startY; y <= lastY; y++ {
			var c Cell = content
			if x != startX || y != startY {
				var edges Borders
				edges = edges.With(BorderLeft, borders.Has(BorderLeft) && x == startX)
				edges = edges.With(BorderTop, borders.Has(BorderTop) && y == startY)
				edges = edges.With(BorderRight, borders.Has(BorderRight) && x == lastX)
				edges = edges.With(BorderBottom, borders.Has(BorderBottom) && y == lastY)
				c = SpanRef{X: startX, Y: startY + yOffset, Borders: edges}
			}
			rows[y] = ensureSize(rows[y], x+1)
			if _, ok := rows[y][x].(EmptyCell); !ok {
				return fmt.Errorf("%w: column %d, row %d", ErrOverlappingSpans, x, y+yOffset)
			}
			rows[y][x] = c
		}
	}
	return nil
}

// resolveCell applies the inheritance chain to a cell builder. It returns the
// anchor cell and the borders requested for the whole span.
func (b *Builder) resolveCell(cell *CellBuilder, s *SectionBuilder, row *RowBuilder, column *ColumnBuilder, y, rowSpan, columnSpan int) (ContentCell, Borders) {
	var col settings
	if column != nil {
		col = column.settings
	}
	chain := []settings{cell.settings, row.settings, col, b.settings}

	padding := render.NoPadding
	if p := firstSet(chain, func(s settings) *render.Padding { return s.padding }); p != nil {
		padding = *p
	}
	borders := BordersAll
	if p := firstSet(chain, func(s settings) *Borders { return s.borders }); p != nil {
		borders = *p
	}
	var align render.TextAlign
	if p := firstSet(chain, func(s settings) *render.TextAlign { return s.align }); p != nil {
		align = *p
	}
	var valign render.VerticalAlign
	if p := firstSet(chain, func(s settings) *render.VerticalAlign { return s.valign }); p != nil {
		valign = *p
	}

	// The anchor of a span has no right or bottom border of its own; those
	// edges belong to the last covered position.
	anchor := borders.With(BorderRight, borders.Has(BorderRight) && columnSpan == 1)
	anchor = anchor.With(BorderBottom, borders.Has(BorderBottom) && rowSpan == 1)

	return ContentCell{
		Content:       render.WithPadding(cell.content, padding, true),
		RowSpan:       rowSpan,
		ColumnSpan:    columnSpan,
		Borders:       anchor,
		Style:         styles.Fold(cell.style, row.style, s.rowStyle(y), col.style, b.style),
		Align:         align,
		VerticalAlign: valign,
	}, borders
}

func firstSet[T any](chain []settings, get func(settings) *T) *T {
	for _, s := range chain {
		if v := get(s); v != nil {
			return v
		}
	}
	return nil
}
