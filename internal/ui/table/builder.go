package table

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// ColumnWidth constrains the width of a column.
type ColumnWidth struct {
	kind  widthKind
	value int
}

type widthKind int

const (
	widthAuto widthKind = iota
	widthFixed
	widthExpand
)

// Auto sizes the column to its content.
func Auto() ColumnWidth { return ColumnWidth{} }

// Fixed sizes the column to exactly n cells.
func Fixed(n int) ColumnWidth { return ColumnWidth{kind: widthFixed, value: max(n, 0)} }

// Expand sizes the column to its content and gives it a share of any
// leftover width proportional to weight.
func Expand(weight int) ColumnWidth { return ColumnWidth{kind: widthExpand, value: max(weight, 1)} }

// IsAuto reports whether the width follows the content.
func (w ColumnWidth) IsAuto() bool { return w.kind == widthAuto }

// FixedWidth returns the width of a fixed column.
func (w ColumnWidth) FixedWidth() (int, bool) { return w.value, w.kind == widthFixed }

// ExpandWeight returns the weight of an expanding column.
func (w ColumnWidth) ExpandWeight() (int, bool) { return w.value, w.kind == widthExpand }

func (w ColumnWidth) String() string {
	switch w.kind {
	case widthFixed:
		return fmt.Sprintf("fixed(%d)", w.value)
	case widthExpand:
		return fmt.Sprintf("expand(%d)", w.value)
	}
	return "auto"
}

// settings are the inheritable properties shared by every builder level.
// Nil pointers mean "inherit".
type settings struct {
	padding *render.Padding
	style   styles.TextStyle
	borders *Borders
	align   *render.TextAlign
	valign  *render.VerticalAlign
}

// Builder describes a table. Build resolves it into an immutable [Table].
type Builder struct {
	settings
	expand      bool
	borderSet   lipgloss.Border
	separator   *lipgloss.Border
	borderStyle *styles.TextStyle
	header      SectionBuilder
	body        SectionBuilder
	footer      SectionBuilder
	columns     map[int]*ColumnBuilder
	captionTop  render.Renderable
	captionBot  render.Renderable
}

// New returns a builder for a bordered table with one space of horizontal
// cell padding.
func New() *Builder {
	p := render.MustPad(0, 1)
	all := BordersAll
	return &Builder{
		settings:  settings{padding: &p, borders: &all},
		borderSet: lipgloss.NormalBorder(),
		columns:   make(map[int]*ColumnBuilder),
	}
}

// Grid returns a builder for a borderless, unpadded table.
func Grid() *Builder {
	return New().Borders(BordersNone).Padding(render.NoPadding)
}

// Expand makes the table fill the available width.
func (b *Builder) Expand(expand bool) *Builder {
	b.expand = expand
	return b
}

// Borders sets the default cell borders.
func (b *Builder) Borders(borders Borders) *Builder {
	b.borders = &borders
	return b
}

// BorderSet sets the characters borders are drawn with.
func (b *Builder) BorderSet(set lipgloss.Border) *Builder {
	b.borderSet = set
	return b
}

// SectionSeparator sets the characters used for the border rows between the
// header and body and between the body and footer.
func (b *Builder) SectionSeparator(set lipgloss.Border) *Builder {
	b.separator = &set
	return b
}

// BorderStyle sets the style of border characters. Unset, the theme's
// "table.border" style is used.
func (b *Builder) BorderStyle(s styles.TextStyle) *Builder {
	b.borderStyle = &s
	return b
}

// Padding sets the default cell padding.
func (b *Builder) Padding(p render.Padding) *Builder {
	b.padding = &p
	return b
}

// Style sets the table-wide text style.
func (b *Builder) Style(s styles.TextStyle) *Builder {
	b.style = s
	return b
}

// Align sets the default horizontal alignment.
func (b *Builder) Align(a render.TextAlign) *Builder {
	b.align = &a
	return b
}

// VerticalAlign sets the default vertical alignment.
func (b *Builder) VerticalAlign(a render.VerticalAlign) *Builder {
	b.valign = &a
	return b
}

// CaptionTop sets a caption drawn centered above the table.
func (b *Builder) CaptionTop(r render.Renderable) *Builder {
	b.captionTop = r
	return b
}

// CaptionBottom sets a caption drawn centered below the table.
func (b *Builder) CaptionBottom(r render.Renderable) *Builder {
	b.captionBot = r
	return b
}

// Column returns the builder for the column at index i, creating it if
// needed. Columns are indexed by final grid position.
func (b *Builder) Column(i int) *ColumnBuilder {
	c, ok := b.columns[i]
	if !ok {
		c = &ColumnBuilder{}
		b.columns[i] = c
	}
	return c
}

// Header returns the header section.
func (b *Builder) Header() *SectionBuilder { return &b.header }

// Body returns the body section.
func (b *Builder) Body() *SectionBuilder { return &b.body }

// Footer returns the footer section.
func (b *Builder) Footer() *SectionBuilder { return &b.footer }

// ColumnBuilder holds column defaults.
type ColumnBuilder struct {
	settings
	width ColumnWidth
}

// Width sets the column width constraint.
func (c *ColumnBuilder) Width(w ColumnWidth) *ColumnBuilder {
	c.width = w
	return c
}

func (c *ColumnBuilder) Padding(p render.Padding) *ColumnBuilder {
	c.padding = &p
	return c
}

func (c *ColumnBuilder) Style(s styles.TextStyle) *ColumnBuilder {
	c.style = s
	return c
}

func (c *ColumnBuilder) Borders(borders Borders) *ColumnBuilder {
	c.borders = &borders
	return c
}

func (c *ColumnBuilder) Align(a render.TextAlign) *ColumnBuilder {
	c.align = &a
	return c
}

func (c *ColumnBuilder) VerticalAlign(a render.VerticalAlign) *ColumnBuilder {
	c.valign = &a
	return c
}

// SectionBuilder holds the rows of the header, body or footer.
type SectionBuilder struct {
	rows      []*RowBuilder
	rowStyles []styles.TextStyle
}

// Row appends a row. Each value becomes one cell: a *CellBuilder is used as
// is, a render.Renderable is used as content, nil is an empty text and
// anything else is formatted with fmt.Sprint.
func (s *SectionBuilder) Row(cells ...any) *RowBuilder {
	r := &RowBuilder{}
	for _, c := range cells {
		r.add(c)
	}
	s.rows = append(s.rows, r)
	return r
}

// RowStyles sets styles applied to rows by index, cycling through the list
// (e.g. two styles give zebra striping).
func (s *SectionBuilder) RowStyles(ss ...styles.TextStyle) *SectionBuilder {
	s.rowStyles = ss
	return s
}

// Len returns the number of rows.
func (s *SectionBuilder) Len() int {
	return len(s.rows)
}

func (s *SectionBuilder) rowStyle(y int) styles.TextStyle {
	if len(s.rowStyles) == 0 {
		return styles.TextStyle{}
	}
	return s.rowStyles[y%len(s.rowStyles)]
}

// RowBuilder holds the cells of a row.
type RowBuilder struct {
	settings
	cells []*CellBuilder
}

// Cell appends a cell and returns its builder.
func (r *RowBuilder) Cell(content any) *CellBuilder {
	return r.add(content)
}

func (r *RowBuilder) add(content any) *CellBuilder {
	c, ok := content.(*CellBuilder)
	if !ok {
		c = NewCell(content)
	}
	r.cells = append(r.cells, c)
	return c
}

func (r *RowBuilder) Padding(p render.Padding) *RowBuilder {
	r.padding = &p
	return r
}

func (r *RowBuilder) Style(s styles.TextStyle) *RowBuilder {
	r.style = s
	return r
}

func (r *RowBuilder) Borders(borders Borders) *RowBuilder {
	r.borders = &borders
	return r
}

func (r *RowBuilder) Align(a render.TextAlign) *RowBuilder {
	r.align = &a
	return r
}

func (r *RowBuilder) VerticalAlign(a render.VerticalAlign) *RowBuilder {
	r.valign = &a
	return r
}

// CellBuilder describes a single cell.
type CellBuilder struct {
	settings
	content    render.Renderable
	rowSpan    int
	columnSpan int
}

// NewCell returns a cell builder for content, converted as in
// [SectionBuilder.Row].
func NewCell(content any) *CellBuilder {
	return &CellBuilder{content: toRenderable(content), rowSpan: 1, columnSpan: 1}
}

func toRenderable(content any) render.Renderable {
	switch c := content.(type) {
	case nil:
		return render.PlainText("")
	case string:
		return render.PlainText(c)
	case render.Renderable:
		return c
	case fmt.Stringer:
		return render.PlainText(c.String())
	default:
		return render.PlainText(fmt.Sprint(c))
	}
}

// RowSpan sets how many rows the cell covers. Values below 1 count as 1.
func (c *CellBuilder) RowSpan(n int) *CellBuilder {
	c.rowSpan = max(n, 1)
	return c
}

// ColumnSpan sets how many columns the cell covers. Values below 1 count
// as 1.
func (c *CellBuilder) ColumnSpan(n int) *CellBuilder {
	c.columnSpan = max(n, 1)
	return c
}

func (c *CellBuilder) Padding(p render.Padding) *CellBuilder {
	c.padding = &p
	return c
}

func (c *CellBuilder) Style(s styles.TextStyle) *CellBuilder {
	c.style = s
	return c
}

func (c *CellBuilder) Borders(borders Borders) *CellBuilder {
	c.borders = &borders
	return c
}

func (c *CellBuilder) Align(a render.TextAlign) *CellBuilder {
	c.align = &a
	return c
}

func (c *CellBuilder) VerticalAlign(a render.VerticalAlign) *CellBuilder {
	c.valign = &a
	return c
}
