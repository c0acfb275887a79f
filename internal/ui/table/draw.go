package table

import (
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// Measure reports the narrowest and widest useful widths of the table,
// including its borders.
func (t *Table) Measure(term *render.Terminal, width int) render.WidthRange {
	l := t.newLayout(term)
	mins, maxs := l.columnRanges(width)
	borders := l.borderColumns()
	r := render.WidthRange{Min: sum(mins) + borders, Max: sum(maxs) + borders}
	if t.Expands() && width > r.Max {
		r.Max = width
	}
	return r
}

// Render draws the table at width. Columns shrink toward their minimum width
// when the table does not fit, and lines that still overflow a cell are
// truncated. Columns never go below their minimum, so a table whose minimum
// width exceeds width is drawn wider than width.
func (t *Table) Render(term *render.Terminal, width int) render.Lines {
	l := t.newLayout(term)
	l.widths = l.fit(width)
	l.layoutRows()

	var out render.Lines
	for j := 0; j <= l.nRows; j++ {
		if l.hVis[j] {
			out = append(out, l.borderLine(j))
		}
		if j < l.nRows {
			for k := range l.heights[j] {
				out = append(out, l.contentLine(j, k))
			}
		}
	}

	tableWidth := sum(l.widths) + l.borderColumns()
	if t.captionTop != nil {
		out = append(caption(term, t.captionTop, tableWidth), out...)
	}
	if t.captionBottom != nil {
		out = append(out, caption(term, t.captionBottom, tableWidth)...)
	}
	return out
}

func caption(term *render.Terminal, r render.Renderable, width int) render.Lines {
	lines := r.Render(term, width)
	for i, line := range lines {
		lines[i] = render.AlignLine(line, width, render.AlignCenter)
	}
	return lines
}

// layout holds the per-render geometry of a table.
type layout struct {
	t            *Table
	term         *render.Terminal
	nRows, nCols int

	vVis []bool // a border column is drawn before column i (len nCols+1)
	hVis []bool // a border row is drawn before row j (len nRows+1)

	widths  []int
	heights []int
	blocks  map[[2]int]render.Lines // keyed by anchor position
}

func (t *Table) newLayout(term *render.Terminal) *layout {
	l := &layout{t: t, term: term, nRows: len(t.rows), nCols: t.columns}
	l.vVis = make([]bool, l.nCols+1)
	for i := range l.vVis {
		for y := range l.nRows {
			if l.vEdge(y, i) {
				l.vVis[i] = true
				break
			}
		}
	}
	l.hVis = make([]bool, l.nRows+1)
	for j := range l.hVis {
		for x := range l.nCols {
			if l.hEdge(j, x) {
				l.hVis[j] = true
				break
			}
		}
	}
	return l
}

// vEdge reports whether the vertical edge before column i is drawn in row y.
func (l *layout) vEdge(y, i int) bool {
	return (i > 0 && cellBorders(l.t.Cell(i-1, y)).Has(BorderRight)) ||
		(i < l.nCols && cellBorders(l.t.Cell(i, y)).Has(BorderLeft))
}

// hEdge reports whether the horizontal edge above row j is drawn in column x.
func (l *layout) hEdge(j, x int) bool {
	return (j > 0 && cellBorders(l.t.Cell(x, j-1)).Has(BorderBottom)) ||
		(j < l.nRows && cellBorders(l.t.Cell(x, j)).Has(BorderTop))
}

func (l *layout) borderColumns() int {
	n := 0
	for _, v := range l.vVis {
		if v {
			n++
		}
	}
	return n
}

type anchor struct {
	cell ContentCell
	x, y int
}

func (l *layout) anchors() []anchor {
	var out []anchor
	for y, row := range l.t.rows {
		for x, c := range row {
			switch c := c.(type) {
			case ContentCell:
				out = append(out, anchor{cell: c, x: x, y: y})
			case EmptyCell, SpanRef:
			default:
				panic("table: unknown cell type")
			}
		}
	}
	return out
}

// columnRanges returns the minimum and maximum content width of every
// column.
func (l *layout) columnRanges(width int) (mins, maxs []int) {
	mins = make([]int, l.nCols)
	maxs = make([]int, l.nCols)

	var spanning []anchor
	for _, a := range l.anchors() {
		if a.cell.ColumnSpan > 1 {
			spanning = append(spanning, a)
			continue
		}
		m := a.cell.Content.Measure(l.term, width)
		mins[a.x] = max(mins[a.x], m.Min)
		maxs[a.x] = max(maxs[a.x], m.Max)
	}
	for _, a := range spanning {
		m := a.cell.Content.Measure(l.term, width)
		interior := l.interiorBorders(a.x, a.cell.ColumnSpan)
		distribute(mins, a.x, a.cell.ColumnSpan, m.Min-interior)
		distribute(maxs, a.x, a.cell.ColumnSpan, m.Max-interior)
	}
	for i := range l.nCols {
		if n, ok := l.t.ColumnWidth(i).FixedWidth(); ok {
			mins[i], maxs[i] = n, n
		}
		maxs[i] = max(maxs[i], mins[i])
	}
	return mins, maxs
}

// distribute grows ws[x:x+n] so their sum is at least need.
func distribute(ws []int, x, n, need int) {
	cur := sum(ws[x : x+n])
	if need <= cur {
		return
	}
	extra := need - cur
	for k := range n {
		ws[x+k] += extra / n
	}
	ws[x+n-1] += extra % n
}

// fit chooses column widths for the available width.
func (l *layout) fit(width int) []int {
	mins, maxs := l.columnRanges(width)
	widths := slices.Clone(maxs)
	if width <= 0 || l.nCols == 0 {
		return widths
	}
	avail := width - l.borderColumns()
	sumMin, sumMax := sum(mins), sum(maxs)

	switch {
	case sumMax > avail && sumMin >= avail:
		return mins
	case sumMax > avail:
		extra := avail - sumMin
		flex := sumMax - sumMin
		given := 0
		for i := range widths {
			add := (maxs[i] - mins[i]) * extra / flex
			widths[i] = mins[i] + add
			given += add
		}
		for i := 0; given < extra; i = (i + 1) % len(widths) {
			if widths[i] < maxs[i] {
				widths[i]++
				given++
			}
		}
	case sumMax < avail:
		l.grow(widths, avail-sumMax)
	}
	return widths
}

// grow hands extra width to expanding columns by weight. Without expanding
// columns, an expanding table grows every auto column equally.
func (l *layout) grow(widths []int, extra int) {
	weights := make([]int, len(widths))
	total := 0
	for i := range widths {
		if w, ok := l.t.ColumnWidth(i).ExpandWeight(); ok {
			weights[i] = w
			total += w
		}
	}
	if total == 0 && l.t.expand {
		for i := range widths {
			if l.t.ColumnWidth(i).IsAuto() {
				weights[i] = 1
				total++
			}
		}
	}
	if total == 0 {
		return
	}
	given, last := 0, 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		add := extra * w / total
		widths[i] += add
		given += add
		last = i
	}
	widths[last] += extra - given
}

func (l *layout) interiorBorders(x, span int) int {
	n := 0
	for i := x + 1; i < x+span; i++ {
		if l.vVis[i] {
			n++
		}
	}
	return n
}

func (l *layout) spanWidth(x, span int) int {
	return sum(l.widths[x:x+span]) + l.interiorBorders(x, span)
}

// lineOffset returns the line index of row y within a block starting at
// row from.
func (l *layout) lineOffset(from, y int) int {
	n := 0
	for r := from; r < y; r++ {
		n += l.heights[r]
		if l.hVis[r+1] {
			n++
		}
	}
	return n
}

func (l *layout) spanHeight(y, span int) int {
	last := y + span - 1
	return l.lineOffset(y, last) + l.heights[last]
}

// layoutRows renders every cell, sizes the rows and fills the blocks.
func (l *layout) layoutRows() {
	l.heights = make([]int, l.nRows)
	anchors := l.anchors()
	natural := make([]render.Lines, len(anchors))
	for i, a := range anchors {
		natural[i] = a.cell.Content.Render(l.term, l.spanWidth(a.x, a.cell.ColumnSpan))
		if a.cell.RowSpan == 1 {
			l.heights[a.y] = max(l.heights[a.y], len(natural[i]))
		}
	}
	for i, a := range anchors {
		if a.cell.RowSpan == 1 {
			continue
		}
		if have, need := l.spanHeight(a.y, a.cell.RowSpan), len(natural[i]); need > have {
			l.heights[a.y+a.cell.RowSpan-1] += need - have
		}
	}

	header := l.term.Style("table.header")
	l.blocks = make(map[[2]int]render.Lines, len(anchors))
	for i, a := range anchors {
		style := a.cell.Style
		if a.y < l.t.headerRows {
			style = style.Over(header)
		}
		l.blocks[[2]int{a.x, a.y}] = block(natural[i],
			l.spanWidth(a.x, a.cell.ColumnSpan),
			l.spanHeight(a.y, a.cell.RowSpan),
			a.cell, style)
	}
}

// block pads lines to exactly width x height and applies the cell style
// underneath the span styles.
func block(lines render.Lines, width, height int, c ContentCell, style styles.TextStyle) render.Lines {
	lines = render.AlignBlock(lines, height, c.VerticalAlign)
	out := make(render.Lines, len(lines))
	for i, line := range lines {
		line = render.AlignLine(truncate(line, width), width, c.Align)
		styled := make(render.Line, len(line))
		for k, sp := range line {
			styled[k] = render.Span{Text: sp.Text, Style: sp.Style.Over(style)}
		}
		out[i] = styled
	}
	return out
}

func truncate(line render.Line, width int) render.Line {
	if line.Width() <= width {
		return line
	}
	var (
		out  render.Line
		used int
	)
	for _, sp := range line {
		w := sp.Width()
		if used+w <= width {
			out = append(out, sp)
			used += w
			continue
		}
		if rest := width - used; rest > 0 {
			out = append(out, render.Span{Text: ansi.Truncate(sp.Text, rest, ""), Style: sp.Style})
		}
		break
	}
	return out
}

func (l *layout) borderStyle() styles.TextStyle {
	if l.t.borderStyle != nil {
		return *l.t.borderStyle
	}
	return l.term.Style("table.border")
}

// borderSetFor returns the characters for border row j.
func (l *layout) borderSetFor(j int) lipgloss.Border {
	sep := l.t.separator
	if sep == nil {
		return l.t.borderSet
	}
	if (l.t.headerRows > 0 && j == l.t.headerRows && j < l.nRows) ||
		(l.t.footerRows > 0 && j == l.nRows-l.t.footerRows && j > 0) {
		return *sep
	}
	return l.t.borderSet
}

// contentLine draws line k of row y. Blank fill after the last drawn border
// or cell is left off.
func (l *layout) contentLine(y, k int) render.Line {
	bs := l.borderStyle()
	var line render.Line
	drawn := 0
	for x := 0; x <= l.nCols; {
		if l.vVis[x] {
			if l.vEdge(y, x) {
				line = append(line, render.Styled(glyph(vertical(l.t.borderSet, x, l.nCols)), bs))
				drawn = len(line)
			} else {
				line = append(line, render.Plain(" "))
			}
		}
		if x == l.nCols {
			break
		}
		c, ax, ay, ok := l.t.Anchor(x, y)
		if !ok {
			line = append(line, render.Plain(strings.Repeat(" ", l.widths[x])))
			x++
			continue
		}
		b := l.blocks[[2]int{ax, ay}]
		line = append(line, b[l.lineOffset(ay, y)+k]...)
		drawn = len(line)
		x = ax + c.ColumnSpan
	}
	return line[:drawn]
}

// borderLine draws the border row above row j, trimmed like contentLine.
func (l *layout) borderLine(j int) render.Line {
	set := l.borderSetFor(j)
	bs := l.borderStyle()
	var line render.Line
	drawn := 0
	for x := 0; x <= l.nCols; {
		if l.vVis[x] {
			g, ok := l.junction(set, j, x)
			line = append(line, render.Styled(g, bs))
			if ok {
				drawn = len(line)
			}
		}
		if x == l.nCols {
			break
		}
		// A cell spanning the rows on both sides draws through the border.
		if j > 0 && j < l.nRows {
			if c, ax, ay, ok := l.t.Anchor(x, j); ok && ay < j {
				b := l.blocks[[2]int{ax, ay}]
				line = append(line, b[l.lineOffset(ay, j-1)+l.heights[j-1]]...)
				drawn = len(line)
				x = ax + c.ColumnSpan
				continue
			}
		}
		if l.hEdge(j, x) {
			line = append(line, render.Styled(strings.Repeat(glyph(horizontal(set, j, l.nRows)), l.widths[x]), bs))
			drawn = len(line)
		} else {
			line = append(line, render.Plain(strings.Repeat(" ", l.widths[x])))
		}
		x++
	}
	return line[:drawn]
}

// junction picks the character where border row j meets border column x. It
// reports false when no border touches the position.
func (l *layout) junction(set lipgloss.Border, j, x int) (string, bool) {
	up := j > 0 && l.vEdge(j-1, x)
	down := j < l.nRows && l.vEdge(j, x)
	left := x > 0 && l.hEdge(j, x-1)
	right := x < l.nCols && l.hEdge(j, x)

	var g string
	switch {
	case up && down && left && right:
		g = set.Middle
	case left && right && down:
		g = set.MiddleTop
	case left && right && up:
		g = set.MiddleBottom
	case up && down && right:
		g = set.MiddleLeft
	case up && down && left:
		g = set.MiddleRight
	case right && down:
		g = set.TopLeft
	case left && down:
		g = set.TopRight
	case right && up:
		g = set.BottomLeft
	case left && up:
		g = set.BottomRight
	case left || right:
		g = horizontal(set, j, l.nRows)
	case up || down:
		g = vertical(set, x, l.nCols)
	default:
		return " ", false
	}
	return glyph(g), true
}

func horizontal(set lipgloss.Border, j, rows int) string {
	if j == rows {
		return set.Bottom
	}
	return set.Top
}

func vertical(set lipgloss.Border, x, cols int) string {
	if x == cols {
		return set.Right
	}
	return set.Left
}

// glyph returns the first character of g, or a space for sets that leave a
// position blank.
func glyph(g string) string {
	if g == "" {
		return " "
	}
	return ansi.Truncate(g, 1, "")
}

func sum(ws []int) int {
	n := 0
	for _, w := range ws {
		n += w
	}
	return n
}
