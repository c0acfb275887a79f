package prompt

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// Entry is one item of a selection list.
type Entry struct {
	Title       string
	Description string
	Selected    bool
}

// List draws a selection list: an optional title, one line per entry with
// cursor and selection markers, entry descriptions, and an optional caption.
type List struct {
	Entries []Entry
	Title   string
	Cursor  int // index into Entries; negative hides the cursor

	// Markers drawn in front of entries. Empty Selected and Unselected
	// markers leave out the selection column, as single selection does.
	Markers styles.Markers

	// StyleOnHover draws the entry under the cursor in the selected style.
	StyleOnHover bool

	// OnlyActiveDescription hides the descriptions of all entries but the
	// one under the cursor.
	OnlyActiveDescription bool

	// Filter is drawn as a filter line when ShowFilter is set. Matches maps
	// entry indexes to the matched rune positions to highlight.
	Filter     string
	ShowFilter bool
	Matches    map[int][]int

	Caption render.Renderable
}

func (l *List) Measure(t *render.Terminal, width int) render.WidthRange {
	w := l.Render(t, 0).Width()
	return render.WidthRange{Min: w, Max: w}
}

func (l *List) Render(t *render.Terminal, width int) render.Lines {
	var out render.Lines

	if l.Title != "" {
		out = append(out, render.Line{render.Styled(l.Title, t.Style("select.title"))})
	}
	if l.ShowFilter {
		out = append(out, render.Line{
			render.Styled("Filter: ", t.Style("select.instructions")),
			render.Styled(l.Filter, t.Style("select.filter")),
		})
	}

	cursorWidth := ansi.StringWidth(l.Markers.Cursor)
	markerWidth := max(ansi.StringWidth(l.Markers.Selected), ansi.StringWidth(l.Markers.Unselected))
	indent := cursorWidth + 1
	if markerWidth > 0 {
		indent += markerWidth + 1
	}

	if len(l.Entries) == 0 && l.ShowFilter {
		out = append(out, render.Line{
			render.Space(indent, styles.TextStyle{}),
			render.Styled("No matching items", t.Style("select.unselected")),
		})
	}

	for i, e := range l.Entries {
		active := i == l.Cursor
		line := render.Line{}

		if active {
			line = append(line, render.Styled(l.Markers.Cursor, t.Style("select.cursor")))
		} else {
			line = append(line, render.Space(cursorWidth, styles.TextStyle{}))
		}
		line = append(line, render.Plain(" "))

		if markerWidth > 0 {
			marker, style := l.Markers.Unselected, t.Style("select.unselected")
			if e.Selected {
				marker, style = l.Markers.Selected, t.Style("select.selected")
			}
			line = append(line,
				render.Styled(marker, style),
				render.Space(markerWidth-ansi.StringWidth(marker)+1, styles.TextStyle{}),
			)
		}

		titleStyle := t.Style("select.unselected-title")
		if e.Selected || (l.StyleOnHover && active) {
			titleStyle = t.Style("select.selected")
		}
		line = append(line, highlight(e.Title, l.Matches[i], titleStyle, t.Style("select.filter"))...)
		out = append(out, line)

		if e.Description == "" || (l.OnlyActiveDescription && !active) {
			continue
		}
		desc := render.NewText(e.Description, t.Style("select.description"))
		descWidth := 0
		if width > 0 {
			descWidth = max(width-indent, 1)
		}
		for _, dl := range desc.Render(t, descWidth) {
			out = append(out, append(render.Line{render.Space(indent, styles.TextStyle{})}, dl...))
		}
	}

	if l.Caption != nil {
		out = append(out, l.Caption.Render(t, width)...)
	}
	return out
}

// highlight splits title into spans, drawing the runes at matched positions
// in the match style.
func highlight(title string, matched []int, style, match styles.TextStyle) render.Line {
	if len(matched) == 0 {
		return render.Line{render.Styled(title, style)}
	}
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var (
		line render.Line
		run  strings.Builder
		hit  bool
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		s := style
		if hit {
			s = match.Over(style)
		}
		line = append(line, render.Styled(run.String(), s))
		run.Reset()
	}
	for i, r := range []rune(title) {
		if set[i] != hit {
			flush()
			hit = set[i]
		}
		run.WriteRune(r)
	}
	flush()
	return line
}

// instructions builds the key help caption from key/action pairs.
func instructions(t *render.Terminal, pairs ...string) render.Renderable {
	text := t.Style("select.instructions")
	key := t.Style("select.instructions-key").Over(text)

	spans := []render.Span{render.Styled(" ", text)}
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			spans = append(spans, render.Styled(" • ", text))
		}
		spans = append(spans,
			render.Styled(pairs[i], key),
			render.Styled(" "+pairs[i+1], text),
		)
	}
	return render.StaticLines{render.Line(spans)}
}
