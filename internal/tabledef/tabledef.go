// Package tabledef reads table descriptions from TOML.
//
// A description sets table-wide defaults, column constraints and the rows of
// the header, body and footer sections:
//
//	border = "rounded"
//	expand = true
//
//	[[columns]]
//	width = "expand"
//
//	[[columns]]
//	align = "right"
//
//	[[header]]
//	cells = ["Name", "Size"]
//
//	[[body]]
//	cells = ["a.txt", { text = "12K", style = { fg = "82" } }]
//
// A cell is a string or an inline table with text, row_span, column_span,
// align, vertical_align, borders, padding and style keys.
package tabledef

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/BurntSushi/toml"

	"github.com/raphi011/inkwell/internal/config"
	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
	"github.com/raphi011/inkwell/internal/ui/table"
)

// ErrInvalidCell is returned for a cell that is neither a string nor a table.
var ErrInvalidCell = errors.New("invalid cell")

// BorderSetNames lists the accepted border glyph sets.
var BorderSetNames = []string{"normal", "rounded", "thick", "double", "ascii", "hidden"}

// BorderSet returns the lipgloss border glyphs for a set name.
func BorderSet(name string) (lipgloss.Border, error) {
	switch name {
	case "normal", "":
		return lipgloss.NormalBorder(), nil
	case "rounded":
		return lipgloss.RoundedBorder(), nil
	case "thick":
		return lipgloss.ThickBorder(), nil
	case "double":
		return lipgloss.DoubleBorder(), nil
	case "ascii":
		return lipgloss.ASCIIBorder(), nil
	case "hidden":
		return lipgloss.HiddenBorder(), nil
	}
	return lipgloss.Border{}, fmt.Errorf("invalid border set %q (must be one of %s)", name, strings.Join(BorderSetNames, ", "))
}

type settingsDef struct {
	Align         string              `toml:"align"`
	VerticalAlign string              `toml:"vertical_align"`
	Borders       *string             `toml:"borders"`
	Padding       []int               `toml:"padding"`
	Style         *config.StyleConfig `toml:"style"`
}

type columnDef struct {
	settingsDef
	Index *int   `toml:"index"`
	Width string `toml:"width"`
}

type rowDef struct {
	settingsDef
	Cells []any `toml:"cells"`
}

type tableDef struct {
	settingsDef
	Border        string              `toml:"border"`
	Separator     string              `toml:"separator"`
	BorderStyle   *config.StyleConfig `toml:"border_style"`
	Expand        bool                `toml:"expand"`
	CaptionTop    string              `toml:"caption_top"`
	CaptionBottom string              `toml:"caption_bottom"`
	Columns       []columnDef         `toml:"columns"`
	Header        []rowDef            `toml:"header"`
	Body          []rowDef            `toml:"body"`
	Footer        []rowDef            `toml:"footer"`
}

// Parse decodes a TOML table description into a builder.
func Parse(data []byte) (*table.Builder, error) {
	var def tableDef
	md, err := toml.Decode(string(data), &def)
	if err != nil {
		return nil, fmt.Errorf("failed to parse table definition: %w", err)
	}
	for _, key := range md.Undecoded() {
		// Inline cell tables are checked by decodeCell.
		if slices.Contains(key, "cells") {
			continue
		}
		return nil, fmt.Errorf("unknown key %q in table definition", key.String())
	}

	b := table.New().Expand(def.Expand)

	set, err := BorderSet(def.Border)
	if err != nil {
		return nil, err
	}
	b.BorderSet(set)
	if def.Separator != "" {
		sep, err := BorderSet(def.Separator)
		if err != nil {
			return nil, fmt.Errorf("separator: %w", err)
		}
		b.SectionSeparator(sep)
	}
	if def.BorderStyle != nil {
		b.BorderStyle(def.BorderStyle.TextStyle())
	}
	if def.CaptionTop != "" {
		b.CaptionTop(render.PlainText(def.CaptionTop))
	}
	if def.CaptionBottom != "" {
		b.CaptionBottom(render.PlainText(def.CaptionBottom))
	}
	if err := def.apply("table", b); err != nil {
		return nil, err
	}

	for i, c := range def.Columns {
		idx := i
		if c.Index != nil {
			idx = *c.Index
		}
		if idx < 0 {
			return nil, fmt.Errorf("column %d: negative index %d", i, idx)
		}
		col := b.Column(idx)
		w, err := ParseWidth(c.Width)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		col.Width(w)
		if err := c.apply(fmt.Sprintf("column %d", i), col); err != nil {
			return nil, err
		}
	}

	for _, sec := range []struct {
		name string
		rows []rowDef
		s    *table.SectionBuilder
	}{
		{"header", def.Header, b.Header()},
		{"body", def.Body, b.Body()},
		{"footer", def.Footer, b.Footer()},
	} {
		for y, r := range sec.rows {
			where := fmt.Sprintf("%s row %d", sec.name, y)
			row := sec.s.Row()
			if err := r.apply(where, row); err != nil {
				return nil, err
			}
			for x, raw := range r.Cells {
				if err := addCell(row, raw); err != nil {
					return nil, fmt.Errorf("%s cell %d: %w", where, x, err)
				}
			}
		}
	}

	return b, nil
}

// ParseWidth parses a column width: "" or "auto", a number of cells,
// "expand" or "expand:WEIGHT".
func ParseWidth(s string) (table.ColumnWidth, error) {
	switch {
	case s == "" || s == "auto":
		return table.Auto(), nil
	case s == "expand":
		return table.Expand(1), nil
	case strings.HasPrefix(s, "expand:"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "expand:"))
		if err != nil || n < 1 {
			return table.ColumnWidth{}, fmt.Errorf("invalid expand weight in %q", s)
		}
		return table.Expand(n), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return table.ColumnWidth{}, fmt.Errorf("invalid width %q (must be auto, expand, expand:N or a cell count)", s)
	}
	return table.Fixed(n), nil
}

// target is the settings surface shared by every builder level.
type target[T any] interface {
	Align(render.TextAlign) T
	VerticalAlign(render.VerticalAlign) T
	Borders(table.Borders) T
	Padding(render.Padding) T
	Style(styles.TextStyle) T
}

func (d settingsDef) apply(where string, t any) error {
	switch t := t.(type) {
	case *table.Builder:
		return applySettings[*table.Builder](d, where, t)
	case *table.ColumnBuilder:
		return applySettings[*table.ColumnBuilder](d, where, t)
	case *table.RowBuilder:
		return applySettings[*table.RowBuilder](d, where, t)
	case *table.CellBuilder:
		return applySettings[*table.CellBuilder](d, where, t)
	}
	return fmt.Errorf("%s: unsupported builder %T", where, t)
}

func applySettings[T any](d settingsDef, where string, t target[T]) error {
	if d.Align != "" {
		a, err := render.ParseTextAlign(d.Align)
		if err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		t.Align(a)
	}
	if d.VerticalAlign != "" {
		a, err := render.ParseVerticalAlign(d.VerticalAlign)
		if err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		t.VerticalAlign(a)
	}
	if d.Borders != nil {
		b, err := table.ParseBorders(*d.Borders)
		if err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		t.Borders(b)
	}
	if d.Padding != nil {
		p, err := render.Pad(d.Padding...)
		if err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		t.Padding(p)
	}
	if d.Style != nil {
		t.Style(d.Style.TextStyle())
	}
	return nil
}

func addCell(row *table.RowBuilder, raw any) error {
	switch v := raw.(type) {
	case string:
		row.Cell(v)
		return nil
	case map[string]any:
		def, err := decodeCell(v)
		if err != nil {
			return err
		}
		c := row.Cell(def.Text).RowSpan(def.RowSpan).ColumnSpan(def.ColumnSpan)
		return def.apply("cell", c)
	}
	return fmt.Errorf("%w: %v", ErrInvalidCell, raw)
}

type cellDef struct {
	settingsDef
	Text       string `toml:"text"`
	RowSpan    int    `toml:"row_span"`
	ColumnSpan int    `toml:"column_span"`
}

// decodeCell converts an inline table by re-encoding it, so cells accept the
// same keys and types as every other level.
func decodeCell(m map[string]any) (cellDef, error) {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return cellDef{}, fmt.Errorf("%w: %v", ErrInvalidCell, err)
	}
	def := cellDef{RowSpan: 1, ColumnSpan: 1}
	md, err := toml.Decode(buf.String(), &def)
	if err != nil {
		return cellDef{}, fmt.Errorf("%w: %v", ErrInvalidCell, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cellDef{}, fmt.Errorf("%w: unknown key %q", ErrInvalidCell, undecoded[0].String())
	}
	return def, nil
}
