package tabledef

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
	"github.com/raphi011/inkwell/internal/ui/table"
)

func renderPlain(t *testing.T, def string, width int) string {
	t.Helper()
	b, err := Parse([]byte(def))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	tbl, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	term := render.New(
		render.WithOutput(io.Discard),
		render.WithStyler(styles.PlainStyler),
		render.WithWidth(width),
	)
	return term.Render(tbl)
}

func TestParse_RoundedBorders(t *testing.T) {
	t.Parallel()

	got := renderPlain(t, `border = "rounded"

[[body]]
cells = ["a", "bb"]

[[body]]
cells = ["ccc", "d"]
`, 80)
	want := strings.Join([]string{
		"╭─────┬────╮",
		"│ a   │ bb │",
		"├─────┼────┤",
		"│ ccc │ d  │",
		"╰─────┴────╯",
	}, "\n")
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestParse_ColumnSpan(t *testing.T) {
	t.Parallel()

	got := renderPlain(t, `[[body]]
cells = [{ text = "ab", column_span = 2 }]

[[body]]
cells = ["c", "d"]
`, 80)
	want := strings.Join([]string{
		"┌───────┐",
		"│ ab    │",
		"├───┬───┤",
		"│ c │ d │",
		"└───┴───┘",
	}, "\n")
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestParse_Settings(t *testing.T) {
	t.Parallel()

	b, err := Parse([]byte(`expand = true
padding = [0, 2]

[[columns]]
width = "expand:2"

[[columns]]
index = 3
width = "12"
align = "right"

[[header]]
cells = ["Name", "Size"]

[[body]]
style = { italic = true }
cells = ["a", { text = "12K", row_span = 2, align = "center", style = { fg = "82" } }]

[[body]]
cells = ["b"]

[[footer]]
borders = "none"
cells = ["total"]
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	tbl, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !tbl.Expands() {
		t.Error("Expands() = false, want true")
	}
	if got, ok := tbl.ColumnWidth(0).ExpandWeight(); !ok || got != 2 {
		t.Errorf("ColumnWidth(0) = %v, want expand weight 2", tbl.ColumnWidth(0))
	}
	if tbl.HeaderRowCount() != 1 || tbl.FooterRowCount() != 1 {
		t.Errorf("header, footer rows = %d, %d, want 1, 1", tbl.HeaderRowCount(), tbl.FooterRowCount())
	}

	cell, _, _, ok := tbl.Anchor(1, 1)
	if !ok {
		t.Fatal("Anchor(1, 1) not found")
	}
	if cell.RowSpan != 2 {
		t.Errorf("RowSpan = %d, want 2", cell.RowSpan)
	}
	if cell.Align != render.AlignCenter {
		t.Errorf("Align = %v, want center", cell.Align)
	}
	if want := (styles.TextStyle{Fg: "82", Italic: true}); cell.Style != want {
		t.Errorf("Style = %+v, want %+v", cell.Style, want)
	}

	footer, _, _, ok := tbl.Anchor(0, 3)
	if !ok {
		t.Fatal("Anchor(0, 3) not found")
	}
	if footer.Borders != table.BordersNone {
		t.Errorf("footer Borders = %v, want none", footer.Borders)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		def     string
		wantErr string
	}{
		{"bad toml", "border = ", "failed to parse"},
		{"unknown key", "colour = \"red\"", `unknown key "colour"`},
		{"bad border set", `border = "wavy"`, `invalid border set "wavy"`},
		{"bad separator", `separator = "wavy"`, "separator"},
		{"bad width", "[[columns]]\nwidth = \"wide\"", "column 0"},
		{"bad expand weight", "[[columns]]\nwidth = \"expand:0\"", "invalid expand weight"},
		{"negative index", "[[columns]]\nindex = -1", "negative index"},
		{"bad align", "[[body]]\nalign = \"middle\"\ncells = [\"a\"]", "body row 0"},
		{"bad borders", "[[body]]\nborders = \"sideways\"\ncells = [\"a\"]", "invalid border"},
		{"negative padding", "padding = [-1]", "table"},
		{"unknown cell key", "[[body]]\ncells = [{ txt = \"a\" }]", `unknown key "txt"`},
		{"bad cell align", "[[header]]\ncells = [{ text = \"a\", align = \"up\" }]", "header row 0 cell 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.def))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_InvalidCellType(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("[[body]]\ncells = [\"a\", 3]"))
	if !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Parse() error = %v, want ErrInvalidCell", err)
	}
}

func TestParseWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want table.ColumnWidth
	}{
		{"", table.Auto()},
		{"auto", table.Auto()},
		{"expand", table.Expand(1)},
		{"expand:3", table.Expand(3)},
		{"0", table.Fixed(0)},
		{"20", table.Fixed(20)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseWidth(tt.in)
			if err != nil {
				t.Fatalf("ParseWidth(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseWidth(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBorderSet(t *testing.T) {
	t.Parallel()

	for _, name := range BorderSetNames {
		if _, err := BorderSet(name); err != nil {
			t.Errorf("BorderSet(%q) error = %v", name, err)
		}
	}
	if got, _ := BorderSet("double"); got.TopLeft != "╔" {
		t.Errorf("BorderSet(double).TopLeft = %q, want ╔", got.TopLeft)
	}
	if _, err := BorderSet("zigzag"); err == nil {
		t.Error("BorderSet(zigzag) error = nil, want error")
	}
}
