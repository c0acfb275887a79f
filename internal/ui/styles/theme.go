package styles

import (
	"maps"
	"slices"
)

// Palette defines the colors a theme is built from.
type Palette struct {
	Primary string // main accent color (borders, titles)
	Accent  string // highlight color (cursor, active items)
	Success string // finished tasks, selected markers
	Error   string // errors
	Muted   string // disabled/inactive text, pending bar segments
	Normal  string // standard text
	Info    string // descriptions and informational text
	Warning string // warnings
}

// Preset palettes
var (
	// DefaultPalette is the default color scheme
	DefaultPalette = Palette{
		Primary: "62",  // cyan/teal
		Accent:  "212", // pink/magenta
		Success: "82",  // green
		Error:   "196", // red
		Muted:   "240", // dark gray
		Normal:  "252", // light gray
		Info:    "244", // gray
		Warning: "214", // orange
	}

	// DraculaPalette is based on the Dracula color scheme
	DraculaPalette = Palette{
		Primary: "#bd93f9", // purple
		Accent:  "#ff79c6", // pink
		Success: "#50fa7b", // green
		Error:   "#ff5555", // red
		Muted:   "#6272a4", // comment
		Normal:  "#f8f8f2", // foreground
		Info:    "#8be9fd", // cyan
		Warning: "#ffb86c", // orange
	}

	// NordPalette is based on the Nord color scheme
	NordPalette = Palette{
		Primary: "#88c0d0", // nord8 (frost cyan)
		Accent:  "#b48ead", // nord15 (aurora purple)
		Success: "#a3be8c", // nord14 (aurora green)
		Error:   "#bf616a", // nord11 (aurora red)
		Muted:   "#4c566a", // nord3 (polar night)
		Normal:  "#eceff4", // nord6 (snow storm)
		Info:    "#81a1c1", // nord9 (frost blue)
		Warning: "#ebcb8b", // nord13 (aurora yellow)
	}

	// GruvboxPalette is based on the Gruvbox color scheme
	GruvboxPalette = Palette{
		Primary: "#83a598", // blue
		Accent:  "#d3869b", // purple
		Success: "#b8bb26", // green
		Error:   "#fb4934", // red
		Muted:   "#665c54", // gray
		Normal:  "#ebdbb2", // foreground
		Info:    "#8ec07c", // aqua
		Warning: "#fabd2f", // yellow
	}

	// PlainPalette uses the terminal defaults everywhere.
	// Formatting (bold/italic/dim) is preserved.
	PlainPalette = Palette{}
)

var presets = map[string]Palette{
	"default": DefaultPalette,
	"dracula": DraculaPalette,
	"nord":    NordPalette,
	"gruvbox": GruvboxPalette,
	"plain":   PlainPalette,
}

// Theme maps style names to text styles. Components look styles up by name
// (e.g. "select.title") so a single theme restyles every widget.
type Theme struct {
	palette Palette
	styles  map[string]TextStyle
}

// NewTheme builds the named styles from a palette.
func NewTheme(p Palette) Theme {
	return Theme{
		palette: p,
		styles: map[string]TextStyle{
			"success": Color(p.Success),
			"danger":  Color(p.Error),
			"warning": Color(p.Warning),
			"info":    Color(p.Info),
			"muted":   Color(p.Muted).WithDim(),

			"table.border": Color(p.Muted),
			"table.header": TextStyle{Bold: true},

			"select.title":            Color(p.Primary).WithBold(),
			"select.cursor":           Color(p.Accent).WithBold(),
			"select.selected":         Color(p.Success),
			"select.unselected-title": Color(p.Normal),
			"select.unselected":       Color(p.Muted),
			"select.description":      Color(p.Info).WithItalic(),
			"select.filter":           Color(p.Accent),
			"select.instructions":     TextStyle{Dim: true},
			"select.instructions-key": TextStyle{Bold: true},

			"progressbar.complete":      Color(p.Primary),
			"progressbar.pending":       Color(p.Muted),
			"progressbar.finished":      Color(p.Success),
			"progressbar.indeterminate": Color(p.Accent),
			"progress.spinner":          Color(p.Accent),
			"progress.elapsed":          Color(p.Info),
			"progress.remaining":        Color(p.Info),
		},
	}
}

// DefaultTheme returns the theme built from [DefaultPalette].
func DefaultTheme() Theme {
	return NewTheme(DefaultPalette)
}

// Palette returns the colors the theme was built from.
func (t Theme) Palette() Palette {
	return t.palette
}

// Style returns the named style, or the zero style if the theme does not
// define it.
func (t Theme) Style(name string) TextStyle {
	return t.styles[name]
}

// WithStyle returns a copy of the theme with the named style replaced.
func (t Theme) WithStyle(name string, s TextStyle) Theme {
	styles := maps.Clone(t.styles)
	if styles == nil {
		styles = make(map[string]TextStyle)
	}
	styles[name] = s
	return Theme{palette: t.palette, styles: styles}
}

// StyleNames returns the sorted names of all styles the theme defines.
func (t Theme) StyleNames() []string {
	return slices.Sorted(maps.Keys(t.styles))
}

// Preset returns the theme for a preset palette name.
func Preset(name string) (Theme, bool) {
	p, ok := presets[name]
	if !ok {
		return Theme{}, false
	}
	return NewTheme(p), true
}

// PresetNames returns the sorted list of preset names.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}
