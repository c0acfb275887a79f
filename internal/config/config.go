package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/inkwell/internal/storage"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// ProgressConfig holds progress display settings
type ProgressConfig struct {
	FPS               int    `toml:"fps"`                 // refresh rate of the animator
	ClearWhenFinished bool   `toml:"clear_when_finished"` // erase bars once all tasks are done
	SpeedWindow       string `toml:"speed_window"`        // duration string, e.g. "30s"
}

// SelectConfig holds interactive selection settings
type SelectConfig struct {
	CursorMarker     string `toml:"cursor_marker"`
	SelectedMarker   string `toml:"selected_marker"`
	UnselectedMarker string `toml:"unselected_marker"`
	ASCII            bool   `toml:"ascii"` // use ASCII default markers
	ClearOnExit      *bool  `toml:"clear_on_exit"`
	Instructions     *bool  `toml:"instructions"`
}

// StyleConfig overrides one named theme style
type StyleConfig struct {
	Fg            string `toml:"fg"`
	Bg            string `toml:"bg"`
	Bold          bool   `toml:"bold"`
	Italic        bool   `toml:"italic"`
	Underline     bool   `toml:"underline"`
	Dim           bool   `toml:"dim"`
	Inverse       bool   `toml:"inverse"`
	Strikethrough bool   `toml:"strikethrough"`
}

// TextStyle converts the override to a text style.
func (s StyleConfig) TextStyle() styles.TextStyle {
	return styles.TextStyle{
		Fg:            s.Fg,
		Bg:            s.Bg,
		Bold:          s.Bold,
		Italic:        s.Italic,
		Underline:     s.Underline,
		Dim:           s.Dim,
		Inverse:       s.Inverse,
		Strikethrough: s.Strikethrough,
	}
}

// Config holds the inkwell configuration
type Config struct {
	Width    int                    `toml:"width"`
	Theme    string                 `toml:"theme"`
	Color    string                 `toml:"color"`
	Progress ProgressConfig         `toml:"progress"`
	Select   SelectConfig           `toml:"select"`
	Styles   map[string]StyleConfig `toml:"styles"`
}

// Defaults
const (
	DefaultTheme       = "default"
	DefaultColor       = "auto"
	DefaultFPS         = 10
	DefaultSpeedWindow = 30 * time.Second
)

// Default returns the default configuration
func Default() Config {
	return Config{
		Theme: DefaultTheme,
		Color: DefaultColor,
		Progress: ProgressConfig{
			FPS:         DefaultFPS,
			SpeedWindow: DefaultSpeedWindow.String(),
		},
	}
}

// ResolvedTheme builds the theme: the preset palette with the [styles]
// overrides applied.
func (c *Config) ResolvedTheme() (styles.Theme, error) {
	theme, ok := styles.Preset(c.Theme)
	if !ok {
		return styles.Theme{}, fmt.Errorf("invalid theme %q: must be %s", c.Theme, formatOptions(styles.PresetNames()))
	}
	for name, s := range c.Styles {
		theme = theme.WithStyle(name, s.TextStyle())
	}
	return theme, nil
}

// SpeedWindow returns the progress speed window, or the default when unset.
func (c *Config) SpeedWindow() time.Duration {
	if d, err := time.ParseDuration(c.Progress.SpeedWindow); err == nil && d > 0 {
		return d
	}
	return DefaultSpeedWindow
}

// Markers returns the selection markers with unset ones taken from the
// default or ASCII set.
func (c *Config) Markers() styles.Markers {
	return styles.Markers{
		Cursor:     c.Select.CursorMarker,
		Selected:   c.Select.SelectedMarker,
		Unselected: c.Select.UnselectedMarker,
	}.Merge(styles.MarkersFor(c.Select.ASCII))
}

// ClearOnExit reports whether interactive lists are erased on exit.
// Default true.
func (c *Config) ClearOnExit() bool {
	return c.Select.ClearOnExit == nil || *c.Select.ClearOnExit
}

// Instructions reports whether interactive lists show key help.
// Default true.
func (c *Config) Instructions() bool {
	return c.Select.Instructions == nil || *c.Select.Instructions
}

// Path returns the path of the global config file. INKWELL_CONFIG
// overrides the default location.
func Path() (string, error) {
	if p := os.Getenv("INKWELL_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "inkwell", "config.toml"), nil
}

// Load reads the global config file.
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path. A missing file yields Default() and no
// error; an unreadable or invalid file yields Default() and an error.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates config file content. Unset values keep their
// defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return Default(), err
	}

	// Use defaults for empty values
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.Color == "" {
		cfg.Color = DefaultColor
	}
	if cfg.Progress.FPS == 0 {
		cfg.Progress.FPS = DefaultFPS
	}
	return cfg, nil
}

const defaultConfig = `# inkwell configuration

# Render width in columns. 0 detects the width from the terminal, falling
# back to $COLUMNS and then 79.
# width = 0

# Color theme: default, dracula, nord, gruvbox, or plain
theme = "default"

# Color output: auto (detect), always, or never
color = "auto"

# Progress displays
[progress]
# Refreshes per second
fps = 10
# Erase the bars once every task is finished
clear_when_finished = false
# How far back transfer speed estimates look
speed_window = "30s"

# Interactive selection lists
[select]
# cursor_marker = "❯"
# selected_marker = "✓"
# unselected_marker = "•"
# Use ASCII markers (>, x, -) as defaults
# ascii = false
# Erase the list when a selection is made
# clear_on_exit = true
# Show key help below the list
# instructions = true

# Style overrides - replace individual theme styles by name.
# Run "inkwell config styles" to list the names.
#
# [styles."select.cursor"]
# fg = "#ff79c6"
# bold = true
#
# [styles."table.border"]
# fg = "240"
`

// Init creates a default config file at the global config path.
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	// Check if file already exists (skip if force)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	// Write default config (creates the directory)
	if err := storage.WriteAtomic(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}

// ErrConfigExists is returned by Init when the file exists and force is
// not set.
var ErrConfigExists = errors.New("config file already exists")

// DefaultConfig returns the default configuration template content.
func DefaultConfig() string {
	return defaultConfig
}
