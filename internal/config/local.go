package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the name of the per-directory config file.
const LocalConfigFileName = ".inkwell.toml"

// LocalConfig holds per-directory configuration overrides from .inkwell.toml.
// Pointer fields and zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	Width    *int                   `toml:"width"`
	Theme    string                 `toml:"theme"`
	Color    string                 `toml:"color"`
	Progress LocalProgress          `toml:"progress"`
	Select   LocalSelect            `toml:"select"`
	Styles   map[string]StyleConfig `toml:"styles"` // merged by name into global
}

// LocalProgress holds local progress overrides
type LocalProgress struct {
	FPS               *int   `toml:"fps"`
	ClearWhenFinished *bool  `toml:"clear_when_finished"`
	SpeedWindow       string `toml:"speed_window"`
}

// LocalSelect holds local selection overrides
type LocalSelect struct {
	CursorMarker     string `toml:"cursor_marker"`
	SelectedMarker   string `toml:"selected_marker"`
	UnselectedMarker string `toml:"unselected_marker"`
	ASCII            *bool  `toml:"ascii"`
	ClearOnExit      *bool  `toml:"clear_on_exit"`
	Instructions     *bool  `toml:"instructions"`
}

// LoadLocal reads a .inkwell.toml config from the given directory.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(dir string) (*LocalConfig, error) {
	configFile := filepath.Join(dir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if err := validateLocal(&local, configFile); err != nil {
		return nil, err
	}

	return &local, nil
}

func validateLocal(local *LocalConfig, configFile string) error {
	if local.Width != nil && *local.Width < 0 {
		return fmt.Errorf("invalid width %d in %s: must not be negative", *local.Width, configFile)
	}
	if err := ValidateTheme(local.Theme); err != nil {
		return fmt.Errorf("%w in %s", err, configFile)
	}
	if err := ValidateColor(local.Color); err != nil {
		return fmt.Errorf("%w in %s", err, configFile)
	}
	if local.Progress.FPS != nil && *local.Progress.FPS < 0 {
		return fmt.Errorf("invalid progress.fps %d in %s: must not be negative", *local.Progress.FPS, configFile)
	}
	if err := validateDuration(local.Progress.SpeedWindow, "progress.speed_window"); err != nil {
		return fmt.Errorf("%w in %s", err, configFile)
	}
	return validateStyles(local.Styles, configFile)
}

// DefaultLocalConfig returns the template for a new .inkwell.toml.
func DefaultLocalConfig() string {
	return `# inkwell directory config - overrides the global config for this directory
# Only the settings listed here are overridden.

# width = 100
# theme = "nord"
# color = "always"

# [progress]
# fps = 20
# clear_when_finished = true

# [select]
# ascii = true

# [styles."table.border"]
# fg = "62"
`
}
