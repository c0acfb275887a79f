package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/raphi011/inkwell/internal/ui/styles"
)

// Valid enum values for configuration fields.
var (
	ValidColorModes = []string{"auto", "always", "never"}
)

// ValidThemes returns the theme names the theme setting accepts.
func ValidThemes() []string {
	return styles.PresetNames()
}

// ValidateColor validates a color mode value against ValidColorModes.
// Exported for use in CLI flag validation.
func ValidateColor(mode string) error {
	return validateEnum(mode, "color", ValidColorModes)
}

// ValidateTheme validates a theme name against ValidThemes.
func ValidateTheme(name string) error {
	return validateEnum(name, "theme", ValidThemes())
}

// Validate checks every setting of cfg.
func Validate(cfg *Config) error {
	if cfg.Width < 0 {
		return fmt.Errorf("invalid width %d: must not be negative", cfg.Width)
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	if err := ValidateColor(cfg.Color); err != nil {
		return err
	}
	if cfg.Progress.FPS < 0 {
		return fmt.Errorf("invalid progress.fps %d: must not be negative", cfg.Progress.FPS)
	}
	if err := validateDuration(cfg.Progress.SpeedWindow, "progress.speed_window"); err != nil {
		return err
	}
	return validateStyles(cfg.Styles, "")
}

// validateStyles checks that every override names a style the default theme
// defines.
func validateStyles(overrides map[string]StyleConfig, contextInfo string) error {
	known := styles.DefaultTheme().StyleNames()
	for name := range overrides {
		if slices.Contains(known, name) {
			continue
		}
		if contextInfo != "" {
			return fmt.Errorf("unknown style %q in %s", name, contextInfo)
		}
		return fmt.Errorf("unknown style %q", name)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// validateDuration checks that value (if non-empty) parses as a positive
// duration.
func validateDuration(value, field string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid %s %q: must be a positive duration like \"30s\"", field, value)
	}
	return nil
}
