// Package config handles loading and validation of inkwell configuration.
//
// Configuration is read from ~/.config/inkwell/config.toml. A .inkwell.toml
// file in the working directory overrides individual settings for that
// directory.
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags (--width, --color, --theme)
//   - INKWELL_CONFIG env var: alternative path of the global config file
//   - .inkwell.toml in the working directory
//   - Global config file
//   - Default values
//
// # Key Settings
//
//   - width: render width, 0 detects it from the terminal
//   - theme: color preset (default, dracula, nord, gruvbox, plain)
//   - color: "auto", "always" or "never"
//
// # Style Overrides
//
// Individual theme styles are overridden in [styles.NAME] sections:
//
//	[styles."select.cursor"]
//	fg = "#ff79c6"
//	bold = true
//
// # Progress and Selection
//
// The [progress] section sets the refresh rate and speed estimation window
// of progress displays; [select] sets the markers and exit behavior of
// interactive lists.
package config
