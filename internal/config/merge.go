package config

import "maps"

// MergeLocal merges a local directory config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Shallow copy global; fields not set locally are inherited as-is.
	merged := *global

	if local.Width != nil {
		merged.Width = *local.Width
	}
	if local.Theme != "" {
		merged.Theme = local.Theme
	}
	if local.Color != "" {
		merged.Color = local.Color
	}

	// Merge progress (simple field replace for set values)
	if local.Progress.FPS != nil {
		merged.Progress.FPS = *local.Progress.FPS
	}
	if local.Progress.ClearWhenFinished != nil {
		merged.Progress.ClearWhenFinished = *local.Progress.ClearWhenFinished
	}
	if local.Progress.SpeedWindow != "" {
		merged.Progress.SpeedWindow = local.Progress.SpeedWindow
	}

	// Merge select
	if local.Select.CursorMarker != "" {
		merged.Select.CursorMarker = local.Select.CursorMarker
	}
	if local.Select.SelectedMarker != "" {
		merged.Select.SelectedMarker = local.Select.SelectedMarker
	}
	if local.Select.UnselectedMarker != "" {
		merged.Select.UnselectedMarker = local.Select.UnselectedMarker
	}
	if local.Select.ASCII != nil {
		merged.Select.ASCII = *local.Select.ASCII
	}
	if local.Select.ClearOnExit != nil {
		merged.Select.ClearOnExit = local.Select.ClearOnExit
	}
	if local.Select.Instructions != nil {
		merged.Select.Instructions = local.Select.Instructions
	}

	merged.Styles = mergeStyles(global.Styles, local.Styles)

	return &merged
}

// mergeStyles overlays local style overrides on the global ones by name.
func mergeStyles(global, local map[string]StyleConfig) map[string]StyleConfig {
	if len(local) == 0 {
		return global
	}
	merged := make(map[string]StyleConfig, len(global)+len(local))
	maps.Copy(merged, global)
	maps.Copy(merged, local)
	return merged
}
