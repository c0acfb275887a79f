package styles

// Markers holds the glyphs selection lists draw in front of entries.
type Markers struct {
	Cursor     string
	Selected   string
	Unselected string
}

// Default markers
var defaultMarkers = Markers{
	Cursor:     "❯",
	Selected:   "✓",
	Unselected: "•",
}

// ASCII markers for terminals without unicode fonts
var asciiMarkers = Markers{
	Cursor:     ">",
	Selected:   "x",
	Unselected: "-",
}

// DefaultMarkers returns the unicode marker set.
func DefaultMarkers() Markers {
	return defaultMarkers
}

// ASCIIMarkers returns the plain ASCII marker set.
func ASCIIMarkers() Markers {
	return asciiMarkers
}

// MarkersFor returns the ASCII set when ascii is true, otherwise the default.
func MarkersFor(ascii bool) Markers {
	if ascii {
		return asciiMarkers
	}
	return defaultMarkers
}

// Merge returns m with every empty field filled from fallback.
func (m Markers) Merge(fallback Markers) Markers {
	if m.Cursor == "" {
		m.Cursor = fallback.Cursor
	}
	if m.Selected == "" {
		m.Selected = fallback.Selected
	}
	if m.Unselected == "" {
		m.Unselected = fallback.Unselected
	}
	return m
}
