package styles

import "testing"

func TestMarkersFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ascii bool
		want  Markers
	}{
		{"unicode", false, Markers{Cursor: "❯", Selected: "✓", Unselected: "•"}},
		{"ascii", true, Markers{Cursor: ">", Selected: "x", Unselected: "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MarkersFor(tt.ascii); got != tt.want {
				t.Errorf("MarkersFor(%v) = %+v, want %+v", tt.ascii, got, tt.want)
			}
		})
	}
}

func TestMarkers_Merge(t *testing.T) {
	t.Parallel()

	got := Markers{Cursor: "→"}.Merge(DefaultMarkers())
	want := Markers{Cursor: "→", Selected: "✓", Unselected: "•"}
	if got != want {
		t.Errorf("Merge() = %+v, want %+v", got, want)
	}
}
