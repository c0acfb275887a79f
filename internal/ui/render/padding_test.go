package render

import (
	"errors"
	"strings"
	"testing"
)

func TestPad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []int
		want   [4]int // top, right, bottom, left
	}{
		{"all", []int{2}, [4]int{2, 2, 2, 2}},
		{"vertical horizontal", []int{1, 3}, [4]int{1, 3, 1, 3}},
		{"top horizontal bottom", []int{1, 2, 3}, [4]int{1, 2, 3, 2}},
		{"explicit", []int{1, 2, 3, 4}, [4]int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := Pad(tt.values...)
			if err != nil {
				t.Fatalf("Pad() error = %v", err)
			}
			got := [4]int{p.Top(), p.Right(), p.Bottom(), p.Left()}
			if got != tt.want {
				t.Errorf("Pad(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestPad_Negative(t *testing.T) {
	t.Parallel()

	for _, values := range [][]int{{-1}, {0, -1}, {0, 0, -1}, {0, 0, 0, -1}} {
		if _, err := Pad(values...); !errors.Is(err, ErrNegativePadding) {
			t.Errorf("Pad(%v) error = %v, want ErrNegativePadding", values, err)
		}
	}
	if _, err := Pad(); err == nil {
		t.Error("Pad() with no values should fail")
	}
}

func TestMustPad_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustPad(-1) did not panic")
		}
	}()
	MustPad(-1)
}

func TestPadding_IsEmpty(t *testing.T) {
	t.Parallel()

	if !NoPadding.IsEmpty() {
		t.Error("NoPadding.IsEmpty() = false")
	}
	if !MustPad(0).IsEmpty() {
		t.Error("MustPad(0).IsEmpty() = false")
	}
	if MustPad(0, 0, 0, 1).IsEmpty() {
		t.Error("MustPad(0,0,0,1).IsEmpty() = true")
	}
}

func TestWithPadding_EmptyReturnsSameRenderable(t *testing.T) {
	t.Parallel()

	r := PlainText("hello")
	got := WithPadding(r, NoPadding, true)
	if got != Renderable(r) {
		t.Error("WithPadding with empty padding should return the original renderable")
	}
}

func TestWithPadding_Measure(t *testing.T) {
	t.Parallel()

	term := New(WithOutput(discard{}))
	r := PlainText("lorem ipsum dolor")
	for _, p := range []Padding{MustPad(0, 1), MustPad(1, 2, 3, 4), MustPad(0, 0, 0, 5)} {
		for _, w := range []int{5, 10, 40} {
			inner := r.Measure(term, w-p.Horizontal())
			got := WithPadding(r, p, true).Measure(term, w)
			want := inner.Grow(p.Horizontal())
			if got != want {
				t.Errorf("Measure(%d) with %v = %+v, want %+v", w, p, got, want)
			}
		}
	}
}

func TestWithPadding_Render(t *testing.T) {
	t.Parallel()

	term := New(WithOutput(discard{}))
	r := WithPadding(PlainText("ab"), MustPad(1, 2, 1, 3), true)

	got := r.Render(term, 20).Strings()
	want := []string{"", "   ab  ", ""}
	if len(got) != len(want) {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWithPadding_EmptyLines(t *testing.T) {
	t.Parallel()

	term := New(WithOutput(discard{}))
	content := StaticLines{Line{Plain("a")}, Line{}, Line{Plain("b")}}

	tests := []struct {
		name          string
		padEmptyLines bool
		want          []string
	}{
		{"padded", true, []string{" a ", "  ", " b "}},
		{"kept empty", false, []string{" a ", "", " b "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := WithPadding(content, MustPad(0, 1), tt.padEmptyLines).Render(term, 10).Strings()
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestPaddingHelpers(t *testing.T) {
	t.Parallel()

	term := New(WithOutput(discard{}))

	tests := []struct {
		name string
		pad  func(Renderable, int, bool) (Renderable, error)
		want []string
	}{
		{"all", WithPaddingAll, []string{"", " ab ", ""}},
		{"vertical", WithVerticalPadding, []string{"", "ab", ""}},
		{"horizontal", WithHorizontalPadding, []string{" ab "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := tt.pad(PlainText("ab"), 1, true)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			got := r.Render(term, 20).Strings()
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}

			if _, err := tt.pad(PlainText("ab"), -1, true); !errors.Is(err, ErrNegativePadding) {
				t.Errorf("negative padding error = %v, want ErrNegativePadding", err)
			}

			plain := PlainText("ab")
			if r, _ := tt.pad(plain, 0, true); r != Renderable(plain) {
				t.Error("zero padding should return the original renderable")
			}
		})
	}
}
