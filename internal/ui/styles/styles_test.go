package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestTextStyle_Over(t *testing.T) {
	t.Parallel()

	inner := TextStyle{Fg: "1", Bold: true}
	outer := TextStyle{Fg: "2", Bg: "3", Italic: true, Hyperlink: "https://example.com"}

	got := inner.Over(outer)
	want := TextStyle{Fg: "1", Bg: "3", Bold: true, Italic: true, Hyperlink: "https://example.com"}
	if got != want {
		t.Errorf("Over() = %+v, want %+v", got, want)
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	got := Fold(TextStyle{}, Color("1"), Color("2").WithDim())
	want := TextStyle{Fg: "1", Dim: true}
	if got != want {
		t.Errorf("Fold() = %+v, want %+v", got, want)
	}

	if !Fold().IsZero() {
		t.Error("Fold() with no styles should be zero")
	}
}

func TestPlainStyler(t *testing.T) {
	t.Parallel()

	if got := PlainStyler(Color("1").WithBold(), "hi"); got != "hi" {
		t.Errorf("PlainStyler() = %q, want %q", got, "hi")
	}
}

func TestLipglossStyler(t *testing.T) {
	t.Parallel()

	if got := LipglossStyler(TextStyle{}, "plain"); got != "plain" {
		t.Errorf("LipglossStyler(zero) = %q, want %q", got, "plain")
	}

	styled := LipglossStyler(TextStyle{Bold: true}, "bold")
	if styled == "bold" {
		t.Error("expected escape sequences for bold text")
	}
	if got := ansi.Strip(styled); got != "bold" {
		t.Errorf("stripped = %q, want %q", got, "bold")
	}

	linked := LipglossStyler(TextStyle{Hyperlink: "https://example.com"}, "x")
	if !strings.Contains(linked, "https://example.com") {
		t.Errorf("expected hyperlink in output, got %q", linked)
	}
}
