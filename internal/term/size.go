package term

import (
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	xterm "golang.org/x/term"
)

// DefaultWidth is used when the width cannot be detected.
const DefaultWidth = 79

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Size returns the width and height of the terminal f is connected to.
func Size(f *os.File) (width, height int, err error) {
	if !IsTerminal(f) {
		return 0, 0, ErrNotTerminal
	}
	return xterm.GetSize(int(f.Fd()))
}

// Width returns the terminal width of f, falling back to $COLUMNS and then
// DefaultWidth.
func Width(f *os.File) int {
	if w, _, err := Size(f); err == nil && w > 0 {
		return w
	}
	return fallbackWidth()
}

func fallbackWidth() int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return DefaultWidth
}
