// Package term provides the terminal capabilities the UI layer consumes:
// raw-mode acquisition with guaranteed restore, decoded key events, and size
// and tty detection.
package term

import "strings"

// Named keys. Printable keys use the character itself as the name.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyTab        = "Tab"
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeyInsert     = "Insert"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyPageUp     = "PageUp"
	KeyPageDown   = "PageDown"
)

// KeyEvent is a single decoded key press.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
}

// Key returns an unmodified key event.
func Key(name string) KeyEvent {
	return KeyEvent{Key: name}
}

// Ctrl returns a key event with the control modifier set.
func Ctrl(name string) KeyEvent {
	return KeyEvent{Key: name, Ctrl: true}
}

// IsCtrlC reports whether e is the interrupt key.
func (e KeyEvent) IsCtrlC() bool {
	return e.Ctrl && !e.Alt && e.Key == "c"
}

// IsRune reports whether e is a single printable character without
// ctrl or alt.
func (e KeyEvent) IsRune() bool {
	return !e.Ctrl && !e.Alt && len([]rune(e.Key)) == 1
}

func (e KeyEvent) String() string {
	var b strings.Builder
	if e.Ctrl {
		b.WriteString("ctrl+")
	}
	if e.Alt {
		b.WriteString("alt+")
	}
	if e.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(e.Key)
	return b.String()
}
