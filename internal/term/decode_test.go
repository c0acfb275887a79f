package term

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestDecoder_ReadKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []KeyEvent
		wantErr error // after the keys; nil means io.EOF
	}{
		{"printable", "ax", []KeyEvent{Key("a"), Key("x")}, nil},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []KeyEvent{Key(KeyArrowUp), Key(KeyArrowDown), Key(KeyArrowRight), Key(KeyArrowLeft)}, nil},
		{"ss3 arrows", "\x1bOA\x1bOB", []KeyEvent{Key(KeyArrowUp), Key(KeyArrowDown)}, nil},
		{"enter cr", "\r", []KeyEvent{Key(KeyEnter)}, nil},
		{"enter lf", "\n", []KeyEvent{Key(KeyEnter)}, nil},
		{"ctrl c", "\x03", []KeyEvent{Ctrl("c")}, nil},
		{"tab", "\t", []KeyEvent{Key(KeyTab)}, nil},
		{"backtab", "\x1b[Z", []KeyEvent{{Key: KeyTab, Shift: true}}, nil},
		{"backspace del", "\x7f", []KeyEvent{Key(KeyBackspace)}, nil},
		{"lone escape", "\x1b", []KeyEvent{Key(KeyEscape)}, nil},
		{"alt letter", "\x1bx", []KeyEvent{{Key: "x", Alt: true}}, nil},
		{"ctrl arrow", "\x1b[1;5A", []KeyEvent{{Key: KeyArrowUp, Ctrl: true}}, nil},
		{"shift arrow", "\x1b[1;2B", []KeyEvent{{Key: KeyArrowDown, Shift: true}}, nil},
		{"tilde keys", "\x1b[3~\x1b[5~\x1b[6~", []KeyEvent{Key(KeyDelete), Key(KeyPageUp), Key(KeyPageDown)}, nil},
		{"unknown csi skipped", "\x1b[99~a", []KeyEvent{Key("a")}, nil},
		{"utf8", "é✓", []KeyEvent{Key("é"), Key("✓")}, nil},
		{"keys before invalid utf8", "\r\xff", []KeyEvent{Key(KeyEnter)}, ErrInvalidInput},
		{"escape before invalid utf8", "a\x1b[A\x80", []KeyEvent{Key("a"), Key(KeyArrowUp)}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dec := NewDecoder(strings.NewReader(tt.input))
			for i, want := range tt.want {
				got, err := dec.ReadKey()
				if err != nil {
					t.Fatalf("ReadKey() #%d error = %v", i, err)
				}
				if got != want {
					t.Errorf("ReadKey() #%d = %v, want %v", i, got, want)
				}
			}
			wantErr := tt.wantErr
			if wantErr == nil {
				wantErr = io.EOF
			}
			if _, err := dec.ReadKey(); !errors.Is(err, wantErr) {
				t.Errorf("ReadKey() after input error = %v, want %v", err, wantErr)
			}
		})
	}
}

// chunkReader returns one chunk per Read call.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestDecoder_SplitSequence(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(&chunkReader{chunks: []string{"\x1b[", "B", "\xe2\x9c", "\x93"}})

	got, err := dec.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey() error = %v", err)
	}
	if got != Key(KeyArrowDown) {
		t.Errorf("ReadKey() = %v, want ArrowDown", got)
	}

	got, err = dec.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey() error = %v", err)
	}
	if got != Key("✓") {
		t.Errorf("ReadKey() = %v, want ✓", got)
	}
}

func TestDecoder_EscapeSplitFromSequence(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(&chunkReader{chunks: []string{"\x1b", "[B", "\x1b", "OA"}})
	dec.escapeTimeout = time.Minute

	for i, want := range []KeyEvent{Key(KeyArrowDown), Key(KeyArrowUp)} {
		got, err := dec.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey() #%d error = %v", i, err)
		}
		if got != want {
			t.Errorf("ReadKey() #%d = %v, want %v", i, got, want)
		}
	}
	if _, err := dec.ReadKey(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadKey() at end = %v, want io.EOF", err)
	}
}

func TestDecoder_EscapeTimeout(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	go pw.Write([]byte("\x1b"))

	dec := NewDecoder(pr)
	dec.escapeTimeout = 10 * time.Millisecond

	got, err := dec.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey() error = %v", err)
	}
	if got != Key(KeyEscape) {
		t.Errorf("ReadKey() = %v, want Escape", got)
	}

	// the read left waiting after the timeout delivers the next key
	go pw.Write([]byte("q"))
	got, err = dec.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey() error = %v", err)
	}
	if got != Key("q") {
		t.Errorf("ReadKey() = %v, want q", got)
	}
}

func TestDecoder_InvalidUTF8(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(strings.NewReader("\x80"))
	if _, err := dec.ReadKey(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ReadKey() error = %v, want ErrInvalidInput", err)
	}
}

func TestKeyEvent_IsCtrlC(t *testing.T) {
	t.Parallel()

	if !Ctrl("c").IsCtrlC() {
		t.Error("Ctrl(c).IsCtrlC() = false, want true")
	}
	if Key("c").IsCtrlC() {
		t.Error("Key(c).IsCtrlC() = true, want false")
	}
	if got := (KeyEvent{Key: "x", Ctrl: true, Alt: true}).String(); got != "ctrl+alt+x" {
		t.Errorf("String() = %q, want %q", got, "ctrl+alt+x")
	}
}
