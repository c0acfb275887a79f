package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	xterm "golang.org/x/term"
)

// ErrNotTerminal is returned when a capability needs a terminal but the file
// is not one.
var ErrNotTerminal = errors.New("not a terminal")

// Scope is an exclusive input session. Close restores the terminal and is
// safe to call more than once.
type Scope interface {
	ReadKey() (KeyEvent, error)
	Close() error
}

// Input opens input scopes.
type Input interface {
	EnterRawMode() (Scope, error)
}

// RawScope holds a terminal in raw mode until closed.
type RawScope struct {
	fd    int
	state *xterm.State
	dec   *Decoder
	once  sync.Once
	err   error
}

// EnterRawMode puts in into raw mode. The returned scope must be closed to
// restore the previous mode.
func EnterRawMode(in *os.File) (*RawScope, error) {
	fd := int(in.Fd())
	if !xterm.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	return &RawScope{fd: fd, state: state, dec: NewDecoder(in)}, nil
}

// ReadKey blocks until the next key press.
func (s *RawScope) ReadKey() (KeyEvent, error) {
	return s.dec.ReadKey()
}

// Close restores the terminal mode saved by EnterRawMode.
func (s *RawScope) Close() error {
	s.once.Do(func() {
		if err := xterm.Restore(s.fd, s.state); err != nil {
			s.err = fmt.Errorf("restore terminal: %w", err)
		}
	})
	return s.err
}

// FileInput reads keys from a terminal file, usually os.Stdin.
type FileInput struct {
	File *os.File
}

// Stdin returns an input reading from os.Stdin.
func Stdin() FileInput {
	return FileInput{File: os.Stdin}
}

func (f FileInput) EnterRawMode() (Scope, error) {
	return EnterRawMode(f.File)
}

// ReaderInput decodes keys from an arbitrary byte stream without touching
// terminal modes. Useful for piped input and tests.
func ReaderInput(r io.Reader) Input {
	return readerInput{r: r}
}

type readerInput struct {
	r io.Reader
}

func (in readerInput) EnterRawMode() (Scope, error) {
	return &streamScope{dec: NewDecoder(in.r)}, nil
}

type streamScope struct {
	dec *Decoder
}

func (s *streamScope) ReadKey() (KeyEvent, error) { return s.dec.ReadKey() }
func (s *streamScope) Close() error { return nil }

// Keys returns an input that replays events in order and then reports
// io.EOF.
func Keys(events ...KeyEvent) Input {
	return scriptInput(events)
}

type scriptInput []KeyEvent

func (in scriptInput) EnterRawMode() (Scope, error) {
	return &scriptScope{events: in}, nil
}

type scriptScope struct {
	events []KeyEvent
}

func (s *scriptScope) ReadKey() (KeyEvent, error) {
	if len(s.events) == 0 {
		return KeyEvent{}, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func (s *scriptScope) Close() error { return nil }

// NoInput is an input that is never a terminal.
type NoInput struct{}

func (NoInput) EnterRawMode() (Scope, error) {
	return nil, ErrNotTerminal
}
