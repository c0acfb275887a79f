package term

import (
	"errors"
	"io"
	"time"
	"unicode/utf8"
)

// ErrInvalidInput is returned when the input stream contains bytes that are
// not valid UTF-8.
var ErrInvalidInput = errors.New("invalid input sequence")

const esc = 0x1b

// escapeTimeout is how long a trailing ESC waits for the rest of an escape
// sequence before it is reported as the Escape key.
const escapeTimeout = 50 * time.Millisecond

// Decoder turns a raw terminal byte stream into key events.
//
// Sequences split across reads are reassembled. An ESC that ends a read is
// held until more input arrives; if none arrives within a short timeout it
// is reported as the Escape key. Waiting for that timeout leaves one read in
// flight on the underlying reader, which the next ReadKey picks up.
type Decoder struct {
	r       io.Reader
	buf     []byte
	pending []KeyEvent
	err     error
	chunk   [256]byte

	escapeTimeout time.Duration
	inflight      chan readResult
}

type readResult struct {
	data []byte
	err  error
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, escapeTimeout: escapeTimeout}
}

// ReadKey blocks until the next key event is available. Keys decoded before
// an error are returned first; the reader's error (io.EOF at end of stream)
// or ErrInvalidInput follows once they are consumed.
func (d *Decoder) ReadKey() (KeyEvent, error) {
	for len(d.pending) == 0 {
		if d.err != nil {
			err := d.err
			d.err = nil
			return KeyEvent{}, err
		}
		d.fill()
	}
	ev := d.pending[0]
	d.pending = d.pending[1:]
	return ev, nil
}

// fill reads once and decodes what arrived.
func (d *Decoder) fill() {
	var (
		data []byte
		err  error
	)
	if d.escapeHeld() {
		res, ok := d.readWithin(d.escapeTimeout)
		if !ok {
			d.releaseEscape()
			return
		}
		data, err = res.data, res.err
	} else {
		data, err = d.read()
	}

	if len(data) > 0 {
		d.buf = append(d.buf, data...)
		if perr := d.parse(); perr != nil {
			d.err = perr
			return
		}
	}
	if err != nil {
		if d.escapeHeld() {
			d.releaseEscape()
		}
		d.err = err
	}
}

func (d *Decoder) escapeHeld() bool {
	return len(d.buf) == 1 && d.buf[0] == esc
}

func (d *Decoder) releaseEscape() {
	d.buf = d.buf[:0]
	d.emit(Key(KeyEscape))
}

func (d *Decoder) read() ([]byte, error) {
	if d.inflight != nil {
		res := <-d.inflight
		d.inflight = nil
		return res.data, res.err
	}
	n, err := d.r.Read(d.chunk[:])
	return d.chunk[:n], err
}

// readWithin is read with a deadline. On timeout the read stays in flight
// and ok is false.
func (d *Decoder) readWithin(timeout time.Duration) (readResult, bool) {
	if d.inflight == nil {
		ch := make(chan readResult, 1)
		d.inflight = ch
		go func() {
			b := make([]byte, len(d.chunk))
			n, err := d.r.Read(b)
			ch <- readResult{data: b[:n], err: err}
		}()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case res := <-d.inflight:
		d.inflight = nil
		return res, true
	case <-timer.C:
		return readResult{}, false
	}
}

// parse consumes as many complete events from buf as possible.
func (d *Decoder) parse() error {
	i := 0
	n := len(d.buf)
	for i < n {
		b := d.buf[i]
		switch {
		case b == esc:
			if i+1 >= n {
				d.compact(i)
				return nil
			}
			consumed, ev, ok := parseEscape(d.buf[i:])
			if consumed == 0 {
				d.compact(i)
				return nil
			}
			if ok {
				d.emit(ev)
			}
			i += consumed
		case b < 0x20:
			d.emit(parseControl(b))
			i++
		case b == 0x7f:
			d.emit(Key(KeyBackspace))
			i++
		case b < 0x80:
			d.emit(Key(string(rune(b))))
			i++
		default:
			if !utf8.FullRune(d.buf[i:]) {
				d.compact(i)
				return nil
			}
			r, size := utf8.DecodeRune(d.buf[i:])
			if r == utf8.RuneError && size <= 1 {
				d.buf = d.buf[:0]
				return ErrInvalidInput
			}
			d.emit(Key(string(r)))
			i += size
		}
	}
	d.buf = d.buf[:0]
	return nil
}

func (d *Decoder) emit(ev KeyEvent) {
	d.pending = append(d.pending, ev)
}

// compact drops the first n consumed bytes from buf.
func (d *Decoder) compact(n int) {
	d.buf = append(d.buf[:0], d.buf[n:]...)
}

// parseEscape decodes a sequence starting with ESC. It returns 0 consumed
// bytes if the sequence is incomplete, and ok=false for sequences that are
// complete but unknown.
func parseEscape(data []byte) (int, KeyEvent, bool) {
	switch data[1] {
	case esc:
		return 2, KeyEvent{Key: KeyEscape, Alt: true}, true
	case '[':
		return parseCSI(data)
	case 'O':
		if len(data) < 3 {
			return 0, KeyEvent{}, false
		}
		name, ok := ss3Keys[data[2]]
		return 3, KeyEvent{Key: name}, ok
	}
	if data[1] < 0x20 {
		ev := parseControl(data[1])
		ev.Alt = true
		return 2, ev, true
	}
	if data[1] < 0x7f {
		return 2, KeyEvent{Key: string(rune(data[1])), Alt: true}, true
	}
	return 1, Key(KeyEscape), true
}

var ss3Keys = map[byte]string{
	'A': KeyArrowUp,
	'B': KeyArrowDown,
	'C': KeyArrowRight,
	'D': KeyArrowLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var csiFinalKeys = map[byte]string{
	'A': KeyArrowUp,
	'B': KeyArrowDown,
	'C': KeyArrowRight,
	'D': KeyArrowLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var csiTildeKeys = map[int]string{
	1: KeyHome,
	2: KeyInsert,
	3: KeyDelete,
	4: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
	7: KeyHome,
	8: KeyEnd,
}

// parseCSI decodes ESC [ params final.
func parseCSI(data []byte) (int, KeyEvent, bool) {
	end := 2
	for ; end < len(data); end++ {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if b < 0x20 || b > 0x3f {
			// not a parameter byte; swallow what we have
			return end, KeyEvent{}, false
		}
	}
	if end >= len(data) {
		return 0, KeyEvent{}, false
	}
	final := data[end]
	params := parseParams(data[2:end])
	consumed := end + 1

	var ev KeyEvent
	switch {
	case final == '~':
		if len(params) == 0 {
			return consumed, KeyEvent{}, false
		}
		name, ok := csiTildeKeys[params[0]]
		if !ok {
			return consumed, KeyEvent{}, false
		}
		ev.Key = name
	case final == 'Z':
		return consumed, KeyEvent{Key: KeyTab, Shift: true}, true
	default:
		name, ok := csiFinalKeys[final]
		if !ok {
			return consumed, KeyEvent{}, false
		}
		ev.Key = name
	}
	if len(params) > 1 && params[1] > 1 {
		mod := params[1] - 1
		ev.Shift = mod&1 != 0
		ev.Alt = mod&2 != 0
		ev.Ctrl = mod&4 != 0
	}
	return consumed, ev, true
}

// parseParams splits "1;5" into [1 5]. Empty parameters are 0.
func parseParams(b []byte) []int {
	if len(b) == 0 {
		return nil
	}
	params := []int{0}
	for _, c := range b {
		switch {
		case c == ';':
			params = append(params, 0)
		case c >= '0' && c <= '9':
			params[len(params)-1] = params[len(params)-1]*10 + int(c-'0')
		}
	}
	return params
}

func parseControl(b byte) KeyEvent {
	switch b {
	case 0x00:
		return Ctrl(" ")
	case 0x08:
		return Key(KeyBackspace)
	case 0x09:
		return Key(KeyTab)
	case 0x0a, 0x0d:
		return Key(KeyEnter)
	case esc:
		return Key(KeyEscape)
	}
	if b <= 0x1a {
		return Ctrl(string(rune('a' + b - 1)))
	}
	return Ctrl(string(rune('@' + b)))
}
