// Package input reads terminal key and mouse events without blocking the
// game loop. Mouse reporting uses the SGR extended protocol (1006) with
// any-motion tracking (1003) so pointer position is known even between
// button presses.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// MouseState is the pointer position in terminal cells plus button state.
// Unlike keys, mouse state persists between frames: position and the held
// button only change when the terminal reports a new event.
type MouseState struct {
	Valid bool
	X     int
	Y     int
	Down  bool
}

// Input represents the current frame's input state.
type Input struct {
	Quit  bool
	Space bool
	Claim bool
	Enter bool
	Mouse MouseState
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	space time.Time
	claim time.Time
	enter time.Time
}

// Stream delivers input bytes via a channel and tracks key and mouse state.
type Stream struct {
	ch    chan byte
	state keyState
	mouse MouseState
	// partial holds the tail of the previous drain when an escape sequence
	// was split across reads.
	partial []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// mouseEvent is a single decoded SGR mouse report.
type mouseEvent struct {
	x, y    int
	press   bool
	release bool
	motion  bool
}

// parseMouseEvent decodes an SGR mouse sequence starting at buf[i], which
// must point at the ESC byte. The format is ESC [ < Cb ; Cx ; Cy (M|m).
// Returns the event, the number of bytes consumed, and whether a complete
// sequence was present. consumed is 0 when buf holds a valid prefix that
// needs more bytes.
func parseMouseEvent(buf []byte, i int) (mouseEvent, int, bool) {
	var ev mouseEvent
	j := i
	expect := func(b byte) bool {
		if j >= len(buf) || buf[j] != b {
			return false
		}
		j++
		return true
	}
	if !expect('\x1b') || !expect('[') || !expect('<') {
		return ev, j - i, false
	}
	readNum := func() (int, bool) {
		n := 0
		start := j
		for j < len(buf) && buf[j] >= '0' && buf[j] <= '9' {
			n = n*10 + int(buf[j]-'0')
			j++
		}
		return n, j > start
	}
	cb, ok := readNum()
	if !ok || !expect(';') {
		return ev, 0, false
	}
	cx, ok := readNum()
	if !ok || !expect(';') {
		return ev, 0, false
	}
	cy, ok := readNum()
	if !ok || j >= len(buf) {
		return ev, 0, false
	}
	final := buf[j]
	j++
	if final != 'M' && final != 'm' {
		return ev, 0, false
	}

	// SGR coordinates are 1-based.
	ev.x = cx - 1
	ev.y = cy - 1
	switch {
	case cb&32 != 0:
		ev.motion = true
	case final == 'm':
		ev.release = true
	case cb&3 != 3:
		ev.press = true
	}
	return ev, j - i, true
}

// ReadInput drains all available bytes from the stream (non-blocking),
// decodes mouse reports, and returns the combined frame input.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := s.partial
	s.partial = nil

	// Drain all available bytes
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				goto parse
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	for i := 0; i < len(buf); {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' && buf[i+2] == '<' {
			ev, consumed, ok := parseMouseEvent(buf, i)
			if ok {
				s.mouse.Valid = true
				s.mouse.X = ev.x
				s.mouse.Y = ev.y
				if ev.press {
					s.mouse.Down = true
				}
				if ev.release {
					s.mouse.Down = false
				}
				i += consumed
				continue
			}
			if consumed == 0 {
				// Sequence split across reads; keep the tail for next frame.
				s.partial = append(s.partial, buf[i:]...)
				break
			}
			i++
			continue
		}
		if b == '\x1b' && i+2 >= len(buf) {
			// Possible prefix of a mouse sequence.
			s.partial = append(s.partial, buf[i:]...)
			break
		}

		applyByteToState(&s.state, b, now)
		i++
	}

	return Input{
		Quit:  now.Sub(s.state.quit) < keyHoldDuration,
		Space: now.Sub(s.state.space) < keyHoldDuration,
		Claim: now.Sub(s.state.claim) < keyHoldDuration,
		Enter: now.Sub(s.state.enter) < keyHoldDuration,
		Mouse: s.mouse,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case ' ':
		state.space = now
	case 'c', 'C':
		state.claim = now
	case '\n', '\r':
		state.enter = now
	}
}
