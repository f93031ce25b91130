// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"io"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state. Steering keys are held
// for keyHoldDuration after their last byte so that several of them can be
// down together; the action keys are edges and only report the frame in
// which their byte arrived.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Fire    bool // space
	Pause   bool // p or a lone escape
	Restart bool // r
	Menu    bool // m
	Shop    bool // b
	Enter   bool
	Quit    bool // q, ctrl-c or a closed stream
	Number  int  // Last digit pressed this frame, -1 if none

	Pressed []byte
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	closed  bool
	pending []byte // Start of an escape sequence cut off by the last read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	br := bufio.NewReader(r)
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.parse(buf, time.Now())
	if s.closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput forgets every held key. Call it when switching screens so a
// held steering key does not leak into the next one.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// parse updates the held-key timestamps from buf and builds the frame input.
// An ESC or ESC [ at the end of buf is held back until the next call, since
// the rest of an arrow key sequence may arrive in the next read. A held ESC
// that is not followed by [ is a lone escape.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	in := Input{Number: -1, Pressed: buf}

	carried := len(s.pending) > 0
	if carried {
		buf = append(s.pending, buf...)
		s.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&s.state, &in, b, now)
			continue
		}

		rest := len(buf) - i - 1
		switch {
		case rest == 0 && !(carried && i == 0):
			s.pending = append(s.pending, b)
		case rest == 1 && buf[i+1] == '[' && !(carried && i == 0):
			s.pending = append(s.pending, b, '[')
			i++
		case rest >= 2 && buf[i+1] == '[':
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A':
				s.state.up = now
			case 'B':
				s.state.down = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
		case rest >= 1 && buf[i+1] == '[':
			// A held ESC [ that never completed.
			in.Pause = true
			i++
		default:
			in.Pause = true
		}
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	return in
}

// applyByte records a single key byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		in.Fire = true
	case 'p', 'P':
		in.Pause = true
	case 'r', 'R':
		in.Restart = true
	case 'm', 'M':
		in.Menu = true
	case 'b', 'B':
		in.Shop = true
	case '\n', '\r':
		in.Enter = true
	case 'q', 'Q', '\x03':
		in.Quit = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}
