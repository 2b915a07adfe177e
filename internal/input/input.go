// Package input turns raw terminal bytes into the game's discrete events.
// A background goroutine pumps bytes from the reader into a channel; callers
// poll without blocking during play and block on Wait for menu screens.
package input

import (
	"bufio"
	"context"
	"io"
)

// Event is one discrete player action.
type Event int

const (
	None Event = iota
	AimUp
	AimUpLeft
	AimUpRight
	AimLeft
	AimRight
	Fire
	Quit
	Enter
	Digit1
	Digit2
	Digit3
)

// Stream delivers parsed events from a byte reader. Bytes arrive on an
// internal channel; escape sequences may straddle reads, so undecoded bytes
// carry over between polls. Not safe for concurrent use: one goroutine owns
// a stream.
type Stream struct {
	ch      chan byte
	pending []byte
	queue   []Event
	closed  bool
}

// StartStream spawns a goroutine reading bytes from r until EOF.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll returns the next pending event without blocking, or None when no
// complete event has arrived. A closed input source reads as Quit so a
// dropped connection tears the session down.
func (s *Stream) Poll() Event {
	s.drain()
	if s.closed && len(s.queue) == 0 {
		return Quit
	}
	return s.pop()
}

// Wait blocks until an event arrives, the source closes, or ctx is done.
func (s *Stream) Wait(ctx context.Context) (Event, error) {
	for {
		if ev := s.Poll(); ev != None {
			return ev, nil
		}
		if s.closed {
			return Quit, io.EOF
		}
		select {
		case <-ctx.Done():
			return None, ctx.Err()
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return Quit, io.EOF
			}
			s.feed(b)
		}
	}
}

// drain moves all available bytes out of the channel.
func (s *Stream) drain() {
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return
			}
			s.feed(b)
		default:
			return
		}
	}
}

func (s *Stream) pop() Event {
	if len(s.queue) == 0 {
		return None
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	return ev
}

// feed appends one byte and decodes as many complete events as possible.
// A trailing ESC is held back until the rest of its sequence arrives.
func (s *Stream) feed(b byte) {
	s.pending = append(s.pending, b)
	i := 0
	for i < len(s.pending) {
		c := s.pending[i]
		if c == 0x1b {
			if len(s.pending)-i < 3 {
				break // incomplete CSI sequence, wait for more bytes
			}
			if s.pending[i+1] == '[' {
				if ev := arrowEvent(s.pending[i+2]); ev != None {
					s.queue = append(s.queue, ev)
				}
				i += 3
				continue
			}
			i++ // bare ESC, ignored
			continue
		}
		if ev := keyEvent(c); ev != None {
			s.queue = append(s.queue, ev)
		}
		i++
	}
	s.pending = append(s.pending[:0], s.pending[i:]...)
}

// arrowEvent maps a CSI final byte to an aim event.
func arrowEvent(b byte) Event {
	switch b {
	case 'A':
		return AimUp
	case 'C':
		return AimRight
	case 'D':
		return AimLeft
	}
	return None
}

// keyEvent maps a plain byte to an event. Unbound keys decode to None.
func keyEvent(b byte) Event {
	switch b {
	case 'w', 'W':
		return AimUp
	case 'a', 'A':
		return AimLeft
	case 'd', 'D':
		return AimRight
	case 'z', 'Z':
		return AimUpLeft
	case 'c', 'C':
		return AimUpRight
	case ' ':
		return Fire
	case 'q', 'Q':
		return Quit
	case '\r', '\n':
		return Enter
	case '1':
		return Digit1
	case '2':
		return Digit2
	case '3':
		return Digit3
	}
	return None
}
