// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: session/events.go
// Summary: Input pump and event polling.

package session

import (
	"time"

	"github.com/scrimlib/scrim/input"
)

// readLoop pumps raw bytes from the input stream into the decoder's feed
// channel until the session closes or the stream ends.
func (s *Session) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := s.in.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case s.readCh <- data:
			case <-s.stopCh:
				return
			}
		}
		if err != nil {
			select {
			case s.readErr <- err:
			default:
			}
			return
		}
		select {
		case <-s.stopCh:
			return
		default:
		}
	}
}

// PollEvent returns the next input event. A negative timeout blocks until
// an event arrives, zero polls without waiting, and a positive timeout
// waits at most that long. ok is false when the wait expired or the
// session closed.
func (s *Session) PollEvent(timeout time.Duration) (input.Event, bool) {
	var deadline <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		deadline = t.C
	}

	for {
		if ev, ok := s.decoder.Next(); ok {
			return ev, true
		}

		if timeout == 0 {
			select {
			case data := <-s.readCh:
				s.decoder.Feed(data)
				continue
			default:
				return input.Event{}, false
			}
		}

		// While a sequence is half-assembled, wake up in time to resolve
		// the ambiguity.
		var escC <-chan time.Time
		var escTimer *time.Timer
		if s.decoder.Collecting() {
			escTimer = time.NewTimer(s.escDelay)
			escC = escTimer.C
		}

		select {
		case data := <-s.readCh:
			s.decoder.Feed(data)
		case <-escC:
			s.decoder.ExpireTimeout(time.Now())
		case err := <-s.readErr:
			if escTimer != nil {
				escTimer.Stop()
			}
			return input.Event{Type: input.EventError, Err: err}, true
		case <-deadline:
			if escTimer != nil {
				escTimer.Stop()
			}
			return input.Event{}, false
		case <-s.stopCh:
			if escTimer != nil {
				escTimer.Stop()
			}
			return input.Event{}, false
		}
		if escTimer != nil {
			escTimer.Stop()
		}
	}
}

// PostEvent queues an application-generated event behind pending input.
func (s *Session) PostEvent(ev input.Event) {
	s.decoder.Inject(ev)
}

// Unget pushes an event back so the next PollEvent returns it first.
func (s *Session) Unget(ev input.Event) {
	s.decoder.Unget(ev)
}

// handleResize re-measures the terminal, resizes the screen and snapshot,
// and delivers a resize event to the application.
func (s *Session) handleResize() {
	w, h := s.querySize()

	s.mu.Lock()
	if w != s.screen.Width() || h != s.screen.Height() {
		s.screen.Resize(w, h, s.background)
		s.renderer.Resize(w, h)
	}
	s.mu.Unlock()

	s.decoder.Inject(input.Event{Type: input.EventResize, Width: w, Height: h})
}
