// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: session/session.go
// Summary: Terminal session lifecycle: raw mode, windows, rendering, teardown.

// Package session ties the library together: it owns the terminal, the
// capability set, the window list, the composed screen, the renderer and
// the input decoder. One Session replaces the global screen state of the
// classical curses model; nothing here is process-global.
package session

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/scrimlib/scrim/cellbuf"
	"github.com/scrimlib/scrim/compose"
	"github.com/scrimlib/scrim/input"
	"github.com/scrimlib/scrim/render"
	"github.com/scrimlib/scrim/terminfo"
)

// Session is a live terminal session. Create with New, always Close.
// Methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	caps *terminfo.CapabilitySet

	in    io.Reader
	out   io.Writer // encoded sink the renderer writes to
	rawFD int       // input fd in raw mode, -1 when not a TTY
	outFD int
	isTTY bool

	restoreState *termState

	screen   *cellbuf.Buffer
	renderer *render.Renderer
	decoder  *input.Decoder
	escDelay time.Duration

	windows  []*cellbuf.Window
	zCounter int
	clip     cellbuf.ClipMode

	background cellbuf.Cell
	pairs      map[cellbuf.PairID]pairDef

	altScreen bool
	keypadOn  bool
	mouseOn   bool
	cursorOn  bool
	closed    bool

	readCh  chan []byte
	readErr chan error
	stopCh  chan struct{}
	winchCh chan os.Signal
}

// New opens a session on the given streams (stdin/stdout by default),
// switches the terminal to raw mode when it is one, and prepares an empty
// screen. On non-TTY streams the session still renders; it just skips the
// terminal mode changes, matching how output behaves when piped.
func New(opts ...Option) (*Session, error) {
	cfg := config{
		in:        os.Stdin,
		inFD:      int(os.Stdin.Fd()),
		out:       os.Stdout,
		outFD:     int(os.Stdout.Fd()),
		altScreen: true,
	}
	for _, o := range opts {
		o(&cfg)
	}

	var caps *terminfo.CapabilitySet
	var err error
	if cfg.termName != "" {
		caps, err = terminfo.Lookup(cfg.termName)
	} else {
		caps, err = terminfo.LookupEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		caps:      caps,
		in:        cfg.in,
		rawFD:     -1,
		outFD:     cfg.outFD,
		clip:      cfg.clip,
		pairs:     map[cellbuf.PairID]pairDef{},
		altScreen: cfg.altScreen,
		cursorOn:  true,
		readCh:    make(chan []byte, 16),
		readErr:   make(chan error, 1),
		stopCh:    make(chan struct{}),
	}
	s.isTTY = cfg.outFD >= 0 && isTerminal(cfg.outFD)
	s.out = outputWriter(cfg.out)
	s.background = cellbuf.Blank

	width, height := cfg.width, cfg.height
	if width <= 0 || height <= 0 {
		width, height = s.querySize()
	}
	s.screen = cellbuf.NewBuffer(width, height)

	s.renderer, err = render.New(caps, s.screen)
	if err != nil {
		return nil, err
	}
	s.renderer.SetPairColors(s.pairColors)

	s.decoder = input.NewDecoder(caps)
	s.escDelay = escapeDelay(cfg.escDelay)
	s.decoder.SetEscapeTimeout(s.escDelay)

	if cfg.inFD >= 0 && isTerminal(cfg.inFD) {
		state, err := makeRaw(cfg.inFD)
		if err != nil {
			return nil, fmt.Errorf("session: raw mode: %w", err)
		}
		s.rawFD = cfg.inFD
		s.restoreState = state
	}

	if s.isTTY {
		var setup []byte
		if s.altScreen && caps.EnterCA != "" {
			setup = append(setup, caps.EnterCA...)
		}
		if caps.EnterKeypad != "" {
			setup = append(setup, caps.EnterKeypad...)
			s.keypadOn = true
		}
		if len(setup) > 0 {
			if _, err := s.out.Write(setup); err != nil {
				s.restoreTerminal()
				return nil, fmt.Errorf("session: terminal setup: %w", err)
			}
		}
	}

	if s.in != nil {
		go s.readLoop()
	}
	s.watchResize()
	return s, nil
}

// escapeDelay resolves the ESC window: explicit option, then $ESCDELAY in
// milliseconds, then the decoder default.
func escapeDelay(opt time.Duration) time.Duration {
	if opt > 0 {
		return opt
	}
	if v := os.Getenv("ESCDELAY"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return input.DefaultEscapeTimeout
}

// querySize asks the terminal, then the environment, then the capability
// set, and finally settles on 80x24.
func (s *Session) querySize() (int, int) {
	if s.outFD >= 0 {
		if w, h, err := windowSize(s.outFD); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	w := envInt("COLUMNS")
	h := envInt("LINES")
	if w > 0 && h > 0 {
		return w, h
	}
	if s.caps.Columns > 0 && s.caps.Lines > 0 {
		return s.caps.Columns, s.caps.Lines
	}
	return 80, 24
}

func envInt(name string) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return 0
	}
	return v
}

// Size returns the current screen dimensions.
func (s *Session) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.Width(), s.screen.Height()
}

// Caps exposes the resolved capability set.
func (s *Session) Caps() *terminfo.CapabilitySet { return s.caps }

// NewWindow creates a window registered with the session, stacked above
// everything created before it.
func (s *Session) NewWindow(x, y, width, height int) *cellbuf.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := cellbuf.NewWindow(x, y, width, height)
	w.SetClip(s.clip)
	s.zCounter++
	w.SetZ(s.zCounter)
	s.windows = append(s.windows, w)
	return w
}

// Raise puts a window above all others.
func (s *Session) Raise(w *cellbuf.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zCounter++
	w.SetZ(s.zCounter)
}

// RemoveWindow detaches a window from the session.
func (s *Session) RemoveWindow(w *cellbuf.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, win := range s.windows {
		if win == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			return
		}
	}
}

// SetBackground sets the cell painted where no window covers the screen.
func (s *Session) SetBackground(c cellbuf.Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
	s.screen.Touch()
}

// Render composes all windows and flushes the difference to the terminal
// as one write.
func (s *Session) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("session: closed")
	}
	compose.Compose(s.screen, s.background, s.windows)
	return s.renderer.Render(s.out)
}

// SetCursor places the hardware cursor (screen coordinates) after the next
// render.
func (s *Session) SetCursor(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.SetCursor(x, y)
}

// ShowCursor controls hardware cursor visibility.
func (s *Session) ShowCursor(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorOn = on
	s.renderer.SetCursorVisible(on)
}

// EnableMouse asks the terminal for SGR mouse reports (buttons and drag).
func (s *Session) EnableMouse() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isTTY || s.caps.Mouse == "" {
		return nil
	}
	_, err := io.WriteString(s.out, "\x1b[?1002h\x1b[?1006h")
	s.mouseOn = err == nil
	return err
}

// DisableMouse turns mouse reporting back off.
func (s *Session) DisableMouse() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mouseOn {
		return nil
	}
	_, err := io.WriteString(s.out, "\x1b[?1006l\x1b[?1002l")
	s.mouseOn = false
	return err
}

// Beep rings the terminal bell, or flashes when the terminal has no bell.
func (s *Session) Beep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.caps.Bell != "":
		io.WriteString(s.out, s.caps.Bell)
	case s.caps.Flash != "":
		io.WriteString(s.out, s.caps.Flash)
	}
}

// Flash flashes the screen, falling back to the bell.
func (s *Session) Flash() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.caps.Flash != "":
		io.WriteString(s.out, s.caps.Flash)
	case s.caps.Bell != "":
		io.WriteString(s.out, s.caps.Bell)
	}
}

// Close restores the terminal and stops the background readers. Safe to
// call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.stopCh)
	if s.winchCh != nil {
		stopResizeWatch(s.winchCh)
	}
	s.mu.Unlock()

	s.restoreTerminal()
	return nil
}

// restoreTerminal undoes every mode change made since New, in reverse
// order, finishing with cooked mode.
func (s *Session) restoreTerminal() {
	if s.isTTY {
		var teardown []byte
		if s.mouseOn {
			teardown = append(teardown, "\x1b[?1006l\x1b[?1002l"...)
		}
		if s.caps.AttrOff != "" {
			teardown = append(teardown, s.caps.AttrOff...)
		}
		if s.caps.ShowCursor != "" {
			teardown = append(teardown, s.caps.ShowCursor...)
		}
		if s.keypadOn && s.caps.ExitKeypad != "" {
			teardown = append(teardown, s.caps.ExitKeypad...)
		}
		if s.altScreen && s.caps.ExitCA != "" {
			teardown = append(teardown, s.caps.ExitCA...)
		}
		if len(teardown) > 0 {
			if _, err := s.out.Write(teardown); err != nil {
				log.Printf("session: teardown write failed: %v", err)
			}
		}
	}
	if s.restoreState != nil {
		if err := restoreTerm(s.rawFD, s.restoreState); err != nil {
			log.Printf("session: cooked mode restore failed: %v", err)
		}
		s.restoreState = nil
	}
}
