package session

import (
	"testing"
	"time"

	"github.com/creack/pty"

	"github.com/scrimlib/scrim/input"
)

// TestSessionOnPTY runs the full stack against a real pseudo-terminal:
// raw mode, size query, rendering and key delivery.
func TestSessionOnPTY(t *testing.T) {
	isolateTerminfo(t)

	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer master.Close()
	defer slave.Close()
	if err := pty.Setsize(master, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}

	// Drain the master so render output cannot fill the pty buffer.
	go func() {
		buf := make([]byte, 4096)
		for {
			if _, err := master.Read(buf); err != nil {
				return
			}
		}
	}()

	fd := int(slave.Fd())
	s, err := New(
		WithTerm("xterm"),
		WithInput(slave, fd),
		WithOutput(slave, fd),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if w, h := s.Size(); w != 80 || h != 24 {
		t.Fatalf("size = %dx%d, want 80x24", w, h)
	}

	win := s.NewWindow(0, 0, 10, 1)
	if _, err := win.WriteString("pty"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if _, err := master.Write([]byte("z")); err != nil {
		t.Fatalf("master write: %v", err)
	}
	ev, ok := s.PollEvent(2 * time.Second)
	if !ok || ev.Type != input.EventKey || ev.Rune != 'z' {
		t.Fatalf("event = %v (%v)", ev, ok)
	}

	// A grown pty is picked up on the next resize pass.
	if err := pty.Setsize(master, &pty.Winsize{Rows: 30, Cols: 100}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}
	s.handleResize()
	ev, ok = s.PollEvent(2 * time.Second)
	if !ok || ev.Type != input.EventResize || ev.Width != 100 || ev.Height != 30 {
		t.Fatalf("resize event = %v (%v)", ev, ok)
	}
	if w, h := s.Size(); w != 100 || h != 30 {
		t.Fatalf("size after resize = %dx%d", w, h)
	}
}
