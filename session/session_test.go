package session

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/scrimlib/scrim/input"
)

func isolateTerminfo(t *testing.T) {
	t.Helper()
	t.Setenv("TERMINFO", t.TempDir())
	t.Setenv("TERMINFO_DIRS", "/nonexistent")
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("KITTY_WINDOW_ID", "")
	t.Setenv("WT_SESSION", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_CTYPE", "")
	t.Setenv("LANG", "")
	t.Setenv("ESCDELAY", "")
}

func newPipeSession(t *testing.T, opts ...Option) (*Session, *io.PipeWriter, *bytes.Buffer) {
	t.Helper()
	isolateTerminfo(t)

	pr, pw := io.Pipe()
	out := &bytes.Buffer{}
	base := []Option{
		WithTerm("xterm"),
		WithInput(pr, -1),
		WithOutput(out, -1),
		WithSize(20, 6),
	}
	s, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
		pw.Close()
	})
	return s, pw, out
}

func TestSessionRenderToPipe(t *testing.T) {
	s, _, out := newPipeSession(t)

	w := s.NewWindow(0, 0, 20, 1)
	if _, err := w.WriteString("hello pipe"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out.String(), "hello pipe") {
		t.Fatalf("output missing text: %q", out.String())
	}
}

func TestSessionSize(t *testing.T) {
	s, _, _ := newPipeSession(t)
	w, h := s.Size()
	if w != 20 || h != 6 {
		t.Fatalf("size = %dx%d", w, h)
	}
}

func TestPollEventDeliversKeys(t *testing.T) {
	s, pw, _ := newPipeSession(t)

	go pw.Write([]byte("k"))
	ev, ok := s.PollEvent(2 * time.Second)
	if !ok || ev.Type != input.EventKey || ev.Rune != 'k' {
		t.Fatalf("event = %v (%v)", ev, ok)
	}
}

func TestPollEventTimeout(t *testing.T) {
	s, _, _ := newPipeSession(t)

	start := time.Now()
	_, ok := s.PollEvent(20 * time.Millisecond)
	if ok {
		t.Fatalf("unexpected event")
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatalf("returned before the timeout")
	}
}

func TestPollEventZeroTimeoutPolls(t *testing.T) {
	s, _, _ := newPipeSession(t)
	if _, ok := s.PollEvent(0); ok {
		t.Fatalf("poll with empty queue returned an event")
	}
	s.PostEvent(input.Event{Type: input.EventKey, Key: input.KeyEnter})
	ev, ok := s.PollEvent(0)
	if !ok || ev.Key != input.KeyEnter {
		t.Fatalf("event = %v (%v)", ev, ok)
	}
}

func TestEscapeKeyResolvedByTimer(t *testing.T) {
	s, pw, _ := newPipeSession(t)

	go pw.Write([]byte{0x1b})
	ev, ok := s.PollEvent(2 * time.Second)
	if !ok || ev.Key != input.KeyEscape {
		t.Fatalf("event = %v (%v)", ev, ok)
	}
}

func TestUngetComesFirst(t *testing.T) {
	s, _, _ := newPipeSession(t)
	s.PostEvent(input.Event{Type: input.EventKey, Key: input.KeyTab})
	s.Unget(input.Event{Type: input.EventKey, Key: input.KeyHome})

	ev, ok := s.PollEvent(0)
	if !ok || ev.Key != input.KeyHome {
		t.Fatalf("first event = %v (%v)", ev, ok)
	}
	ev, ok = s.PollEvent(0)
	if !ok || ev.Key != input.KeyTab {
		t.Fatalf("second event = %v (%v)", ev, ok)
	}
}

func TestInitPairAndContent(t *testing.T) {
	s, _, _ := newPipeSession(t)

	if err := s.InitPair(0, 1, 2); err == nil {
		t.Fatalf("pair 0 must be rejected")
	}
	if err := s.InitPair(1, 3, 0); err != nil {
		t.Fatalf("InitPair: %v", err)
	}
	fg, bg, ok := s.PairContent(1)
	if !ok || fg != 3 || bg != 0 {
		t.Fatalf("content = (%d, %d, %v)", fg, bg, ok)
	}
	if _, _, ok := s.PairContent(9); ok {
		t.Fatalf("undefined pair reported content")
	}
}

func TestPairDownconversion(t *testing.T) {
	s, _, _ := newPipeSession(t)
	if s.caps.Colors != 8 {
		t.Fatalf("expected an 8-color terminal, got %d", s.caps.Colors)
	}

	// 196 is bright red in the 256 palette; on 8 colors it lands on red.
	if err := s.InitPair(2, 196, 21); err != nil {
		t.Fatalf("InitPair: %v", err)
	}
	fg, bg := s.pairColors(2)
	if fg != 1 {
		t.Fatalf("fg folded to %d, want 1", fg)
	}
	if bg != 4 {
		t.Fatalf("bg folded to %d, want 4", bg)
	}
}

func TestNearestColorExact(t *testing.T) {
	// Indices inside the limit stay put.
	for _, c := range []int{0, 3, 7} {
		if got := nearestColor(c, 8); got != c {
			t.Fatalf("nearestColor(%d) = %d", c, got)
		}
	}
}

func TestWindowStacking(t *testing.T) {
	s, _, _ := newPipeSession(t)
	a := s.NewWindow(0, 0, 5, 1)
	b := s.NewWindow(0, 0, 5, 1)
	if b.Z() <= a.Z() {
		t.Fatalf("later window below earlier: %d <= %d", b.Z(), a.Z())
	}
	s.Raise(a)
	if a.Z() <= b.Z() {
		t.Fatalf("Raise did not lift window: %d <= %d", a.Z(), b.Z())
	}
}

func TestCloseIdempotent(t *testing.T) {
	s, _, _ := newPipeSession(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := s.Render(); err == nil {
		t.Fatalf("Render after Close should fail")
	}
}

func TestLocaleCharset(t *testing.T) {
	cases := []struct {
		locale string
		want   string
	}{
		{"en_US.UTF-8", ""},
		{"C", ""},
		{"", ""},
		{"de_DE.ISO8859-1", "ISO8859-1"},
		{"ja_JP.eucJP@mod", "eucJP"},
	}
	for _, c := range cases {
		t.Setenv("LC_ALL", c.locale)
		t.Setenv("LC_CTYPE", "")
		t.Setenv("LANG", "")
		if got := localeCharset(); got != c.want {
			t.Fatalf("localeCharset(%q) = %q, want %q", c.locale, got, c.want)
		}
	}
}
