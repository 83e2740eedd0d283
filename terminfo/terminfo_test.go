package terminfo

import (
	"errors"
	"strings"
	"testing"
)

func clearOverlayEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TERMINFO", t.TempDir()) // keep the host database out of the test
	t.Setenv("TERMINFO_DIRS", "/nonexistent")
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("KITTY_WINDOW_ID", "")
	t.Setenv("WT_SESSION", "")
}

func mustLookup(t *testing.T, name string) *CapabilitySet {
	t.Helper()
	cs, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return cs
}

func TestLookupBuiltinFallback(t *testing.T) {
	clearOverlayEnv(t)

	for _, name := range []string{"xterm", "screen", "tmux-256color", "linux", "vt100"} {
		cs := mustLookup(t, name)
		if cs.CursorAddress == "" {
			t.Fatalf("%s: no cup", name)
		}
		if cs.ClearEOL == "" {
			t.Fatalf("%s: no el", name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	clearOverlayEnv(t)

	if _, err := Lookup(""); !errors.Is(err, ErrCapabilityNotFound) {
		t.Fatalf("empty name: %v", err)
	}
	if _, err := Lookup("no-such-terminal"); !errors.Is(err, ErrCapabilityNotFound) {
		t.Fatalf("unknown name: %v", err)
	}
}

func TestLookupSuffixDerivation(t *testing.T) {
	clearOverlayEnv(t)

	cs := mustLookup(t, "scrim-builtin-xterm-256color")
	if cs.Colors != 256 {
		t.Fatalf("derived -256color: colors = %d", cs.Colors)
	}
	if cs.Name != "scrim-builtin-xterm-256color" {
		t.Fatalf("derived name = %q", cs.Name)
	}

	cs = mustLookup(t, "mintty-direct")
	if cs.Colors != 1<<24 {
		t.Fatalf("derived -direct: colors = %d", cs.Colors)
	}

	cs = mustLookup(t, "someterm-16color")
	if cs.Colors != 16 {
		t.Fatalf("derived -16color: colors = %d", cs.Colors)
	}
}

func TestColortermOverlay(t *testing.T) {
	clearOverlayEnv(t)
	t.Setenv("COLORTERM", "truecolor")

	cs := mustLookup(t, "screen-truecolor-overlay-256color")
	if cs.Colors != 1<<24 {
		t.Fatalf("COLORTERM=truecolor: colors = %d", cs.Colors)
	}
}

func TestKittyOverlay(t *testing.T) {
	clearOverlayEnv(t)
	t.Setenv("KITTY_WINDOW_ID", "3")

	cs := mustLookup(t, "kitty-overlay-16color")
	if cs.Colors != 1<<24 {
		t.Fatalf("KITTY_WINDOW_ID set: colors = %d", cs.Colors)
	}
}

func TestStripPadding(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"\x1b[H\x1b[J$<50>", "\x1b[H\x1b[J"},
		{"\x1b[1m$<2>", "\x1b[1m"},
		{"\x1b[?5h$<100/>\x1b[?5l", "\x1b[?5h\x1b[?5l"},
		{"$<5>\x1b[K$<3>", "\x1b[K"},
		{"no padding", "no padding"},
		{"broken $<5", "broken $<5"},
	}
	for _, c := range cases {
		if got := stripPadding(c.in); got != c.want {
			t.Fatalf("stripPadding(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLookupStripsCapabilityPadding(t *testing.T) {
	clearOverlayEnv(t)

	cs := mustLookup(t, "vt100")
	checks := map[string]string{
		"clear": cs.Clear,
		"el":    cs.ClearEOL,
		"sgr0":  cs.AttrOff,
		"bold":  cs.Bold,
		"cuu1":  cs.CursorUp1,
		"cup":   cs.CursorAddress,
	}
	for name, val := range checks {
		if strings.Contains(val, "$<") {
			t.Fatalf("%s still carries padding: %q", name, val)
		}
	}
	if cs.Bold != "\x1b[1m" {
		t.Fatalf("bold = %q", cs.Bold)
	}

	if flash := mustLookup(t, "xterm").Flash; strings.Contains(flash, "$<") {
		t.Fatalf("flash still carries padding: %q", flash)
	}
}

func TestLookupLeavesBuiltinsUntouched(t *testing.T) {
	clearOverlayEnv(t)
	t.Setenv("COLORTERM", "truecolor")

	cs := mustLookup(t, "alacritty")
	if cs.Colors != 1<<24 {
		t.Fatalf("overlay not applied: colors = %d", cs.Colors)
	}

	shared := builtin("alacritty")
	if shared == cs {
		t.Fatalf("lookup returned the shared builtin entry")
	}
	if shared.Colors != 256 {
		t.Fatalf("builtin entry mutated: colors = %d", shared.Colors)
	}
	if !strings.Contains(builtin("vt100").Bold, "$<") {
		t.Fatalf("builtin entry lost its padding source text")
	}
}

func TestLookupCaching(t *testing.T) {
	clearOverlayEnv(t)

	a := mustLookup(t, "xterm")
	b := mustLookup(t, "xterm")
	if a != b {
		t.Fatalf("second lookup did not hit the cache")
	}
}

func TestKeySequences(t *testing.T) {
	clearOverlayEnv(t)

	cs := mustLookup(t, "xterm")
	keys := cs.KeySequences()
	for _, name := range []string{"kcuu1", "kcud1", "kcub1", "kcuf1", "kf1", "khome", "kmous"} {
		if keys[name] == "" {
			t.Fatalf("missing key sequence for %s", name)
		}
	}
	if keys["kcuu1"] != "\x1bOA" {
		t.Fatalf("kcuu1 = %q", keys["kcuu1"])
	}
}

func TestHasColors(t *testing.T) {
	clearOverlayEnv(t)

	if cs := mustLookup(t, "xterm-256color"); !cs.HasColors() {
		t.Fatalf("xterm-256color should report colors")
	}
	if cs := mustLookup(t, "vt100"); cs.HasColors() {
		t.Fatalf("vt100 should not report colors")
	}
}

func TestTColor(t *testing.T) {
	clearOverlayEnv(t)

	cs := mustLookup(t, "xterm-256color")
	if got := cs.TColorFg(123); got != "\x1b[38;5;123m" {
		t.Fatalf("fg = %q", got)
	}
	if got := cs.TColorBg(2); got != "\x1b[42m" {
		t.Fatalf("bg = %q", got)
	}
	if got := cs.TColorFg(-1); got != "" {
		t.Fatalf("negative color should expand to nothing, got %q", got)
	}
}
