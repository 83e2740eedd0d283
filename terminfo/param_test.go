package terminfo

import "testing"

func TestTParmCursorAddress(t *testing.T) {
	cases := []struct {
		tpl    string
		params []int
		want   string
	}{
		{"\x1b[%i%p1%d;%p2%dH", []int{3, 7}, "\x1b[4;8H"},
		{"\x1b[%i%p1%d;%p2%dH", []int{0, 0}, "\x1b[1;1H"},
		{"\x1b[%p1%dB", []int{12}, "\x1b[12B"},
		{"\x1b[%i%p1%dd", []int{5}, "\x1b[6d"},
	}
	for _, c := range cases {
		if got := TParm(c.tpl, c.params...); got != c.want {
			t.Fatalf("TParm(%q, %v) = %q, want %q", c.tpl, c.params, got, c.want)
		}
	}
}

func TestTParmConditionalColor(t *testing.T) {
	cases := []struct {
		color int
		want  string
	}{
		{1, "\x1b[31m"},
		{7, "\x1b[37m"},
		{9, "\x1b[91m"},
		{15, "\x1b[97m"},
		{200, "\x1b[38;5;200m"},
	}
	for _, c := range cases {
		if got := TParm(setaf256, c.color); got != c.want {
			t.Fatalf("setaf(%d) = %q, want %q", c.color, got, c.want)
		}
	}
}

func TestTParmArithmetic(t *testing.T) {
	// 16-color background template exercises subtraction.
	tpl := "\x1b[%?%p1%{8}%<%t4%p1%d%e10%p1%{8}%-%d%;m"
	if got := TParm(tpl, 3); got != "\x1b[43m" {
		t.Fatalf("got %q", got)
	}
	if got := TParm(tpl, 12); got != "\x1b[104m" {
		t.Fatalf("got %q", got)
	}
}

func TestTParmLiteralsAndEscapes(t *testing.T) {
	if got := TParm("100%%"); got != "100%" {
		t.Fatalf("got %q", got)
	}
	if got := TParm("%{65}%c"); got != "A" {
		t.Fatalf("char const: got %q", got)
	}
	if got := TParm("%'x'%c"); got != "x" {
		t.Fatalf("quoted char: got %q", got)
	}
}

func TestTParmPaddingStripped(t *testing.T) {
	if got := TParm("\x1b[H\x1b[J$<50>"); got != "\x1b[H\x1b[J" {
		t.Fatalf("got %q", got)
	}
	if got := TParm("\x1b[?5h$<100/>\x1b[?5l"); got != "\x1b[?5h\x1b[?5l" {
		t.Fatalf("got %q", got)
	}
}

func TestTParmVariables(t *testing.T) {
	// Store a param in a variable, read it back twice.
	tpl := "%p1%Pa%ga%d-%ga%d"
	if got := TParm(tpl, 9); got != "9-9" {
		t.Fatalf("got %q", got)
	}
}

func TestTParmWidthFormat(t *testing.T) {
	if got := TParm("%p1%3d", 7); got != "  7" {
		t.Fatalf("got %q", got)
	}
	if got := TParm("%p1%:-3d|", 7); got != "7  |" {
		t.Fatalf("got %q", got)
	}
}

func TestTParmMalformedIsBestEffort(t *testing.T) {
	// Unknown operators expand to nothing, never panic.
	for _, tpl := range []string{"%", "%z", "%?%p1", "%{12", "abc%"} {
		_ = TParm(tpl, 1, 2)
	}
}

func TestTGoto(t *testing.T) {
	cs := builtin("xterm")
	if cs == nil {
		t.Fatalf("xterm builtin missing")
	}
	if got := cs.TGoto(9, 4); got != "\x1b[5;10H" {
		t.Fatalf("TGoto(9,4) = %q", got)
	}
}
