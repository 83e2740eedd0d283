// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: terminfo/builtin.go
// Summary: Built-in capability database for common terminal types.

package terminfo

// The built-in database covers the terminals a program is overwhelmingly
// likely to run under, so the library works on systems without a terminfo
// tree (containers, stripped images). Entries mirror the corresponding
// system terminfo descriptions; disk entries take precedence when present.

const (
	// setaf/setab for 256-color terminals: ANSI range 0-7, bright range
	// 8-15, then the 256-color form.
	setaf256 = "\x1b[%?%p1%{8}%<%t3%p1%d%e%p1%{16}%<%t9%p1%{8}%-%d%e38;5;%p1%d%;m"
	setab256 = "\x1b[%?%p1%{8}%<%t4%p1%d%e%p1%{16}%<%t10%p1%{8}%-%d%e48;5;%p1%d%;m"

	setaf8 = "\x1b[3%p1%dm"
	setab8 = "\x1b[4%p1%dm"

	acscVT100 = "``aaffggiijjkkllmmnnooppqqrrssttuuvvwwxxyyzz{{||}}~~"
)

var builtins = map[string]*CapabilitySet{}

func register(cs *CapabilitySet) {
	builtins[cs.Name] = cs
	for _, a := range cs.Aliases {
		builtins[a] = cs
	}
}

func builtin(name string) *CapabilitySet {
	return builtins[name]
}

// xtermBase returns the common trunk shared by xterm-compatible emulators.
func xtermBase(name string) *CapabilitySet {
	return &CapabilitySet{
		Name:    name,
		Columns: 80,
		Lines:   24,
		Colors:  8,
		Pairs:   64,

		AutoMargin:       true,
		EatNewlineGlitch: true,

		Bell:  "\a",
		Flash: "\x1b[?5h$<100/>\x1b[?5l",

		Clear:    "\x1b[H\x1b[2J",
		ClearEOL: "\x1b[K",
		ClearEOS: "\x1b[J",

		Home:          "\x1b[H",
		CursorAddress: "\x1b[%i%p1%d;%p2%dH",
		CursorUp1:     "\x1b[A",
		CursorDown1:   "\n",
		CursorLeft1:   "\b",
		CursorRight1:  "\x1b[C",
		CursorUp:      "\x1b[%p1%dA",
		CursorDown:    "\x1b[%p1%dB",
		CursorLeft:    "\x1b[%p1%dD",
		CursorRight:   "\x1b[%p1%dC",
		RowAddress:    "\x1b[%i%p1%dd",

		AttrOff:   "\x1b(B\x1b[m",
		Bold:      "\x1b[1m",
		Dim:       "\x1b[2m",
		Italic:    "\x1b[3m",
		Underline: "\x1b[4m",
		Blink:     "\x1b[5m",
		Reverse:   "\x1b[7m",
		Invisible: "\x1b[8m",
		Standout:  "\x1b[7m",

		SetFg:       setaf8,
		SetBg:       setab8,
		ResetColors: "\x1b[39;49m",

		EnterCA:    "\x1b[?1049h",
		ExitCA:     "\x1b[?1049l",
		HideCursor: "\x1b[?25l",
		ShowCursor: "\x1b[?12l\x1b[?25h",

		EnterKeypad: "\x1b[?1h\x1b=",
		ExitKeypad:  "\x1b[?1l\x1b>",

		EnterACS: "\x1b(0",
		ExitACS:  "\x1b(B",
		ACSChars: acscVT100,

		EnableAutoMargin:  "\x1b[?7h",
		DisableAutoMargin: "\x1b[?7l",

		KeyBackspace: "\x7f",
		KeyDelete:    "\x1b[3~",
		KeyInsert:    "\x1b[2~",
		KeyUp:        "\x1bOA",
		KeyDown:      "\x1bOB",
		KeyRight:     "\x1bOC",
		KeyLeft:      "\x1bOD",
		KeyHome:      "\x1bOH",
		KeyEnd:       "\x1bOF",
		KeyPgUp:      "\x1b[5~",
		KeyPgDn:      "\x1b[6~",
		KeyF1:        "\x1bOP",
		KeyF2:        "\x1bOQ",
		KeyF3:        "\x1bOR",
		KeyF4:        "\x1bOS",
		KeyF5:        "\x1b[15~",
		KeyF6:        "\x1b[17~",
		KeyF7:        "\x1b[18~",
		KeyF8:        "\x1b[19~",
		KeyF9:        "\x1b[20~",
		KeyF10:       "\x1b[21~",
		KeyF11:       "\x1b[23~",
		KeyF12:       "\x1b[24~",
		Mouse:        "\x1b[<",
	}
}

func with256(cs *CapabilitySet) *CapabilitySet {
	cs.Colors = 256
	cs.Pairs = 32767
	cs.SetFg = setaf256
	cs.SetBg = setab256
	cs.BackColorErase = true
	return cs
}

func init() {
	register(xtermBase("xterm"))

	x16 := xtermBase("xterm-16color")
	x16.Colors = 16
	x16.Pairs = 256
	x16.SetFg = "\x1b[%?%p1%{8}%<%t3%p1%d%e9%p1%{8}%-%d%;m"
	x16.SetBg = "\x1b[%?%p1%{8}%<%t4%p1%d%e10%p1%{8}%-%d%;m"
	register(x16)

	register(with256(xtermBase("xterm-256color")))

	for _, name := range []string{"alacritty", "xterm-kitty", "foot", "wezterm", "konsole-256color", "putty-256color"} {
		register(with256(xtermBase(name)))
	}

	screen := xtermBase("screen")
	screen.Aliases = []string{"screen.xterm"}
	screen.EatNewlineGlitch = true
	screen.EnterCA = "\x1b[?1049h"
	screen.ExitCA = "\x1b[?1049l"
	// screen advertises application-mode arrows but forwards CSI forms too.
	register(screen)

	s256 := with256(xtermBase("screen-256color"))
	s256.Aliases = []string{"screen.xterm-256color"}
	register(s256)

	tmux := xtermBase("tmux")
	register(tmux)
	register(with256(xtermBase("tmux-256color")))

	rxvt := xtermBase("rxvt")
	rxvt.Aliases = []string{"rxvt-color"}
	rxvt.KeyHome = "\x1b[7~"
	rxvt.KeyEnd = "\x1b[8~"
	rxvt.KeyF1 = "\x1b[11~"
	rxvt.KeyF2 = "\x1b[12~"
	rxvt.KeyF3 = "\x1b[13~"
	rxvt.KeyF4 = "\x1b[14~"
	register(rxvt)

	urxvt := xtermBase("rxvt-unicode")
	urxvt.Colors = 88
	urxvt.Pairs = 256
	urxvt.KeyHome = "\x1b[7~"
	urxvt.KeyEnd = "\x1b[8~"
	register(urxvt)

	u256 := with256(xtermBase("rxvt-unicode-256color"))
	u256.KeyHome = "\x1b[7~"
	u256.KeyEnd = "\x1b[8~"
	register(u256)

	linux := xtermBase("linux")
	linux.Aliases = []string{"linux-16color"}
	linux.EatNewlineGlitch = false
	linux.BackColorErase = true
	linux.Italic = ""
	linux.EnterCA = ""
	linux.ExitCA = ""
	linux.EnterKeypad = ""
	linux.ExitKeypad = ""
	linux.KeyUp = "\x1b[A"
	linux.KeyDown = "\x1b[B"
	linux.KeyRight = "\x1b[C"
	linux.KeyLeft = "\x1b[D"
	linux.KeyHome = "\x1b[1~"
	linux.KeyEnd = "\x1b[4~"
	linux.KeyF1 = "\x1b[[A"
	linux.KeyF2 = "\x1b[[B"
	linux.KeyF3 = "\x1b[[C"
	linux.KeyF4 = "\x1b[[D"
	linux.KeyF5 = "\x1b[[E"
	register(linux)

	register(vt100())
	register(vt220())
	register(ansiTerm())
	register(dumb())
}

func vt100() *CapabilitySet {
	return &CapabilitySet{
		Name:             "vt100",
		Aliases:          []string{"vt100-am"},
		Columns:          80,
		Lines:            24,
		AutoMargin:       true,
		EatNewlineGlitch: true,

		Bell: "\a",

		Clear:    "\x1b[H\x1b[J$<50>",
		ClearEOL: "\x1b[K$<3>",
		ClearEOS: "\x1b[J$<50>",

		Home:          "\x1b[H",
		CursorAddress: "\x1b[%i%p1%d;%p2%dH$<5>",
		CursorUp1:     "\x1b[A$<2>",
		CursorDown1:   "\n",
		CursorLeft1:   "\b",
		CursorRight1:  "\x1b[C$<2>",
		CursorUp:      "\x1b[%p1%dA",
		CursorDown:    "\x1b[%p1%dB",
		CursorLeft:    "\x1b[%p1%dD",
		CursorRight:   "\x1b[%p1%dC",

		AttrOff:   "\x1b[m\x0f$<2>",
		Bold:      "\x1b[1m$<2>",
		Dim:       "\x1b[2m$<2>",
		Underline: "\x1b[4m$<2>",
		Blink:     "\x1b[5m$<2>",
		Reverse:   "\x1b[7m$<2>",
		Standout:  "\x1b[7m$<2>",

		EnterKeypad: "\x1b[?1h\x1b=",
		ExitKeypad:  "\x1b[?1l\x1b>",

		EnterACS: "\x0e",
		ExitACS:  "\x0f",
		ACSChars: acscVT100,

		KeyBackspace: "\b",
		KeyUp:        "\x1bOA",
		KeyDown:      "\x1bOB",
		KeyRight:     "\x1bOC",
		KeyLeft:      "\x1bOD",
		KeyF1:        "\x1bOP",
		KeyF2:        "\x1bOQ",
		KeyF3:        "\x1bOR",
		KeyF4:        "\x1bOS",
	}
}

func vt220() *CapabilitySet {
	cs := vt100()
	cs.Name = "vt220"
	cs.Aliases = []string{"vt220-8bit", "vt320", "vt420"}
	cs.KeyHome = "\x1b[1~"
	cs.KeyEnd = "\x1b[4~"
	cs.KeyInsert = "\x1b[2~"
	cs.KeyDelete = "\x1b[3~"
	cs.KeyPgUp = "\x1b[5~"
	cs.KeyPgDn = "\x1b[6~"
	return cs
}

func ansiTerm() *CapabilitySet {
	return &CapabilitySet{
		Name:       "ansi",
		Aliases:    []string{"ansi-m", "ansi.sys"},
		Columns:    80,
		Lines:      24,
		Colors:     8,
		Pairs:      64,
		AutoMargin: true,

		Bell: "\a",

		Clear:    "\x1b[H\x1b[J",
		ClearEOL: "\x1b[K",
		ClearEOS: "\x1b[J",

		Home:          "\x1b[H",
		CursorAddress: "\x1b[%i%p1%d;%p2%dH",
		CursorUp1:     "\x1b[A",
		CursorDown1:   "\x1b[B",
		CursorLeft1:   "\x1b[D",
		CursorRight1:  "\x1b[C",
		CursorUp:      "\x1b[%p1%dA",
		CursorDown:    "\x1b[%p1%dB",
		CursorLeft:    "\x1b[%p1%dD",
		CursorRight:   "\x1b[%p1%dC",

		AttrOff:   "\x1b[0m",
		Bold:      "\x1b[1m",
		Underline: "\x1b[4m",
		Blink:     "\x1b[5m",
		Reverse:   "\x1b[7m",
		Invisible: "\x1b[8m",
		Standout:  "\x1b[7m",

		SetFg:       setaf8,
		SetBg:       setab8,
		ResetColors: "\x1b[39;49m",

		KeyBackspace: "\b",
		KeyUp:        "\x1b[A",
		KeyDown:      "\x1b[B",
		KeyRight:     "\x1b[C",
		KeyLeft:      "\x1b[D",
		KeyHome:      "\x1b[H",
	}
}

// dumb has no cursor addressing at all; rendering against it fails with
// ErrUnsupportedTerminal, which is the intended behavior.
func dumb() *CapabilitySet {
	return &CapabilitySet{
		Name:        "dumb",
		Aliases:     []string{"unknown"},
		Columns:     80,
		Lines:       24,
		AutoMargin:  true,
		Bell:        "\a",
		CursorDown1: "\n",
		CursorLeft1: "\b",
	}
}
