// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: terminfo/terminfo.go
// Summary: Capability sets, terminal type lookup, and environment overlays.

// Package terminfo models what a terminal can do: how to address the cursor,
// switch attributes and colors, and which byte sequences its special keys
// send. Capability sets are resolved from compiled terminfo databases on
// disk, falling back to a built-in table of common terminals. A set is
// immutable once loaded.
package terminfo

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ErrCapabilityNotFound is returned when no capability set exists for a
// terminal type, neither on disk nor in the built-in database.
var ErrCapabilityNotFound = errors.New("terminfo: capability set not found")

// CapabilitySet describes one terminal type. String capabilities hold raw
// terminfo templates; parameterized ones (CursorAddress, SetFg, ...) are
// expanded with TParm. An empty string means the terminal lacks that
// capability and callers degrade to doing without it.
type CapabilitySet struct {
	Name    string
	Aliases []string

	Columns int
	Lines   int
	Colors  int
	Pairs   int

	AutoMargin       bool // am
	BackColorErase   bool // bce
	EatNewlineGlitch bool // xenl

	Bell  string
	Flash string

	Clear    string
	ClearEOL string
	ClearEOS string

	Home          string
	CursorAddress string // cup, parameterized by (row, col)

	CursorUp1    string // cuu1
	CursorDown1  string // cud1
	CursorLeft1  string // cub1
	CursorRight1 string // cuf1
	CursorUp     string // cuu, parameterized repeat
	CursorDown   string // cud
	CursorLeft   string // cub
	CursorRight  string // cuf
	RowAddress   string // vpa

	AttrOff   string // sgr0
	Bold      string
	Dim       string
	Italic    string
	Underline string
	Blink     string
	Reverse   string
	Invisible string
	Standout  string

	SetFg       string // setaf, parameterized by color index
	SetBg       string // setab
	ResetColors string // op

	EnterCA    string // smcup
	ExitCA     string // rmcup
	HideCursor string // civis
	ShowCursor string // cnorm

	EnterKeypad string // smkx
	ExitKeypad  string // rmkx

	EnterACS string // smacs
	ExitACS  string // rmacs
	ACSChars string // acsc

	EnableAutoMargin  string // smam
	DisableAutoMargin string // rmam

	KeyBackspace string
	KeyDelete    string
	KeyInsert    string
	KeyUp        string
	KeyDown      string
	KeyLeft      string
	KeyRight     string
	KeyHome      string
	KeyEnd       string
	KeyPgUp      string
	KeyPgDn      string
	KeyF1        string
	KeyF2        string
	KeyF3        string
	KeyF4        string
	KeyF5        string
	KeyF6        string
	KeyF7        string
	KeyF8        string
	KeyF9        string
	KeyF10       string
	KeyF11       string
	KeyF12       string
	Mouse        string // kmous

	// Capabilities outside the standard tables, from the extended storage
	// section of a compiled entry. Keyed by capability name.
	ExtBools   map[string]bool
	ExtNums    map[string]int
	ExtStrings map[string]string
}

// HasColors reports whether the terminal supports color at all.
func (c *CapabilitySet) HasColors() bool {
	return c.Colors > 0 && (c.SetFg != "" || c.SetBg != "")
}

// TGoto expands the cursor-address capability for a 0-based column and row.
func (c *CapabilitySet) TGoto(col, row int) string {
	return TParm(c.CursorAddress, row, col)
}

// TColorFg expands the foreground color capability for a color index.
// Returns "" when the terminal has no color support.
func (c *CapabilitySet) TColorFg(color int) string {
	if c.SetFg == "" || color < 0 {
		return ""
	}
	return TParm(c.SetFg, color)
}

// TColorBg expands the background color capability for a color index.
func (c *CapabilitySet) TColorBg(color int) string {
	if c.SetBg == "" || color < 0 {
		return ""
	}
	return TParm(c.SetBg, color)
}

// KeySequences returns the capability-name → byte-sequence table for every
// special key the terminal defines. Used by the input decoder to build its
// reverse lookup, and by the dump tool.
func (c *CapabilitySet) KeySequences() map[string]string {
	m := make(map[string]string, 26)
	add := func(name, seq string) {
		if seq != "" {
			m[name] = seq
		}
	}
	add("kbs", c.KeyBackspace)
	add("kdch1", c.KeyDelete)
	add("kich1", c.KeyInsert)
	add("kcuu1", c.KeyUp)
	add("kcud1", c.KeyDown)
	add("kcub1", c.KeyLeft)
	add("kcuf1", c.KeyRight)
	add("khome", c.KeyHome)
	add("kend", c.KeyEnd)
	add("kpp", c.KeyPgUp)
	add("knp", c.KeyPgDn)
	add("kf1", c.KeyF1)
	add("kf2", c.KeyF2)
	add("kf3", c.KeyF3)
	add("kf4", c.KeyF4)
	add("kf5", c.KeyF5)
	add("kf6", c.KeyF6)
	add("kf7", c.KeyF7)
	add("kf8", c.KeyF8)
	add("kf9", c.KeyF9)
	add("kf10", c.KeyF10)
	add("kf11", c.KeyF11)
	add("kf12", c.KeyF12)
	add("kmous", c.Mouse)
	return m
}

var (
	lookupMu    sync.Mutex
	lookupCache = map[string]*CapabilitySet{}
)

// Lookup resolves a capability set for the given terminal name. Compiled
// terminfo entries on disk win over the built-in database. The result is
// cached per name; callers must treat it as read-only.
func Lookup(name string) (*CapabilitySet, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty terminal name", ErrCapabilityNotFound)
	}

	lookupMu.Lock()
	defer lookupMu.Unlock()
	if cs, ok := lookupCache[name]; ok {
		return cs, nil
	}

	cs, err := loadCompiled(name)
	if err != nil {
		// Builtins are shared across lookups; overlays apply to a copy.
		if b := builtin(name); b != nil {
			cs = cloneSet(b)
		}
	}
	if cs == nil {
		cs = deriveFromName(name)
	}
	if cs == nil {
		return nil, fmt.Errorf("%w: %q", ErrCapabilityNotFound, name)
	}

	stripSetPadding(cs)
	applyEnvOverlays(cs)
	lookupCache[name] = cs
	return cs, nil
}

// LookupEnv resolves the capability set for $TERM.
func LookupEnv() (*CapabilitySet, error) {
	return Lookup(os.Getenv("TERM"))
}

// applyEnvOverlays lifts the color tier based on the ambient environment,
// matching how terminal emulators advertise more than their TERM entry says.
func applyEnvOverlays(cs *CapabilitySet) {
	switch os.Getenv("COLORTERM") {
	case "truecolor", "24bit":
		cs.Colors = 1 << 24
		if cs.Pairs < 32767 {
			cs.Pairs = 32767
		}
	case "256":
		if cs.Colors < 256 {
			cs.Colors = 256
			cs.Pairs = 32767
		}
	}

	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "iTerm2.app", "WezTerm", "vscode", "Hyper":
		if cs.Colors < 256 {
			cs.Colors = 256
			cs.Pairs = 32767
		}
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" || os.Getenv("WT_SESSION") != "" {
		cs.Colors = 1 << 24
		if cs.Pairs < 32767 {
			cs.Pairs = 32767
		}
	}
}

// deriveFromName builds an approximate capability set for terminal names we
// have no entry for but whose suffix declares a color tier, e.g.
// "mintty-256color". Names with no recognizable suffix stay unknown.
func deriveFromName(name string) *CapabilitySet {
	base := builtin("xterm")
	if base == nil {
		return nil
	}
	var cs *CapabilitySet
	switch {
	case strings.HasSuffix(name, "-256color") || strings.HasSuffix(name, ".256color"):
		cs = cloneSet(base)
		cs.Colors = 256
		cs.Pairs = 32767
		cs.SetFg = setaf256
		cs.SetBg = setab256
	case strings.HasSuffix(name, "-direct"):
		cs = cloneSet(base)
		cs.Colors = 1 << 24
		cs.Pairs = 32767
		cs.SetFg = setaf256
		cs.SetBg = setab256
	case strings.HasSuffix(name, "-16color"):
		cs = cloneSet(base)
		cs.Colors = 16
		cs.Pairs = 256
	default:
		return nil
	}
	cs.Name = name
	cs.Aliases = nil
	return cs
}

// stripSetPadding removes $<n> delay markers from every output capability.
// TParm strips them during compilation, but plain capabilities are written
// to the terminal verbatim, so they must come out before the set is used.
// Key sequences and acsc are input-side data and carry no padding.
func stripSetPadding(cs *CapabilitySet) {
	outputs := []*string{
		&cs.Bell, &cs.Flash,
		&cs.Clear, &cs.ClearEOL, &cs.ClearEOS,
		&cs.Home, &cs.CursorAddress,
		&cs.CursorUp1, &cs.CursorDown1, &cs.CursorLeft1, &cs.CursorRight1,
		&cs.CursorUp, &cs.CursorDown, &cs.CursorLeft, &cs.CursorRight,
		&cs.RowAddress,
		&cs.AttrOff, &cs.Bold, &cs.Dim, &cs.Italic, &cs.Underline,
		&cs.Blink, &cs.Reverse, &cs.Invisible, &cs.Standout,
		&cs.SetFg, &cs.SetBg, &cs.ResetColors,
		&cs.EnterCA, &cs.ExitCA, &cs.HideCursor, &cs.ShowCursor,
		&cs.EnterKeypad, &cs.ExitKeypad,
		&cs.EnterACS, &cs.ExitACS,
		&cs.EnableAutoMargin, &cs.DisableAutoMargin,
	}
	for _, p := range outputs {
		*p = stripPadding(*p)
	}
	for k, v := range cs.ExtStrings {
		cs.ExtStrings[k] = stripPadding(v)
	}
}

// stripPadding drops $<...> markers, leaving a malformed one (no closing
// '>') untouched, same as the template compiler.
func stripPadding(s string) string {
	if !strings.Contains(s, "$<") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '$' && i+1 < len(s) && s[i+1] == '<' {
			if end := strings.IndexByte(s[i:], '>'); end >= 0 {
				i += end + 1
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func cloneSet(cs *CapabilitySet) *CapabilitySet {
	dup := *cs
	dup.Aliases = append([]string(nil), cs.Aliases...)
	dup.ExtBools = nil
	dup.ExtNums = nil
	dup.ExtStrings = nil
	return &dup
}
