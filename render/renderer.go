// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: render/renderer.go
// Summary: Diff engine turning virtual-screen damage into minimal terminal output.

// Package render translates the difference between the composed virtual
// screen and the terminal's last known contents into a byte stream. Each
// frame is built in memory and written in a single call, so a slow sink
// never shows a half-painted screen.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/scrimlib/scrim/cellbuf"
	"github.com/scrimlib/scrim/terminfo"
)

// ErrUnsupportedTerminal is returned when the terminal offers no way to
// position the cursor, which makes screen-oriented output impossible.
var ErrUnsupportedTerminal = errors.New("render: terminal cannot position the cursor")

// PairColors resolves a pair id to palette indices. A negative index means
// the terminal default for that plane.
type PairColors func(cellbuf.PairID) (fg, bg int)

// Renderer tracks what the terminal currently shows and emits the cheapest
// update that makes it match the virtual screen.
type Renderer struct {
	caps *terminfo.CapabilitySet
	virt *cellbuf.Buffer
	phys *cellbuf.Buffer

	pairColors PairColors

	// Terminal state tracked across frames. curX == -1 means the cursor
	// position is unknown and only absolute addressing may be used.
	curX, curY int
	styleKnown bool
	curAttr    cellbuf.AttrMask
	curPair    cellbuf.PairID
	acsActive  bool

	acsMap map[byte]byte // vt100 letter -> terminal byte, from acsc

	cursorVisible bool
	full          bool
}

// New creates a renderer for the given capability set over the virtual
// screen buffer the caller composes into. Fails with ErrUnsupportedTerminal
// when the terminal has neither absolute cursor addressing nor a home
// position it can walk down and right from.
func New(caps *terminfo.CapabilitySet, virt *cellbuf.Buffer) (*Renderer, error) {
	canWalk := caps.Home != "" &&
		(caps.CursorDown1 != "" || caps.CursorDown != "") &&
		(caps.CursorRight1 != "" || caps.CursorRight != "")
	if caps.CursorAddress == "" && !canWalk {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTerminal, caps.Name)
	}
	r := &Renderer{
		caps:          caps,
		virt:          virt,
		phys:          cellbuf.NewBuffer(virt.Width(), virt.Height()),
		pairColors:    func(cellbuf.PairID) (int, int) { return -1, -1 },
		curX:          -1,
		curY:          -1,
		cursorVisible: true,
		full:          true,
		acsMap:        parseACSC(caps.ACSChars),
	}
	return r, nil
}

// SetPairColors installs the color-pair resolver, normally the session's
// pair table.
func (r *Renderer) SetPairColors(f PairColors) {
	if f != nil {
		r.pairColors = f
	}
}

// SetCursorVisible controls whether the cursor is shown after each frame.
func (r *Renderer) SetCursorVisible(v bool) { r.cursorVisible = v }

// Invalidate discards the physical snapshot so the next frame repaints
// everything. Required after a resize or any out-of-band write to the
// terminal.
func (r *Renderer) Invalidate() {
	r.full = true
	r.styleKnown = false
	r.acsActive = false
	r.curX, r.curY = -1, -1
}

// Resize adjusts the snapshot to a new screen size and forces a repaint.
// The virtual buffer is resized by its owner.
func (r *Renderer) Resize(width, height int) {
	r.phys.Resize(width, height, cellbuf.Blank)
	r.Invalidate()
}

// Render diffs the virtual screen against the physical snapshot and writes
// one frame to w. On success the snapshot matches the virtual screen and
// its damage spans are cleared.
func (r *Renderer) Render(w io.Writer) error {
	var out bytes.Buffer

	hideCursor := r.caps.HideCursor != "" && r.caps.ShowCursor != ""
	if hideCursor {
		out.WriteString(r.caps.HideCursor)
	}

	if r.full {
		r.emitClear(&out)
	}

	width, height := r.virt.Width(), r.virt.Height()
	for y := 0; y < height; y++ {
		x0, x1, ok := r.rowRange(y)
		if !ok {
			continue
		}
		r.emitRow(&out, y, x0, x1, width)
	}

	r.closeACS(&out)

	// Park the cursor at the logical position.
	cx, cy := r.virt.Cursor()
	r.moveTo(&out, cx, cy)

	if hideCursor && r.cursorVisible {
		out.WriteString(r.caps.ShowCursor)
	}

	if _, err := w.Write(out.Bytes()); err != nil {
		// The terminal contents are now unknown.
		r.Invalidate()
		return fmt.Errorf("render: write frame: %w", err)
	}

	r.snapshot()
	r.full = false
	return nil
}

// rowRange returns the column range of row y that actually differs between
// the virtual and physical screens.
func (r *Renderer) rowRange(y int) (int, int, bool) {
	width := r.virt.Width()
	x0, x1 := 0, width-1
	if !r.full {
		var ok bool
		x0, x1, ok = r.virt.DirtySpan(y)
		if !ok {
			return 0, 0, false
		}
	}

	vrow, prow := r.virt.Row(y), r.phys.Row(y)
	for x0 <= x1 && vrow[x0] == prow[x0] {
		x0++
	}
	for x1 >= x0 && vrow[x1] == prow[x1] {
		x1--
	}
	if x0 > x1 {
		return 0, 0, false
	}
	// Never start on the trailing half of a wide rune.
	if vrow[x0].IsTrailing() && x0 > 0 {
		x0--
	}
	return x0, x1, true
}

// emitRow writes the changed cells of one row, splitting around unchanged
// gaps when skipping them is cheaper than overtyping, and collapsing a
// trailing blank run into el.
func (r *Renderer) emitRow(out *bytes.Buffer, y, x0, x1, width int) {
	vrow, prow := r.virt.Row(y), r.phys.Row(y)

	// Trailing blank collapse: if everything from some column to the end of
	// the changed range is a default blank, clearing to end of line can
	// replace writing the blanks.
	elStart := -1
	if r.caps.ClearEOL != "" && x1 == r.lastDiff(y) {
		i := x1
		for i >= x0 && vrow[i] == cellbuf.Blank {
			i--
		}
		// Only worth it when the run of blanks to write is longer than the
		// clear sequence, and the rest of the row is blank too (el clears
		// to the margin, not to x1).
		if x1-i > len(r.caps.ClearEOL) && r.restBlank(vrow, x1+1) {
			elStart = i + 1
		}
	}

	x := x0
	for x <= x1 {
		if elStart >= 0 && x >= elStart {
			r.moveTo(out, x, y)
			r.setStyle(out, 0, 0)
			out.WriteString(r.caps.ClearEOL)
			for i := x; i < width; i++ {
				r.phys.Set(i, y, cellbuf.Blank)
			}
			return
		}

		// Skip an unchanged gap when repositioning costs less than
		// overtyping it.
		if vrow[x] == prow[x] {
			gap := 0
			for x+gap <= x1 && vrow[x+gap] == prow[x+gap] {
				gap++
			}
			if gap > r.moveCostEstimate() {
				x += gap
				continue
			}
		}

		r.moveTo(out, x, y)
		for x <= x1 && !(vrow[x] == prow[x] && r.gapAhead(vrow, prow, x, x1) > r.moveCostEstimate()) {
			if elStart >= 0 && x >= elStart {
				break
			}
			c := vrow[x]
			if c.IsTrailing() {
				// A trailing half with no emitted lead: the terminal cursor
				// did not advance, so reposition before the next cell.
				r.curX, r.curY = -1, -1
				x++
				break
			}
			w := runewidth.RuneWidth(c.Rune)
			if w < 1 {
				w = 1
			}
			// Leave the bottom-right cell alone on auto-margin terminals
			// without the newline glitch: writing it would scroll.
			if y == r.virt.Height()-1 && x+w >= width &&
				r.caps.AutoMargin && !r.caps.EatNewlineGlitch {
				x += w
				continue
			}
			r.emitCell(out, c)
			r.phys.Set(x, y, c)
			if w == 2 {
				r.phys.Set(x+1, y, cellbuf.Cell{Attr: c.Attr, Pair: c.Pair})
			}
			r.curX += w
			x += w
			// At the right margin the real cursor position depends on the
			// terminal's wrap behavior; stop trusting it.
			if r.curX >= width {
				r.curX, r.curY = -1, -1
			}
		}
	}
}

// gapAhead measures the run of unchanged cells starting at x.
func (r *Renderer) gapAhead(vrow, prow []cellbuf.Cell, x, x1 int) int {
	gap := 0
	for x+gap <= x1 && vrow[x+gap] == prow[x+gap] {
		gap++
	}
	return gap
}

// lastDiff returns the last differing column of row y, or -1.
func (r *Renderer) lastDiff(y int) int {
	vrow, prow := r.virt.Row(y), r.phys.Row(y)
	for x := r.virt.Width() - 1; x >= 0; x-- {
		if vrow[x] != prow[x] {
			return x
		}
	}
	return -1
}

func (r *Renderer) restBlank(vrow []cellbuf.Cell, from int) bool {
	for x := from; x < len(vrow); x++ {
		if vrow[x] != cellbuf.Blank {
			return false
		}
	}
	return true
}

// emitCell writes one cell's bytes at the current cursor position, updating
// attribute and charset state first.
func (r *Renderer) emitCell(out *bytes.Buffer, c cellbuf.Cell) {
	r.setStyle(out, c.Attr, c.Pair)

	if c.Attr&cellbuf.AttrAltCharset != 0 && r.caps.EnterACS != "" {
		if code, ok := cellbuf.ACSCode(c.Rune); ok {
			r.openACS(out)
			b := code
			if m, ok := r.acsMap[code]; ok {
				b = m
			}
			out.WriteByte(b)
			return
		}
	}
	r.closeACS(out)
	out.WriteRune(c.Rune)
}

func (r *Renderer) openACS(out *bytes.Buffer) {
	if !r.acsActive {
		out.WriteString(r.caps.EnterACS)
		r.acsActive = true
	}
}

func (r *Renderer) closeACS(out *bytes.Buffer) {
	if r.acsActive {
		out.WriteString(r.caps.ExitACS)
		r.acsActive = false
	}
}

// emitClear repaints from scratch: clear the screen if the terminal can,
// otherwise home and overwrite everything.
func (r *Renderer) emitClear(out *bytes.Buffer) {
	r.setStyle(out, 0, 0)
	if r.caps.Clear != "" {
		out.WriteString(r.caps.Clear)
		r.curX, r.curY = 0, 0
	} else if r.caps.Home != "" {
		out.WriteString(r.caps.Home)
		if r.caps.ClearEOS != "" {
			out.WriteString(r.caps.ClearEOS)
		}
		r.curX, r.curY = 0, 0
	}
	r.phys.Fill(cellbuf.Blank)
}

// snapshot copies the virtual screen into the physical one and consumes the
// damage spans.
func (r *Renderer) snapshot() {
	for y := 0; y < r.virt.Height(); y++ {
		vrow := r.virt.Row(y)
		for x := 0; x < len(vrow); x++ {
			r.phys.Set(x, y, vrow[x])
		}
	}
	r.virt.ClearDirty()
	r.phys.ClearDirty()
}

// parseACSC decodes the acsc capability, an even-length string of
// (vt100 letter, terminal byte) pairs.
func parseACSC(acsc string) map[byte]byte {
	m := make(map[byte]byte, len(acsc)/2)
	for i := 0; i+1 < len(acsc); i += 2 {
		m[acsc[i]] = acsc[i+1]
	}
	return m
}
