// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: cellbuf/window.go
// Summary: Drawable windows: positioned, z-ordered grids with their own cursor.

package cellbuf

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ClipMode controls what happens when a draw call addresses cells outside
// the window.
type ClipMode uint8

const (
	// ClipSilent discards out-of-range writes without error.
	ClipSilent ClipMode = iota
	// ClipStrict rejects out-of-range writes with ErrOutOfBounds.
	ClipStrict
)

// Window is a rectangular drawing surface with a position on the screen and
// a z-order key. Windows draw into their own buffer; the compositor decides
// what reaches the screen.
type Window struct {
	buf     *Buffer
	x, y    int
	z       int
	visible bool

	clip  ClipMode
	wrap  bool
	blank Cell

	attr AttrMask
	pair PairID
}

// NewWindow creates a visible window of the given size at screen position
// (x, y), filled with blanks.
func NewWindow(x, y, width, height int) *Window {
	return &Window{
		buf:     NewBuffer(width, height),
		x:       x,
		y:       y,
		visible: true,
		blank:   Blank,
	}
}

func (w *Window) Buffer() *Buffer    { return w.buf }
func (w *Window) Origin() (x, y int) { return w.x, w.y }
func (w *Window) Size() (wd, ht int) { return w.buf.Width(), w.buf.Height() }
func (w *Window) Z() int             { return w.z }
func (w *Window) SetZ(z int)         { w.z = z }
func (w *Window) Visible() bool      { return w.visible }
func (w *Window) Show()              { w.visible = true }
func (w *Window) Hide()              { w.visible = false }
func (w *Window) SetClip(m ClipMode) { w.clip = m }
func (w *Window) SetWrap(on bool)    { w.wrap = on }
func (w *Window) Move(x, y int)      { w.x, w.y = x, y }

// SetStyle sets the attributes and color pair applied by subsequent
// WriteString calls.
func (w *Window) SetStyle(attr AttrMask, pair PairID) {
	w.attr = attr
	w.pair = pair
}

// SetBlank sets the cell used for vacated and cleared regions.
func (w *Window) SetBlank(c Cell) { w.blank = c }

// Resize changes the window's size, keeping the overlapping content.
func (w *Window) Resize(width, height int) {
	w.buf.Resize(width, height, w.blank)
}

// Clear fills the window with its blank cell and homes the cursor.
func (w *Window) Clear() {
	w.buf.Fill(w.blank)
	w.buf.SetCursor(0, 0)
}

// SetCursor positions the window cursor.
func (w *Window) SetCursor(x, y int) error {
	if !w.buf.contains(x, y) {
		if w.clip == ClipStrict {
			return ErrOutOfBounds
		}
		// Clamped, matching the move-then-clip behavior of the buffer.
	}
	w.buf.SetCursor(x, y)
	return nil
}

// Cursor returns the window cursor position.
func (w *Window) Cursor() (x, y int) { return w.buf.Cursor() }

// SetCell stores one cell. Wide runes claim the trailing cell too, and
// overwriting either half of an existing wide rune blanks its partner so a
// split pair never survives.
func (w *Window) SetCell(x, y int, c Cell) error {
	width := runewidth.RuneWidth(c.Rune)
	if !w.buf.contains(x, y) || (width == 2 && !w.buf.contains(x+1, y)) {
		if w.clip == ClipStrict {
			return ErrOutOfBounds
		}
		if w.buf.contains(x, y) {
			// A wide rune at the last column degrades to a blank.
			w.clearWideAt(x, y)
			w.buf.Set(x, y, Cell{Rune: ' ', Attr: c.Attr, Pair: c.Pair})
		}
		return nil
	}
	w.clearWideAt(x, y)
	if width == 2 {
		w.clearWideAt(x+1, y)
		w.buf.Set(x, y, c)
		w.buf.Set(x+1, y, Cell{Attr: c.Attr, Pair: c.Pair})
		return nil
	}
	w.buf.Set(x, y, c)
	return nil
}

// clearWideAt repairs the partner cell when (x, y) currently holds half of
// a wide rune.
func (w *Window) clearWideAt(x, y int) {
	cur := w.buf.At(x, y)
	if cur.IsTrailing() && x > 0 {
		lead := w.buf.At(x-1, y)
		w.buf.Set(x-1, y, Cell{Rune: ' ', Attr: lead.Attr, Pair: lead.Pair})
		return
	}
	if runewidth.RuneWidth(cur.Rune) == 2 && x+1 < w.buf.Width() && w.buf.At(x+1, y).IsTrailing() {
		w.buf.Set(x+1, y, Cell{Rune: ' ', Attr: cur.Attr, Pair: cur.Pair})
	}
}

// Fill overwrites the whole window with one cell.
func (w *Window) Fill(c Cell) {
	w.buf.Fill(c)
}

// WriteString writes s at the cursor using the current style, advancing the
// cursor. Text is segmented into grapheme clusters; a cluster's width
// decides how many cells it claims, and clusters that do not fit are
// wrapped or clipped per the window's modes. Control characters \n, \r and
// \t move the cursor. Returns the number of cells written.
func (w *Window) WriteString(s string) (int, error) {
	x, y := w.buf.Cursor()
	written := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, width, newState := uniseg.FirstGraphemeClusterInString(s, state)
		s, state = rest, newState

		r := firstRune(cluster)
		switch r {
		case '\n':
			x = 0
			y++
			if y >= w.buf.Height() {
				y = w.buf.Height() - 1
				w.buf.SetCursor(x, y)
				if w.clip == ClipStrict {
					return written, ErrOutOfBounds
				}
				return written, nil
			}
			continue
		case '\r':
			x = 0
			continue
		case '\t':
			x = (x/8 + 1) * 8
			if x >= w.buf.Width() {
				x = w.buf.Width() - 1
			}
			continue
		}
		if r < ' ' || width <= 0 {
			continue
		}

		if x+width > w.buf.Width() {
			if !w.wrap {
				w.buf.SetCursor(w.buf.Width()-1, y)
				if w.clip == ClipStrict {
					return written, ErrOutOfBounds
				}
				return written, nil
			}
			x = 0
			y++
			if y >= w.buf.Height() {
				w.buf.SetCursor(w.buf.Width()-1, w.buf.Height()-1)
				if w.clip == ClipStrict {
					return written, ErrOutOfBounds
				}
				return written, nil
			}
		}

		if err := w.SetCell(x, y, Cell{Rune: r, Attr: w.attr, Pair: w.pair}); err != nil {
			return written, err
		}
		x += width
		written += width
	}
	w.buf.SetCursor(x, y)
	return written, nil
}

// ScrollRegion shifts rows top..bottom (inclusive) by n lines: positive n
// scrolls content up, negative down. Vacated rows take the window's blank
// cell. The region must lie inside the window.
func (w *Window) ScrollRegion(top, bottom, n int) error {
	if top < 0 || bottom >= w.buf.Height() || top > bottom {
		return ErrOutOfBounds
	}
	w.buf.scroll(top, bottom, n, w.blank)
	return nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
