// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: cellbuf/buffer.go
// Summary: Cell grid with cursor and per-row damage spans.

package cellbuf

import "errors"

// ErrOutOfBounds is returned by strict-mode operations that address a cell
// outside the grid.
var ErrOutOfBounds = errors.New("cellbuf: coordinates out of bounds")

// span is the inclusive range of changed columns in one row. first == -1
// means the row is clean.
type span struct {
	first, last int
}

// Buffer is a width×height grid of cells plus a cursor. Every mutation
// widens the damage span of the rows it touches; consumers read the spans
// and reset them after each frame.
type Buffer struct {
	width, height int
	cells         [][]Cell
	dirty         []span
	curX, curY    int
}

// NewBuffer allocates a grid of the given size filled with Blank, fully
// marked dirty.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{width: width, height: height}
	b.cells = make([][]Cell, height)
	b.dirty = make([]span, height)
	for y := range b.cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = Blank
		}
		b.cells[y] = row
		b.dirty[y] = span{0, width - 1}
	}
	return b
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// At returns the cell at (x, y), or Blank outside the grid.
func (b *Buffer) At(x, y int) Cell {
	if !b.contains(x, y) {
		return Blank
	}
	return b.cells[y][x]
}

// Set stores a cell and records the damage. Out-of-range coordinates are
// ignored; bounds policy lives in Window.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.contains(x, y) {
		return
	}
	if b.cells[y][x] == c {
		return
	}
	b.cells[y][x] = c
	b.markDirty(y, x, x)
}

// Row exposes one row for read-only scanning by the compositor and
// renderer. Callers must not mutate it.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	return b.cells[y]
}

func (b *Buffer) contains(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// SetCursor clamps the cursor into the grid.
func (b *Buffer) SetCursor(x, y int) {
	b.curX = clamp(x, 0, b.width-1)
	b.curY = clamp(y, 0, b.height-1)
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() (x, y int) { return b.curX, b.curY }

func (b *Buffer) markDirty(y, x0, x1 int) {
	if y < 0 || y >= b.height {
		return
	}
	x0 = clamp(x0, 0, b.width-1)
	x1 = clamp(x1, 0, b.width-1)
	d := &b.dirty[y]
	if d.first < 0 {
		d.first, d.last = x0, x1
		return
	}
	if x0 < d.first {
		d.first = x0
	}
	if x1 > d.last {
		d.last = x1
	}
}

// DirtySpan reports the changed column range of row y. ok is false for a
// clean row.
func (b *Buffer) DirtySpan(y int) (first, last int, ok bool) {
	if y < 0 || y >= b.height || b.dirty[y].first < 0 {
		return 0, 0, false
	}
	return b.dirty[y].first, b.dirty[y].last, true
}

// Touch marks the whole grid dirty, forcing a full scan next frame.
func (b *Buffer) Touch() {
	for y := range b.dirty {
		b.dirty[y] = span{0, b.width - 1}
	}
}

// TouchRow marks one row dirty.
func (b *Buffer) TouchRow(y int) {
	b.markDirty(y, 0, b.width-1)
}

// ClearDirty resets all damage spans. Called after a frame is consumed.
func (b *Buffer) ClearDirty() {
	for y := range b.dirty {
		b.dirty[y] = span{-1, -1}
	}
}

// Fill overwrites every cell.
func (b *Buffer) Fill(c Cell) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y]
		for x := range row {
			row[x] = c
		}
	}
	b.Touch()
}

// Resize grows or shrinks the grid in place, keeping the overlapping region
// and filling new cells with blank. The whole grid is marked dirty and the
// cursor is clamped back inside.
func (b *Buffer) Resize(width, height int, blank Cell) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]Cell, height)
	for y := 0; y < height; y++ {
		row := make([]Cell, width)
		for x := range row {
			if y < b.height && x < b.width {
				row[x] = b.cells[y][x]
			} else {
				row[x] = blank
			}
		}
		cells[y] = row
	}
	b.cells = cells
	b.width, b.height = width, height
	b.dirty = make([]span, height)
	b.Touch()
	b.SetCursor(b.curX, b.curY)
}

// scroll shifts rows top..bottom (inclusive) by n: positive n moves content
// up, negative down. Vacated rows are filled with blank.
func (b *Buffer) scroll(top, bottom, n int, blank Cell) {
	if n == 0 || top > bottom {
		return
	}
	height := bottom - top + 1
	if n >= height || -n >= height {
		for y := top; y <= bottom; y++ {
			row := b.cells[y]
			for x := range row {
				row[x] = blank
			}
		}
	} else if n > 0 {
		for y := top; y <= bottom-n; y++ {
			copy(b.cells[y], b.cells[y+n])
		}
		for y := bottom - n + 1; y <= bottom; y++ {
			row := b.cells[y]
			for x := range row {
				row[x] = blank
			}
		}
	} else {
		for y := bottom; y >= top-n; y-- {
			copy(b.cells[y], b.cells[y+n])
		}
		for y := top; y < top-n; y++ {
			row := b.cells[y]
			for x := range row {
				row[x] = blank
			}
		}
	}
	for y := top; y <= bottom; y++ {
		b.markDirty(y, 0, b.width-1)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
