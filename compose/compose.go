// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: compose/compose.go
// Summary: Flattens z-ordered windows onto a destination buffer.

// Package compose merges a set of positioned windows into one screen-sized
// buffer. Overlap is resolved by z-order, with insertion order breaking
// ties, so raising a window is just giving it a larger z key.
package compose

import (
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/scrimlib/scrim/cellbuf"
)

// Compose paints background into every cell of dst, then draws each visible
// window bottom-up in z-order. Windows may hang off any edge; only their
// intersection with dst is drawn. Damage accumulates in dst's dirty spans:
// cells that come out identical to what dst already held stay clean.
func Compose(dst *cellbuf.Buffer, background cellbuf.Cell, windows []*cellbuf.Window) {
	ordered := make([]*cellbuf.Window, 0, len(windows))
	for _, w := range windows {
		if w != nil && w.Visible() {
			ordered = append(ordered, w)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Z() < ordered[j].Z()
	})

	width, height := dst.Width(), dst.Height()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dst.Set(x, y, background)
		}
	}

	for _, w := range ordered {
		blit(dst, w)
	}

	fixSeams(dst)
}

// blit copies the window's grid into dst at its origin, clipped to dst.
func blit(dst *cellbuf.Buffer, w *cellbuf.Window) {
	ox, oy := w.Origin()
	src := w.Buffer()

	x0, y0 := 0, 0
	if ox < 0 {
		x0 = -ox
	}
	if oy < 0 {
		y0 = -oy
	}
	x1, y1 := src.Width(), src.Height()
	if ox+x1 > dst.Width() {
		x1 = dst.Width() - ox
	}
	if oy+y1 > dst.Height() {
		y1 = dst.Height() - oy
	}

	for y := y0; y < y1; y++ {
		row := src.Row(y)
		for x := x0; x < x1; x++ {
			dst.Set(ox+x, oy+y, row[x])
		}
	}
}

// fixSeams repairs wide runes cut in half at window edges: a trailing cell
// whose left neighbor is not a wide lead (or that sits in column 0), and a
// wide lead whose right neighbor is not its trailing cell, both become
// blanks carrying their own style.
func fixSeams(dst *cellbuf.Buffer) {
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			c := dst.At(x, y)
			if c.IsTrailing() {
				if x == 0 || !leadsWide(dst, x-1, y) {
					dst.Set(x, y, cellbuf.Cell{Rune: ' ', Attr: c.Attr, Pair: c.Pair})
				}
				continue
			}
			if leadsWide(dst, x, y) && (x+1 >= dst.Width() || !dst.At(x+1, y).IsTrailing()) {
				dst.Set(x, y, cellbuf.Cell{Rune: ' ', Attr: c.Attr, Pair: c.Pair})
			}
		}
	}
}

func leadsWide(dst *cellbuf.Buffer, x, y int) bool {
	c := dst.At(x, y)
	return c.Rune != 0 && runewidth.RuneWidth(c.Rune) == 2
}
