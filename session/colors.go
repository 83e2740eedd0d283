// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: session/colors.go
// Summary: Color-pair table and palette downconversion.

package session

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/scrimlib/scrim/cellbuf"
)

// pairDef is what the application asked for, before any downconversion.
type pairDef struct {
	fg, bg int
}

// InitPair defines (or redefines) a color pair. Pair 0 is fixed to the
// terminal defaults. Cells referencing the pair pick up the new colors on
// the next render, so repainting a pair recolors existing content.
func (s *Session) InitPair(id cellbuf.PairID, fg, bg int) error {
	if id == 0 {
		return fmt.Errorf("session: pair 0 is reserved for terminal defaults")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[id] = pairDef{fg: fg, bg: bg}
	// Any cell using this pair may now look different.
	s.renderer.Invalidate()
	return nil
}

// PairContent reports the colors a pair was defined with.
func (s *Session) PairContent(id cellbuf.PairID) (fg, bg int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.pairs[id]
	if !ok {
		return 0, 0, false
	}
	return def.fg, def.bg, true
}

// pairColors resolves a pair for the renderer, folding palette indices the
// terminal cannot address onto their nearest displayable neighbor.
func (s *Session) pairColors(id cellbuf.PairID) (int, int) {
	s.mu.Lock()
	def, ok := s.pairs[id]
	s.mu.Unlock()
	if !ok {
		return -1, -1
	}
	return s.displayColor(def.fg), s.displayColor(def.bg)
}

func (s *Session) displayColor(c int) int {
	if c < 0 {
		return -1
	}
	limit := s.caps.Colors
	if limit <= 0 {
		return -1
	}
	if c < limit {
		return c
	}
	if limit > 256 {
		return c
	}
	return nearestColor(c, limit)
}

// nearestColor maps a 256-palette index onto the closest color among the
// first limit palette entries, by perceptual distance.
func nearestColor(c, limit int) int {
	if c > 255 {
		c = 255
	}
	if limit > 256 {
		limit = 256
	}
	target := paletteColor(c)
	best, bestDist := 0, -1.0
	for i := 0; i < limit; i++ {
		d := target.DistanceLab(paletteColor(i))
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// base16 holds the standard xterm RGB values for the first 16 entries.
var base16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// paletteColor reconstructs the xterm 256-color palette: 16 named colors,
// a 6x6x6 cube, then a 24-step gray ramp.
func paletteColor(i int) colorful.Color {
	switch {
	case i < 16:
		c := base16[i]
		return rgb(c[0], c[1], c[2])
	case i < 232:
		i -= 16
		steps := [6]uint8{0, 95, 135, 175, 215, 255}
		return rgb(steps[i/36], steps[(i/6)%6], steps[i%6])
	default:
		v := uint8(8 + (i-232)*10)
		return rgb(v, v, v)
	}
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}
