package render

import (
	"bytes"

	"github.com/scrimlib/scrim/cellbuf"
)

// setStyle brings the terminal's attribute and color state to (attr, pair).
// Attributes only turn off via sgr0, so any transition that drops a bit
// resets and rebuilds. Attributes the terminal cannot express are dropped
// silently. AltCharset is not handled here; it brackets runs of cells
// instead.
func (r *Renderer) setStyle(out *bytes.Buffer, attr cellbuf.AttrMask, pair cellbuf.PairID) {
	attr &^= cellbuf.AttrAltCharset
	cur := r.curAttr &^ cellbuf.AttrAltCharset
	if r.styleKnown && cur == attr && r.curPair == pair {
		return
	}

	needReset := !r.styleKnown || cur&^attr != 0 || (r.curPair != pair && pair == 0)
	if needReset {
		if r.caps.AttrOff != "" {
			out.WriteString(r.caps.AttrOff)
		} else if r.caps.ResetColors != "" {
			out.WriteString(r.caps.ResetColors)
		}
		// sgr0 leaves the alternate charset on some terminals; resynced by
		// the next openACS either way.
		r.acsActive = false
		cur = 0
		r.curPair = 0
	}

	add := attr &^ cur
	for _, on := range []struct {
		bit cellbuf.AttrMask
		cap string
	}{
		{cellbuf.AttrBold, r.caps.Bold},
		{cellbuf.AttrDim, r.caps.Dim},
		{cellbuf.AttrItalic, r.caps.Italic},
		{cellbuf.AttrUnderline, r.caps.Underline},
		{cellbuf.AttrBlink, r.caps.Blink},
		{cellbuf.AttrReverse, r.caps.Reverse},
		{cellbuf.AttrInvisible, r.caps.Invisible},
		{cellbuf.AttrStandout, r.caps.Standout},
	} {
		if add&on.bit != 0 && on.cap != "" {
			out.WriteString(on.cap)
		}
	}

	if pair != 0 && (needReset || r.curPair != pair) {
		fg, bg := r.pairColors(pair)
		if fg >= 0 {
			out.WriteString(r.caps.TColorFg(r.clampColor(fg)))
		}
		if bg >= 0 {
			out.WriteString(r.caps.TColorBg(r.clampColor(bg)))
		}
	}

	r.curAttr = attr
	r.curPair = pair
	r.styleKnown = true
}

// clampColor folds a palette index the terminal cannot address into its
// supported range. The session's pair table already downconverts by color
// distance; this is only the last-ditch guard for raw indices.
func (r *Renderer) clampColor(c int) int {
	if r.caps.Colors <= 0 || c < r.caps.Colors {
		return c
	}
	if c < 16 && r.caps.Colors >= 8 {
		return c - 8
	}
	return c % r.caps.Colors
}
