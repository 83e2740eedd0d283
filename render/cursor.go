package render

import (
	"bytes"
	"strings"

	"github.com/scrimlib/scrim/terminfo"
)

// moveTo emits the cheapest byte sequence that puts the cursor at (x, y).
// Candidates are absolute addressing, a pure relative walk, carriage return
// plus a walk, and home plus a walk; cost is the emitted byte count and
// ties go to the relative form.
func (r *Renderer) moveTo(out *bytes.Buffer, x, y int) {
	if r.curX == x && r.curY == y {
		return
	}
	seq := r.moveSeq(x, y)
	out.WriteString(seq)
	r.curX, r.curY = x, y
}

// Candidate priority: lower wins a length tie.
const (
	prioRelative = iota
	prioCR
	prioHome
	prioAbsolute
)

func (r *Renderer) moveSeq(x, y int) string {
	best := ""
	bestPrio := -1
	consider := func(seq string, prio int) {
		if bestPrio < 0 || len(seq) < len(best) ||
			(len(seq) == len(best) && prio < bestPrio) {
			best = seq
			bestPrio = prio
		}
	}

	if r.caps.CursorAddress != "" {
		consider(terminfo.TParm(r.caps.CursorAddress, y, x), prioAbsolute)
	}
	if r.curX >= 0 && r.curY >= 0 {
		if seq, ok := r.walk(r.curX, r.curY, x, y); ok {
			consider(seq, prioRelative)
		}
		if seq, ok := r.walk(0, r.curY, x, y); ok {
			consider("\r"+seq, prioCR)
		}
	}
	if r.caps.Home != "" {
		if seq, ok := r.walk(0, 0, x, y); ok {
			consider(r.caps.Home+seq, prioHome)
		}
	}
	return best
}

// walk builds a relative move from (fx, fy) to (tx, ty), or reports that
// the terminal lacks the needed motions.
func (r *Renderer) walk(fx, fy, tx, ty int) (string, bool) {
	vert, ok := r.lineMove(ty - fy)
	if !ok {
		return "", false
	}
	horiz, ok := r.colMove(tx - fx)
	if !ok {
		return "", false
	}
	return vert + horiz, true
}

func (r *Renderer) lineMove(n int) (string, bool) {
	if n == 0 {
		return "", true
	}
	single, multi := r.caps.CursorDown1, r.caps.CursorDown
	if n < 0 {
		single, multi = r.caps.CursorUp1, r.caps.CursorUp
		n = -n
	}
	return shorterMove(single, multi, n)
}

func (r *Renderer) colMove(n int) (string, bool) {
	if n == 0 {
		return "", true
	}
	single, multi := r.caps.CursorRight1, r.caps.CursorRight
	if n < 0 {
		single, multi = r.caps.CursorLeft1, r.caps.CursorLeft
		n = -n
	}
	return shorterMove(single, multi, n)
}

// shorterMove picks between repeating the one-step capability n times and
// one parameterized jump.
func shorterMove(single, multi string, n int) (string, bool) {
	var rep, jump string
	if single != "" {
		rep = strings.Repeat(single, n)
	}
	if multi != "" {
		jump = terminfo.TParm(multi, n)
	}
	switch {
	case rep == "" && jump == "":
		return "", false
	case rep == "":
		return jump, true
	case jump == "" || len(rep) <= len(jump):
		return rep, true
	default:
		return jump, true
	}
}

// moveCostEstimate is the byte cost assumed for one mid-screen reposition,
// used to decide whether skipping an unchanged gap beats overtyping it.
func (r *Renderer) moveCostEstimate() int {
	if r.caps.CursorAddress == "" {
		return 8
	}
	return len(terminfo.TParm(r.caps.CursorAddress, r.virt.Height()/2, r.virt.Width()/2))
}
