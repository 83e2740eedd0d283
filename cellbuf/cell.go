// Package cellbuf provides the in-memory screen model: a grid of cells with
// per-row damage tracking, and windows that draw into their own grids before
// being composed onto the screen.
package cellbuf

// AttrMask is a bitset of text attributes. Attributes a terminal cannot
// express are dropped at render time, never here.
type AttrMask uint16

const (
	AttrBold AttrMask = 1 << iota
	AttrUnderline
	AttrReverse
	AttrBlink
	AttrDim
	AttrItalic
	AttrInvisible
	AttrStandout
	AttrAltCharset

	// attrExtPair marks cells whose pair id lives outside the base range.
	// Reserved; no allocator hands these out yet.
	attrExtPair
)

// PairID names a foreground/background color pair. Pair 0 is the terminal
// default. The mapping from id to colors belongs to the session layer; cells
// only carry the id, so repainting a pair recolors every cell using it.
type PairID uint16

// Cell is one character position. A width-2 rune occupies two cells: the
// lead cell carries the rune, the trailing cell has Rune 0 and must never be
// emitted on its own.
type Cell struct {
	Rune rune
	Attr AttrMask
	Pair PairID
}

// Blank is the default empty cell.
var Blank = Cell{Rune: ' '}

// IsTrailing reports whether the cell is the second half of a wide rune.
func (c Cell) IsTrailing() bool { return c.Rune == 0 }

func (c Cell) sameStyle(o Cell) bool { return c.Attr == o.Attr && c.Pair == o.Pair }
