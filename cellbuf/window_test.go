package cellbuf

import (
	"errors"
	"testing"
)

func rowString(b *Buffer, y int) string {
	out := make([]rune, 0, b.Width())
	for x := 0; x < b.Width(); x++ {
		c := b.At(x, y)
		if c.IsTrailing() {
			continue
		}
		out = append(out, c.Rune)
	}
	return string(out)
}

func TestWriteStringAdvances(t *testing.T) {
	w := NewWindow(0, 0, 10, 2)
	n, err := w.WriteString("hello")
	if err != nil || n != 5 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if got := rowString(w.Buffer(), 0); got != "hello     " {
		t.Fatalf("row = %q", got)
	}
	x, y := w.Cursor()
	if x != 5 || y != 0 {
		t.Fatalf("cursor = (%d, %d)", x, y)
	}
}

func TestWriteStringControls(t *testing.T) {
	w := NewWindow(0, 0, 16, 3)
	if _, err := w.WriteString("ab\ncd\r\tz"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := rowString(w.Buffer(), 0); got[:2] != "ab" {
		t.Fatalf("row 0 = %q", got)
	}
	// \n moved to row 1, "cd" written, \r homed, \t jumped to column 8.
	if w.Buffer().At(0, 1).Rune != 'c' || w.Buffer().At(8, 1).Rune != 'z' {
		t.Fatalf("row 1 = %q", rowString(w.Buffer(), 1))
	}
}

func TestWriteStringStyle(t *testing.T) {
	w := NewWindow(0, 0, 8, 1)
	w.SetStyle(AttrBold|AttrReverse, 3)
	if _, err := w.WriteString("x"); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := w.Buffer().At(0, 0)
	if c.Attr != AttrBold|AttrReverse || c.Pair != 3 {
		t.Fatalf("cell = %+v", c)
	}
}

func TestWriteWideRune(t *testing.T) {
	w := NewWindow(0, 0, 6, 1)
	n, err := w.WriteString("世界")
	if err != nil || n != 4 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	b := w.Buffer()
	if b.At(0, 0).Rune != '世' || !b.At(1, 0).IsTrailing() {
		t.Fatalf("lead/trail wrong: %+v %+v", b.At(0, 0), b.At(1, 0))
	}
	if b.At(2, 0).Rune != '界' || !b.At(3, 0).IsTrailing() {
		t.Fatalf("second wide wrong")
	}
}

func TestWriteCombiningCluster(t *testing.T) {
	w := NewWindow(0, 0, 6, 1)
	// "e" + combining acute is one grapheme cluster, one cell.
	n, err := w.WriteString("éx")
	if err != nil || n != 2 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if w.Buffer().At(1, 0).Rune != 'x' {
		t.Fatalf("cluster claimed more than one cell: %q", rowString(w.Buffer(), 0))
	}
}

func TestOverwriteWideHalves(t *testing.T) {
	w := NewWindow(0, 0, 6, 1)
	if err := w.SetCell(1, 0, Cell{Rune: '世'}); err != nil {
		t.Fatalf("set wide: %v", err)
	}

	// Overwriting the trailing half blanks the lead.
	if err := w.SetCell(2, 0, Cell{Rune: 'x'}); err != nil {
		t.Fatalf("overwrite trail: %v", err)
	}
	if w.Buffer().At(1, 0).Rune != ' ' {
		t.Fatalf("lead not repaired: %+v", w.Buffer().At(1, 0))
	}

	if err := w.SetCell(3, 0, Cell{Rune: '界'}); err != nil {
		t.Fatalf("set wide: %v", err)
	}
	// Overwriting the lead blanks the trailing.
	if err := w.SetCell(3, 0, Cell{Rune: 'y'}); err != nil {
		t.Fatalf("overwrite lead: %v", err)
	}
	if w.Buffer().At(4, 0).Rune != ' ' {
		t.Fatalf("trail not repaired: %+v", w.Buffer().At(4, 0))
	}
}

func TestWideAtLastColumn(t *testing.T) {
	w := NewWindow(0, 0, 4, 1)
	if err := w.SetCell(3, 0, Cell{Rune: '世'}); err != nil {
		t.Fatalf("silent mode errored: %v", err)
	}
	if w.Buffer().At(3, 0).Rune != ' ' {
		t.Fatalf("wide at margin should degrade to blank, got %+v", w.Buffer().At(3, 0))
	}

	w.SetClip(ClipStrict)
	if err := w.SetCell(3, 0, Cell{Rune: '世'}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("strict mode: %v", err)
	}
}

func TestClipModes(t *testing.T) {
	w := NewWindow(0, 0, 4, 2)
	if err := w.SetCell(10, 0, Cell{Rune: 'x'}); err != nil {
		t.Fatalf("silent clip errored: %v", err)
	}

	w.SetClip(ClipStrict)
	if err := w.SetCell(10, 0, Cell{Rune: 'x'}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("strict clip: %v", err)
	}
	if err := w.SetCursor(0, 9); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("strict cursor: %v", err)
	}
}

func TestWriteStringNoWrapStops(t *testing.T) {
	w := NewWindow(0, 0, 4, 2)
	n, err := w.WriteString("abcdef")
	if err != nil {
		t.Fatalf("silent mode errored: %v", err)
	}
	if n != 4 {
		t.Fatalf("wrote %d cells", n)
	}
	if got := rowString(w.Buffer(), 1); got != "    " {
		t.Fatalf("row 1 should stay empty, got %q", got)
	}
}

func TestWriteStringWrap(t *testing.T) {
	w := NewWindow(0, 0, 4, 2)
	w.SetWrap(true)
	if _, err := w.WriteString("abcdef"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := rowString(w.Buffer(), 0); got != "abcd" {
		t.Fatalf("row 0 = %q", got)
	}
	if got := rowString(w.Buffer(), 1); got != "ef  " {
		t.Fatalf("row 1 = %q", got)
	}
}

func TestScrollRegion(t *testing.T) {
	w := NewWindow(0, 0, 3, 5)
	for y := 0; y < 5; y++ {
		if err := w.SetCell(0, y, Cell{Rune: rune('0' + y)}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	if err := w.ScrollRegion(1, 3, 1); err != nil {
		t.Fatalf("scroll up: %v", err)
	}
	got := []rune{
		w.Buffer().At(0, 0).Rune,
		w.Buffer().At(0, 1).Rune,
		w.Buffer().At(0, 2).Rune,
		w.Buffer().At(0, 3).Rune,
		w.Buffer().At(0, 4).Rune,
	}
	if string(got) != "023 4" {
		t.Fatalf("after scroll up: %q", string(got))
	}

	if err := w.ScrollRegion(1, 3, -2); err != nil {
		t.Fatalf("scroll down: %v", err)
	}
	if w.Buffer().At(0, 3).Rune != '2' || w.Buffer().At(0, 1).Rune != ' ' {
		t.Fatalf("after scroll down: %q %q", w.Buffer().At(0, 1).Rune, w.Buffer().At(0, 3).Rune)
	}

	if err := w.ScrollRegion(3, 1, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("inverted region: %v", err)
	}
	if err := w.ScrollRegion(0, 9, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("oversized region: %v", err)
	}
}

func TestVisibilityAndZ(t *testing.T) {
	w := NewWindow(2, 3, 4, 4)
	if !w.Visible() {
		t.Fatalf("new windows start visible")
	}
	w.Hide()
	if w.Visible() {
		t.Fatalf("Hide did not take")
	}
	w.Show()
	w.SetZ(7)
	if w.Z() != 7 {
		t.Fatalf("z = %d", w.Z())
	}
	w.Move(5, 6)
	if x, y := w.Origin(); x != 5 || y != 6 {
		t.Fatalf("origin = (%d, %d)", x, y)
	}
}
