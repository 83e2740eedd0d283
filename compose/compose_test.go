package compose

import (
	"testing"

	"github.com/scrimlib/scrim/cellbuf"
)

func fillWindow(t *testing.T, w *cellbuf.Window, r rune) {
	t.Helper()
	w.Fill(cellbuf.Cell{Rune: r})
}

func screenRow(b *cellbuf.Buffer, y int) string {
	out := make([]rune, 0, b.Width())
	for x := 0; x < b.Width(); x++ {
		c := b.At(x, y)
		if c.IsTrailing() {
			out = append(out, '.')
			continue
		}
		out = append(out, c.Rune)
	}
	return string(out)
}

func TestComposeBackgroundOnly(t *testing.T) {
	dst := cellbuf.NewBuffer(4, 2)
	Compose(dst, cellbuf.Cell{Rune: '~'}, nil)
	if got := screenRow(dst, 0); got != "~~~~" {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestComposeZOrder(t *testing.T) {
	dst := cellbuf.NewBuffer(6, 3)

	low := cellbuf.NewWindow(0, 0, 4, 3)
	fillWindow(t, low, 'a')
	low.SetZ(1)

	high := cellbuf.NewWindow(2, 1, 4, 2)
	fillWindow(t, high, 'b')
	high.SetZ(2)

	Compose(dst, cellbuf.Blank, []*cellbuf.Window{high, low})
	if got := screenRow(dst, 0); got != "aaaa  " {
		t.Fatalf("row 0 = %q", got)
	}
	if got := screenRow(dst, 1); got != "aabbbb" {
		t.Fatalf("row 1 = %q", got)
	}

	// Same z: later in the slice wins (stable sort keeps insertion order).
	high.SetZ(1)
	Compose(dst, cellbuf.Blank, []*cellbuf.Window{high, low})
	if got := screenRow(dst, 1); got != "aaaabb" {
		t.Fatalf("tie row 1 = %q", got)
	}
}

func TestComposeHiddenSkipped(t *testing.T) {
	dst := cellbuf.NewBuffer(4, 1)
	w := cellbuf.NewWindow(0, 0, 4, 1)
	fillWindow(t, w, 'x')
	w.Hide()

	Compose(dst, cellbuf.Blank, []*cellbuf.Window{w})
	if got := screenRow(dst, 0); got != "    " {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestComposeClipsOffscreen(t *testing.T) {
	dst := cellbuf.NewBuffer(4, 3)
	w := cellbuf.NewWindow(-2, -1, 4, 3)
	fillWindow(t, w, 'x')

	Compose(dst, cellbuf.Blank, []*cellbuf.Window{w})
	if got := screenRow(dst, 0); got != "xx  " {
		t.Fatalf("row 0 = %q", got)
	}
	if got := screenRow(dst, 2); got != "    " {
		t.Fatalf("row 2 = %q", got)
	}

	far := cellbuf.NewWindow(99, 99, 2, 2)
	fillWindow(t, far, 'y')
	Compose(dst, cellbuf.Blank, []*cellbuf.Window{far})
	for y := 0; y < 3; y++ {
		if got := screenRow(dst, y); got != "    " {
			t.Fatalf("offscreen window leaked: row %d = %q", y, got)
		}
	}
}

func TestComposeDamageOnlyWhereChanged(t *testing.T) {
	dst := cellbuf.NewBuffer(6, 3)
	w := cellbuf.NewWindow(0, 0, 6, 1)
	fillWindow(t, w, 'x')

	Compose(dst, cellbuf.Blank, []*cellbuf.Window{w})
	dst.ClearDirty()

	// Identical recompose: nothing changes, nothing is dirty.
	Compose(dst, cellbuf.Blank, []*cellbuf.Window{w})
	for y := 0; y < 3; y++ {
		if _, _, ok := dst.DirtySpan(y); ok {
			t.Fatalf("row %d dirty after identical recompose", y)
		}
	}

	// Moving the window damages both vacated and newly covered rows.
	w.Move(0, 2)
	Compose(dst, cellbuf.Blank, []*cellbuf.Window{w})
	if _, _, ok := dst.DirtySpan(0); !ok {
		t.Fatalf("vacated row not damaged")
	}
	if _, _, ok := dst.DirtySpan(2); !ok {
		t.Fatalf("covered row not damaged")
	}
	if _, _, ok := dst.DirtySpan(1); ok {
		t.Fatalf("untouched row damaged")
	}
}

func TestComposeRepairsSplitWide(t *testing.T) {
	dst := cellbuf.NewBuffer(6, 1)

	under := cellbuf.NewWindow(0, 0, 6, 1)
	if _, err := under.WriteString("世界x"); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Overlay covers the lead half of 世 only.
	over := cellbuf.NewWindow(0, 0, 1, 1)
	fillWindow(t, over, 'A')
	over.SetZ(1)

	Compose(dst, cellbuf.Blank, []*cellbuf.Window{under, over})
	// The orphaned trailing half at column 1 must become a blank.
	if dst.At(1, 0).IsTrailing() {
		t.Fatalf("orphan trailing cell survived: %q", screenRow(dst, 0))
	}
	if dst.At(2, 0).Rune != '界' {
		t.Fatalf("intact wide rune damaged: %q", screenRow(dst, 0))
	}
}
