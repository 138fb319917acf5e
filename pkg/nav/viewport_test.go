package nav_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/vcd/pkg/nav"
)

func newViewport(rows, height, margin int) *nav.Viewport {
	v := nav.NewViewport(height, margin)
	v.SetRowCount(rows)
	return v
}

func TestViewportEmpty(t *testing.T) {
	v := newViewport(0, 10, 2)

	if _, ok := v.Cursor(); ok {
		t.Error("expected no cursor on empty list")
	}
	v.MoveBy(3)
	v.ScrollBy(3)
	if v.Offset() != 0 {
		t.Errorf("offset = %d, want 0", v.Offset())
	}
	if got := v.ComputeScrollOffset(10, 2); got != 0 {
		t.Errorf("ComputeScrollOffset = %d, want 0", got)
	}
}

func TestViewportMoveClamps(t *testing.T) {
	v := newViewport(5, 10, 0)

	v.MoveBy(-1)
	if c, _ := v.Cursor(); c != 0 {
		t.Errorf("cursor after MoveBy(-1) at top = %d, want 0", c)
	}
	v.MoveTo(99)
	if c, _ := v.Cursor(); c != 4 {
		t.Errorf("cursor after MoveTo(99) = %d, want 4", c)
	}
}

func TestViewportScrollsWithMargin(t *testing.T) {
	// 30 rows, 10 visible, margin 3.
	v := newViewport(30, 10, 3)

	// Moving down within the window keeps offset 0 until the cursor
	// comes within 3 rows of the bottom edge (row 9).
	v.MoveTo(6)
	if v.Offset() != 0 {
		t.Fatalf("offset at cursor 6 = %d, want 0", v.Offset())
	}
	v.MoveTo(7)
	if v.Offset() != 1 {
		t.Fatalf("offset at cursor 7 = %d, want 1", v.Offset())
	}

	// Jumping far down puts the cursor exactly margin rows above the bottom.
	v.MoveTo(20)
	if v.Offset() != 14 {
		t.Fatalf("offset at cursor 20 = %d, want 14", v.Offset())
	}

	// Moving back up scrolls once the cursor enters the top margin.
	v.MoveTo(17)
	if v.Offset() != 14 {
		t.Fatalf("offset at cursor 17 = %d, want 14", v.Offset())
	}
	v.MoveTo(16)
	if v.Offset() != 13 {
		t.Fatalf("offset at cursor 16 = %d, want 13", v.Offset())
	}

	// Near the end the offset is clamped to rows-height.
	v.MoveTo(29)
	if v.Offset() != 20 {
		t.Fatalf("offset at last row = %d, want 20", v.Offset())
	}
	// Near the start it is clamped to 0.
	v.MoveTo(1)
	if v.Offset() != 0 {
		t.Fatalf("offset at row 1 = %d, want 0", v.Offset())
	}
}

func TestComputeScrollOffsetClampsMarginToHalfHeight(t *testing.T) {
	tests := []struct {
		name   string
		height int
		margin int
		cursor int
		want   int
	}{
		{"margin larger than half keeps cursor centered", 5, 10, 10, 8},
		{"even height", 4, 10, 10, 8},
		{"height one ignores margin", 1, 3, 10, 10},
		{"negative margin acts as zero", 5, -2, 10, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViewport(50, 50, 0) // everything visible, offset stays 0
			v.MoveTo(tt.cursor)
			if got := v.ComputeScrollOffset(tt.height, tt.margin); got != tt.want {
				t.Errorf("ComputeScrollOffset(%d, %d) with cursor %d = %d, want %d",
					tt.height, tt.margin, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestViewportManualScrollIsIndependentOfCursor(t *testing.T) {
	v := newViewport(30, 10, 2)
	v.MoveTo(5)

	v.ScrollBy(4)
	if v.Offset() != 4 {
		t.Fatalf("offset = %d, want 4", v.Offset())
	}
	if c, _ := v.Cursor(); c != 5 {
		t.Fatalf("cursor moved to %d by scrolling", c)
	}

	v.ScrollBy(100)
	if v.Offset() != 20 {
		t.Errorf("offset = %d, want clamp to 20", v.Offset())
	}
	v.ScrollBy(-100)
	if v.Offset() != 0 {
		t.Errorf("offset = %d, want clamp to 0", v.Offset())
	}
}

func TestViewportShrinkClampsCursorAndOffset(t *testing.T) {
	v := newViewport(30, 10, 0)
	v.MoveTo(25)

	v.SetRowCount(12)

	if c, _ := v.Cursor(); c != 11 {
		t.Errorf("cursor = %d, want 11", c)
	}
	if v.Offset() > 2 {
		t.Errorf("offset = %d, want <= 2", v.Offset())
	}
}

func TestViewportVisibleRange(t *testing.T) {
	v := newViewport(4, 10, 0)
	if s, e := v.VisibleRange(); s != 0 || e != 4 {
		t.Errorf("VisibleRange = [%d,%d), want [0,4)", s, e)
	}
	v = newViewport(30, 10, 0)
	v.MoveTo(29)
	if s, e := v.VisibleRange(); s != 20 || e != 30 {
		t.Errorf("VisibleRange = [%d,%d), want [20,30)", s, e)
	}
}

func TestViewportInvariantsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		height := rapid.IntRange(1, 30).Draw(t, "height")
		margin := rapid.IntRange(0, 10).Draw(t, "margin")
		v := newViewport(rapid.IntRange(0, 100).Draw(t, "rows"), height, margin)

		for i := rapid.IntRange(1, 40).Draw(t, "ops"); i > 0; i-- {
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				v.MoveBy(rapid.IntRange(-20, 20).Draw(t, "delta"))
			case 1:
				v.ScrollBy(rapid.IntRange(-20, 20).Draw(t, "scroll"))
			case 2:
				v.SetRowCount(rapid.IntRange(0, 100).Draw(t, "newRows"))
			case 3:
				v.MoveTo(rapid.IntRange(-5, 105).Draw(t, "target"))
			}

			rows := v.RowCount()
			c, ok := v.Cursor()
			if rows > 0 && (!ok || c < 0 || c >= rows) {
				t.Fatalf("cursor %d (ok=%v) out of [0,%d)", c, ok, rows)
			}
			if rows == 0 && ok {
				t.Fatalf("cursor present on empty list")
			}
			maxOff := max(0, rows-height)
			if v.Offset() < 0 || v.Offset() > maxOff {
				t.Fatalf("offset %d out of [0,%d]", v.Offset(), maxOff)
			}
		}
	})
}

func TestScrollMarginProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		height := rapid.IntRange(1, 30).Draw(t, "height")
		rows := rapid.IntRange(height, 120).Draw(t, "rows")
		margin := rapid.IntRange(0, 12).Draw(t, "margin")
		v := newViewport(rows, height, margin)
		v.ScrollBy(rapid.IntRange(0, rows).Draw(t, "startOffset"))

		v.MoveTo(rapid.IntRange(0, rows-1).Draw(t, "cursor"))

		c, _ := v.Cursor()
		off := v.Offset()
		m := min(margin, (height-1)/2)
		maxOff := rows - height
		if off > 0 && c-off < m {
			t.Fatalf("cursor %d only %d rows below top (offset %d, margin %d)", c, c-off, off, m)
		}
		if off < maxOff && off+height-1-c < m {
			t.Fatalf("cursor %d only %d rows above bottom (offset %d, margin %d)", c, off+height-1-c, off, m)
		}
		if c < off || c >= off+height {
			t.Fatalf("cursor %d not visible in [%d,%d)", c, off, off+height)
		}
	})
}
