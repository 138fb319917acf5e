package nav

// Viewport tracks the cursor and the first visible row over a row list whose
// length changes as directories are expanded and collapsed.
//
// Invariants, whenever rows > 0:
//
//	0 <= cursor < rows
//	0 <= offset <= max(0, rows-height)
type Viewport struct {
	cursor int
	offset int
	rows   int
	height int
	margin int
}

// NewViewport returns an empty viewport showing height rows and keeping
// margin rows between the cursor and either edge where possible.
func NewViewport(height, margin int) *Viewport {
	v := &Viewport{}
	v.SetMargin(margin)
	v.SetHeight(height)
	return v
}

// Cursor returns the cursor index; ok is false when there are no rows.
func (v *Viewport) Cursor() (index int, ok bool) {
	if v.rows == 0 {
		return 0, false
	}
	return v.cursor, true
}

// Offset returns the index of the first visible row.
func (v *Viewport) Offset() int { return v.offset }

// RowCount returns the number of rows being windowed.
func (v *Viewport) RowCount() int { return v.rows }

// Height returns the number of visible rows.
func (v *Viewport) Height() int { return v.height }

// Margin returns the configured scroll margin before clamping.
func (v *Viewport) Margin() int { return v.margin }

// SetRowCount updates the row count after the list was rebuilt. The cursor
// is clamped to the new last row and the offset to its valid range.
func (v *Viewport) SetRowCount(n int) {
	if n < 0 {
		n = 0
	}
	v.rows = n
	v.cursor = clamp(v.cursor, 0, max(0, n-1))
	v.offset = clamp(v.offset, 0, v.maxOffset())
}

// SetHeight changes the number of visible rows and re-applies the margin.
func (v *Viewport) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	v.height = h
	v.Follow()
}

// SetMargin changes the scroll margin. Negative values mean no margin.
func (v *Viewport) SetMargin(m int) {
	v.margin = max(0, m)
}

// MoveTo places the cursor on row i, clamped, and scrolls to keep it in view.
func (v *Viewport) MoveTo(i int) {
	if v.rows == 0 {
		return
	}
	v.cursor = clamp(i, 0, v.rows-1)
	v.Follow()
}

// MoveBy moves the cursor delta rows.
func (v *Viewport) MoveBy(delta int) {
	v.MoveTo(v.cursor + delta)
}

// ScrollBy shifts the window delta rows without moving the cursor.
func (v *Viewport) ScrollBy(delta int) {
	v.offset = clamp(v.offset+delta, 0, v.maxOffset())
}

// Follow applies ComputeScrollOffset with the viewport's own height and margin.
func (v *Viewport) Follow() {
	v.offset = v.ComputeScrollOffset(v.height, v.margin)
}

// ComputeScrollOffset returns the offset that keeps the cursor at least
// margin rows from the top and bottom of a window of height rows. The margin
// is clamped to (height-1)/2. When the cursor already sits inside the
// margins the current offset is kept. The result always lies within
// [0, max(0, rows-height)].
func (v *Viewport) ComputeScrollOffset(height, margin int) int {
	if v.rows == 0 {
		return 0
	}
	if height < 1 {
		height = 1
	}
	m := clamp(margin, 0, (height-1)/2)

	off := v.offset
	switch {
	case v.cursor-off < m:
		off = v.cursor - m
	case off+height-1-v.cursor < m:
		off = v.cursor - (height - 1 - m)
	}
	return clamp(off, 0, max(0, v.rows-height))
}

// VisibleRange returns the half-open row range [start, end) on screen.
func (v *Viewport) VisibleRange() (start, end int) {
	start = v.offset
	end = min(v.rows, start+v.height)
	return start, end
}

func (v *Viewport) maxOffset() int {
	return max(0, v.rows-v.height)
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
