// Package cursor provides a cursor for scrollable lists and grids.
package cursor

// Viewport is the visible area in cells: Cols items per row, Rows rows.
// A list is a grid with one column.
type Viewport struct {
	Cols int
	Rows int
}

// List returns a one-column viewport of the given height.
func List(height int) Viewport {
	return Viewport{Cols: 1, Rows: height}
}

func (v Viewport) valid() bool {
	return v.Cols > 0 && v.Rows > 0
}

// rowsFor returns the number of rows needed for n items.
func (v Viewport) rowsFor(n int) int {
	return (n + v.Cols - 1) / v.Cols
}

// Cursor manages the cursor position and scroll offset of a list or grid.
// The item count and viewport are passed to methods rather than stored,
// since they change with results and resizes.
type Cursor struct {
	pos    int // Current item (0-indexed)
	offset int // First visible row
	margin int // Rows to keep visible above/below the cursor
}

// New creates a new Cursor with the specified scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the current cursor position.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the first visible row.
func (c Cursor) Offset() int {
	return c.offset
}

// Margin returns the current scroll margin.
func (c Cursor) Margin() int {
	return c.margin
}

// Move moves the cursor by delta items, clamped to the list.
// If n is 0, this is a no-op.
func (c *Cursor) Move(delta, n int, v Viewport) {
	if n == 0 {
		return
	}
	c.pos = clamp(c.pos+delta, n-1)
	c.ensureVisible(n, v)
}

// MoveRow moves the cursor by delta rows, keeping its column when the
// target row is long enough.
func (c *Cursor) MoveRow(delta, n int, v Viewport) {
	if !v.valid() {
		return
	}
	c.Move(delta*v.Cols, n, v)
}

// Page moves the cursor by a full viewport of rows in direction dir (+1/-1).
func (c *Cursor) Page(dir, n int, v Viewport) {
	if !v.valid() {
		return
	}
	c.MoveRow(dir*v.Rows, n, v)
}

// Jump sets the cursor to an absolute position, clamped to the list.
// If n is 0, this is a no-op.
func (c *Cursor) Jump(pos, n int, v Viewport) {
	if n == 0 {
		return
	}
	c.pos = clamp(pos, n-1)
	c.ensureVisible(n, v)
}

// JumpStart moves cursor to position 0 and resets offset.
func (c *Cursor) JumpStart() {
	c.pos = 0
	c.offset = 0
}

// JumpEnd moves the cursor to the last item.
func (c *Cursor) JumpEnd(n int, v Viewport) {
	if n == 0 {
		return
	}
	c.pos = n - 1
	c.ensureVisible(n, v)
}

// EnsureVisible adjusts the scroll offset to keep the cursor visible.
// Call it after a resize changes the column count.
func (c *Cursor) EnsureVisible(n int, v Viewport) {
	c.ensureVisible(n, v)
}

func (c *Cursor) ensureVisible(n int, v Viewport) {
	if !v.valid() || n == 0 {
		return
	}

	row := c.pos / v.Cols
	margin := min(c.margin, (v.Rows-1)/2)

	if row < c.offset+margin {
		c.offset = max(row-margin, 0)
	}
	if row >= c.offset+v.Rows-margin {
		c.offset = row - v.Rows + margin + 1
	}

	maxOffset := max(v.rowsFor(n)-v.Rows, 0)
	c.offset = clamp(c.offset, maxOffset)
}

// ClampToBounds ensures the cursor is within valid bounds for n items.
// Returns true if the cursor was adjusted.
func (c *Cursor) ClampToBounds(n int) bool {
	if n == 0 {
		changed := c.pos != 0 || c.offset != 0
		c.pos = 0
		c.offset = 0
		return changed
	}

	oldPos := c.pos
	c.pos = clamp(c.pos, n-1)
	return c.pos != oldPos
}

// VisibleRange returns the visible item indices [start, end).
func (c Cursor) VisibleRange(n int, v Viewport) (start, end int) {
	if n == 0 || !v.valid() {
		return 0, 0
	}
	start = min(c.offset*v.Cols, n)
	end = min((c.offset+v.Rows)*v.Cols, n)
	return start, end
}

// Reset resets the cursor to position 0 and offset 0.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
