package cursor

import "testing"

func TestNew(t *testing.T) {
	c := New(5)
	if c.Pos() != 0 {
		t.Errorf("New() pos = %d, want 0", c.Pos())
	}
	if c.Offset() != 0 {
		t.Errorf("New() offset = %d, want 0", c.Offset())
	}
	if c.Margin() != 5 {
		t.Errorf("New() margin = %d, want 5", c.Margin())
	}
}

func TestMoveList(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		initial    int
		delta      int
		len        int
		height     int
		wantPos    int
		wantOffset int
	}{
		{
			name:       "move down within bounds no scroll",
			margin:     2,
			initial:    0,
			delta:      1,
			len:        10,
			height:     5,
			wantPos:    1,
			wantOffset: 0,
		},
		{
			name:       "move down triggers scroll with margin",
			margin:     2,
			initial:    0,
			delta:      3,
			len:        10,
			height:     5,
			wantPos:    3,
			wantOffset: 1,
		},
		{
			name:       "move up clamps to 0",
			margin:     2,
			initial:    2,
			delta:      -5,
			len:        10,
			height:     5,
			wantPos:    0,
			wantOffset: 0,
		},
		{
			name:       "move down clamps to len-1",
			margin:     2,
			initial:    5,
			delta:      15,
			len:        10,
			height:     5,
			wantPos:    9,
			wantOffset: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.pos = tt.initial
			c.Move(tt.delta, tt.len, List(tt.height))
			if c.Pos() != tt.wantPos {
				t.Errorf("Move() pos = %d, want %d", c.Pos(), tt.wantPos)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("Move() offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestMoveGrid(t *testing.T) {
	v := Viewport{Cols: 4, Rows: 2}
	tests := []struct {
		name       string
		initial    int
		rows       int
		wantPos    int
		wantOffset int
	}{
		{"down one row keeps column", 1, 1, 5, 0},
		{"down two rows scrolls", 1, 2, 9, 1},
		{"down past end clamps to last item", 5, 5, 13, 2},
		{"up from top clamps to 0", 2, -1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0)
			c.pos = tt.initial
			c.MoveRow(tt.rows, 14, v)
			if c.Pos() != tt.wantPos {
				t.Errorf("MoveRow() pos = %d, want %d", c.Pos(), tt.wantPos)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("MoveRow() offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestMarginShrinksForShortViewports(t *testing.T) {
	// With 2 rows a margin of 5 would pin the offset; it is capped at 0.
	c := New(5)
	v := Viewport{Cols: 3, Rows: 2}
	c.Move(3, 12, v)
	if c.Offset() != 0 {
		t.Errorf("offset = %d, want 0 (row 1 fits in view)", c.Offset())
	}
	c.Move(3, 12, v)
	if c.Offset() != 1 {
		t.Errorf("offset = %d, want 1", c.Offset())
	}
}

func TestMoveEmptyList(t *testing.T) {
	c := New(2)
	c.pos = 5
	c.Move(1, 0, List(5))
	if c.Pos() != 5 {
		t.Errorf("Move() on empty list changed pos to %d", c.Pos())
	}
}

func TestPage(t *testing.T) {
	c := New(0)
	v := Viewport{Cols: 2, Rows: 3}
	c.Page(1, 20, v)
	if c.Pos() != 6 {
		t.Errorf("Page(1) pos = %d, want 6", c.Pos())
	}
	c.Page(-1, 20, v)
	if c.Pos() != 0 {
		t.Errorf("Page(-1) pos = %d, want 0", c.Pos())
	}
}

func TestJump(t *testing.T) {
	c := New(0)
	v := Viewport{Cols: 3, Rows: 2}
	c.Jump(10, 12, v)
	if c.Pos() != 10 || c.Offset() != 2 {
		t.Errorf("Jump(10) = pos %d offset %d, want 10 and 2", c.Pos(), c.Offset())
	}
	c.Jump(99, 12, v)
	if c.Pos() != 11 {
		t.Errorf("Jump(99) pos = %d, want 11", c.Pos())
	}
	c.Jump(-3, 12, v)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("Jump(-3) = pos %d offset %d, want 0 and 0", c.Pos(), c.Offset())
	}
}

func TestJumpStartEnd(t *testing.T) {
	c := New(1)
	c.JumpEnd(30, List(10))
	if c.Pos() != 29 || c.Offset() != 20 {
		t.Errorf("JumpEnd = pos %d offset %d, want 29 and 20", c.Pos(), c.Offset())
	}
	c.JumpStart()
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("JumpStart = pos %d offset %d, want 0 and 0", c.Pos(), c.Offset())
	}
}

func TestEnsureVisibleAfterResize(t *testing.T) {
	c := New(0)
	c.Jump(11, 12, Viewport{Cols: 2, Rows: 2})
	if c.Offset() != 4 {
		t.Fatalf("offset = %d, want 4", c.Offset())
	}
	// Wider grid: item 11 is on row 2 of 3.
	c.EnsureVisible(12, Viewport{Cols: 4, Rows: 2})
	if c.Offset() != 1 {
		t.Errorf("offset after resize = %d, want 1", c.Offset())
	}
}

func TestClampToBounds(t *testing.T) {
	tests := []struct {
		name        string
		pos         int
		n           int
		wantPos     int
		wantChanged bool
	}{
		{"within bounds", 3, 10, 3, false},
		{"past end", 12, 10, 9, true},
		{"empty list resets", 4, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0)
			c.pos = tt.pos
			changed := c.ClampToBounds(tt.n)
			if c.Pos() != tt.wantPos {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.wantPos)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		n         int
		v         Viewport
		wantStart int
		wantEnd   int
	}{
		{"list first page", 0, 20, List(5), 0, 5},
		{"grid second row", 1, 10, Viewport{Cols: 3, Rows: 2}, 3, 9},
		{"grid last partial row", 2, 10, Viewport{Cols: 3, Rows: 2}, 6, 10},
		{"empty list", 0, 0, List(5), 0, 0},
		{"zero viewport", 0, 10, Viewport{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0)
			c.offset = tt.offset
			start, end := c.VisibleRange(tt.n, tt.v)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("VisibleRange() = (%d, %d), want (%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestReset(t *testing.T) {
	c := New(0)
	c.pos, c.offset = 7, 3
	c.Reset()
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("Reset() = pos %d offset %d", c.Pos(), c.Offset())
	}
}
