package selector

// NoActive is the cursor sentinel for "no highlighted candidate".
const NoActive = -1

// Cursor tracks which row of the filtered view is highlighted. It is
// re-clamped after every view recomputation so it can never point past
// the end of a shrunk list.
type Cursor struct {
	index int
	wrap  bool
}

// NewCursor returns a cursor at the sentinel. wrap selects cyclic
// navigation; the default elsewhere is saturating, which keeps "down"
// on the last item from jumping back to the top.
func NewCursor(wrap bool) Cursor {
	return Cursor{index: NoActive, wrap: wrap}
}

// Index returns the current position, or NoActive.
func (c *Cursor) Index() int {
	return c.index
}

// Reset returns the cursor to the sentinel.
func (c *Cursor) Reset() {
	c.index = NoActive
}

// Clamp forces the cursor into [0, viewLen-1], or to the sentinel when
// the view is empty. A sentinel cursor lands on the first row.
func (c *Cursor) Clamp(viewLen int) {
	if viewLen <= 0 {
		c.index = NoActive
		return
	}
	if c.index < 0 {
		c.index = 0
	}
	if c.index > viewLen-1 {
		c.index = viewLen - 1
	}
}

// Move shifts the cursor by delta within a view of the given length,
// saturating at both ends unless wrap is configured.
func (c *Cursor) Move(delta, viewLen int) {
	if viewLen <= 0 {
		c.index = NoActive
		return
	}
	if c.index < 0 {
		// First movement lands on an end rather than skipping past it.
		if delta > 0 {
			c.index = 0
		} else {
			c.index = viewLen - 1
		}
		return
	}
	next := c.index + delta
	if c.wrap {
		next = ((next % viewLen) + viewLen) % viewLen
		c.index = next
		return
	}
	if next < 0 {
		next = 0
	}
	if next > viewLen-1 {
		next = viewLen - 1
	}
	c.index = next
}

// Set places the cursor on a specific row, clamped to the view.
func (c *Cursor) Set(i, viewLen int) {
	c.index = i
	c.Clamp(viewLen)
}
