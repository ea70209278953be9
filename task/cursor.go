package task

import "sync/atomic"

// Cursor hands out row indices in [0, limit) to any number of goroutines. Each index is
// handed out exactly once; a claim past the end, or after Abort, reports no more work.
type Cursor struct {
	aborted atomic.Bool
	limit   int64
	next    atomic.Int64
}

func NewCursor(limit int) *Cursor {
	return &Cursor{limit: int64(limit)}
}

// Next claims the next row. The second return value is false when no rows are left.
func (c *Cursor) Next() (int, bool) {
	if c.Aborted() {
		return 0, false
	}
	row := c.next.Add(1) - 1
	if row >= c.limit {
		return 0, false
	}
	return int(row), true
}

// Abort stops the cursor from handing out any further rows.
func (c *Cursor) Abort() {
	c.aborted.Store(true)
}

func (c *Cursor) Aborted() bool {
	return c.aborted.Load()
}

// Claimed returns how many rows have been handed out so far.
func (c *Cursor) Claimed() int {
	claimed := c.next.Load()
	if claimed > c.limit {
		claimed = c.limit
	}
	return int(claimed)
}
