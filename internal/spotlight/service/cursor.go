package service

import "github.com/tbessa/spotlight/internal/catalog"

// rotationCursor holds the identity of the currently active item and an
// index hint. It is owned exclusively by the service run loop.
type rotationCursor struct {
	active    catalog.InventoryItem
	hasActive bool
	hint      int
}

// advance selects the next item from the flattened sequence. Returns false
// (and leaves state untouched) when the sequence is empty.
//
// If the active item is still present at position i, the next index is
// (i+1) mod len. If it vanished between ticks, the cursor falls back to its
// stored index hint so rotation speed is not disrupted by membership churn;
// the same hint fallback resumes rotation after an empty-to-nonempty
// transition. After a shrink this can skip or repeat one item; accepted
// behavior, see TestCursorShrinkMayRepeatOrSkip.
func (c *rotationCursor) advance(seq []catalog.InventoryItem) (catalog.InventoryItem, bool) {
	if len(seq) == 0 {
		return catalog.InventoryItem{}, false
	}

	next := c.hint % len(seq)
	if c.hasActive {
		for i, item := range seq {
			if item.ProductID == c.active.ProductID {
				next = (i + 1) % len(seq)
				break
			}
		}
	}

	c.active = seq[next]
	c.hasActive = true
	c.hint = next
	return c.active, true
}
