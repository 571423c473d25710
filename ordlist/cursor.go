package ordlist

// Cursor walks a List in descending order (from Last() down to the
// lowest item) while the list is concurrently mutated: items removed,
// reinserted at a new position, or newly added. It never returns the
// same item twice in one pass, which is the one guarantee the
// optimization loop depends on — each violated variable is considered at
// most once per descending pass, whatever reordering the pass itself
// causes.
//
// A Cursor is single-use: construct a fresh one for each descending pass
// (posolve's optimization phase makes one per descending pass over the
// violations table).
type Cursor struct {
	visited map[Item]bool
}

// NewCursor returns a Cursor ready to walk l from the top.
func NewCursor() *Cursor {
	return &Cursor{visited: make(map[Item]bool)}
}

// Next returns the highest-sorted item in l that this cursor has not
// already returned, or (nil, false) once every item reachable has been
// visited. Because it re-scans l's current state each call, an item
// inserted after the cursor started — at any priority — is still picked
// up exactly once, in its correct descending-order turn.
func (c *Cursor) Next(l *List) (Item, bool) {
	for i := len(l.items) - 1; i >= 0; i-- {
		it := l.items[i]
		if !c.visited[it] {
			c.visited[it] = true
			return it, true
		}
	}
	return nil, false
}

// Visited reports whether it has already been returned by this cursor.
func (c *Cursor) Visited(it Item) bool {
	return c.visited[it]
}
