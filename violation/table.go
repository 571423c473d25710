package violation

import (
	"github.com/posolve-go/posolve/ordlist"
	"github.com/posolve-go/posolve/variable"
)

// Entry is one row of the violation table.
type Entry struct {
	Var       variable.ID
	Target    float64
	Priority  float64
	Suspended bool
}

// Less orders entries ascending by priority, so the highest-priority
// violation is always ordlist.List.Last(). Suspended entries sort below
// all non-suspended entries of equal priority, so a fresh descending pass
// reaches live candidates first.
func (e *Entry) Less(other ordlist.Item) bool {
	o := other.(*Entry)
	if e.Priority != o.Priority {
		return e.Priority < o.Priority
	}
	if e.Suspended != o.Suspended {
		return e.Suspended
	}
	return false
}

// Table is the violation table: a priority-ordered list of Entry plus a
// lookup from variable to its live entry.
type Table struct {
	list    *ordlist.List
	entries map[variable.ID]*Entry
}

// New returns an empty Table.
func New() *Table {
	return &Table{
		list:    ordlist.New(),
		entries: make(map[variable.ID]*Entry),
	}
}

// Len returns the number of entries currently tracked.
func (t *Table) Len() int { return t.list.Len() }

// Upsert adds v as violated with the given target and priority, or
// updates its existing entry and repositions it if the priority or
// target changed. It always clears Suspended.
func (t *Table) Upsert(v variable.ID, target, priority float64) {
	if e, ok := t.entries[v]; ok {
		e.Target = target
		e.Priority = priority
		e.Suspended = false
		t.list.Reposition(e)
		return
	}
	e := &Entry{Var: v, Target: target, Priority: priority}
	t.entries[v] = e
	t.list.Insert(e)
}

// Remove drops v from the table, reporting whether it was present.
func (t *Table) Remove(v variable.ID) bool {
	e, ok := t.entries[v]
	if !ok {
		return false
	}
	t.list.Remove(e)
	delete(t.entries, v)
	return true
}

// Suspend marks v suspended and repositions it below its priority peers,
// reporting whether v was present.
func (t *Table) Suspend(v variable.ID) bool {
	e, ok := t.entries[v]
	if !ok {
		return false
	}
	e.Suspended = true
	t.list.Reposition(e)
	return true
}

// Unsuspend clears v's suspended flag and repositions it, reporting
// whether v was present.
func (t *Table) Unsuspend(v variable.ID) bool {
	e, ok := t.entries[v]
	if !ok {
		return false
	}
	e.Suspended = false
	t.list.Reposition(e)
	return true
}

// Get returns v's entry and whether it is present.
func (t *Table) Get(v variable.ID) (*Entry, bool) {
	e, ok := t.entries[v]
	return e, ok
}

// Has reports whether v is currently tracked as violated.
func (t *Table) Has(v variable.ID) bool {
	_, ok := t.entries[v]
	return ok
}

// Last returns the highest-priority entry, or nil if the table is empty.
func (t *Table) Last() *Entry {
	it := t.list.Last()
	if it == nil {
		return nil
	}
	return it.(*Entry)
}

// NewCursor returns an ordlist.Cursor ready to walk the table in
// descending priority order.
func (t *Table) NewCursor() *ordlist.Cursor {
	return ordlist.NewCursor()
}

// Next advances cur over the table, returning the next unvisited entry.
func (t *Table) Next(cur *ordlist.Cursor) (*Entry, bool) {
	it, ok := cur.Next(t.list)
	if !ok {
		return nil, false
	}
	return it.(*Entry), true
}

// Entries returns a snapshot of every tracked entry, ascending priority.
func (t *Table) Entries() []*Entry {
	items := t.list.Items()
	out := make([]*Entry, len(items))
	for i, it := range items {
		out[i] = it.(*Entry)
	}
	return out
}
