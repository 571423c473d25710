package ordlist

import "sort"

// Item is anything that can be ordered and identified within a List.
// Identity is the Go interface value itself (typically a *T the caller
// also holds onto), used by Remove and by Cursor to recognize an item
// across reorderings.
type Item interface {
	// Less reports whether the receiver sorts before other.
	Less(other Item) bool
}

// List is a slice of Item kept sorted ascending by Less. The highest
// element under that order — Last() — is always the current candidate
// the pivot selection and suspension logic both want.
type List struct {
	items []Item
}

// New returns an empty List.
func New() *List { return &List{} }

// Len returns the number of items currently in the list.
func (l *List) Len() int { return len(l.items) }

// Insert adds it in sorted position.
func (l *List) Insert(it Item) {
	i := sort.Search(len(l.items), func(i int) bool { return !l.items[i].Less(it) })
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = it
}

// Remove deletes it from the list by identity, reporting whether it was
// found.
func (l *List) Remove(it Item) bool {
	for i, cur := range l.items {
		if cur == it {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Reposition removes it and reinserts it, for callers whose comparison
// key for it has just changed (e.g. a variable's total resistance was
// recomputed) and who need the list to reflect the new ordering.
func (l *List) Reposition(it Item) {
	l.Remove(it)
	l.Insert(it)
}

// Last returns the highest-sorted item, or nil if the list is empty.
func (l *List) Last() Item {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[len(l.items)-1]
}

// SecondLast returns the second-highest-sorted item, or nil if the list
// has fewer than two items.
func (l *List) SecondLast() Item {
	if len(l.items) < 2 {
		return nil
	}
	return l.items[len(l.items)-2]
}

// Items returns a snapshot of the list contents, ascending. Callers must
// not mutate the returned slice.
func (l *List) Items() []Item {
	return l.items
}

// Contains reports whether it is currently in the list, by identity.
func (l *List) Contains(it Item) bool {
	for _, cur := range l.items {
		if cur == it {
			return true
		}
	}
	return false
}
