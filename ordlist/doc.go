// Package ordlist provides a sorted list that tolerates being mutated
// while a caller is mid-iteration over it. Both the violations table and
// the variables-by-resistance table are inserted into, removed from, and
// reordered by the very code that iterates them, so the usual
// slice-snapshot iteration patterns do not apply.
//
// List keeps its items sorted by Item.Less so the current candidate is
// always List.Last(). A Cursor walks a list from Last() downward without
// re-visiting an item that was already returned, however many times the
// list is reordered in between calls to Next — the order the
// optimization phase needs to take violations in decreasing priority.
package ordlist
