// Package violation holds the table of currently-violated variables the
// optimization phase works through: each entry names a variable, the
// target value it should move toward to stop violating its constraints,
// and whether it is currently suspended from consideration (because
// moving it was tried and failed this round, per posolve's blocked-variable
// bookkeeping).
//
// The table is kept in an ordlist.List ordered by priority so the next
// candidate to address is always its Last() entry, and supports being
// mutated — entries added, removed, resuspended — while a Cursor is
// mid-walk over it.
package violation
