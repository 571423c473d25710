// Package innerproduct maintains, for a set of externally-owned sparse
// rows, the running value of row·x against a shared solution vector x.
// It owns no rows and no variable bookkeeping; rowstore and posolve
// drive it with the deltas produced by their own row edits and variable
// moves.
//
// The tracker keeps its own shadow copy of x so CalcInnerProducts can
// recompute a row from scratch, when rowstore repairs or rebuilds a
// combination row, without the
// caller re-threading the whole solution vector through every call.
//
// All arithmetic goes through Round, so a tracker and its caller apply
// the same zeroRounding policy uniformly: a single rounding rule in one
// place instead of ad-hoc epsilon comparisons scattered across every
// arithmetic path.
package innerproduct
