package posolve

// Solve runs a full round: preparing any buffered edits, finding a
// feasible assignment, and optimizing violated preferences, in that
// order. It returns nil if nothing needed solving, or a non-nil Fault if
// a step cap was hit or a move proved unbounded. Solve is not reentrant
// and not safe to call concurrently with itself or with the Add/Set/
// Remove/TransferValue edit methods.
func (e *Engine) Solve() *Fault {
	return e.prepareAndSolve()
}
