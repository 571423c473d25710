package posolve

import (
	"math"

	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/rowstore"
	"github.com/posolve-go/posolve/variable"
)

// findFeasibleSolution loops reduceError while any row has nonzero inner
// product, bounded by maxReductionStepNum. A move with no finite
// stopping point while rows are still in error means the engine's own
// derivative bookkeeping is wrong, so it surfaces as a Fault rather
// than being committed.
func (e *Engine) findFeasibleSolution() *Fault {
	steps := 0
	for e.anyRowHasError() {
		steps++
		if steps > e.cfg.maxReductionStepNum {
			f := newFault(FaultStepCapExceeded, "maxReductionStepNum exceeded in findFeasibleSolution")
			e.cfg.observer.OnFault(f)
			return f
		}
		if e.reduceError() == reduceErrorUnboundedMove {
			f := newFault(FaultUnboundedMove, "unbounded move in feasibility")
			e.cfg.observer.OnFault(f)
			return f
		}
	}
	return nil
}

func (e *Engine) anyRowHasError() bool {
	for _, row := range e.rows.CombRowIDs() {
		if e.rows.InnerProduct(row) != 0 {
			return true
		}
	}
	return false
}

// reduceErrorResult is reduceError's five-way return: moved (or nothing
// to do), blocked (resistance-minimal, could not move), loopDetected
// (anti-cycling return, caller proceeds anyway), unboundedReached (an
// unbounded optimization target was recognized as reached), or
// unboundedMove (no finite stopping point where one was required — a
// fault in the caller's hands).
type reduceErrorResult int

const (
	reduceErrorMoved reduceErrorResult = iota
	reduceErrorBlocked
	reduceErrorLoopDetected
	reduceErrorUnboundedReached
	reduceErrorUnboundedMove
)

// reduceError first lets reduceResistance exchange the last
// variables-by-resistance entry with bound variables until it is
// resistance-minimal, then moves that candidate, together with the bound
// variables of the zero-error rows it appears in.
func (e *Engine) reduceError() reduceErrorResult {
	loopResult := e.reduceResistance()

	last := e.vbr.Last()
	if last == nil {
		return reduceErrorBlocked
	}
	entry := last.(*rvEntry)

	if e.optimizationActive && e.optimizationPriority <= entry.total {
		return reduceErrorBlocked
	}

	upward := entry.dir > 0
	selfMoveTo := e.segmentBoundary(entry.v, e.valueOf(entry.v), upward)
	selfMove := selfMoveTo - e.valueOf(entry.v)

	move, tight, unbounded := e.inducedMaxMove(entry, selfMove)
	if unbounded {
		if e.optimizationActive && math.IsInf(e.optimizationTarget, 0) {
			return reduceErrorUnboundedReached
		}
		return reduceErrorUnboundedMove
	}

	e.commitMove(entry, move, tight)

	if loopResult == reduceErrorLoopDetected {
		return reduceErrorLoopDetected
	}
	return reduceErrorMoved
}

type tightRow struct {
	row       rowstore.RowID
	errZeroed bool

	// When the row went tight because its bound variable hit a segment
	// boundary, boundVar/boundTarget record the exact boundary value, so
	// commitMove can set it directly instead of accumulating a delta.
	boundVar       variable.ID
	boundTarget    float64
	hasBoundTarget bool
}

// inducedMaxMove computes the smallest-magnitude move of entry.v across
// every row it participates in, bounded by its own next segment boundary,
// plus the rows that become tight at that move.
func (e *Engine) inducedMaxMove(entry *rvEntry, selfMove float64) (move float64, tight []tightRow, unbounded bool) {
	move = selfMove
	unbounded = math.IsInf(selfMove, 0)

	for _, row := range e.rows.ComponentIndex(entry.v) {
		cv, err := e.rows.GetValue(row, entry.v)
		if err != nil || cv == 0 {
			continue
		}

		errVal := e.rows.InnerProduct(row)
		var candidate float64
		var tr tightRow
		errZeroed := errVal != 0
		if errZeroed {
			candidate = -errVal / cv
			if sign(candidate) != 0 && sign(candidate) != entry.dir {
				continue
			}
			tr = tightRow{row: row, errZeroed: true}
		} else {
			b, ok := e.boundOfRow[row]
			if !ok || b == entry.v {
				continue
			}
			cb, err := e.rows.GetValue(row, b)
			if err != nil || cb == 0 {
				continue
			}
			deltaPerUnit := -cv / cb
			if deltaPerUnit == 0 {
				continue
			}
			bUpward := deltaPerUnit*entry.dir > 0
			bBoundary := e.segmentBoundary(b, e.valueOf(b), bUpward)
			if math.IsInf(bBoundary, 0) {
				continue
			}
			candidate = (bBoundary - e.valueOf(b)) / deltaPerUnit
			tr = tightRow{row: row, boundVar: b, boundTarget: bBoundary, hasBoundTarget: true}
		}

		switch {
		case math.IsInf(move, 0) || math.Abs(candidate) < math.Abs(move):
			move = candidate
			unbounded = false
			tight = []tightRow{tr}
		case candidate == move:
			tight = append(tight, tr)
		}
	}
	return move, tight, unbounded
}

// segmentBoundary returns the next point v would hit moving from from in
// the given direction. NextValue alone assumes v starts inside its
// windows, so when from is already outside them, the nearest boundary
// back toward compliance is used instead whenever that boundary lies in
// the requested direction; the raw NextValue answer is kept otherwise
// (moving further away from an already-violated window, or starting in
// bounds).
func (e *Engine) segmentBoundary(v variable.ID, from float64, upward bool) float64 {
	clamped := e.segments.ClampToWindows(v, from)
	if clamped != from && (clamped > from) == upward {
		return clamped
	}
	return e.segments.NextValue(v, from, upward)
}

// commitMove applies the chosen move to entry.v and every bound variable
// whose row's error or boundary became tight. Bound variables that made
// the move tight at a segment boundary are set to that boundary exactly;
// the rest take the induced delta.
func (e *Engine) commitMove(entry *rvEntry, move float64, tight []tightRow) {
	exact := make(map[rowstore.RowID]tightRow, len(tight))
	for _, tr := range tight {
		exact[tr.row] = tr
	}

	// Rows already carrying error absorb the move in their error term;
	// only the bound variables of zero-error rows follow v to keep those
	// rows satisfied.
	hadError := make(map[rowstore.RowID]bool)
	for _, row := range e.rows.ComponentIndex(entry.v) {
		if e.rows.InnerProduct(row) != 0 {
			hadError[row] = true
		}
	}

	e.setSolutionValue(entry.v, e.valueOf(entry.v)+move)

	for _, row := range e.rows.ComponentIndex(entry.v) {
		if hadError[row] {
			continue
		}
		b, ok := e.boundOfRow[row]
		if !ok || b == entry.v {
			continue
		}
		cv, err1 := e.rows.GetValue(row, entry.v)
		cb, err2 := e.rows.GetValue(row, b)
		if err1 != nil || err2 != nil || cv == 0 || cb == 0 {
			continue
		}
		if tr, tightHere := exact[row]; tightHere && tr.hasBoundTarget && tr.boundVar == b {
			e.setSolutionValue(b, tr.boundTarget)
		} else {
			delta := -cv * move / cb
			e.setSolutionValue(b, e.valueOf(b)+delta)
		}
		e.resist.CalcResistance(b, e.valueOf(b))
		e.resist.RefreshAfterBoundVarChange(b, e.dependentsOf(b))
		e.orgroups.UpdateSatisfaction(b, e.valueOf(b), false)
	}

	for _, tr := range tight {
		if tr.errZeroed {
			e.tracker.SetToZero(int(tr.row))
		}
	}

	e.resist.CalcResistance(entry.v, e.valueOf(entry.v))
	e.orgroups.UpdateSatisfaction(entry.v, e.valueOf(entry.v), false)

	e.refreshDerivativeAndVBR()
	e.reconcileViolations()
}

// refreshDerivativeAndVBR recomputes the derivative vector and rebuilds
// the variables-by-resistance list from scratch. A narrower, incremental
// refresh restricted to the derivative-sign-change and resistance-change
// sets is possible; this implementation takes the simpler, always-correct
// route of recomputing both in full each time a move or exchange commits,
// trading some throughput for not having to track derivative-sign-change
// sets explicitly.
//
// During optimization (e.optimizationActive), the derivative is the
// restricted optimization-derivative over e.optimizationVar
// rather than the general error-derivative of the total absolute
// error — this is what lets
// commitMove and exchange, called from inside reduceError during a
// optimize() pass, keep operating on the restricted vector instead of
// silently reverting to the feasibility-phase one.
func (e *Engine) refreshDerivativeAndVBR() {
	if e.optimizationActive {
		e.derivative = e.optimizationDerivative(e.optimizationVar, e.optimizationDir, e.optimizationPriority)
	} else {
		e.initializeDerivative()
	}
	for v := range e.derivative {
		if e.resist.NeedsTotalRecalc(v) {
			e.resist.SetTotalResistance(v, resistance.Up, e.computeTotalResistance(v, resistance.Up))
			e.resist.SetTotalResistance(v, resistance.Down, e.computeTotalResistance(v, resistance.Down))
			e.resist.ClearNeedsTotalRecalc(v)
		}
	}
	e.buildVariablesByResistance()
}
