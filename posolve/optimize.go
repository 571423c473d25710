package posolve

import (
	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/rowstore"
	"github.com/posolve-go/posolve/variable"
	"github.com/posolve-go/posolve/violation"
)

// optimize drives every tracked violation toward its preferred value, in
// descending priority order, reusing the same derivative/resistance
// machinery the feasibility phase uses. A violation that
// cannot move all the way to its target this pass is suspended and
// retried on the next pass, since an earlier, higher-priority move
// elsewhere in the same pass may have freed the row that was blocking
// it. A pass that makes no progress at all means every remaining
// violation is genuinely blocked, and optimize stops rather than spin.
func (e *Engine) optimize() *Fault {
	e.stepCounter = 0
	for {
		progressed := false
		cur := e.violations.NewCursor()
		for {
			entry, ok := e.violations.Next(cur)
			if !ok {
				break
			}
			if entry.Suspended {
				continue
			}
			e.stepCounter++
			if e.stepCounter > e.cfg.maxOptimizationSteps {
				f := newFault(FaultStepCapExceeded, "maxOptimizationSteps exceeded in optimize")
				e.cfg.observer.OnFault(f)
				return f
			}
			moved, fault := e.optimizeOne(entry)
			if fault != nil {
				return fault
			}
			if moved {
				progressed = true
			}
		}
		if !progressed {
			return nil
		}
		e.unsuspendAll()
	}
}

// optimizeOne handles a single violation:
// it builds the optimization-specific derivative vector (a bound v's row
// of free variables, or a free v's single self-entry), checks whether
// the derivative can move at all at this priority, and otherwise drives
// v toward entry.Target one reduceError() call at a time — the same
// resistance-reduction/exchange/commit machinery the feasibility phase
// uses, restricted for the duration to the variables this derivative
// names. Reports whether any progress was made (including "nothing to
// do") and a non-nil Fault if the internal step cap fired.
func (e *Engine) optimizeOne(entry *violation.Entry) (bool, *Fault) {
	v := entry.Var
	priority := entry.Priority

	if e.valueOf(v) == entry.Target {
		e.violations.Remove(v)
		e.resist.MarkViolationChanged(v)
		return true, nil
	}

	dirSign := 1.0
	if entry.Target < e.valueOf(v) {
		dirSign = -1.0
	}
	dir := resistance.Up
	if dirSign < 0 {
		dir = resistance.Down
	}
	if e.resist.GetResistance(v, dir) >= priority {
		e.suspendSelfBlocked(entry)
		e.violations.Suspend(v)
		return false, nil
	}

	if row, ok := e.bound[v]; ok {
		e.unblockRow(row)
	}
	delete(e.blocked, v)
	delete(e.selfBlocked, v)

	e.optimizationActive = true
	e.optimizationVar = v
	e.optimizationPriority = priority
	e.optimizationDir = dirSign
	e.optimizationTarget = entry.Target

	progressed := false
	for e.valueOf(v) != entry.Target {
		cur, has := e.violations.Get(v)
		if !has || cur.Priority != priority {
			break
		}

		e.refreshDerivativeAndVBR()
		blockedVars, allBlocked := e.optimizationResistanceBlockers(e.derivative, priority)
		if allBlocked {
			e.optimizationActive = false
			e.suspendByBlocked(entry, dirSign, blockedVars)
			e.violations.Suspend(v)
			return progressed, nil
		}

		e.stepCounter++
		if e.stepCounter > e.cfg.maxOptimizationSteps {
			e.optimizationActive = false
			f := newFault(FaultStepCapExceeded, "maxOptimizationSteps exceeded in optimize")
			e.cfg.observer.OnFault(f)
			return progressed, f
		}

		switch e.reduceError() {
		case reduceErrorBlocked:
			e.optimizationActive = false
			blockedVars, _ := e.optimizationResistanceBlockers(e.derivative, priority)
			e.suspendByBlocked(entry, dirSign, blockedVars)
			e.violations.Suspend(v)
			return progressed, nil
		case reduceErrorUnboundedReached:
			e.optimizationActive = false
			return true, nil
		case reduceErrorUnboundedMove:
			e.optimizationActive = false
			f := newFault(FaultUnboundedMove, "unbounded move in bounded optimization")
			e.cfg.observer.OnFault(f)
			return progressed, f
		case reduceErrorLoopDetected:
			e.optimizationActive = false
			return true, nil
		default:
			progressed = true
		}
	}

	e.optimizationActive = false
	if e.violations.Has(v) && e.valueOf(v) == entry.Target {
		e.violations.Remove(v)
		e.resist.MarkViolationChanged(v)
	}
	return progressed, nil
}

// optimizationDerivative builds the derivative vector a single
// violation's optimization works against. A free v
// contributes a single entry (d[v] = -direction); a bound v contributes
// one entry per other variable w in its row (d[w] = s*c_{r,w}, s =
// sign(direction*c_{r,v})), omitting any w already suspended at or above
// priority — a bound variable can only be moved by moving the free
// variables of its own row.
func (e *Engine) optimizationDerivative(v variable.ID, dirSign, priority float64) map[variable.ID]float64 {
	d := make(map[variable.ID]float64)

	row, bound := e.bound[v]
	if !bound {
		d[v] = -dirSign
		return d
	}

	cv, err := e.rows.GetValue(row, v)
	if err != nil || cv == 0 {
		return d
	}
	s := sign(dirSign * cv)

	entries, err := e.rows.CombRow(row)
	if err != nil {
		return d
	}
	for _, en := range entries {
		w := en.Var
		if w == v || e.suspendedAtOrAbove(w, priority) {
			continue
		}
		d[w] = s * en.Coeff
	}
	return d
}

// suspendedAtOrAbove reports whether w is currently recorded as blocked
// or self-blocked at a priority at or above priority, which excludes it
// from optimization derivatives at that priority.
func (e *Engine) suspendedAtOrAbove(w variable.ID, priority float64) bool {
	if sb, ok := e.selfBlocked[w]; ok && sb.resistance >= priority {
		return true
	}
	if be, ok := e.blocked[w]; ok && be.priority >= priority {
		return true
	}
	return false
}

// optimizationResistanceBlockers
// returns the set of derivative variables whose resistance in their
// error-reducing direction is at or above priority, and whether that set
// covers every nonzero entry — in which case nothing named by the
// derivative can move and the optimization is blocked.
func (e *Engine) optimizationResistanceBlockers(d map[variable.ID]float64, priority float64) (map[variable.ID]bool, bool) {
	blockers := make(map[variable.ID]bool)
	all := true
	for w, dw := range d {
		if dw == 0 {
			continue
		}
		errDir := resistance.Down
		if dw < 0 {
			errDir = resistance.Up
		}
		if e.resist.GetResistance(w, errDir) >= priority {
			blockers[w] = true
		} else {
			all = false
		}
	}
	return blockers, all
}

// suspendSelfBlocked records a violated variable that resists its own
// optimization direction at or above its priority — there is nothing
// row-shaped to blame, it simply cannot move.
func (e *Engine) suspendSelfBlocked(entry *violation.Entry) {
	e.selfBlocked[entry.Var] = &selfBlockedEntry{
		resistance: entry.Priority,
		blockedEq:  make(map[rowstore.RowID]bool),
	}
	e.cfg.observer.OnSuspend(entry.Var, entry.Priority)
}

// suspendByBlocked records why entry.Var could not move this
// optimization: if it is bound, its row
// becomes a blocking row and every free variable in that row is filed
// into exactly one of the three suspension tables — blocked by this row,
// already blocked elsewhere (this row joins its blockedEq set), or
// self-blocked. The invariant maintained throughout: w appears in
// equations[r].blocking iff r appears in blocked[w].blockedEq.
func (e *Engine) suspendByBlocked(entry *violation.Entry, dirSign float64, blockedVars map[variable.ID]bool) {
	v := entry.Var
	p := entry.Priority

	row, isBound := e.bound[v]
	if !isBound {
		e.suspendSelfBlocked(entry)
		return
	}

	eq := e.recordEquationSuspension(row, p, dirSign)

	resistDir := resistance.Up
	if dirSign < 0 {
		resistDir = resistance.Down
	}

	entries, err := e.rows.CombRow(row)
	if err != nil {
		return
	}
	for _, en := range entries {
		w := en.Var
		if w == v {
			continue
		}
		switch {
		case blockedVars[w] && e.resist.ViolatedBoundResistsFree(v, w, resistDir):
			be, wasBlocked := e.blocked[w]
			if !wasBlocked {
				delete(e.selfBlocked, w) // promote
				be = &blockedEntry{blockedEq: make(map[rowstore.RowID]bool)}
				e.blocked[w] = be
				be.priority = p
				be.blocking = row
				be.resistDir = dirSign
				be.relativeSign = sign(dirSign * en.Coeff)
			} else if prior, ok := e.equations[be.blocking]; ok && prior.suspensionID > eq.suspensionID {
				// Rebind to the earlier suspension so the blocking order
				// stays acyclic (higher priority, or equal priority and
				// lower suspension id).
				be.blocking = row
				be.priority = p
			}
			eq.blocked[w] = true
		case e.blocked[w] != nil:
			eq.blocking[w] = true
			e.blocked[w].blockedEq[row] = true
		case e.resist.GetResistance(w, resistance.Up) >= p && e.resist.GetResistance(w, resistance.Down) >= p:
			sb, ok := e.selfBlocked[w]
			if !ok {
				sb = &selfBlockedEntry{
					resistance: p,
					blockedEq:  make(map[rowstore.RowID]bool),
				}
				e.selfBlocked[w] = sb
			}
			sb.blockedEq[row] = true
			eq.selfBlocked[w] = true
		}
	}
	e.cfg.observer.OnSuspend(v, p)
}

// unblockRow removes row's blocking entry and detaches it from every
// variable-side table it participates in, keeping the "w in
// equations[r].blocking iff r in blocked[w].blockedEq" invariant intact:
// variables blocked solely by this row become unblocked, and rows those
// variables were in turn blocking lose that support.
func (e *Engine) unblockRow(row rowstore.RowID) {
	eq, ok := e.equations[row]
	if !ok {
		return
	}
	delete(e.equations, row)

	for w := range eq.blocked {
		be, ok := e.blocked[w]
		if !ok || be.blocking != row {
			continue
		}
		delete(e.blocked, w)
		for r2 := range be.blockedEq {
			if eq2, ok := e.equations[r2]; ok {
				delete(eq2.blocking, w)
			}
		}
	}
	for w := range eq.blocking {
		if be, ok := e.blocked[w]; ok {
			delete(be.blockedEq, row)
		}
	}
	for w := range eq.selfBlocked {
		if sb, ok := e.selfBlocked[w]; ok {
			delete(sb.blockedEq, row)
		}
	}
}

// unsuspendAll clears every violation's suspended flag and the blocked /
// selfBlocked bookkeeping built up over the pass that just ended, so the
// next pass gives every violation a fresh chance.
func (e *Engine) unsuspendAll() {
	for _, entry := range e.violations.Entries() {
		if entry.Suspended {
			e.violations.Unsuspend(entry.Var)
		}
	}
	e.blocked = make(map[variable.ID]*blockedEntry)
	e.selfBlocked = make(map[variable.ID]*selfBlockedEntry)
	e.equations = make(map[rowstore.RowID]*equationSuspension)
}

// recordEquationSuspension creates or refreshes the equationSuspension
// entry for row, assigning it a fresh monotonically increasing
// suspensionID the first time it becomes blocking. See DESIGN.md for how
// this bookkeeping relates to the fixed-point unsuspend strategy.
func (e *Engine) recordEquationSuspension(row rowstore.RowID, priority, dir float64) *equationSuspension {
	eq, ok := e.equations[row]
	if !ok {
		e.nextSuspensionID++
		eq = &equationSuspension{
			suspensionID: e.nextSuspensionID,
			blocked:      make(map[variable.ID]bool),
			blocking:     make(map[variable.ID]bool),
			selfBlocked:  make(map[variable.ID]bool),
		}
		e.equations[row] = eq
	}
	eq.optimizationPriority = priority
	eq.optimizationDir = dir
	if b, ok := e.boundOfRow[row]; ok {
		eq.boundVar = b
	}
	return eq
}
