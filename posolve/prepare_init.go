package posolve

import (
	"slices"

	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/variable"
)

// pruneUnreferencedVariables removes from the engine's own bookkeeping
// any variable no longer referenced by any live base row: a variable is
// destroyed the moment it no longer appears in any equation.
func (e *Engine) pruneUnreferencedVariables() {
	referenced := make(map[variable.ID]bool)
	for _, id := range e.rows.BaseRowIDs() {
		row, err := e.rows.BaseRow(id)
		if err != nil {
			continue
		}
		for _, entry := range row {
			referenced[entry.Var] = true
		}
	}
	for v := range e.knownVars {
		if referenced[v] {
			continue
		}
		e.removedVars[v] = true
		delete(e.knownVars, v)
		delete(e.addedVars, v)
		if row, ok := e.bound[v]; ok {
			delete(e.bound, v)
			delete(e.boundOfRow, row)
		}
		delete(e.solution, v)
		delete(e.solutionChanges, v)
		delete(e.vbrEntries, v)
		e.violations.Remove(v)
		e.resist.Forget(v)
		if name, err := e.pool.Name(v); err == nil {
			_ = e.pool.Remove(name)
		}
	}
}

// initializeValues implements step 2 of prepareAndSolve and returns
// whether any variable's value was (re)initialized this round.
func (e *Engine) initializeValues() bool {
	changed := false

	added := make([]variable.ID, 0, len(e.addedVars))
	for v := range e.addedVars {
		added = append(added, v)
	}
	slices.Sort(added)

	for _, v := range added {
		last, _ := e.poscalc.GetLastValue(v)
		preferred := e.segments.PreferredValue(v, last)
		e.setSolutionValue(v, preferred)
		e.resist.CalcResistance(v, preferred)
		e.orgroups.UpdateSatisfaction(v, preferred, false)
		changed = true
	}

	touched := e.segments.Changed()
	touched.InPlaceUnion(e.orgroups.Changed())

	for i, ok := touched.NextSet(0); ok; i, ok = touched.NextSet(i + 1) {
		v := variable.ID(i)
		if !e.knownVars[v] {
			continue
		}
		last := e.valueOf(v)
		verdict, _ := e.segments.AllowsMovement(v, resistance.Up, last)
		if verdict != resistance.Allowed {
			preferred := e.segments.PreferredValue(v, last)
			e.setSolutionValue(v, preferred)
		}
		e.resist.CalcResistance(v, e.valueOf(v))
		e.orgroups.UpdateSatisfaction(v, e.valueOf(v), false)
		changed = true
	}
	e.segments.Ack()
	e.orgroups.Ack()

	return changed
}

// hasPendingWork implements step 3: whether anything changed since the
// last solve that would justify running the rest of the pipeline.
func (e *Engine) hasPendingWork(changedByInit bool) bool {
	if changedByInit {
		return true
	}
	if len(e.changedEquations) > 0 || len(e.needToRefreshBoundVar) > 0 {
		return true
	}
	if len(e.addedVars) > 0 || len(e.removedVars) > 0 {
		return true
	}
	return false
}

// normalize implements step 4: rescale any combination row whose
// coefficient magnitude has drifted past the configured threshold.
func (e *Engine) normalize() {
	for _, row := range e.rows.NormalizationCandidates() {
		factor := e.rows.StabilizingFactor(row)
		_ = e.rows.Normalize(row, factor)
	}
}
