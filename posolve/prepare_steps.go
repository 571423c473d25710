package posolve

import (
	"slices"

	"github.com/posolve-go/posolve/ordlist"
	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/variable"
)

// reduceTrivialErrors implements step 6 of prepareAndSolve: any row whose
// bound variable offers no resistance to the move needed to zero its
// error is moved immediately, without going through the full resistance
// pivot machinery.
func (e *Engine) reduceTrivialErrors() {
	for _, row := range e.rows.CombRowIDs() {
		boundVar, ok := e.boundOfRow[row]
		if !ok {
			continue
		}
		errVal := e.rows.InnerProduct(row)
		if errVal == 0 {
			continue
		}
		c, err := e.rows.GetValue(row, boundVar)
		if err != nil || c == 0 {
			continue
		}
		delta := -errVal / c
		dir := resistance.Up
		if delta < 0 {
			dir = resistance.Down
		}
		if e.resist.GetResistance(boundVar, dir) != 0 {
			continue
		}
		newVal := e.valueOf(boundVar) + delta
		e.setSolutionValue(boundVar, newVal)
		e.tracker.SetToZero(int(row))
		e.resist.CalcResistance(boundVar, newVal)
		e.orgroups.UpdateSatisfaction(boundVar, newVal, false)
	}
}

// initializeDerivative seeds the error-derivative vector: the gradient
// of the total absolute error, i.e. the signed sum of rows weighted by
// sign(e_r).
func (e *Engine) initializeDerivative() {
	e.derivative = make(map[variable.ID]float64)
	for _, row := range e.rows.CombRowIDs() {
		s := sign(e.rows.InnerProduct(row))
		if s == 0 {
			continue
		}
		entries, err := e.rows.CombRow(row)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			e.derivative[entry.Var] += s * entry.Coeff
		}
	}
	for v, d := range e.derivative {
		if d == 0 {
			delete(e.derivative, v)
		}
	}
}

// computeTotalResistance derives v's total resistance in dir: v's own
// resistance, or the resistance induced by a bound variable of a
// zero-error row v appears in, whichever is larger. v's own
// satisfied-or-group resistance is deliberately NOT folded into this
// figure — reduceResistance weighs it separately against the
// (own, total) pair, and folding it in here would make the
// or-group-mediated exchange branch unreachable (own >= total would
// then imply satRes <= own). A bound variable's contribution does
// include its satisfied-or-group resistance, since moving the bound
// variable is what would break that group; when the group is the
// binding reason, the responsible group travels along in the result so
// the exchange-target selection can prefer a bound member of that
// group. Induction is resolved one hop at a time via each bound
// variable's own already-cached total resistance, rather than a full
// recursive chain walk — a bound chain longer than two hops is rare in
// practice and a stale one-hop figure is corrected on the next round
// once the deeper bound variable's total resistance itself gets
// recomputed.
func (e *Engine) computeTotalResistance(v variable.ID, dir resistance.Direction) resistance.Total {
	best := resistance.Total{Resistance: e.resist.GetResistance(v, dir)}

	for _, row := range e.rows.ComponentIndex(v) {
		if e.rows.InnerProduct(row) != 0 {
			continue
		}
		b, ok := e.boundOfRow[row]
		if !ok || b == v {
			continue
		}
		cv, err1 := e.rows.GetValue(row, v)
		cb, err2 := e.rows.GetValue(row, b)
		if err1 != nil || err2 != nil || cv == 0 || cb == 0 {
			continue
		}

		bDir := dir
		if (-cv / cb) < 0 {
			bDir = dir.Opposite()
		}

		var bRes float64
		if cached, ok := e.resist.GetTotalResistance(b, bDir); ok {
			bRes = cached.Resistance
		} else {
			bRes = e.resist.GetResistanceWithSatOrGroups(b, bDir)
		}
		if bRes > best.Resistance {
			best = resistance.Total{Resistance: bRes, ResistingVar: b, HasResistingVar: true}
			if e.resist.GetSatOrGroupResistance(b, bDir) > e.resist.GetResistance(b, bDir) {
				if g, ok := e.resist.SatOrGroupSource(b, bDir); ok {
					best.ResistingGroup = g
					best.HasResistingGroup = true
				}
			}
		}
	}
	return best
}

// sortedKnownVars returns the engine's live variables ascending by id —
// the stable iteration order every per-variable sweep in the pipeline
// uses, so that ties (equal priorities, equal resistances) resolve the
// same way on every run.
func (e *Engine) sortedKnownVars() []variable.ID {
	out := make([]variable.ID, 0, len(e.knownVars))
	for v := range e.knownVars {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// finishResistanceInit implements step 8: pending total/or-group
// resistance calculations, and violation table reconciliation.
func (e *Engine) finishResistanceInit() {
	for _, v := range e.sortedKnownVars() {
		if !e.resist.NeedsTotalRecalc(v) {
			continue
		}
		e.resist.SetTotalResistance(v, resistance.Up, e.computeTotalResistance(v, resistance.Up))
		e.resist.SetTotalResistance(v, resistance.Down, e.computeTotalResistance(v, resistance.Down))
		e.resist.ClearNeedsTotalRecalc(v)
	}
	e.reconcileViolations()
}

func (e *Engine) reconcileViolations() {
	for _, v := range e.sortedKnownVars() {
		val := e.valueOf(v)
		verdict, _ := e.segments.AllowsMovement(v, resistance.Up, val)
		if verdict == resistance.Allowed {
			if e.violations.Remove(v) {
				e.resist.MarkViolationChanged(v)
			}
			continue
		}
		target := e.segments.PreferredValue(v, val)
		if verdict, _ := e.segments.AllowsMovement(v, resistance.Up, target); verdict != resistance.Allowed {
			target = e.segments.ClampToWindows(v, target)
		}
		priority := e.resist.GetUpResistance(v)
		if down := e.resist.GetDownResistance(v); down > priority {
			priority = down
		}
		wasPresent := e.violations.Has(v)
		e.violations.Upsert(v, target, priority)
		if !wasPresent {
			e.resist.MarkViolationChanged(v)
		}
	}
}

// buildVariablesByResistance implements step 9: one entry per variable
// with nonzero error-derivative, keyed (own, total) in the error-reducing
// direction.
func (e *Engine) buildVariablesByResistance() {
	e.vbr = ordlist.New()
	e.vbrEntries = make(map[variable.ID]*rvEntry)

	vars := make([]variable.ID, 0, len(e.derivative))
	for v := range e.derivative {
		vars = append(vars, v)
	}
	slices.Sort(vars)

	for _, v := range vars {
		d := e.derivative[v]
		// d > 0 means increasing v increases total error, so the
		// error-reducing direction is Down, and vice versa.
		errDir := resistance.Down
		dirSign := -1.0
		if d < 0 {
			errDir = resistance.Up
			dirSign = 1.0
		}
		total, ok := e.resist.GetTotalResistance(v, errDir)
		if !ok {
			total = e.computeTotalResistance(v, errDir)
			e.resist.SetTotalResistance(v, errDir, total)
		}
		entry := &rvEntry{
			v:                 v,
			dir:               dirSign,
			own:               e.resist.GetResistance(v, errDir),
			total:             total.Resistance,
			resistingVar:      total.ResistingVar,
			hasResistingVar:   total.HasResistingVar,
			resistingOrGroup:  total.ResistingGroup,
			hasResistingGroup: total.HasResistingGroup,
		}
		e.vbrEntries[v] = entry
		e.vbr.Insert(entry)
	}
}
