package posolve

import (
	"math"

	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/variable"
)

// exchangeRecord is the per-ordered-pair anti-cycling bookkeeping for
// one reduceResistance cycle: how many times the pair has exchanged, at
// which step it last did, and the step gap between its two most recent
// exchanges.
type exchangeRecord struct {
	count     int
	lastStep  int
	lastDelta int
}

// loopTrace follows a suspected exchange cycle: once some pair repeats
// at a steady step interval, the trace records that pair and the minimum
// total resistance seen since; returning to the traced pair while the
// list minimum equals that recorded minimum means the cycle has been
// walked end to end without improvement.
type loopTrace struct {
	active   bool
	key      exchangeKey
	minTotal float64
}

// reduceResistance repeatedly exchanges the current last
// variables-by-resistance entry with a bound variable until its own
// resistance is minimal (equal to its total resistance, with no
// satisfied-or-group enlargement still pending), or until an exchange
// loop is detected. On loop detection the caller accepts the current
// list state as the best available within the loop and proceeds.
func (e *Engine) reduceResistance() reduceErrorResult {
	exchanges := make(map[exchangeKey]*exchangeRecord)
	var trace loopTrace
	step := 0
	e.satOrGroupVariables = make(map[variable.ID]bool)

	for {
		last := e.vbr.Last()
		if last == nil {
			return reduceErrorMoved
		}
		entry := last.(*rvEntry)

		if e.optimizationActive && e.optimizationPriority <= entry.own {
			return reduceErrorMoved
		}

		if entry.own >= entry.total {
			// The bound-induced figure no longer exceeds own; whether the
			// candidate is minimal now hinges on its satisfied-or-group
			// resistance alone.
			dir := resistance.Up
			if entry.dir < 0 {
				dir = resistance.Down
			}
			satRes := e.resist.GetSatOrGroupResistance(entry.v, dir)
			if satRes <= entry.own {
				return reduceErrorMoved
			}
			if e.satOrGroupVariables[entry.v] {
				// Already repositioned or exchanged for its group this
				// cycle; treat as settled rather than oscillate.
				return reduceErrorMoved
			}
			if !e.scheduleSatOrGroupExchange(entry, satRes) {
				continue
			}
		}

		b, ok := e.chooseExchangeTarget(entry, exchanges)
		if !ok {
			return reduceErrorMoved
		}

		key := exchangeKey{free: entry.v, bound: b}
		rec := exchanges[key]
		if rec == nil {
			rec = &exchangeRecord{}
			exchanges[key] = rec
		}
		rec.count++
		if rec.count > e.cfg.maxRepeatExchanges {
			return reduceErrorLoopDetected
		}

		step++
		delta := step - rec.lastStep
		if rec.count > 2 && delta == rec.lastDelta {
			// This pair is repeating at a steady interval: a candidate
			// loop is being traced.
			if !trace.active {
				trace = loopTrace{active: true, key: key, minTotal: entry.total}
			} else {
				if entry.total < trace.minTotal {
					trace.minTotal = entry.total
				}
				if key == trace.key && entry.total == trace.minTotal {
					return reduceErrorLoopDetected
				}
			}
		} else if trace.active && key == trace.key {
			// The traced pair broke its pattern; clear the trace.
			trace = loopTrace{}
		}
		rec.lastDelta = delta
		rec.lastStep = step

		if err := e.exchange(entry.v, b); err != nil {
			return reduceErrorMoved
		}
		e.cfg.observer.OnExchange(entry.v, b)
	}
}

// chooseExchangeTarget resolves which bound variable the candidate
// should exchange with. When the candidate's resisting row is due to a
// satisfied or-group, a bound variable of that group that has not yet
// been exchanged this cycle is preferred (anti-cycling), then any bound
// member of the group whose row contains the candidate; otherwise the
// recorded resistingVar is used.
func (e *Engine) chooseExchangeTarget(entry *rvEntry, exchanged map[exchangeKey]*exchangeRecord) (variable.ID, bool) {
	if entry.hasResistingGroup {
		var fallback variable.ID
		haveFallback := false
		for _, m := range e.orgroups.SatisfiedVariables(entry.resistingOrGroup) {
			row, isBound := e.bound[m]
			if !isBound {
				continue
			}
			if c, err := e.rows.GetValue(row, entry.v); err != nil || c == 0 {
				continue
			}
			if rec := exchanged[exchangeKey{free: entry.v, bound: m}]; rec == nil || rec.count == 0 {
				return m, true
			}
			if !haveFallback {
				fallback, haveFallback = m, true
			}
		}
		if haveFallback {
			return fallback, true
		}
	}
	if entry.hasResistingVar {
		return entry.resistingVar, true
	}
	return 0, false
}

// scheduleSatOrGroupExchange handles a candidate whose remaining
// resistance comes from a satisfied or-group: it
// computes the upper bound U on useful resistance, simulates the
// post-exchange derivative for every row where v* shares an or-group
// with that row's bound variable, and schedules the exchange yielding
// the smallest resulting resistance if that beats U. Otherwise v* is
// repositioned under its or-group-augmented resistance for the caller
// to re-evaluate. Returns true if an exchange was scheduled (the caller
// should proceed to the exchange step using entry.resistingVar), false
// if entry was repositioned (the caller should re-fetch vbr.Last() and
// loop).
func (e *Engine) scheduleSatOrGroupExchange(entry *rvEntry, satRes float64) bool {
	u := satRes
	if second, ok := e.vbr.SecondLast().(*rvEntry); ok && second != nil && second.own < u {
		u = second.own
	}
	if e.optimizationActive && e.optimizationPriority < u {
		u = e.optimizationPriority
	}

	dStar, hasDStar := e.derivative[entry.v]
	if hasDStar && dStar != 0 {
		bestB, bestRes, found := e.bestSatOrGroupExchange(entry.v, dStar)
		if found && bestRes < u {
			entry.resistingVar = bestB
			entry.hasResistingVar = true
			e.satOrGroupVariables[bestB] = true
			return true
		}
	}

	entry.own = satRes
	entry.total = satRes
	e.satOrGroupVariables[entry.v] = true
	e.vbr.Reposition(entry)
	return false
}

// bestSatOrGroupExchange scans every row v appears in whose bound
// variable shares an or-group with v, simulating the post-exchange
// derivative `d'_w = d_w - d_v*c_{r,w}/c_{r,v}` for every other variable
// w in that row. A row contributes a candidate exchange (against its
// bound variable b) at the smallest resistance among the w's whose
// derivative sign actually flips under the simulated exchange. Returns
// the bound variable of the globally smallest such candidate, its
// resistance, and whether any candidate was found at all.
func (e *Engine) bestSatOrGroupExchange(v variable.ID, dStar float64) (variable.ID, float64, bool) {
	var bestB variable.ID
	bestRes := math.Inf(1)
	found := false

	for _, row := range e.rows.ComponentIndex(v) {
		b, ok := e.boundOfRow[row]
		if !ok || !e.sharesOrGroup(v, b) {
			continue
		}
		cv, err := e.rows.GetValue(row, v)
		if err != nil || cv == 0 {
			continue
		}
		entries, err := e.rows.CombRow(row)
		if err != nil {
			continue
		}
		for _, en := range entries {
			w := en.Var
			if w == v || w == b {
				continue
			}
			dw := e.derivative[w]
			dPrime := dw - dStar*en.Coeff/cv
			if dPrime == 0 || sign(dPrime) == sign(dw) {
				continue
			}
			errDir := resistance.Down
			if dPrime < 0 {
				errDir = resistance.Up
			}
			res := e.resist.GetResistance(w, errDir)
			if res < bestRes {
				bestRes = res
				bestB = b
				found = true
			}
		}
	}
	return bestB, bestRes, found
}

func (e *Engine) sharesOrGroup(a, b variable.ID) bool {
	if !e.segments.HasOrGroups(a) || !e.segments.HasOrGroups(b) {
		return false
	}
	groupsOf := func(v variable.ID) map[int]bool {
		set := make(map[int]bool)
		for _, g := range e.orgroups.GroupsOf(v) {
			set[g] = true
		}
		return set
	}
	ag := groupsOf(a)
	for _, g := range e.orgroups.GroupsOf(b) {
		if ag[g] {
			return true
		}
	}
	return false
}

// exchange removes b from the bound tables, makes v bound in b's row via
// Gaussian elimination, and refreshes the affected bookkeeping.
func (e *Engine) exchange(v, b variable.ID) error {
	row, ok := e.bound[b]
	if !ok {
		return ErrUnknownVariable
	}

	delete(e.bound, b)
	delete(e.boundOfRow, row)

	if _, err := e.rows.Eliminate(v, row); err != nil {
		return err
	}

	e.bound[v] = row
	e.boundOfRow[row] = v

	dependents := e.dependentsOf(v)
	e.resist.RefreshAfterBoundVarAdded(v, dependents)
	e.resist.RefreshAfterBoundVarRemoved(b, dependents)
	e.resist.CalcResistance(v, e.valueOf(v))
	e.resist.CalcResistance(b, e.valueOf(b))

	e.refreshDerivativeAndVBR()
	return nil
}

// dependentsOf returns the free variables sharing a combination row with
// v, used to mark total-resistance recalculation after v's bound status
// changes.
func (e *Engine) dependentsOf(v variable.ID) []variable.ID {
	var out []variable.ID
	seen := make(map[variable.ID]bool)
	for _, row := range e.rows.ComponentIndex(v) {
		entries, err := e.rows.CombRow(row)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.Var == v || seen[entry.Var] {
				continue
			}
			seen[entry.Var] = true
			out = append(out, entry.Var)
		}
	}
	return out
}
