package posolve

import (
	"slices"

	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/rowstore"
	"github.com/posolve-go/posolve/variable"
)

// resistanceGivenDirection returns v's own resistance that would apply if
// the row containing v with coefficient c is driven in direction d
// (+1/-1): down-resistance when c*d > 0, else up-resistance.
func (e *Engine) resistanceGivenDirection(v variable.ID, c, d float64) float64 {
	if c*d > 0 {
		return e.resist.GetResistance(v, resistance.Down)
	}
	return e.resist.GetResistance(v, resistance.Up)
}

// findBoundVarCandidate implements a lexicographic
// bound-variable selection rule over row's combination entries.
//
// The rule selects the coordinate-wise-minimal candidate(s) under the
// pair (resistance assuming the row is driven up, resistance assuming it
// is driven down) and, among ties, the one appearing in fewest
// combination rows. A coordinate-wise partial order can have several
// incomparable minima; this implementation resolves that by picking the
// smallest sum of the pair as a total order consistent with the partial
// one, which is the simplification documented for this rule.
func (e *Engine) findBoundVarCandidate(row rowstore.RowID) (variable.ID, bool, error) {
	entries, err := e.rows.CombRow(row)
	if err != nil {
		return 0, false, err
	}
	if len(entries) == 0 {
		return 0, false, nil
	}

	ip := e.rows.InnerProduct(row)
	d := -sign(ip)

	var (
		best      variable.ID
		bestFound bool
		bestScore float64
		bestCount int
	)

	for _, entry := range entries {
		v, c := entry.Var, entry.Coeff
		if boundRow, isBound := e.bound[v]; isBound && boundRow != row {
			// Already carrying another row's residual; its presence here
			// is transient until that row re-eliminates it.
			continue
		}
		var a, b float64
		if d != 0 {
			a = e.resistanceGivenDirection(v, c, d)
			b = a
		} else {
			a = e.resistanceGivenDirection(v, c, 1)
			b = e.resistanceGivenDirection(v, c, -1)
		}
		score := a + b
		count := len(e.rows.ComponentIndex(v))

		if !bestFound || score < bestScore || (score == bestScore && count < bestCount) {
			best, bestFound, bestScore, bestCount = v, true, score, count
		}
	}
	return best, bestFound, nil
}

// assignBoundVariables implements step 5 of prepareAndSolve: rows whose
// current bound variable still appears in the row are re-eliminated so it
// remains exclusive; rows with no valid bound variable get one chosen by
// findBoundVarCandidate and then Gaussian-eliminated.
func (e *Engine) assignBoundVariables() error {
	pending := make([]rowstore.RowID, 0, len(e.needToRefreshBoundVar))
	for row := range e.needToRefreshBoundVar {
		pending = append(pending, row)
	}
	slices.Sort(pending)

	for _, row := range pending {
		if !e.rows.HasCombRow(row) {
			delete(e.needToRefreshBoundVar, row)
			continue
		}

		if v, ok := e.boundOfRow[row]; ok {
			val, err := e.rows.GetValue(row, v)
			if err != nil {
				return err
			}
			if val != 0 {
				if _, err := e.rows.Eliminate(v, row); err != nil {
					return err
				}
				delete(e.needToRefreshBoundVar, row)
				continue
			}
			delete(e.bound, v)
			delete(e.boundOfRow, row)
		}

		v, found, err := e.findBoundVarCandidate(row)
		if err != nil {
			return err
		}
		if !found {
			delete(e.needToRefreshBoundVar, row)
			continue
		}
		if _, err := e.rows.Eliminate(v, row); err != nil {
			return err
		}
		e.bound[v] = row
		e.boundOfRow[row] = v
		delete(e.needToRefreshBoundVar, row)
		e.cfg.observer.OnPivot(v, row)
	}
	return nil
}
