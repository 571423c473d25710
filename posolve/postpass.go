package posolve

import (
	"github.com/posolve-go/posolve/rowstore"
	"github.com/posolve-go/posolve/variable"
)

// setResistanceForNextRound closes out a solve round: every known
// variable's final value becomes the "settled" value or-group
// satisfaction is measured against going forward, the per-round change
// bitsets are drained so they only ever report what changed since the
// round that just finished, cached total-resistance figures are dropped
// (they embed this round's bound assignments, which the next round's
// edits may invalidate), and the per-round suspension bookkeeping is
// cleared so the next round starts from a clean slate.
func (e *Engine) setResistanceForNextRound() {
	for v := range e.knownVars {
		e.resist.SetStableValue(v, e.valueOf(v))
	}

	e.resist.AckResistanceChanged()
	e.resist.AckSatOrGroupResistanceChanged()
	e.resist.AckTotalResistanceChanged()
	e.resist.AckViolationChanged()
	e.resist.ClearTotals()

	e.blocked = make(map[variable.ID]*blockedEntry)
	e.selfBlocked = make(map[variable.ID]*selfBlockedEntry)
	e.equations = make(map[rowstore.RowID]*equationSuspension)
	e.nextSuspensionID = 0
	e.stepCounter = 0
}
