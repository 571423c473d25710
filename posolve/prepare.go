package posolve

import (
	"slices"

	"github.com/posolve-go/posolve/rowstore"
	"github.com/posolve-go/posolve/variable"
)

// prepareAndSolve runs the prepare phase, then feasibility, then
// optimization. It returns nil if nothing needed solving this round.
func (e *Engine) prepareAndSolve() *Fault {
	e.rows.RepairCombinations(e.cfg.zeroRounding * 1000)

	e.pruneUnreferencedVariables()
	changedByInit := e.initializeValues()

	if !e.hasPendingWork(changedByInit) {
		return nil
	}

	e.normalize()

	if err := e.assignBoundVariables(); err != nil {
		return newFault(FaultUnboundedMove, err.Error())
	}

	e.refreshResistanceForChangedEquations()

	e.reduceTrivialErrors()
	e.initializeDerivative()
	e.finishResistanceInit()
	e.buildVariablesByResistance()

	if fault := e.findFeasibleSolution(); fault != nil {
		return fault
	}

	if fault := e.optimize(); fault != nil {
		return fault
	}

	e.setResistanceForNextRound()

	e.changedEquations = make(map[rowstore.RowID]bool)
	e.needToRefreshBoundVar = make(map[rowstore.RowID]bool)
	e.addedVars = make(map[variable.ID]bool)
	e.removedVars = make(map[variable.ID]bool)
	return nil
}

// refreshResistanceForChangedEquations re-derives resistance for every
// variable appearing in an equation edited since the last solve: an
// edit can change which bound variables induce resistance through a row
// even when no variable's own constraints moved.
func (e *Engine) refreshResistanceForChangedEquations() {
	if len(e.changedEquations) == 0 {
		return
	}
	seen := make(map[variable.ID]bool)
	var vars []variable.ID
	rows := make([]rowstore.RowID, 0, len(e.changedEquations))
	for row := range e.changedEquations {
		rows = append(rows, row)
	}
	slices.Sort(rows)
	for _, row := range rows {
		entries, err := e.rows.CombRow(row)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if seen[entry.Var] {
				continue
			}
			seen[entry.Var] = true
			vars = append(vars, entry.Var)
		}
	}
	e.resist.RefreshAfterEquationChange(vars)
}
