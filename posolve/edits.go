package posolve

import (
	"github.com/posolve-go/posolve/variable"
)

// NamedEntry is one (variable name, nonzero coefficient) pair as supplied
// by callers, who address variables by name rather than by interned id.
type NamedEntry struct {
	Name  string
	Coeff float64
}

func (e *Engine) internRow(entries []NamedEntry) ([]variable.Entry, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyEquation
	}
	out := make([]variable.Entry, 0, len(entries))
	for _, ne := range entries {
		if ne.Coeff == 0 {
			continue
		}
		id, err := e.pool.Intern(ne.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, variable.Entry{Var: id, Coeff: ne.Coeff})
		e.noteVariableSeen(id)
	}
	if len(out) == 0 {
		return nil, ErrEmptyEquation
	}
	return out, nil
}

func (e *Engine) noteVariableSeen(v variable.ID) {
	if !e.knownVars[v] {
		e.knownVars[v] = true
		e.addedVars[v] = true
	}
}

// AddEquation adds a new base row with the given entries, returning its
// id. Zero-coefficient entries are dropped.
func (e *Engine) AddEquation(entries []NamedEntry) (EquationID, error) {
	row, err := e.internRow(entries)
	if err != nil {
		return 0, err
	}
	id, err := e.rows.NewVector(row)
	if err != nil {
		return 0, err
	}
	e.changedEquations[id] = true
	e.needToRefreshBoundVar[id] = true
	e.queueRowsOfBoundVars(row)
	return id, nil
}

// queueRowsOfBoundVars queues, for bound-variable refresh, every row
// whose bound variable appears in the just-added or just-edited entries:
// that variable is no longer exclusive to its own row until the next
// prepare pass re-eliminates it.
func (e *Engine) queueRowsOfBoundVars(row []variable.Entry) {
	for _, en := range row {
		if boundRow, ok := e.bound[en.Var]; ok {
			e.needToRefreshBoundVar[boundRow] = true
		}
	}
}

// SetEquation replaces the entries of an existing base row.
func (e *Engine) SetEquation(id EquationID, entries []NamedEntry) error {
	if !e.rows.HasRow(id) {
		return ErrUnknownEquation
	}
	row, err := e.internRow(entries)
	if err != nil {
		return err
	}
	affected, err := e.rows.SetVector(id, row)
	if err != nil {
		return err
	}
	e.changedEquations[id] = true
	for _, r := range affected {
		e.changedEquations[r] = true
		e.needToRefreshBoundVar[r] = true
	}
	e.queueRowsOfBoundVars(row)
	return nil
}

// RemoveEquation removes a base row. Per rowstore's removal algorithm one
// combination row is retired to keep the combination set independent;
// its bound variable, if any, becomes free and needs reselection.
func (e *Engine) RemoveEquation(id EquationID) error {
	if !e.rows.HasRow(id) {
		return ErrUnknownEquation
	}
	retired, hasRetired, err := e.rows.RemoveVector(id)
	if err != nil {
		return err
	}
	if hasRetired {
		if v, ok := e.boundOfRow[retired]; ok {
			delete(e.bound, v)
			delete(e.boundOfRow, retired)
		}
		delete(e.changedEquations, retired)
		delete(e.needToRefreshBoundVar, retired)
	}
	return nil
}

// TransferValue replaces one column of an existing base row in place —
// a single-column edit kept distinct from SetEquation because callers
// issue it when only one variable in a row changes (e.g. renaming a
// reference), letting rowstore reuse the rest of the row's entries
// unchanged. prevValue is the caller's record of the outgoing
// coefficient; a mismatch against the stored row means the caller's
// view of the equation is stale and the edit is refused.
func (e *Engine) TransferValue(id EquationID, prevName string, prevValue float64, newName string, newValue float64) error {
	row, err := e.rows.BaseRow(id)
	if err != nil {
		return err
	}
	rebuilt := make([]NamedEntry, 0, len(row)+1)
	prevID, hasPrev := e.pool.Lookup(prevName)
	for _, entry := range row {
		if hasPrev && entry.Var == prevID {
			if entry.Coeff != prevValue {
				return ErrStaleCoefficient
			}
			continue
		}
		name, err := e.pool.Name(entry.Var)
		if err != nil {
			return err
		}
		rebuilt = append(rebuilt, NamedEntry{Name: name, Coeff: entry.Coeff})
	}
	if newValue != 0 {
		rebuilt = append(rebuilt, NamedEntry{Name: newName, Coeff: newValue})
	}
	return e.SetEquation(id, rebuilt)
}
