package posolve

import "github.com/posolve-go/posolve/variable"

// HasVariable reports whether name has been interned as a variable the
// engine currently tracks.
func (e *Engine) HasVariable(name string) bool {
	id, ok := e.pool.Lookup(name)
	if !ok {
		return false
	}
	return e.knownVars[id]
}

// VariableID returns the interned id for name, allocating one if this is
// the first time the engine has seen it. Callers use this to register
// segment/or-group constraints against the same ids the engine's
// equations use internally — segment.Store and orgroup.Store key their
// entries on variable.ID, not name.
func (e *Engine) VariableID(name string) (variable.ID, error) {
	id, err := e.pool.Intern(name)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetSolution returns a snapshot of the current solution, keyed by
// interned variable id. A variable absent from the map is implicitly 0.
func (e *Engine) GetSolution() Solution {
	out := make(Solution, len(e.solution))
	for v, val := range e.solution {
		if val != 0 {
			out[v] = val
		}
	}
	return out
}

// Value returns name's current solved value, or (0, false) if name is
// not a known variable.
func (e *Engine) Value(name string) (float64, bool) {
	id, ok := e.pool.Lookup(name)
	if !ok {
		return 0, false
	}
	v, has := e.solution[id]
	return v, has
}

// SolutionChanges returns the set of variables whose value has changed
// since the caller last called ClearSolutionChanges, by name.
func (e *Engine) SolutionChanges() []string {
	out := make([]string, 0, len(e.solutionChanges))
	for v := range e.solutionChanges {
		name, err := e.pool.Name(v)
		if err != nil {
			continue
		}
		out = append(out, name)
	}
	return out
}

// ClearSolutionChanges acknowledges solutionChanges has been read.
func (e *Engine) ClearSolutionChanges() {
	e.solutionChanges = make(map[variable.ID]bool)
}
