package variable

import (
	"errors"
	"sort"
	"sync"
)

// ErrEmptyName indicates a variable name was the empty string.
var ErrEmptyName = errors.New("variable: name is empty")

// ErrUnknownID indicates an ID has no corresponding live variable, either
// because it was never issued or because it has since been Removed.
var ErrUnknownID = errors.New("variable: unknown id")

// ID is a dense, small integer identifying one interned variable name.
// IDs are stable for the lifetime of the variable. Remove frees the slot,
// and the next name interned afterwards, whatever it is, may receive the
// same ID.
type ID int

// Pool interns variable names into IDs and back. A Pool is safe for
// concurrent use; the solver itself is single-threaded, but callers
// sometimes intern names while preparing an edit batch on another
// goroutine.
type Pool struct {
	mu      sync.RWMutex
	byName  map[string]ID
	byID    []string // index by int(ID); empty string marks a freed slot
	free    []ID     // freed slots available for reuse
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{byName: make(map[string]ID)}
}

// Intern returns the ID for name, allocating a fresh one on first sight.
// Interning is idempotent: interning the same name twice returns the same
// ID both times.
func (p *Pool) Intern(name string) (ID, error) {
	if name == "" {
		return 0, ErrEmptyName
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if id, ok := p.byName[name]; ok {
		return id, nil
	}

	var id ID
	if n := len(p.free); n > 0 {
		id = p.free[n-1]
		p.free = p.free[:n-1]
		p.byID[id] = name
	} else {
		id = ID(len(p.byID))
		p.byID = append(p.byID, name)
	}
	p.byName[name] = id
	return id, nil
}

// Lookup returns the ID already interned for name, without allocating one.
func (p *Pool) Lookup(name string) (ID, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	id, ok := p.byName[name]
	return id, ok
}

// Name returns the name interned for id.
func (p *Pool) Name(id ID) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(p.byID) || p.byID[id] == "" {
		return "", ErrUnknownID
	}
	return p.byID[id], nil
}

// Remove destroys the variable: its ID is freed for reuse and Name/Lookup
// no longer resolve it. Callers must ensure the variable no longer
// appears in any equation before calling Remove; the solver's prepare
// pass does this for any variable that has dropped out of every base
// row.
func (p *Pool) Remove(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, ok := p.byName[name]
	if !ok {
		return ErrUnknownID
	}
	delete(p.byName, name)
	p.byID[id] = ""
	p.free = append(p.free, id)
	return nil
}

// Len returns the number of currently live (non-removed) variables.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byName)
}

// Names returns every currently live variable name, sorted ascending —
// the deterministic enumeration surface callers and tests rely on,
// giving stable iteration order at each choice point.
func (p *Pool) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.byName))
	for name := range p.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
