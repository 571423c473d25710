package orgroup

import (
	"math"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/variable"
)

type group struct {
	members     []variable.ID
	priority    float64
	tolerance   float64
	values      map[variable.ID]float64
	hasValue    map[variable.ID]bool
	satisfiedBy map[variable.ID]bool
}

// Store is a concrete, in-memory resistance.OrGroups.
type Store struct {
	mu       sync.RWMutex
	groups   map[int]*group
	nextID   int
	memberOf map[variable.ID][]int
	changed  *bitset.BitSet
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		groups:   make(map[int]*group),
		memberOf: make(map[variable.ID][]int),
		changed:  bitset.New(0),
	}
}

// NewGroup registers an or-group over members, returning its id. tolerance
// is the maximum absolute difference between two members' values for them
// to be considered in agreement.
func (s *Store) NewGroup(members []variable.ID, priority, tolerance float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	g := &group{
		members:     append([]variable.ID(nil), members...),
		priority:    priority,
		tolerance:   tolerance,
		values:      make(map[variable.ID]float64),
		hasValue:    make(map[variable.ID]bool),
		satisfiedBy: make(map[variable.ID]bool),
	}
	s.groups[id] = g
	for _, m := range members {
		s.memberOf[m] = append(s.memberOf[m], id)
	}
	return id
}

// RemoveGroup retires group, dropping its membership bookkeeping.
func (s *Store) RemoveGroup(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return
	}
	for _, m := range g.members {
		s.memberOf[m] = removeInt(s.memberOf[m], id)
		s.changed.Set(uint(m))
	}
	delete(s.groups, id)
}

func removeInt(xs []int, x int) []int {
	for i, v := range xs {
		if v == x {
			return append(xs[:i], xs[i+1:]...)
		}
	}
	return xs
}

// UpdateSatisfaction implements resistance.OrGroups: records v's newest
// value and recomputes which or-groups v participates in are currently
// jointly satisfied.
func (s *Store) UpdateSatisfaction(v variable.ID, value float64, stable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.memberOf[v] {
		g := s.groups[id]
		g.values[v] = value
		g.hasValue[v] = true
		s.recompute(id, g)
	}
}

func (s *Store) recompute(id int, g *group) {
	next := make(map[variable.ID]bool, len(g.members))
	for _, a := range g.members {
		if !g.hasValue[a] {
			continue
		}
		for _, b := range g.members {
			if a == b || !g.hasValue[b] {
				continue
			}
			if math.Abs(g.values[a]-g.values[b]) <= g.tolerance {
				next[a] = true
				break
			}
		}
	}
	for _, m := range g.members {
		if next[m] != g.satisfiedBy[m] {
			s.changed.Set(uint(m))
		}
	}
	g.satisfiedBy = next
}

// IsSatisfiedOnOtherVariable implements resistance.OrGroups.
func (s *Store) IsSatisfiedOnOtherVariable(id int, v variable.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if !ok {
		return false
	}
	for other := range g.satisfiedBy {
		if other != v && g.satisfiedBy[other] {
			return true
		}
	}
	return false
}

// SatisfiedVariables implements resistance.OrGroups.
func (s *Store) SatisfiedVariables(id int) []variable.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if !ok {
		return nil
	}
	var out []variable.ID
	for _, m := range g.members {
		if g.satisfiedBy[m] {
			out = append(out, m)
		}
	}
	return out
}

// GroupStatus implements resistance.OrGroups.
func (s *Store) GroupStatus(id int) resistance.GroupStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if !ok {
		return resistance.Unsatisfied
	}
	count := 0
	for _, m := range g.members {
		if g.satisfiedBy[m] {
			count++
		}
	}
	if count >= 2 {
		return resistance.Satisfied
	}
	return resistance.Unsatisfied
}

// GroupPriority implements resistance.OrGroups.
func (s *Store) GroupPriority(id int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if !ok {
		return 0
	}
	return g.priority
}

// GroupsOf implements resistance.OrGroups.
func (s *Store) GroupsOf(v variable.ID) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int(nil), s.memberOf[v]...)
}

// Changed implements resistance.OrGroups.
func (s *Store) Changed() *bitset.BitSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.changed.Clone()
}

// Ack implements resistance.OrGroups.
func (s *Store) Ack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changed.ClearAll()
}
