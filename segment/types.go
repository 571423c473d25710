package segment

import (
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/posolve-go/posolve/variable"
)

// Segment is one [Min, Max] window a variable must stay within, carrying
// the priority that window's owner cares about it for. Min/Max may be
// math.Inf(-1)/math.Inf(1) for an unbounded side.
type Segment struct {
	Min, Max float64
	Priority float64
}

func (s Segment) contains(value float64) bool {
	return value >= s.Min && value <= s.Max
}

type entry struct {
	segments       []Segment
	stableValue    float64
	stablePriority float64 // 0 means no active stability preference
	orGroups       []int
}

// Store is a concrete, in-memory resistance.SegmentConstraints.
type Store struct {
	mu      sync.RWMutex
	entries map[variable.ID]*entry
	changed *bitset.BitSet
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		entries: make(map[variable.ID]*entry),
		changed: bitset.New(0),
	}
}

func (s *Store) entryFor(v variable.ID) *entry {
	e, ok := s.entries[v]
	if !ok {
		e = &entry{}
		s.entries[v] = e
	}
	return e
}

// SetSegments replaces v's active windows.
func (s *Store) SetSegments(v variable.ID, windows []Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entryFor(v)
	e.segments = append([]Segment(nil), windows...)
	s.changed.Set(uint(v))
}

// SetStability sets or clears (priority <= 0) v's preference to settle at
// value.
func (s *Store) SetStability(v variable.ID, value, priority float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entryFor(v)
	e.stableValue = value
	if priority > 0 {
		e.stablePriority = priority
	} else {
		e.stablePriority = 0
	}
	s.changed.Set(uint(v))
}

// SetOrGroups records which or-group ids v participates in, for
// AllowsMovement and HasOrGroups to consult.
func (s *Store) SetOrGroups(v variable.ID, groups []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entryFor(v)
	e.orGroups = append([]int(nil), groups...)
	s.changed.Set(uint(v))
}
