package segment

import (
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/variable"
)

// PreferredValue implements resistance.SegmentConstraints.
func (s *Store) PreferredValue(v variable.ID, last float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[v]
	if !ok || e.stablePriority <= 0 {
		return last
	}
	return e.stableValue
}

// NextValue implements resistance.SegmentConstraints: the nearest window
// boundary strictly beyond from in the requested direction, or an
// infinity if no window bounds that side.
func (s *Store) NextValue(v variable.ID, from float64, upward bool) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[v]
	if !ok {
		if upward {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	best := math.Inf(1)
	if !upward {
		best = math.Inf(-1)
	}
	found := false
	for _, w := range e.segments {
		bound := w.Max
		if !upward {
			bound = w.Min
		}
		if math.IsInf(bound, 0) {
			continue
		}
		if upward && bound > from && bound < best {
			best, found = bound, true
		}
		if !upward && bound < from && bound > best {
			best, found = bound, true
		}
	}
	if !found {
		if upward {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	return best
}

// ClampToWindows implements resistance.SegmentConstraints: the
// intersection of every window on v is the interval [max of Mins, min of
// Maxes]; value outside it is pulled to the nearer edge.
func (s *Store) ClampToWindows(v variable.ID, value float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[v]
	if !ok {
		return value
	}
	lo, hi := math.Inf(-1), math.Inf(1)
	for _, w := range e.segments {
		if w.Min > lo {
			lo = w.Min
		}
		if w.Max < hi {
			hi = w.Max
		}
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// AllowsMovement implements resistance.SegmentConstraints.
func (s *Store) AllowsMovement(v variable.ID, dir resistance.Direction, target float64) (resistance.Verdict, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[v]
	if !ok {
		return resistance.Allowed, 0
	}
	violated := false
	for _, w := range e.segments {
		if !w.contains(target) {
			violated = true
			break
		}
	}
	if !violated {
		return resistance.Allowed, 0
	}
	if len(e.orGroups) > 0 {
		return resistance.OrGroupResists, e.orGroups[0]
	}
	return resistance.Denied, 0
}

// HasOrGroups implements resistance.SegmentConstraints.
func (s *Store) HasOrGroups(v variable.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[v]
	return ok && len(e.orGroups) > 0
}

// OwnResistance implements resistance.SegmentConstraints: the highest
// priority among the constraints that resist a move in dir from the
// position given as from. A window only resists once the position sits
// at or past its dir-side boundary — moving back toward a window from a
// violated position is unresisted by that window — and a stability
// preference resists any move that takes the position further from its
// preferred value. A window with Min == Max resists at math.Inf(1)
// rather than at its priority.
func (s *Store) OwnResistance(v variable.ID, from float64, dir resistance.Direction) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[v]
	if !ok {
		return 0
	}

	var best float64

	for _, w := range e.segments {
		resists := false
		if dir == resistance.Up {
			resists = !math.IsInf(w.Max, 1) && from >= w.Max
		} else {
			resists = !math.IsInf(w.Min, -1) && from <= w.Min
		}
		p := w.Priority
		if w.Min == w.Max {
			p = math.Inf(1)
		}
		if resists && p > best {
			best = p
		}
	}

	if e.stablePriority > 0 {
		awayFromStable := (dir == resistance.Up && from >= e.stableValue) ||
			(dir == resistance.Down && from <= e.stableValue)
		if awayFromStable && e.stablePriority > best {
			best = e.stablePriority
		}
	}
	return best
}

// Changed implements resistance.SegmentConstraints.
func (s *Store) Changed() *bitset.BitSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.changed.Clone()
}

// Ack implements resistance.SegmentConstraints.
func (s *Store) Ack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changed.ClearAll()
}
