package rowstore

import "github.com/posolve-go/posolve/variable"

// ApplyVariableDelta informs the store that v's solution value changed
// by delta, keeping the inner-product tracker's dual copy of the
// solution vector and every affected row's tracked product consistent
// without a full recompute. This is the posolve-side entry point the
// tracker's own doc comment describes: posolve drives the tracker with
// the deltas produced by its own variable moves, rather than the
// tracker discovering them on its own.
func (s *Store) ApplyVariableDelta(v variable.ID, delta float64) {
	if delta == 0 {
		return
	}
	s.tracker.AddDualToProducts(v, delta)
	for _, r := range s.ComponentIndex(v) {
		c := s.comb[r].get(v)
		if c == 0 {
			continue
		}
		s.tracker.AddToProducts(int(r), v, c*delta)
	}
}
