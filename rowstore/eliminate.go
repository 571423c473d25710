package rowstore

import "github.com/posolve-go/posolve/variable"

// GetValue returns comb row id's coefficient for v.
func (s *Store) GetValue(id RowID, v variable.ID) (float64, error) {
	row, ok := s.comb[id]
	if !ok {
		return 0, ErrUnknownCombRow
	}
	return row.get(v), nil
}

// ComponentIndex returns the live combination-row ids in which v
// currently has a nonzero coefficient, ascending.
func (s *Store) ComponentIndex(v variable.ID) []RowID {
	bs, ok := s.colIndex[v]
	if !ok {
		return nil
	}
	out := make([]RowID, 0, bs.Count())
	for i, e := bs.NextSet(0); e; i, e = bs.NextSet(i + 1) {
		r := RowID(i)
		if _, live := s.comb[r]; live {
			out = append(out, r)
		}
	}
	return out
}

// Eliminate removes v from every live combination row other than
// pivotRow, by adding the appropriate multiple of pivotRow to each. After
// this call v has a nonzero coefficient in at most pivotRow. Returns the
// rows actually touched, ascending.
//
// Eliminate does not decide which variable or row to pivot on — that
// policy (resistance-minimal bound-variable selection, resistance-reducing
// exchange) lives in package posolve; this is the pure linear-algebra
// primitive it drives.
func (s *Store) Eliminate(v variable.ID, pivotRow RowID) ([]RowID, error) {
	pivotEntries, ok := s.comb[pivotRow]
	if !ok {
		return nil, ErrUnknownCombRow
	}
	pivotCoeff := pivotEntries.get(v)
	if pivotCoeff == 0 {
		return nil, ErrZeroCoeff
	}

	var touched []RowID
	for _, r := range s.ComponentIndex(v) {
		if r == pivotRow {
			continue
		}
		cPrime := s.comb[r].get(v)
		if cPrime == 0 {
			continue
		}
		scalar := -cPrime / pivotCoeff
		s.combineInto(r, pivotRow, scalar)
		touched = append(touched, r)
	}
	sortRowIDs(touched)
	return touched, nil
}

// AddCombToCombVector performs comb[dst] += scalar*comb[src], updating
// combCoef, the column index and the inner-product tracker to match.
func (s *Store) AddCombToCombVector(dst, src RowID, scalar float64) error {
	if !s.HasCombRow(dst) {
		return ErrUnknownCombRow
	}
	if !s.HasCombRow(src) {
		return ErrUnknownCombRow
	}
	s.combineInto(dst, src, scalar)
	return nil
}

// combineInto is the shared primitive behind Eliminate and
// AddCombToCombVector: comb[dst] += scalar*comb[src], with combCoef, the
// column index, and the tracker kept consistent via the row-combination
// rule (innerproduct.Tracker.AddVectors).
func (s *Store) combineInto(dst, src RowID, scalar float64) {
	old := s.comb[dst]
	fresh := combine(old, s.comb[src], scalar, s.cfg.zeroRounding)
	s.comb[dst] = fresh
	s.reindexRow(dst, old, fresh)
	s.tracker.AddVectors(int(dst), int(src), scalar)

	dstCoef := s.combCoef[dst]
	for b, c := range s.combCoef[src] {
		if c == 0 {
			continue
		}
		dstCoef[b] += scalar * c
	}
}
