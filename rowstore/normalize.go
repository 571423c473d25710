package rowstore

// NormalizationCandidates returns the live comb row ids whose largest
// |coefficient| has crossed the configured normalizationThreshold in
// either direction: too large (needs shrinking) or its reciprocal too
// large (needs growing).
func (s *Store) NormalizationCandidates() []RowID {
	var out []RowID
	for id, row := range s.comb {
		m := maxAbsCoeff(row)
		if m == 0 {
			continue
		}
		if m > s.cfg.normalizationThreshold || m < 1/s.cfg.normalizationThreshold {
			out = append(out, id)
		}
	}
	sortRowIDs(out)
	return out
}

// StabilizingFactor returns the scalar that brings id's largest
// coefficient to unit magnitude, for use with Normalize.
func (s *Store) StabilizingFactor(id RowID) float64 {
	m := maxAbsCoeff(s.comb[id])
	if m == 0 {
		return 1
	}
	return 1 / m
}

// Normalize scales comb row id by c in place, keeping combCoef, the
// tracker and the column index consistent. c must
// be nonzero; normalizing by zero would erase the row's span rather
// than rescale it, which is what RemoveVector/RetireCombRow are for.
func (s *Store) Normalize(id RowID, c float64) error {
	if !s.HasCombRow(id) {
		return ErrUnknownCombRow
	}
	if c == 0 {
		return ErrZeroCoeff
	}
	old := s.comb[id]
	fresh := scale(old, c, s.cfg.zeroRounding)
	s.comb[id] = fresh
	s.reindexRow(id, old, fresh)
	s.tracker.Scale(int(id), c)

	for b, coef := range s.combCoef[id] {
		s.combCoef[id][b] = coef * c
	}
	return nil
}
