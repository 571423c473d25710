package rowstore

import "math"

// RepairCombinations reconstructs every combination row directly from
// its recorded combCoef against the current base set and replaces the
// stored row where the drift between the stored and reconstructed row
// exceeds tolerance — the periodic correction for floating-point error
// accumulated in C over long editing sessions. Returns the ids actually
// repaired, ascending.
func (s *Store) RepairCombinations(tolerance float64) []RowID {
	var repaired []RowID
	for r := range s.comb {
		var fresh Row
		for b, c := range s.combCoef[r] {
			if c == 0 {
				continue
			}
			fresh = combine(fresh, s.base[b], c, s.cfg.zeroRounding)
		}
		if rowDistance(s.comb[r], fresh) <= tolerance {
			continue
		}
		old := s.comb[r]
		s.comb[r] = fresh
		s.reindexRow(r, old, fresh)
		s.tracker.CalcInnerProducts(int(r), fresh)
		repaired = append(repaired, r)
	}
	sortRowIDs(repaired)
	return repaired
}

// rowDistance returns the L-infinity distance between two sorted sparse
// rows, treating a variable absent from one side as coefficient 0.
func rowDistance(a, b Row) float64 {
	var max float64
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && a[i].Var < b[j].Var):
			if d := math.Abs(a[i].Coeff); d > max {
				max = d
			}
			i++
		case i >= len(a) || (j < len(b) && b[j].Var < a[i].Var):
			if d := math.Abs(b[j].Coeff); d > max {
				max = d
			}
			j++
		default:
			if d := math.Abs(a[i].Coeff - b[j].Coeff); d > max {
				max = d
			}
			i++
			j++
		}
	}
	return max
}
