package rowstore

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/posolve-go/posolve/variable"
)

// NewVector adds a new base row and a combination row copy derived from
// it. Both are addressable by the returned id. A row that later becomes
// all-zero through edits is tolerated, but a newly created row must name
// at least one variable.
func (s *Store) NewVector(entries []variable.Entry) (RowID, error) {
	row := cleanRow(entries)
	if len(row) == 0 {
		return 0, ErrEmptyRow
	}

	id := s.allocID()
	s.base[id] = row
	s.comb[id] = append(Row(nil), row...)
	s.combCoef[id] = map[RowID]float64{id: 1}
	s.indexRow(id, row)
	return id, nil
}

// SetVector replaces base row id's entries and propagates the edit to
// every combination row whose recorded combination still depends on id,
// returning those affected comb row ids.
// Affected rows are rebuilt from their recorded combination coefficients
// against the edited base set, not incrementally patched, since an
// arbitrary number of base rows may have changed between solves.
func (s *Store) SetVector(id RowID, entries []variable.Entry) ([]RowID, error) {
	if !s.HasRow(id) {
		return nil, ErrUnknownRow
	}
	row := cleanRow(entries)
	s.base[id] = row

	var changed []RowID
	for r, coefs := range s.combCoef {
		if coefs[id] == 0 {
			continue
		}
		s.rebuildCombRow(r)
		changed = append(changed, r)
	}
	sortRowIDs(changed)
	return changed, nil
}

// rebuildCombRow recomputes comb[r] from scratch as the recorded linear
// combination of the current base set, replacing whatever was stored,
// and refreshes the inner-product tracker and column index to match.
func (s *Store) rebuildCombRow(r RowID) {
	var fresh Row
	for b, c := range s.combCoef[r] {
		if c == 0 {
			continue
		}
		fresh = combine(fresh, s.base[b], c, s.cfg.zeroRounding)
	}
	old := s.comb[r]
	s.comb[r] = fresh
	s.reindexRow(r, old, fresh)
	s.tracker.CalcInnerProducts(int(r), fresh)
}

// RemoveVector removes base row id and retires exactly one combination
// row so |B| stays equal to |C| and C's row-span keeps matching B's.
// Among the comb rows whose recorded
// combination depends on id, the one with the largest |coefficient| on
// id is used to cancel id's contribution out of every other dependent
// row, then is itself retired. If no comb row depends on id at all, C
// already excludes id's span and only the base row needs removing.
func (s *Store) RemoveVector(id RowID) (retired RowID, hasRetired bool, err error) {
	if !s.HasRow(id) {
		return 0, false, ErrUnknownRow
	}

	var selected RowID
	found := false
	var best float64
	for r, coefs := range s.combCoef {
		c := coefs[id]
		if c == 0 {
			continue
		}
		a := c
		if a < 0 {
			a = -a
		}
		if !found || a > best {
			selected, best, found = r, a, true
		}
	}

	delete(s.base, id)

	if !found {
		return 0, false, nil
	}

	selCoef := s.combCoef[selected][id]
	for r, coefs := range s.combCoef {
		if r == selected {
			continue
		}
		c := coefs[id]
		if c == 0 {
			continue
		}
		scalar := -c / selCoef
		old := s.comb[r]
		fresh := combine(old, s.comb[selected], scalar, s.cfg.zeroRounding)
		s.comb[r] = fresh
		s.reindexRow(r, old, fresh)
		s.tracker.AddVectors(int(r), int(selected), scalar)

		for b, sc := range s.combCoef[selected] {
			if sc == 0 {
				continue
			}
			coefs[b] += scalar * sc
		}
	}

	s.retireCombRow(selected)
	return selected, true, nil
}

func (s *Store) retireCombRow(r RowID) {
	old := s.comb[r]
	s.reindexRow(r, old, nil)
	delete(s.comb, r)
	delete(s.combCoef, r)
	s.tracker.SetToZero(int(r))
	s.freeIDs = append(s.freeIDs, r)
}

func (s *Store) indexRow(r RowID, row Row) {
	for _, e := range row {
		bs := s.colIndex[e.Var]
		if bs == nil {
			bs = bitset.New(0)
			s.colIndex[e.Var] = bs
		}
		bs.Set(uint(r))
	}
}

func (s *Store) reindexRow(r RowID, oldRow, newRow Row) {
	for _, e := range oldRow {
		if bs, ok := s.colIndex[e.Var]; ok {
			bs.Clear(uint(r))
		}
	}
	s.indexRow(r, newRow)
}
