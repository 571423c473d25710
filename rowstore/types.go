package rowstore

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/posolve-go/posolve/innerproduct"
	"github.com/posolve-go/posolve/variable"
)

// RowID identifies one row, stable for the life of that row. The same
// int space is used for base rows and combination rows; see the package
// doc for why the two id sets may diverge after pivots.
type RowID int

// Row is a sparse row, kept sorted by Entry.Var ascending.
type Row []variable.Entry

// config holds the tuning parameters of a Store, set via Option.
type config struct {
	zeroRounding           float64
	normalizationThreshold float64
}

// Option configures a Store at construction time.
type Option func(*config)

// WithZeroRounding sets the magnitude below which a combined or scaled
// coefficient is dropped as exactly 0. Panics on a non-positive value: a store with no
// rounding policy can never detect a zeroed row, which is a
// configuration error, not a runtime condition to recover from.
func WithZeroRounding(r float64) Option {
	if r <= 0 {
		panic("rowstore: WithZeroRounding requires r > 0")
	}
	return func(c *config) { c.zeroRounding = r }
}

// WithNormalizationThreshold sets the coefficient-scale threshold past
// which NormalizationCandidates flags a row. Panics on a non-positive
// value.
func WithNormalizationThreshold(t float64) Option {
	if t <= 0 {
		panic("rowstore: WithNormalizationThreshold requires t > 0")
	}
	return func(c *config) { c.normalizationThreshold = t }
}

func defaultConfig() config {
	return config{
		zeroRounding:           1e-9,
		normalizationThreshold: 1000,
	}
}

// Store holds the base set B and the combination set C derived from
// it.
type Store struct {
	cfg config

	tracker *innerproduct.Tracker

	nextID  RowID
	freeIDs []RowID

	base map[RowID]Row
	comb map[RowID]Row

	// combCoef[r][b] is the recorded scalar coefficient of base row b in
	// the linear combination that produced comb row r: comb[r] == sum_b
	// combCoef[r][b] * base[b]. Maintained incrementally by Eliminate,
	// AddCombToCombVector and NewVector; consulted by SetVector (which
	// comb rows are affected by an edit to base row b) and RemoveVector
	// (which comb row most depends on the base row being dropped).
	combCoef map[RowID]map[RowID]float64

	// colIndex[v] is the set of live comb-row ids in which v currently
	// has a nonzero coefficient — CombinationVectors.combinationComponentIndex.
	colIndex map[variable.ID]*bitset.BitSet
}

// New returns an empty Store using tracker for inner-product bookkeeping.
func New(tracker *innerproduct.Tracker, opts ...Option) *Store {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store{
		cfg:      cfg,
		tracker:  tracker,
		base:     make(map[RowID]Row),
		comb:     make(map[RowID]Row),
		combCoef: make(map[RowID]map[RowID]float64),
		colIndex: make(map[variable.ID]*bitset.BitSet),
	}
}

// HasRow reports whether baseID names a live base row.
func (s *Store) HasRow(id RowID) bool {
	_, ok := s.base[id]
	return ok
}

// HasCombRow reports whether id names a live combination row.
func (s *Store) HasCombRow(id RowID) bool {
	_, ok := s.comb[id]
	return ok
}

// BaseRow returns a copy of base row id's entries.
func (s *Store) BaseRow(id RowID) (Row, error) {
	r, ok := s.base[id]
	if !ok {
		return nil, ErrUnknownRow
	}
	return append(Row(nil), r...), nil
}

// CombRow returns a copy of combination row id's entries.
func (s *Store) CombRow(id RowID) (Row, error) {
	r, ok := s.comb[id]
	if !ok {
		return nil, ErrUnknownCombRow
	}
	return append(Row(nil), r...), nil
}

// InnerProduct returns the tracker's current value of row id's product.
func (s *Store) InnerProduct(id RowID) float64 {
	return s.tracker.Product(int(id))
}

// BaseRowIDs returns every live base row id, ascending.
func (s *Store) BaseRowIDs() []RowID {
	out := make([]RowID, 0, len(s.base))
	for id := range s.base {
		out = append(out, id)
	}
	sortRowIDs(out)
	return out
}

// CombRowIDs returns every live combination row id, ascending.
func (s *Store) CombRowIDs() []RowID {
	out := make([]RowID, 0, len(s.comb))
	for id := range s.comb {
		out = append(out, id)
	}
	sortRowIDs(out)
	return out
}

func (s *Store) allocID() RowID {
	if n := len(s.freeIDs); n > 0 {
		id := s.freeIDs[n-1]
		s.freeIDs = s.freeIDs[:n-1]
		return id
	}
	id := s.nextID
	s.nextID++
	return id
}
