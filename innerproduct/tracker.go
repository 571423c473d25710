package innerproduct

import "github.com/posolve-go/posolve/variable"

// Tracker maintains row·x for a set of rows identified by caller-chosen
// integer ids (rowstore's RowID values, passed through as plain int so
// this package stays independent of rowstore's types) and a shadow copy
// of x keyed by variable.ID.
//
// Only nonzero products are stored; Product reports 0 for any row that
// was never touched or whose product rounded to exactly zero.
type Tracker struct {
	zeroRounding float64
	products     map[int]float64
	dual         map[variable.ID]float64
}

// New returns a Tracker that applies zeroRounding uniformly across every
// incremental update.
func New(zeroRounding float64) *Tracker {
	return &Tracker{
		zeroRounding: zeroRounding,
		products:     make(map[int]float64),
		dual:         make(map[variable.ID]float64),
	}
}

// Product returns the current tracked value of row row.
func (t *Tracker) Product(row int) float64 {
	return t.products[row]
}

// SetDual records the current value of variable v in the tracker's
// shadow copy of x. Callers update this whenever they commit a move of
// v, before relying on CalcInnerProducts for that variable.
func (t *Tracker) SetDual(v variable.ID, value float64) {
	if value == 0 {
		delete(t.dual, v)
		return
	}
	t.dual[v] = value
}

// Dual returns the tracker's shadow value for v.
func (t *Tracker) Dual(v variable.ID) float64 {
	return t.dual[v]
}

// AddToProducts adds contribution (already scaled by the row's
// coefficient for column) to row's tracked product, rounding against the
// pre-update value. column is carried through only for callers that want
// to attribute the change (e.g. an Observer); the tracker itself does
// not branch on it.
func (t *Tracker) AddToProducts(row int, column variable.ID, contribution float64) {
	_ = column
	if contribution == 0 {
		return
	}
	cur := t.products[row]
	next := AddWithRound(cur, contribution, t.zeroRounding)
	if next == 0 {
		delete(t.products, row)
		return
	}
	t.products[row] = next
}

// AddDualToProducts updates the shadow value of column by delta. It does
// not by itself touch any row's product — the caller (rowstore, via its
// combinationComponentIndex) is the only party that knows which rows
// have a nonzero coefficient on column, and must follow this call with
// one AddToProducts per such row.
func (t *Tracker) AddDualToProducts(column variable.ID, delta float64) {
	if delta == 0 {
		return
	}
	t.SetDual(column, AddWithRound(t.dual[column], delta, t.zeroRounding))
}

// CalcInnerProducts recomputes row's product from scratch against the
// tracker's current dual x, replacing whatever was previously tracked.
// Used by repairCombinations to correct accumulated drift, and when
// SetVector rebuilds a combination row.
func (t *Tracker) CalcInnerProducts(row int, entries []variable.Entry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Coeff * t.dual[e.Var]
	}
	if sum != 0 && absLess(sum, t.zeroRounding) {
		sum = 0
	}
	if sum == 0 {
		delete(t.products, row)
	} else {
		t.products[row] = sum
	}
	return sum
}

// AddVectors applies the row-combination rule: when the caller performs
// row(dst) += scalar*row(src), row(dst)'s inner product changes by
// exactly scalar*row(src)'s inner product, since
// (row(dst)+scalar*row(src))·x = row(dst)·x + scalar*(row(src)·x).
// This lets CombinationVectors.eliminate and addCombToCombVector update
// the tracker in O(1) instead of re-summing the combined row.
func (t *Tracker) AddVectors(dst, src int, scalar float64) {
	if scalar == 0 {
		return
	}
	t.AddToProducts(dst, 0, scalar*t.products[src])
}

// Scale multiplies row's tracked product by c, used when a row is
// rescaled in place (CombinationVectors.normalize): (c*row)·x = c*(row·x).
func (t *Tracker) Scale(row int, c float64) {
	cur, ok := t.products[row]
	if !ok {
		return
	}
	next := Round(cur*c, cur, t.zeroRounding)
	if next == 0 {
		delete(t.products, row)
		return
	}
	t.products[row] = next
}

// SetToZero forces row's tracked product to exactly zero, used when a
// pivot is known by construction to have zeroed a row's error and any
// residual is pure floating-point noise.
func (t *Tracker) SetToZero(row int) {
	delete(t.products, row)
}

func absLess(v, bound float64) bool {
	if v < 0 {
		v = -v
	}
	return v < bound
}
