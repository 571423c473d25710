package rowstore

import (
	"math"
	"sort"

	"github.com/posolve-go/posolve/variable"
)

func sortRowIDs(ids []RowID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// cleanRow sorts entries by Var and drops zero-coefficient entries; a
// zero entry in caller input carries no information and is dropped
// silently. The input slice is not mutated.
func cleanRow(entries []variable.Entry) Row {
	out := make(Row, 0, len(entries))
	for _, e := range entries {
		if e.Coeff != 0 {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Var < out[j].Var })
	return out
}

// get returns row's coefficient for v, or 0 if v does not appear.
func (row Row) get(v variable.ID) float64 {
	i := sort.Search(len(row), func(i int) bool { return row[i].Var >= v })
	if i < len(row) && row[i].Var == v {
		return row[i].Coeff
	}
	return 0
}

// combine returns dst + scalar*src, both assumed sorted by Var, keeping
// the result sorted and dropping any entry whose combined magnitude
// rounds to zero under zeroRounding.
func combine(dst, src Row, scalar, zeroRounding float64) Row {
	if scalar == 0 {
		return append(Row(nil), dst...)
	}
	out := make(Row, 0, len(dst)+len(src))
	i, j := 0, 0
	for i < len(dst) && j < len(src) {
		switch {
		case dst[i].Var < src[j].Var:
			out = append(out, dst[i])
			i++
		case dst[i].Var > src[j].Var:
			c := scalar * src[j].Coeff
			if !nearZero(c, zeroRounding) {
				out = append(out, variable.Entry{Var: src[j].Var, Coeff: c})
			}
			j++
		default:
			c := dst[i].Coeff + scalar*src[j].Coeff
			if !nearZero(c, zeroRounding) {
				out = append(out, variable.Entry{Var: dst[i].Var, Coeff: c})
			}
			i++
			j++
		}
	}
	out = append(out, dst[i:]...)
	for ; j < len(src); j++ {
		c := scalar * src[j].Coeff
		if !nearZero(c, zeroRounding) {
			out = append(out, variable.Entry{Var: src[j].Var, Coeff: c})
		}
	}
	return out
}

// scale returns row scaled by c, dropping anything that rounds to zero.
func scale(row Row, c float64, zeroRounding float64) Row {
	if c == 0 {
		return Row{}
	}
	out := make(Row, 0, len(row))
	for _, e := range row {
		v := e.Coeff * c
		if !nearZero(v, zeroRounding) {
			out = append(out, variable.Entry{Var: e.Var, Coeff: v})
		}
	}
	return out
}

func nearZero(v, zeroRounding float64) bool {
	return math.Abs(v) < zeroRounding
}

// maxAbsCoeff returns the largest |coefficient| in row, or 0 for an
// empty (all-zero) row.
func maxAbsCoeff(row Row) float64 {
	var m float64
	for _, e := range row {
		if a := math.Abs(e.Coeff); a > m {
			m = a
		}
	}
	return m
}
