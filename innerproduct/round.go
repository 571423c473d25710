package innerproduct

import "math"

// Round snaps v to exactly 0 when it has collapsed to numerical noise
// relative to prev: |v/prev| < zeroRounding. A zero prev is treated as
// "no prior scale to compare against" and v is returned unrounded except
// for an absolute check against zeroRounding itself, so a tracker
// starting from nothing doesn't snap its very first nonzero product.
func Round(v, prev, zeroRounding float64) float64 {
	if zeroRounding <= 0 {
		return v
	}
	if v == 0 {
		return 0
	}
	if prev == 0 {
		if math.Abs(v) < zeroRounding {
			return 0
		}
		return v
	}
	if math.Abs(v/prev) < zeroRounding {
		return 0
	}
	return v
}

// AddWithRound computes acc+delta and applies Round against the
// pre-addition value of acc, the shared primitive every incremental
// update in this package funnels through.
func AddWithRound(acc, delta, zeroRounding float64) float64 {
	return Round(acc+delta, acc, zeroRounding)
}
