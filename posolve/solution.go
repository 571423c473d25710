package posolve

import (
	"math"

	"github.com/posolve-go/posolve/variable"
)

// setSolutionValue records v's new value, rounding tiny magnitudes to
// zero, marking v in solutionChanges if the value actually moved, and
// driving the inner-product tracker's dual vector and every row v
// participates in by the resulting delta.
func (e *Engine) setSolutionValue(v variable.ID, value float64) {
	if math.Abs(value) < e.cfg.zeroRounding {
		value = 0
	}
	prev, had := e.solution[v]
	if had && prev == value {
		return
	}
	e.solution[v] = value
	e.solutionChanges[v] = true
	e.rows.ApplyVariableDelta(v, value-prev)
}

func (e *Engine) valueOf(v variable.ID) float64 {
	return e.solution[v]
}
