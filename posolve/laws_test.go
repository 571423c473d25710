package posolve_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/posolve-go/posolve/orgroup"
	"github.com/posolve-go/posolve/posolve"
	"github.com/posolve-go/posolve/segment"
	"github.com/posolve-go/posolve/variable"
)

// TestFanOutAndIdempotenceLaws checks, across random targets, priorities,
// and fan-out widths, that a stability
// preference propagates through every homogeneous alignment row coupled
// to it, and that solving twice in a row with no intervening edits leaves
// the solution and the solution-changes set untouched the second time.
func TestFanOutAndIdempotenceLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("stability target propagates and is idempotent", prop.ForAll(
		func(target, priority float64, followers int) bool {
			segs := segment.New()
			engine := posolve.New(segs, orgroup.New(), noopPosCalc{})

			xID, err := engine.VariableID("x")
			if err != nil {
				return false
			}
			segs.SetStability(xID, target, priority)

			for i := 0; i < followers; i++ {
				name := fmt.Sprintf("y%d", i)
				if _, err := engine.AddEquation([]posolve.NamedEntry{
					{Name: "x", Coeff: 1},
					{Name: name, Coeff: -1},
				}); err != nil {
					return false
				}
			}

			if fault := engine.Solve(); fault != nil {
				return false
			}

			x, ok := engine.Value("x")
			if !ok || !almostEqual(x, target) {
				return false
			}
			for i := 0; i < followers; i++ {
				name := fmt.Sprintf("y%d", i)
				y, ok := engine.Value(name)
				if !ok || !almostEqual(y, target) {
					return false
				}
			}

			engine.ClearSolutionChanges()
			if fault := engine.Solve(); fault != nil {
				return false
			}
			return len(engine.SolutionChanges()) == 0
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(0.001, 50),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}

// TestNormalizationSymmetryLaw checks that scaling a base
// row by any nonzero constant leaves the final solution unchanged: the
// uniquely solvable pair x + y = 0, x - y = anchor is solved with its
// second row scaled by an arbitrary factor and must land on the same
// point every time.
func TestNormalizationSymmetryLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("row scaling does not change the solution", prop.ForAll(
		func(scale float64) bool {
			if scale == 0 {
				return true
			}
			segs := segment.New()
			engine := posolve.New(segs, orgroup.New(), noopPosCalc{})

			anchorID, err := engine.VariableID("anchor")
			if err != nil {
				return false
			}
			segs.SetStability(anchorID, 2, 100)

			if _, err := engine.AddEquation([]posolve.NamedEntry{
				{Name: "x", Coeff: 1},
				{Name: "y", Coeff: 1},
			}); err != nil {
				return false
			}
			if _, err := engine.AddEquation([]posolve.NamedEntry{
				{Name: "x", Coeff: scale},
				{Name: "y", Coeff: -scale},
				{Name: "anchor", Coeff: -scale},
			}); err != nil {
				return false
			}

			if fault := engine.Solve(); fault != nil {
				return false
			}

			x, okX := engine.Value("x")
			y, okY := engine.Value("y")
			return okX && okY && almostEqual(x, 1) && almostEqual(y, -1)
		},
		gen.Float64Range(-8, 8).SuchThat(func(c float64) bool {
			return c < -0.25 || c > 0.25
		}),
	))

	properties.TestingRun(t)
}

type noopPosCalc struct{}

func (noopPosCalc) GetLastValue(v variable.ID) (float64, bool) {
	return 0, false
}

func (noopPosCalc) HasVariable(v variable.ID) bool {
	return false
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}
