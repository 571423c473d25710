package resistance_test

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"

	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/variable"
)

type fakeSegments struct {
	own      map[variable.ID][2]float64
	hasGroup map[variable.ID]bool
	changed  *bitset.BitSet
}

func newFakeSegments() *fakeSegments {
	return &fakeSegments{
		own:      make(map[variable.ID][2]float64),
		hasGroup: make(map[variable.ID]bool),
		changed:  bitset.New(0),
	}
}

func (f *fakeSegments) PreferredValue(v variable.ID, last float64) float64 { return last }
func (f *fakeSegments) NextValue(v variable.ID, from float64, upward bool) float64 {
	return from
}
func (f *fakeSegments) ClampToWindows(v variable.ID, value float64) float64 {
	return value
}
func (f *fakeSegments) AllowsMovement(v variable.ID, dir resistance.Direction, target float64) (resistance.Verdict, int) {
	return resistance.Allowed, 0
}
func (f *fakeSegments) HasOrGroups(v variable.ID) bool { return f.hasGroup[v] }
func (f *fakeSegments) OwnResistance(v variable.ID, from float64, dir resistance.Direction) float64 {
	return f.own[v][dir]
}
func (f *fakeSegments) Changed() *bitset.BitSet { return f.changed }
func (f *fakeSegments) Ack() { f.changed.ClearAll() }

type fakeOrGroups struct {
	status   map[int]resistance.GroupStatus
	priority map[int]float64
	members  map[variable.ID][]int
	satBy    map[int]map[variable.ID]bool
	changed  *bitset.BitSet
}

func newFakeOrGroups() *fakeOrGroups {
	return &fakeOrGroups{
		status:   make(map[int]resistance.GroupStatus),
		priority: make(map[int]float64),
		members:  make(map[variable.ID][]int),
		satBy:    make(map[int]map[variable.ID]bool),
		changed:  bitset.New(0),
	}
}

func (f *fakeOrGroups) IsSatisfiedOnOtherVariable(group int, v variable.ID) bool {
	for other, ok := range f.satBy[group] {
		if ok && other != v {
			return true
		}
	}
	return false
}
func (f *fakeOrGroups) SatisfiedVariables(group int) []variable.ID {
	var out []variable.ID
	for v, ok := range f.satBy[group] {
		if ok {
			out = append(out, v)
		}
	}
	return out
}
func (f *fakeOrGroups) GroupStatus(group int) resistance.GroupStatus { return f.status[group] }
func (f *fakeOrGroups) GroupPriority(group int) float64              { return f.priority[group] }
func (f *fakeOrGroups) GroupsOf(v variable.ID) []int                 { return f.members[v] }
func (f *fakeOrGroups) UpdateSatisfaction(v variable.ID, value float64, stable bool) {}
func (f *fakeOrGroups) Changed() *bitset.BitSet                      { return f.changed }
func (f *fakeOrGroups) Ack() { f.changed.ClearAll() }

func TestCalcResistanceOwnOnly(t *testing.T) {
	segs := newFakeSegments()
	groups := newFakeOrGroups()
	segs.own[1] = [2]float64{5, 10}

	s := resistance.New(segs, groups)
	s.CalcResistance(1, 0)

	require.Equal(t, 5.0, s.GetUpResistance(1))
	require.Equal(t, 10.0, s.GetDownResistance(1))
	require.Equal(t, 5.0, s.GetMinResistance(1))
}

func TestCalcResistanceWithSatisfiedOrGroup(t *testing.T) {
	segs := newFakeSegments()
	groups := newFakeOrGroups()
	segs.own[1] = [2]float64{0, 0}
	segs.hasGroup[1] = true
	groups.members[1] = []int{7}
	groups.status[7] = resistance.Satisfied
	groups.priority[7] = 42
	groups.satBy[7] = map[variable.ID]bool{1: true, 2: true}

	s := resistance.New(segs, groups)
	s.CalcResistance(1, 0)

	require.Equal(t, 42.0, s.GetSatOrGroupResistance(1, resistance.Up))
	require.Equal(t, 42.0, s.GetResistanceWithSatOrGroups(1, resistance.Up))
}

func TestCalcResistanceOrGroupNotContributingWhenSoleSatisfier(t *testing.T) {
	segs := newFakeSegments()
	groups := newFakeOrGroups()
	segs.hasGroup[1] = true
	groups.members[1] = []int{7}
	groups.status[7] = resistance.Satisfied
	groups.priority[7] = 42
	groups.satBy[7] = map[variable.ID]bool{1: true}

	s := resistance.New(segs, groups)
	s.CalcResistance(1, 0)

	require.Equal(t, 0.0, s.GetSatOrGroupResistance(1, resistance.Up))
}

func TestTotalResistanceCacheAndAck(t *testing.T) {
	segs := newFakeSegments()
	groups := newFakeOrGroups()
	s := resistance.New(segs, groups)

	_, ok := s.GetTotalResistance(1, resistance.Up)
	require.False(t, ok)

	s.SetTotalResistance(1, resistance.Up, resistance.Total{Resistance: 9})
	got, ok := s.GetTotalResistance(1, resistance.Up)
	require.True(t, ok)
	require.Equal(t, 9.0, got.Resistance)

	changed := s.AckTotalResistanceChanged()
	require.Equal(t, []variable.ID{1}, changed)
	require.Empty(t, s.AckTotalResistanceChanged())
}

func TestViolatedBoundResistsFree(t *testing.T) {
	segs := newFakeSegments()
	groups := newFakeOrGroups()
	s := resistance.New(segs, groups)

	s.SetTotalResistance(1, resistance.Up, resistance.Total{Resistance: 10})
	s.SetTotalResistance(2, resistance.Up, resistance.Total{Resistance: 3})

	require.True(t, s.ViolatedBoundResistsFree(1, 2, resistance.Up))
	require.False(t, s.ViolatedBoundResistsFree(2, 1, resistance.Up))
}

func TestSatOrGroupSourceFindsResponsibleGroup(t *testing.T) {
	segs := newFakeSegments()
	groups := newFakeOrGroups()
	segs.hasGroup[1] = true
	groups.members[1] = []int{7, 8}
	groups.status[7] = resistance.Satisfied
	groups.priority[7] = 10
	groups.satBy[7] = map[variable.ID]bool{1: true, 2: true}
	groups.status[8] = resistance.Satisfied
	groups.priority[8] = 42
	groups.satBy[8] = map[variable.ID]bool{1: true, 3: true}

	s := resistance.New(segs, groups)
	s.CalcResistance(1, 0)

	g, ok := s.SatOrGroupSource(1, resistance.Up)
	require.True(t, ok)
	require.Equal(t, 8, g, "the highest-priority satisfied group is the one contributing the figure")

	_, ok = s.SatOrGroupSource(2, resistance.Up)
	require.False(t, ok, "a variable with no computed sat-or-group resistance has no source")
}

func TestClearTotalsDropsCache(t *testing.T) {
	segs := newFakeSegments()
	groups := newFakeOrGroups()
	s := resistance.New(segs, groups)

	s.SetTotalResistance(1, resistance.Up, resistance.Total{Resistance: 9})
	s.ClearTotals()

	_, ok := s.GetTotalResistance(1, resistance.Up)
	require.False(t, ok)
}

func TestForgetDropsAllState(t *testing.T) {
	segs := newFakeSegments()
	groups := newFakeOrGroups()
	segs.own[1] = [2]float64{5, 10}

	s := resistance.New(segs, groups)
	s.CalcResistance(1, 3)
	s.SetTotalResistance(1, resistance.Up, resistance.Total{Resistance: 9})

	s.Forget(1)

	require.Equal(t, 0.0, s.GetUpResistance(1))
	_, ok := s.GetTotalResistance(1, resistance.Up)
	require.False(t, ok)
	require.False(t, s.NeedsTotalRecalc(1))
	require.Empty(t, s.AckResistanceChanged())
}

func TestRefreshAfterBoundVarAddedMarksDependents(t *testing.T) {
	segs := newFakeSegments()
	groups := newFakeOrGroups()
	s := resistance.New(segs, groups)

	s.RefreshAfterBoundVarAdded(1, []variable.ID{2, 3})

	require.True(t, s.NeedsTotalRecalc(2))
	require.True(t, s.NeedsTotalRecalc(3))
	require.True(t, s.NeedsTotalRecalc(1))
}
