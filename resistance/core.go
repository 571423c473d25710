package resistance

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/posolve-go/posolve/variable"
)

// CalcResistance (re)computes v's own and satisfied-or-group resistance
// in both directions from the current collaborator state, measured at
// position value, marking the relevant change sets.
func (s *Store) CalcResistance(v variable.ID, value float64) {
	s.values[v] = value
	s.recalc(v)
}

// recalc recomputes v's resistance at the position last recorded by
// CalcResistance.
func (s *Store) recalc(v variable.ID) {
	value := s.values[v]
	var own [2]float64
	own[Up] = s.segments.OwnResistance(v, value, Up)
	own[Down] = s.segments.OwnResistance(v, value, Down)
	s.own[v] = own
	s.resistanceChanged.Set(uint(v))

	var sat [2]float64
	if s.segments.HasOrGroups(v) {
		for _, g := range s.orgroups.GroupsOf(v) {
			if s.orgroups.GroupStatus(g) != Satisfied {
				continue
			}
			if !s.orgroups.IsSatisfiedOnOtherVariable(g, v) {
				continue
			}
			p := s.orgroups.GroupPriority(g)
			if p > sat[Up] {
				sat[Up] = p
			}
			if p > sat[Down] {
				sat[Down] = p
			}
		}
	}
	s.satGroup[v] = sat
	s.satOrGroupResistanceChanged.Set(uint(v))

	s.needRecalcTotalForViolatedOrGroups.Set(uint(v))
}

// RefreshEntry recomputes v's resistance at its last recorded position
// and marks it as needing its total resistance recalculated by the
// caller.
func (s *Store) RefreshEntry(v variable.ID) {
	s.recalc(v)
}

// SetStableValue informs the or-group collaborator that v has settled at
// value for this round, and refreshes v's resistance in response.
func (s *Store) SetStableValue(v variable.ID, value float64) {
	s.orgroups.UpdateSatisfaction(v, value, true)
	s.CalcResistance(v, value)
}

// GetUpResistance returns v's own resistance moving upward.
func (s *Store) GetUpResistance(v variable.ID) float64 {
	return s.own[v][Up]
}

// GetDownResistance returns v's own resistance moving downward.
func (s *Store) GetDownResistance(v variable.ID) float64 {
	return s.own[v][Down]
}

// GetMinResistance returns the smaller of v's two own resistances — the
// direction v would yield in first under equal pressure.
func (s *Store) GetMinResistance(v variable.ID) float64 {
	r := s.own[v]
	if r[Up] < r[Down] {
		return r[Up]
	}
	return r[Down]
}

// GetResistance returns v's own resistance in the given direction.
func (s *Store) GetResistance(v variable.ID, dir Direction) float64 {
	return s.own[v][dir]
}

// GetSatOrGroupResistance returns v's satisfied-or-group resistance in
// the given direction.
func (s *Store) GetSatOrGroupResistance(v variable.ID, dir Direction) float64 {
	return s.satGroup[v][dir]
}

// SatOrGroupSource returns the or-group responsible for v's
// satisfied-or-group resistance in dir, if any group currently
// contributes one.
func (s *Store) SatOrGroupSource(v variable.ID, dir Direction) (int, bool) {
	target := s.satGroup[v][dir]
	if target == 0 {
		return 0, false
	}
	for _, g := range s.orgroups.GroupsOf(v) {
		if s.orgroups.GroupStatus(g) != Satisfied {
			continue
		}
		if !s.orgroups.IsSatisfiedOnOtherVariable(g, v) {
			continue
		}
		if s.orgroups.GroupPriority(g) == target {
			return g, true
		}
	}
	return 0, false
}

// GetResistanceWithSatOrGroups returns the larger of v's own resistance
// and its satisfied-or-group resistance in the given direction — the
// combined figure before any bound-variable induction is added.
func (s *Store) GetResistanceWithSatOrGroups(v variable.ID, dir Direction) float64 {
	own := s.own[v][dir]
	sat := s.satGroup[v][dir]
	if sat > own {
		return sat
	}
	return own
}

// GetTotalResistance returns the cached total resistance for v in dir, as
// last recorded by SetTotalResistance, and whether a value is cached.
func (s *Store) GetTotalResistance(v variable.ID, dir Direction) (Total, bool) {
	t, ok := s.totals[totalKey{v, dir}]
	return t, ok
}

// SetTotalResistance records the caller-computed total resistance for v
// in dir (own resistance or bound-variable induction, whichever is
// larger) and marks the change set.
func (s *Store) SetTotalResistance(v variable.ID, dir Direction, t Total) {
	s.totals[totalKey{v, dir}] = t
	s.totalResistanceChanged.Set(uint(v))
}

// ClearTotals drops every cached total-resistance figure; the next
// round recomputes totals on demand from current bound assignments.
func (s *Store) ClearTotals() {
	s.totals = make(map[totalKey]Total)
}

// Forget drops every cached figure for v. Called when the variable is
// destroyed, so a later variable reusing the same id starts clean.
func (s *Store) Forget(v variable.ID) {
	delete(s.own, v)
	delete(s.satGroup, v)
	delete(s.values, v)
	delete(s.totals, totalKey{v, Up})
	delete(s.totals, totalKey{v, Down})
	s.resistanceChanged.Clear(uint(v))
	s.satOrGroupResistanceChanged.Clear(uint(v))
	s.totalResistanceChanged.Clear(uint(v))
	s.violationChanged.Clear(uint(v))
	s.needRecalcTotalForViolatedOrGroups.Clear(uint(v))
}

// NeedsTotalRecalc reports whether v was marked, via CalcResistance or
// RefreshAfter*, as requiring its total resistance to be recomputed.
func (s *Store) NeedsTotalRecalc(v variable.ID) bool {
	return s.needRecalcTotalForViolatedOrGroups.Test(uint(v))
}

// ClearNeedsTotalRecalc acknowledges v's total resistance has been
// recomputed for this round.
func (s *Store) ClearNeedsTotalRecalc(v variable.ID) {
	s.needRecalcTotalForViolatedOrGroups.Clear(uint(v))
}

// MarkViolationChanged records that v's violation status has changed
// since the last Ack.
func (s *Store) MarkViolationChanged(v variable.ID) {
	s.violationChanged.Set(uint(v))
}

// ViolatedBoundResistsFree reports whether a bound variable bound, whose
// equation a free variable free is about to be eliminated from, resists
// the change more than free's own total resistance would — i.e. whether
// bound's total resistance in dir dominates free's, so the pivot should
// prefer moving free instead of letting bound absorb the change.
func (s *Store) ViolatedBoundResistsFree(bound, free variable.ID, dir Direction) bool {
	boundTotal, ok := s.GetTotalResistance(bound, dir)
	if !ok {
		return false
	}
	freeTotal, ok := s.GetTotalResistance(free, dir)
	if !ok {
		return true
	}
	return boundTotal.Resistance > freeTotal.Resistance
}

// RefreshAfterEquationChange marks every variable in changed as needing
// its own resistance and total resistance recomputed, because the
// equation set they appear in was edited.
func (s *Store) RefreshAfterEquationChange(changed []variable.ID) {
	for _, v := range changed {
		s.recalc(v)
	}
}

// RefreshAfterBoundVarAdded marks v — newly bound — as needing its
// resistance and its dependents' total resistance recomputed.
func (s *Store) RefreshAfterBoundVarAdded(v variable.ID, dependents []variable.ID) {
	s.recalc(v)
	for _, d := range dependents {
		s.needRecalcTotalForViolatedOrGroups.Set(uint(d))
	}
}

// RefreshAfterBoundVarRemoved marks v — no longer bound — and its former
// dependents as needing resistance recomputed.
func (s *Store) RefreshAfterBoundVarRemoved(v variable.ID, formerDependents []variable.ID) {
	s.recalc(v)
	for _, d := range formerDependents {
		s.needRecalcTotalForViolatedOrGroups.Set(uint(d))
	}
}

// RefreshAfterBoundVarChange marks v's dependents as needing total
// resistance recomputed after v's bound value changed.
func (s *Store) RefreshAfterBoundVarChange(v variable.ID, dependents []variable.ID) {
	s.needRecalcTotalForViolatedOrGroups.Set(uint(v))
	for _, d := range dependents {
		s.needRecalcTotalForViolatedOrGroups.Set(uint(d))
	}
}

// AckResistanceChanged clears the resistanceChanged set, returning the
// variables it contained.
func (s *Store) AckResistanceChanged() []variable.ID {
	return ackBitset(s.resistanceChanged)
}

// AckSatOrGroupResistanceChanged clears the satOrGroupResistanceChanged
// set, returning the variables it contained.
func (s *Store) AckSatOrGroupResistanceChanged() []variable.ID {
	return ackBitset(s.satOrGroupResistanceChanged)
}

// AckTotalResistanceChanged clears the totalResistanceChanged set,
// returning the variables it contained.
func (s *Store) AckTotalResistanceChanged() []variable.ID {
	return ackBitset(s.totalResistanceChanged)
}

// AckViolationChanged clears the violationChanged set, returning the
// variables it contained.
func (s *Store) AckViolationChanged() []variable.ID {
	return ackBitset(s.violationChanged)
}

// ackBitset drains b, returning the variable ids it held set and clearing
// each as it is read.
func ackBitset(b *bitset.BitSet) []variable.ID {
	var out []variable.ID
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, variable.ID(i))
	}
	b.ClearAll()
	return out
}
