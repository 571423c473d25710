package orgroup_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/posolve-go/posolve/orgroup"
	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/variable"
)

func vars(ids ...int) []variable.ID {
	out := make([]variable.ID, len(ids))
	for i, id := range ids {
		out[i] = variable.ID(id)
	}
	return out
}

func TestGroupBecomesSatisfiedWhenTwoMembersAgree(t *testing.T) {
	s := orgroup.New()
	id := s.NewGroup(vars(1, 2, 3), 5, 0.01)

	s.UpdateSatisfaction(1, 10, true)
	require.Equal(t, resistance.Unsatisfied, s.GroupStatus(id))

	s.UpdateSatisfaction(2, 10, true)
	require.Equal(t, resistance.Satisfied, s.GroupStatus(id))
	require.True(t, s.IsSatisfiedOnOtherVariable(id, 1))
	require.True(t, s.IsSatisfiedOnOtherVariable(id, 2))
	require.False(t, s.IsSatisfiedOnOtherVariable(id, 3))
}

func TestGroupBecomesUnsatisfiedWhenMemberDrifts(t *testing.T) {
	s := orgroup.New()
	id := s.NewGroup(vars(1, 2), 5, 0.01)
	s.UpdateSatisfaction(1, 10, true)
	s.UpdateSatisfaction(2, 10, true)
	require.Equal(t, resistance.Satisfied, s.GroupStatus(id))

	s.UpdateSatisfaction(2, 20, true)
	require.Equal(t, resistance.Unsatisfied, s.GroupStatus(id))
}

func TestGroupPriorityAndGroupsOf(t *testing.T) {
	s := orgroup.New()
	id := s.NewGroup(vars(1, 2), 7, 0.01)
	require.Equal(t, 7.0, s.GroupPriority(id))
	require.Equal(t, []int{id}, s.GroupsOf(1))
}

func TestChangedTracksMembersWhoseSatisfactionFlipped(t *testing.T) {
	s := orgroup.New()
	id := s.NewGroup(vars(1, 2), 5, 0.01)
	s.UpdateSatisfaction(1, 10, true)
	s.UpdateSatisfaction(2, 10, true)

	require.True(t, s.Changed().Test(1))
	require.True(t, s.Changed().Test(2))

	s.Ack()
	require.False(t, s.Changed().Test(1))

	_ = id
}

func TestRemoveGroupDropsMembership(t *testing.T) {
	s := orgroup.New()
	id := s.NewGroup(vars(1, 2), 5, 0.01)
	s.RemoveGroup(id)
	require.Empty(t, s.GroupsOf(1))
}
