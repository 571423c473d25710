package segment_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/segment"
)

func TestNextValueFindsNearestBoundary(t *testing.T) {
	s := segment.New()
	s.SetSegments(1, []segment.Segment{{Min: 0, Max: 10, Priority: 1}})
	s.SetStability(1, 5, 0)

	require.Equal(t, 10.0, s.NextValue(1, 5, true))
	require.Equal(t, 0.0, s.NextValue(1, 5, false))
}

func TestNextValueUnboundedReturnsInf(t *testing.T) {
	s := segment.New()
	require.True(t, math.IsInf(s.NextValue(1, 5, true), 1))
	require.True(t, math.IsInf(s.NextValue(1, 5, false), -1))
}

func TestAllowsMovementDeniedWithoutOrGroup(t *testing.T) {
	s := segment.New()
	s.SetSegments(1, []segment.Segment{{Min: 0, Max: 10, Priority: 1}})

	verdict, _ := s.AllowsMovement(1, resistance.Up, 11)
	require.Equal(t, resistance.Denied, verdict)

	verdict, _ = s.AllowsMovement(1, resistance.Up, 9)
	require.Equal(t, resistance.Allowed, verdict)
}

func TestAllowsMovementOrGroupResists(t *testing.T) {
	s := segment.New()
	s.SetSegments(1, []segment.Segment{{Min: 0, Max: 10, Priority: 1}})
	s.SetOrGroups(1, []int{42})

	verdict, group := s.AllowsMovement(1, resistance.Up, 11)
	require.Equal(t, resistance.OrGroupResists, verdict)
	require.Equal(t, 42, group)
}

func TestOwnResistanceBindsOnlyAtOrPastBoundary(t *testing.T) {
	s := segment.New()
	s.SetSegments(1, []segment.Segment{
		{Min: math.Inf(-1), Max: 100, Priority: 1},
		{Min: math.Inf(-1), Max: 10, Priority: 5},
	})

	// Interior of both windows: nothing resists an upward move yet.
	require.Equal(t, 0.0, s.OwnResistance(1, 5, resistance.Up))
	// At the inner window's edge its priority binds; the outer window
	// is still slack.
	require.Equal(t, 5.0, s.OwnResistance(1, 10, resistance.Up))
	// Past both edges the strongest violated window wins.
	require.Equal(t, 5.0, s.OwnResistance(1, 100, resistance.Up))
	// Moving back down toward the windows is never resisted by them.
	require.Equal(t, 0.0, s.OwnResistance(1, 100, resistance.Down))
}

func TestOwnResistanceStabilityPreferenceBindsAtItsPoint(t *testing.T) {
	s := segment.New()
	s.SetSegments(1, []segment.Segment{{Min: 0, Max: 100, Priority: 1}})
	s.SetStability(1, 5, 9)

	require.Equal(t, 9.0, s.OwnResistance(1, 5, resistance.Up))
	require.Equal(t, 9.0, s.OwnResistance(1, 5, resistance.Down))
	// Above the preferred value only a further-up move is resisted.
	require.Equal(t, 9.0, s.OwnResistance(1, 7, resistance.Up))
	require.Equal(t, 0.0, s.OwnResistance(1, 7, resistance.Down))
}

func TestOwnResistanceUnconstrainedIsZero(t *testing.T) {
	s := segment.New()
	require.Equal(t, 0.0, s.OwnResistance(1, 3, resistance.Up))
}

func TestChangedTracksSets(t *testing.T) {
	s := segment.New()
	s.SetSegments(1, []segment.Segment{{Min: 0, Max: 10, Priority: 1}})

	require.True(t, s.Changed().Test(1))
	s.Ack()
	require.False(t, s.Changed().Test(1))
}
