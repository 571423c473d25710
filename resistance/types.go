package resistance

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/posolve-go/posolve/variable"
)

// Direction is the sense of movement a resistance value is quoted for.
type Direction int

const (
	// Up is movement toward increasing values.
	Up Direction = iota
	// Down is movement toward decreasing values.
	Down
)

// Opposite returns the reverse of d.
func (d Direction) Opposite() Direction {
	if d == Up {
		return Down
	}
	return Up
}

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Verdict is the three-way answer SegmentConstraints.AllowsMovement gives
// when asked whether a variable may move toward a target value.
type Verdict int

const (
	// Allowed means the move is permitted outright.
	Allowed Verdict = iota
	// Denied means the move is forbidden by a segment or stability
	// constraint with no or-group involved.
	Denied
	// OrGroupResists means the move is forbidden only because doing so
	// would break the joint satisfaction of an or-group; the group id is
	// returned alongside the verdict.
	OrGroupResists
)

// GroupStatus reports whether an or-group currently has at least two
// variables satisfying it jointly.
type GroupStatus int

const (
	// Unsatisfied means fewer than two member variables currently agree.
	Unsatisfied GroupStatus = iota
	// Satisfied means two or more member variables currently agree.
	Satisfied
)

// SegmentConstraints is the collaborator that owns each variable's
// segment (min/max/preferred value) and stability preferences.
type SegmentConstraints interface {
	// PreferredValue returns the value v should settle to absent any
	// other pressure, given its last known value last.
	PreferredValue(v variable.ID, last float64) float64

	// NextValue returns the nearest representable value reachable from
	// from when moving upward (if upward) or downward, or ±math.Inf when
	// no nearer boundary exists in that direction.
	NextValue(v variable.ID, from float64, upward bool) float64

	// ClampToWindows returns value clamped into the intersection of v's
	// active segment windows, or value unchanged if v has none or the
	// intersection doesn't bind it.
	ClampToWindows(v variable.ID, value float64) float64

	// AllowsMovement reports whether v may move toward target in the
	// given direction, and if the sole obstacle is an or-group, returns
	// OrGroupResists together with that group's id.
	AllowsMovement(v variable.ID, dir Direction, target float64) (Verdict, int)

	// HasOrGroups reports whether v participates in any or-group at all.
	HasOrGroups(v variable.ID) bool

	// OwnResistance returns the priority at which v's own segment or
	// stability preference forbids further movement in dir, measured from
	// the position given as from. A value of 0 means unconstrained
	// movement; math.Inf(1) means the direction is never allowed (e.g.
	// min == max).
	OwnResistance(v variable.ID, from float64, dir Direction) float64

	// Changed returns the set of variables whose segment or stability
	// state has changed since the last Ack.
	Changed() *bitset.BitSet

	// Ack clears the Changed set.
	Ack()
}

// OrGroups is the collaborator that owns or-group membership and
// satisfaction state.
type OrGroups interface {
	// IsSatisfiedOnOtherVariable reports whether group is currently
	// satisfied by some member other than v.
	IsSatisfiedOnOtherVariable(group int, v variable.ID) bool

	// SatisfiedVariables returns the members of group currently
	// satisfying it.
	SatisfiedVariables(group int) []variable.ID

	// GroupStatus reports whether group is jointly satisfied right now.
	GroupStatus(group int) GroupStatus

	// GroupPriority returns the priority to attribute to group as
	// satisfied-or-group resistance.
	GroupPriority(group int) float64

	// GroupsOf returns the ids of every or-group v participates in.
	GroupsOf(v variable.ID) []int

	// UpdateSatisfaction records v's new value and whether it is stable
	// (has stopped moving this round), letting the store recompute which
	// or-groups v currently satisfies.
	UpdateSatisfaction(v variable.ID, value float64, stable bool)

	// Changed returns the set of variables whose or-group satisfaction
	// has changed since the last Ack.
	Changed() *bitset.BitSet

	// Ack clears the Changed set.
	Ack()
}

type totalKey struct {
	v   variable.ID
	dir Direction
}

// Total is the outcome of a total-resistance computation: the combined
// priority plus which variable or or-group, if any, is responsible for
// the binding contribution.
type Total struct {
	Resistance        float64
	ResistingVar      variable.ID
	HasResistingVar   bool
	ResistingGroup    int
	HasResistingGroup bool
}

// Store holds per-variable resistance values and the change-tracking
// bitsets that let callers see what moved since their last Ack,
// consulting SegmentConstraints and OrGroups to (re)compute them.
type Store struct {
	segments SegmentConstraints
	orgroups OrGroups

	own      map[variable.ID][2]float64 // indexed by Direction
	satGroup map[variable.ID][2]float64
	values   map[variable.ID]float64 // position each own/satGroup figure was computed at

	totals map[totalKey]Total

	resistanceChanged                  *bitset.BitSet
	satOrGroupResistanceChanged        *bitset.BitSet
	totalResistanceChanged             *bitset.BitSet
	violationChanged                   *bitset.BitSet
	needRecalcTotalForViolatedOrGroups *bitset.BitSet
}

// New returns a Store backed by the given collaborators.
func New(segments SegmentConstraints, orgroups OrGroups) *Store {
	return &Store{
		segments: segments,
		orgroups: orgroups,

		own:      make(map[variable.ID][2]float64),
		satGroup: make(map[variable.ID][2]float64),
		values:   make(map[variable.ID]float64),
		totals:   make(map[totalKey]Total),

		resistanceChanged:                  bitset.New(0),
		satOrGroupResistanceChanged:        bitset.New(0),
		totalResistanceChanged:             bitset.New(0),
		violationChanged:                   bitset.New(0),
		needRecalcTotalForViolatedOrGroups: bitset.New(0),
	}
}
