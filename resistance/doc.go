// Package resistance computes, for every variable known to the solver,
// how strongly it resists being moved in each direction — the signal the
// optimization phase uses to decide which violated constraint to relax
// next and how far it can safely go.
//
// Resistance is layered:
//
//   - "own" resistance: the priority at which a variable's segment or
//     stability preference forbids further movement in a direction,
//     reported by the caller's SegmentConstraints.
//   - "satisfied-or-group" resistance: extra resistance contributed by
//     or-groups the variable currently satisfies jointly with another
//     variable — moving it could break that joint satisfaction — reported
//     by the caller's OrGroups.
//   - "total" resistance: the larger of own resistance and the
//     resistance induced through bound variables of zero-error
//     equations; the variable's own satisfied-or-group resistance is not
//     folded in. The induced contribution crosses into
//     rowstore/bound-variable territory the resistance package does not
//     own, so Store only caches and exposes it; the caller (posolve) does
//     the graph walk and records the result via SetTotalResistance.
//
// SegmentConstraints and OrGroups are specified here only at interface
// level, leaving exact backing storage to the implementer. This package
// settles on the concrete shape below: SegmentConstraints answers "own
// resistance" directly (OwnResistance) rather than forcing resistance to
// probe AllowsMovement at increasing priorities, because the segment
// store already holds the {min, max, priority} tuples needed to answer
// that in one step.
package resistance
