// Package segment implements resistance.SegmentConstraints: for every
// variable it holds zero or more simultaneously active [min, max]
// windows, each carrying its own priority, plus an optional stability
// preference (a preferred value the variable should return to once
// nothing else is pulling on it).
//
// A variable's current value is expected to lie inside every one of its
// windows at once — they model layered constraints of different
// importance on the same variable (e.g. a hard boundary and a softer
// preferred range), not alternatives. Own resistance in a direction is
// the highest priority among the windows whose boundary on that side the
// variable already sits at or past, and of the stability preference when
// the move leads away from the preferred value; a window the variable is
// strictly inside does not resist yet.
package segment
