// Package posolve implements the pivot-style incremental linear equation
// solver that sits at the center of this module: a stateful engine that
// holds a system of sparse linear equations plus per-variable segment,
// stability, and or-group constraints, and repeatedly re-solves it as
// equations and constraints are edited, reusing the previous solution as
// a warm start.
//
// A solve pass has three phases, always run in this order: prepare
// (Gaussian-eliminate bound variables, normalize, seed the error
// derivative), feasibility (drive every row's signed error to zero via
// resistance-ordered pivots), and optimization (push violated variables
// toward their segment-preferred targets in decreasing priority order,
// suspending any that cannot move without violating a higher-priority
// constraint elsewhere).
//
// The engine is not reentrant: Engine.AddEquation, SetEquation,
// RemoveEquation, and TransferValue buffer their edits; nothing is
// recomputed until the next call to Solve.
package posolve
