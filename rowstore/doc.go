// Package rowstore holds the solver's two parallel equation sets: a
// base set B of caller-supplied sparse rows and a linearly independent
// combination set C obtained from B by recorded scalar row combinations.
//
// Store owns the sparse row storage and the bookkeeping needed to answer
// "which rows reference this variable" and "what base rows make up this
// combination row", and keeps an innerproduct.Tracker in lockstep with
// every row edit via the incremental row-combination rule. It does not
// know what a "bound variable" is — that partition, and the Gaussian
// elimination policy that picks which variable to eliminate, belong to
// the pivot engine in package posolve, which drives Store through
// Eliminate.
//
// Row ids are assigned by Store (NewVector) and are stable for the life
// of a base row. A combination row is addressable by the id of the base
// row it was first derived from only until the next structural edit
// (SetVector/RemoveVector) on some other base row forces a substitution:
// pivots freely mutate C while B stays immutable between caller edits,
// so id correspondence between B and C is a construction-time
// convenience, not an invariant Store maintains forever. What Store does
// guarantee at every stable point: C stays linearly independent with the
// same row-span as B, at most one nonzero-coefficient occurrence of any
// bound variable survives per eliminate, and the tracker's products
// follow r·x.
package rowstore
