package rowstore

import "errors"

// Sentinel errors for rowstore operations. Callers branch on these via
// errors.Is.
var (
	// ErrUnknownRow indicates a RowID has no corresponding live base row.
	ErrUnknownRow = errors.New("rowstore: unknown row id")

	// ErrUnknownCombRow indicates a RowID has no corresponding live
	// combination row.
	ErrUnknownCombRow = errors.New("rowstore: unknown combination row id")

	// ErrEmptyRow indicates a row with zero entries was submitted; a row
	// that becomes all-zero through later edits is tolerated, but a row
	// must start with at least one entry.
	ErrEmptyRow = errors.New("rowstore: row has no entries")

	// ErrZeroCoeff indicates a variable would be eliminated using a row
	// in which it has coefficient exactly zero — a programmer error in
	// the caller (the pivot engine must only eliminate on a nonzero
	// pivot coefficient).
	ErrZeroCoeff = errors.New("rowstore: pivot coefficient is zero")
)
