package posolve

import "errors"

// Sentinel errors returned by Engine's edit and query methods.
var (
	// ErrUnknownEquation indicates an EquationID has no corresponding
	// live row.
	ErrUnknownEquation = errors.New("posolve: unknown equation id")

	// ErrUnknownVariable indicates an internal exchange named a variable
	// that is not currently bound to any row.
	ErrUnknownVariable = errors.New("posolve: unknown variable")

	// ErrEmptyEquation indicates an equation was submitted with no
	// nonzero entries.
	ErrEmptyEquation = errors.New("posolve: equation has no entries")

	// ErrStaleCoefficient indicates a TransferValue edit named a previous
	// coefficient that no longer matches the stored row — the caller's
	// view of the equation is out of date.
	ErrStaleCoefficient = errors.New("posolve: stale previous coefficient")
)

// FaultReason classifies a Fault: the typed result this package uses in
// place of raising an exception when one of the engine's own step caps or
// internal invariants is violated — these are bugs surfacing, never a
// caller-correctable input condition.
type FaultReason int

const (
	// FaultStepCapExceeded means maxReductionStepNum or
	// maxOptimizationSteps was exceeded — the infinite-loop watchdog
	// fired.
	FaultStepCapExceeded FaultReason = iota
	// FaultUnboundedMove means a feasibility or optimization move had no
	// finite stopping point where one was required.
	FaultUnboundedMove
	// FaultBlockedPriorityInversion means a blocked variable's recorded
	// priority was found to be below the priority that blocked it, which
	// should be structurally impossible.
	FaultBlockedPriorityInversion
)

func (r FaultReason) String() string {
	switch r {
	case FaultStepCapExceeded:
		return "step cap exceeded"
	case FaultUnboundedMove:
		return "unbounded move"
	case FaultBlockedPriorityInversion:
		return "blocked priority inversion"
	default:
		return "unknown fault"
	}
}

// Fault is the typed result Solve returns when the engine detects one of
// its own invariants has been violated. These are programmer errors,
// never a caller-visible outcome for correctly configured input —
// callers are free to panic on receiving one.
type Fault struct {
	Reason  FaultReason
	Message string
}

func (f *Fault) Error() string {
	return "posolve: " + f.Reason.String() + ": " + f.Message
}

func newFault(reason FaultReason, message string) *Fault {
	return &Fault{Reason: reason, Message: message}
}
