package posolve

import (
	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/rowstore"
	"github.com/posolve-go/posolve/variable"
)

// SegmentConstraints is the collaborator that owns each variable's
// segment and stability constraints. It is resistance.SegmentConstraints
// under an alias, since the resistance package is the only thing that
// calls it directly — Engine just holds and forwards a reference.
type SegmentConstraints = resistance.SegmentConstraints

// OrGroups is the collaborator that owns or-group membership and
// satisfaction, aliasing resistance.OrGroups for the same reason.
type OrGroups = resistance.OrGroups

// PosCalc is the higher-level orchestrator the engine queries for a
// variable's last known value and which variables it currently cares
// about. Concrete implementations live outside this module; Engine only
// consumes this interface.
type PosCalc interface {
	// GetLastValue returns v's most recently known value and whether v
	// is tracked at all.
	GetLastValue(v variable.ID) (float64, bool)

	// HasVariable reports whether v is a variable PosCalc currently
	// cares about.
	HasVariable(v variable.ID) bool
}

// Observer receives notifications of internal engine events. Production
// callers can pass the zero-cost noopObserver (the default); a logging
// implementation lives in posolve/zlog for development and tests.
type Observer interface {
	OnPivot(v variable.ID, row rowstore.RowID)
	OnExchange(freeVar, boundVar variable.ID)
	OnSuspend(v variable.ID, priority float64)
	OnFault(f *Fault)
}

type noopObserver struct{}

func (noopObserver) OnPivot(variable.ID, rowstore.RowID) {}
func (noopObserver) OnExchange(variable.ID, variable.ID) {}
func (noopObserver) OnSuspend(variable.ID, float64) {}
func (noopObserver) OnFault(*Fault) {}
