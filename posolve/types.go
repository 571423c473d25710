package posolve

import (
	"github.com/posolve-go/posolve/innerproduct"
	"github.com/posolve-go/posolve/ordlist"
	"github.com/posolve-go/posolve/resistance"
	"github.com/posolve-go/posolve/rowstore"
	"github.com/posolve-go/posolve/variable"
	"github.com/posolve-go/posolve/violation"
)

// EquationID names a base equation row; it is the id rowstore.Store
// assigns the row at creation and stays stable across edits.
type EquationID = rowstore.RowID

// Solution is a snapshot of variable → value. A variable absent from the
// map is implicitly 0.
type Solution map[variable.ID]float64

// rvEntry is one row of the variables-by-resistance list: the variable,
// its own and total resistance in its current error-reducing direction,
// and which bound variable or or-group, if any, is responsible for the
// total figure.
type rvEntry struct {
	v                 variable.ID
	dir               float64 // +1 (up) or -1 (down), the error-reducing direction
	own               float64
	total             float64
	resistingVar      variable.ID
	hasResistingVar   bool
	resistingOrGroup  int
	hasResistingGroup bool
}

// Less sorts descending by (own, total), so that ordlist.List.Last() —
// the pivot candidate every reduceError step takes — is the entry with
// the smallest resistance pair. The stop conditions in reduceResistance
// and the optimization-priority gate both rely on the candidate being
// the cheapest variable still available to move.
func (e *rvEntry) Less(other ordlist.Item) bool {
	o := other.(*rvEntry)
	if e.own != o.own {
		return e.own > o.own
	}
	return e.total > o.total
}

// blockedEntry records why a free variable cannot be moved during
// optimization: a specific blocking row, at a specific priority, in a
// specific direction, plus the set of rows this variable in turn blocks
// by being blocked itself.
type blockedEntry struct {
	priority     float64
	blocking     rowstore.RowID
	relativeSign float64
	resistDir    float64
	blockedEq    map[rowstore.RowID]bool
}

// selfBlockedEntry records a variable that resists at or above a given
// priority in both directions on its own, independent of any row.
type selfBlockedEntry struct {
	resistance float64
	blockedEq  map[rowstore.RowID]bool
}

// equationSuspension is the per-row bookkeeping created the first time a
// row becomes "blocking" during optimization.
type equationSuspension struct {
	suspensionID        int
	optimizationPriority float64
	optimizationDir      float64
	boundVar             variable.ID
	blocked              map[variable.ID]bool
	blocking             map[variable.ID]bool
	selfBlocked          map[variable.ID]bool
}

type exchangeKey struct {
	free, bound variable.ID
}

// Engine is the stateful pivot-style linear equation solver.
type Engine struct {
	cfg config

	pool     *variable.Pool
	rows     *rowstore.Store
	tracker  *innerproduct.Tracker
	resist   *resistance.Store
	segments SegmentConstraints
	orgroups OrGroups
	poscalc  PosCalc

	solution        map[variable.ID]float64
	solutionChanges map[variable.ID]bool

	bound                 map[variable.ID]rowstore.RowID
	boundOfRow            map[rowstore.RowID]variable.ID
	needToRefreshBoundVar map[rowstore.RowID]bool

	changedEquations map[rowstore.RowID]bool
	addedVars        map[variable.ID]bool
	removedVars      map[variable.ID]bool
	knownVars        map[variable.ID]bool

	derivative map[variable.ID]float64

	vbr        *ordlist.List
	vbrEntries map[variable.ID]*rvEntry

	satOrGroupVariables map[variable.ID]bool

	violations *violation.Table

	blocked          map[variable.ID]*blockedEntry
	selfBlocked      map[variable.ID]*selfBlockedEntry
	equations        map[rowstore.RowID]*equationSuspension
	nextSuspensionID int

	stepCounter int

	optimizationActive   bool
	optimizationVar      variable.ID
	optimizationPriority float64
	optimizationDir      float64
	optimizationTarget   float64
}

// New constructs an Engine over the given collaborators.
func New(segments SegmentConstraints, orgroups OrGroups, poscalc PosCalc, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	pool := variable.NewPool()
	tracker := innerproduct.New(cfg.zeroRounding)
	rows := rowstore.New(tracker,
		rowstore.WithZeroRounding(cfg.zeroRounding),
		rowstore.WithNormalizationThreshold(cfg.normalizationThreshold),
	)

	return &Engine{
		cfg: cfg,

		pool:     pool,
		rows:     rows,
		tracker:  tracker,
		resist:   resistance.New(segments, orgroups),
		segments: segments,
		orgroups: orgroups,
		poscalc:  poscalc,

		solution:        make(map[variable.ID]float64),
		solutionChanges: make(map[variable.ID]bool),

		bound:                 make(map[variable.ID]rowstore.RowID),
		boundOfRow:            make(map[rowstore.RowID]variable.ID),
		needToRefreshBoundVar: make(map[rowstore.RowID]bool),

		changedEquations: make(map[rowstore.RowID]bool),
		addedVars:        make(map[variable.ID]bool),
		removedVars:      make(map[variable.ID]bool),
		knownVars:        make(map[variable.ID]bool),

		derivative: make(map[variable.ID]float64),

		vbr:        ordlist.New(),
		vbrEntries: make(map[variable.ID]*rvEntry),

		satOrGroupVariables: make(map[variable.ID]bool),

		violations: violation.New(),

		blocked:     make(map[variable.ID]*blockedEntry),
		selfBlocked: make(map[variable.ID]*selfBlockedEntry),
		equations:   make(map[rowstore.RowID]*equationSuspension),
	}
}
