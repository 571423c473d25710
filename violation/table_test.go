package violation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/posolve-go/posolve/variable"
	"github.com/posolve-go/posolve/violation"
)

func TestUpsertOrdersByPriority(t *testing.T) {
	tbl := violation.New()
	tbl.Upsert(1, 10, 1)
	tbl.Upsert(2, 20, 5)
	tbl.Upsert(3, 30, 3)

	require.Equal(t, variable.ID(2), tbl.Last().Var)
}

func TestUpsertExistingRepositions(t *testing.T) {
	tbl := violation.New()
	tbl.Upsert(1, 10, 1)
	tbl.Upsert(2, 20, 2)
	require.Equal(t, variable.ID(2), tbl.Last().Var)

	tbl.Upsert(1, 15, 9)
	require.Equal(t, variable.ID(1), tbl.Last().Var)
	require.Equal(t, 15.0, tbl.Last().Target)
}

func TestSuspendSortsBelowPeersAtSamePriority(t *testing.T) {
	tbl := violation.New()
	tbl.Upsert(1, 0, 5)
	tbl.Upsert(2, 0, 5)
	tbl.Suspend(1)

	require.Equal(t, variable.ID(2), tbl.Last().Var)
}

func TestUnsuspendRestoresOrdering(t *testing.T) {
	tbl := violation.New()
	tbl.Upsert(1, 0, 5)
	tbl.Upsert(2, 0, 5)
	tbl.Suspend(2)
	require.Equal(t, variable.ID(1), tbl.Last().Var)

	tbl.Unsuspend(2)
	e, ok := tbl.Get(2)
	require.True(t, ok)
	require.False(t, e.Suspended)
}

func TestRemoveDropsEntry(t *testing.T) {
	tbl := violation.New()
	tbl.Upsert(1, 0, 5)
	require.True(t, tbl.Remove(1))
	require.False(t, tbl.Has(1))
	require.Equal(t, 0, tbl.Len())
}

func TestCursorWalksDescendingPriority(t *testing.T) {
	tbl := violation.New()
	tbl.Upsert(1, 0, 1)
	tbl.Upsert(2, 0, 3)
	tbl.Upsert(3, 0, 2)

	cur := tbl.NewCursor()
	var order []variable.ID
	for {
		e, ok := tbl.Next(cur)
		if !ok {
			break
		}
		order = append(order, e.Var)
	}
	require.Equal(t, []variable.ID{2, 3, 1}, order)
}
