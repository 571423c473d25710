package ordlist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/posolve-go/posolve/ordlist"
)

type intItem struct {
	name string
	key  int
}

func (i *intItem) Less(other ordlist.Item) bool {
	return i.key < other.(*intItem).key
}

func TestListOrdersByKeyAndLastIsMax(t *testing.T) {
	l := ordlist.New()
	a := &intItem{"a", 3}
	b := &intItem{"b", 1}
	c := &intItem{"c", 5}
	l.Insert(a)
	l.Insert(b)
	l.Insert(c)

	require.Equal(t, c, l.Last())
	require.Equal(t, a, l.SecondLast())
}

func TestRepositionMovesItem(t *testing.T) {
	l := ordlist.New()
	a := &intItem{"a", 1}
	b := &intItem{"b", 2}
	l.Insert(a)
	l.Insert(b)
	require.Equal(t, b, l.Last())

	a.key = 10
	l.Reposition(a)
	require.Equal(t, a, l.Last())
}

func TestRemoveByIdentity(t *testing.T) {
	l := ordlist.New()
	a := &intItem{"a", 1}
	l.Insert(a)
	require.True(t, l.Remove(a))
	require.False(t, l.Remove(a))
	require.Equal(t, 0, l.Len())
}

func TestCursorVisitsEachItemOnceInDescendingOrder(t *testing.T) {
	l := ordlist.New()
	a := &intItem{"a", 1}
	b := &intItem{"b", 3}
	c := &intItem{"c", 2}
	l.Insert(a)
	l.Insert(b)
	l.Insert(c)

	cur := ordlist.NewCursor()
	var order []string
	for {
		it, ok := cur.Next(l)
		if !ok {
			break
		}
		order = append(order, it.(*intItem).name)
	}
	require.Equal(t, []string{"b", "c", "a"}, order)
}

func TestCursorPicksUpLateInsertExactlyOnce(t *testing.T) {
	l := ordlist.New()
	a := &intItem{"a", 1}
	l.Insert(a)

	cur := ordlist.NewCursor()
	first, ok := cur.Next(l)
	require.True(t, ok)
	require.Equal(t, a, first)

	d := &intItem{"d", 100}
	l.Insert(d)

	second, ok := cur.Next(l)
	require.True(t, ok)
	require.Equal(t, d, second)

	_, ok = cur.Next(l)
	require.False(t, ok)
}
