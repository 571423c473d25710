package variable_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/posolve-go/posolve/variable"
)

func TestInternIsIdempotent(t *testing.T) {
	p := variable.NewPool()

	a1, err := p.Intern("a")
	require.NoError(t, err)
	a2, err := p.Intern("a")
	require.NoError(t, err)
	require.Equal(t, a1, a2)

	b, err := p.Intern("b")
	require.NoError(t, err)
	require.NotEqual(t, a1, b)
}

func TestInternEmptyName(t *testing.T) {
	p := variable.NewPool()
	_, err := p.Intern("")
	require.ErrorIs(t, err, variable.ErrEmptyName)
}

func TestNameRoundTrip(t *testing.T) {
	p := variable.NewPool()
	id, err := p.Intern("x")
	require.NoError(t, err)

	name, err := p.Name(id)
	require.NoError(t, err)
	require.Equal(t, "x", name)
}

func TestRemoveFreesSlotForReuse(t *testing.T) {
	p := variable.NewPool()
	x, err := p.Intern("x")
	require.NoError(t, err)

	require.NoError(t, p.Remove("x"))

	_, ok := p.Lookup("x")
	require.False(t, ok)
	_, err = p.Name(x)
	require.ErrorIs(t, err, variable.ErrUnknownID)

	y, err := p.Intern("y")
	require.NoError(t, err)
	require.Equal(t, x, y, "freed slot should be reused by the next interned name")
}

func TestRemoveUnknown(t *testing.T) {
	p := variable.NewPool()
	require.ErrorIs(t, p.Remove("nope"), variable.ErrUnknownID)
}

func TestNamesSortedAndLen(t *testing.T) {
	p := variable.NewPool()
	for _, n := range []string{"c", "a", "b"} {
		_, err := p.Intern(n)
		require.NoError(t, err)
	}
	require.Equal(t, []string{"a", "b", "c"}, p.Names())
	require.Equal(t, 3, p.Len())
}
