package sign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapLatticeGetDefaultsToBottom(t *testing.T) {
	var m MapLattice
	assert.Equal(t, Bottom, m.Get("x"))

	m = MapLattice{"x": Pos}
	assert.Equal(t, Pos, m.Get("x"))
	assert.Equal(t, Bottom, m.Get("y"))
}

func TestWithDoesNotMutateOriginal(t *testing.T) {
	m := MapLattice{"x": Zero}
	m2 := m.With("x", Pos)

	assert.Equal(t, Zero, m.Get("x"))
	assert.Equal(t, Pos, m2.Get("x"))
}

func TestJoinStores(t *testing.T) {
	a := MapLattice{"x": Pos, "y": Zero}
	b := MapLattice{"x": Neg, "z": Pos}

	joined := JoinStores(a, b)
	assert.Equal(t, Top, joined.Get("x"))
	assert.Equal(t, Zero, joined.Get("y"))
	assert.Equal(t, Pos, joined.Get("z"))
}

func TestJoinAllEmpty(t *testing.T) {
	got := JoinAll(nil)
	assert.Empty(t, got)
}

func TestMapLatticeEqual(t *testing.T) {
	a := MapLattice{"x": Pos, "y": Zero}
	b := MapLattice{"x": Pos, "y": Zero}
	c := MapLattice{"x": Pos, "y": Neg}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(MapLattice{"x": Pos}))
}

func TestKeysSorted(t *testing.T) {
	m := MapLattice{"z": Top, "a": Zero, "m": Pos}
	assert.Equal(t, []string{"a", "m", "z"}, m.Keys())
}
