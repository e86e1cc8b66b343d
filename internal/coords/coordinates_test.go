package coords

import (
	"testing"

	"github.com/bioshell-go/bioshell/internal/vecmath"
	"github.com/stretchr/testify/require"
)

func TestWrapOnSet(t *testing.T) {
	c := New(4, 10.0)
	require.NoError(t, c.SetSize(4))

	c.Set(0, vecmath.NewVec3(12.0, -3.0, 10.0))
	got := c.Get(0)
	require.InDelta(t, 2.0, got.X, 1e-12)
	require.InDelta(t, 7.0, got.Y, 1e-12)
	require.InDelta(t, 0.0, got.Z, 1e-12)
}

func TestMinimumImageDistance(t *testing.T) {
	c := New(2, 10.0)
	require.NoError(t, c.SetSize(2))
	c.Set(0, vecmath.NewVec3(0.5, 0, 0))
	c.Set(1, vecmath.NewVec3(9.5, 0, 0))

	// True separation is 1.0 across the periodic boundary, not 9.0.
	d2 := c.ClosestDistanceSquared(0, 1)
	require.InDelta(t, 1.0, d2, 1e-9)
}

func TestSetBoxLenRescales(t *testing.T) {
	c := New(1, 10.0)
	require.NoError(t, c.SetSize(1))
	c.Set(0, vecmath.NewVec3(5.0, 5.0, 5.0))

	c.SetBoxLen(20.0)
	got := c.Get(0)
	require.InDelta(t, 10.0, got.X, 1e-9)
	require.InDelta(t, 10.0, got.Y, 1e-9)
	require.InDelta(t, 10.0, got.Z, 1e-9)
	require.Equal(t, 20.0, c.BoxLen())
}

func TestChainRangesMustBeContiguous(t *testing.T) {
	c := New(6, 100)
	require.NoError(t, c.SetSize(6))

	require.NoError(t, c.SetChains([]ChainRange{{0, 3}, {3, 6}}))
	require.Equal(t, 0, c.ChainOf(0))
	require.Equal(t, 1, c.ChainOf(5))
	require.True(t, c.SameChain(0, 2))
	require.False(t, c.SameChain(2, 3))

	err := c.SetChains([]ChainRange{{0, 2}, {3, 6}})
	require.Error(t, err)
}
