package neighbor

import (
	"testing"

	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/vecmath"
	"github.com/stretchr/testify/require"
)

func gridSystem(t *testing.T, n int, spacing, boxLen float64) *coords.Coordinates {
	t.Helper()
	c := coords.New(n*n*n, boxLen)
	require.NoError(t, c.SetSize(n*n*n))
	idx := 0
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				c.Set(idx, vecmath.NewVec3(float64(x)*spacing, float64(y)*spacing, float64(z)*spacing))
				idx++
			}
		}
	}
	return c
}

func TestFreshListHasNoNeighbors(t *testing.T) {
	c := gridSystem(t, 3, 1.0, 10.0)
	nl := New(c, AllowAll{}, 0.6, 0.5)

	for i := 0; i < c.Size(); i++ {
		require.Empty(t, nl.Neighbors(i))
	}
}

func TestUpdateAllFindsTrueNeighbors(t *testing.T) {
	c := gridSystem(t, 3, 1.0, 10.0)
	nl := New(c, AllowAll{}, 1.1, 0.2)
	nl.UpdateAll()
	require.NoError(t, nl.AssertConsistent())

	// Corner (0,0,0) has exactly 3 axis-neighbors at distance 1.0.
	require.Len(t, nl.Neighbors(0), 3)
}

func TestVolumeChangeDoublesDistancesRemovesNeighbors(t *testing.T) {
	c := gridSystem(t, 3, 1.0, 10.0)
	nl := New(c, AllowAll{}, 0.6, 0.5)
	nl.UpdateAll()
	require.NotEmpty(t, nl.Neighbors(0))

	c.SetBoxLen(20.0) // doubles every coordinate value, separations double too
	for i := 0; i < c.Size(); i++ {
		nl.Update(i)
	}
	require.NoError(t, nl.AssertConsistent())

	for i := 0; i < c.Size(); i++ {
		require.Empty(t, nl.Neighbors(i), "atom %d should have no neighbors within 0.6 after doubling", i)
	}
}

func TestExcludeBondedWithinChain(t *testing.T) {
	c := coords.New(4, 100)
	require.NoError(t, c.SetSize(4))
	require.NoError(t, c.SetChains([]coords.ChainRange{{0, 4}}))
	for i := 0; i < 4; i++ {
		c.Set(i, vecmath.NewVec3(float64(i)*0.5, 0, 0))
	}

	nl := New(c, ExcludeBondedWithinChain{K: 1}, 5.0, 0.1)
	nl.UpdateAll()

	// 0 and 1 are within 1 bond (|i-j|<=1) and excluded despite being close.
	for _, j := range nl.Neighbors(0) {
		require.NotEqual(t, 1, j)
	}
	// 0 and 2 are 2 apart, not excluded.
	found := false
	for _, j := range nl.Neighbors(0) {
		if j == 2 {
			found = true
		}
	}
	require.True(t, found)
}
