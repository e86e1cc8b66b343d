package energy

import (
	"testing"

	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/neighbor"
	"github.com/bioshell-go/bioshell/internal/vecmath"
	"github.com/stretchr/testify/require"
)

func chainOf5(t *testing.T, spacing float64) *coords.Coordinates {
	t.Helper()
	c := coords.New(5, 1000.0)
	require.NoError(t, c.SetSize(5))
	require.NoError(t, c.SetChains([]coords.ChainRange{{0, 5}}))
	for i := 0; i < 5; i++ {
		c.Set(i, vecmath.NewVec3(float64(i)*spacing, 0, 0))
	}
	return c
}

func TestHarmonicBondFullIsZeroAtEquilibrium(t *testing.T) {
	c := chainOf5(t, 3.8)
	bond := HarmonicBond{K: 1, D0: 3.8, W: 1}
	nl := neighbor.New(c, neighbor.AllowAll{}, 1, 1)

	require.InDelta(t, 0.0, bond.Full(c, nl), 1e-12)
}

func TestHarmonicBondDeltaMatchesDirectDifference(t *testing.T) {
	before := chainOf5(t, 3.8)
	after := chainOf5(t, 3.8)
	after.Set(2, vecmath.NewVec3(after.Get(2).X, 0.1, 0))

	bond := HarmonicBond{K: 1, D0: 3.8, W: 1}
	nl := neighbor.New(before, neighbor.AllowAll{}, 1, 1)

	delta := bond.DeltaOverRange(before, after, nl, 2, 3)

	directDelta := bond.PerIndex(after, nl, 2) - bond.PerIndex(before, nl, 2)
	// PerIndex at the boundary atoms also covers shared bonds (2-1, 2-3),
	// which is exactly what DeltaOverRange over [2,3) should reproduce.
	require.InDelta(t, directDelta, delta, 1e-9)
}

func TestTotalEnergyDeltaContract(t *testing.T) {
	before := chainOf5(t, 3.8)
	nl := neighbor.New(before, neighbor.AllowAll{}, 6.0, 1.0)
	nl.UpdateAll()

	total := NewTotal(
		HarmonicBond{K: 1, D0: 3.8, W: 1},
		PairwiseNonBonded{Kernel: LennardJones{Epsilon: 0.1, Sigma: 2.0, Cutoff: 6.0}, W: 1},
	)

	eBefore := total.Evaluate(before, nl)

	after := chainOf5(t, 3.8)
	after.Set(2, vecmath.NewVec3(after.Get(2).X, 0.3, -0.2))
	eAfter := total.Evaluate(after, nl)

	delta := total.DeltaOverRange(before, after, nl, 2, 3)
	require.InDelta(t, eAfter-eBefore, delta, 1e-9)
}

func TestSoftSphereShellRegions(t *testing.T) {
	k := SoftSphereShell{RRep: 1.0, RFrom: 2.0, RTo: 3.0, ERep: 5.0, EC: -1.0}
	require.Equal(t, 5.0, k.Phi(0.5))
	require.Equal(t, -1.0, k.Phi(2.5*2.5))
	require.Equal(t, 0.0, k.Phi(1.5*1.5))
	require.Equal(t, 0.0, k.Phi(10*10))
}

func TestExcludedVolumeKernel(t *testing.T) {
	k := ExcludedVolume{RRep: 4.0, Penalty: 100.0}
	require.Equal(t, 100.0, k.Phi(1.0))
	require.Equal(t, 0.0, k.Phi(20.0))
}
