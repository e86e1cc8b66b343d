package surpass

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioshell-go/bioshell/internal/nerf"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

func deg(d float64) float64 { return d * math.Pi / 180 }

func buildZigzagChain(t *testing.T, n int, boxLen float64) *SurpassAlphaSystem {
	t.Helper()
	a, b, c := nerf.Stub(vecmath.NewVec3(10, 10, 10), 1.0, 1.0, deg(90))
	internal := make([]nerf.InternalCoord, n-3)
	for i := range internal {
		internal[i] = nerf.InternalCoord{R: 1.0, Planar: deg(90), Dihedral: deg(180)}
	}
	positions, err := nerf.LinearChain(a, b, c, internal)
	require.NoError(t, err)
	require.Len(t, positions, n)

	sys := NewSurpassAlphaSystem(n, boxLen)
	for i, p := range positions {
		sys.SetPositionFloat(i, p)
	}
	require.NoError(t, sys.SetChains([]ChainRange{{Start: 0, End: n}}))
	return sys
}

func TestHingeMoveLeavesAnchorsBitExactAndPreservesWingDihedral(t *testing.T) {
	sys := buildZigzagChain(t, 10, 1000)

	before0 := sys.PositionInt(0)
	before9 := sys.PositionInt(9)
	dihedralBefore := Dihedral(sys, 1, 0, 9, 8)

	proposal := BuildHingeProposal(sys, 1, 8, math.Pi/2)
	proposal.Apply(sys)

	assert.Equal(t, before0, sys.PositionInt(0))
	assert.Equal(t, before9, sys.PositionInt(9))

	dihedralAfter := Dihedral(sys, 1, 0, 9, 8)
	assert.InDelta(t, dihedralBefore, dihedralAfter, 1e-6)
}

func TestHingeMoveRotatesInteriorResidues(t *testing.T) {
	sys := buildZigzagChain(t, 10, 1000)
	before := sys.PositionFloat(4)

	proposal := BuildHingeProposal(sys, 1, 8, math.Pi/2)
	proposal.Apply(sys)

	after := sys.PositionFloat(4)
	assert.Greater(t, before.DistSq(after), 1e-6)
}

func TestHingeMoveRejectsWindowTooLargeForChain(t *testing.T) {
	sys := buildZigzagChain(t, 10, 1000)
	rng := rand.New(rand.NewSource(1))
	_, ok := HingeMove(sys, rng, 20, math.Pi/4)
	assert.False(t, ok)
}

func TestExcludedVolumeDeltaMatchesFullEnergyDifference(t *testing.T) {
	sys := buildZigzagChain(t, 10, 1000)
	kernel := ExcludedVolume{RRepUnits: int64(0.9 * sys.Scale()), Penalty: 10.0}

	before := kernel.Full(sys)
	proposal := BuildHingeProposal(sys, 1, 8, 0.3)
	delta := kernel.DeltaEnergy(sys, proposal)
	proposal.Apply(sys)
	after := kernel.Full(sys)

	assert.InDelta(t, after-before, delta, 1e-9)
}

func TestAdjustBondLengthRepairsDriftedBond(t *testing.T) {
	sys := buildZigzagChain(t, 5, 1000)
	drifted := sys.PositionFloat(2).Add(vecmath.NewVec3(0.05, 0, 0))
	sys.SetPositionFloat(2, drifted)

	require.Greater(t, math.Abs(sys.BondLength(1)-1.0), 1e-3)

	AdjustBondLength(sys, 1.0, 1e-6)

	assert.InDelta(t, 1.0, sys.BondLength(1), 1e-6)
}
