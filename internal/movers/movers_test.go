package movers

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/neighbor"
	"github.com/bioshell-go/bioshell/internal/system"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

func chainSystem(t *testing.T, n int, spacing, boxLen float64) *system.System {
	t.Helper()
	c := coords.New(n, boxLen)
	require.NoError(t, c.SetSize(n))
	for i := 0; i < n; i++ {
		c.Set(i, vecmath.NewVec3(float64(i)*spacing, 0, 0))
	}
	require.NoError(t, c.SetChains([]coords.ChainRange{{Start: 0, End: n}}))
	return system.New(c, neighbor.ExcludeBondedWithinChain{K: 1}, 2.0, 0.5)
}

func TestSingleAtomProposalStaysWithinRange(t *testing.T) {
	sys := chainSystem(t, 5, 1.0, 100)
	m := NewSingleAtom(0.3, 0.0, 1.0)
	rng := rand.New(rand.NewSource(1))
	p := &Proposal{}

	for trial := 0; trial < 50; trial++ {
		ok := m.Propose(sys, rng, p)
		require.True(t, ok)
		require.Equal(t, 1, p.Size())
		before := sys.Coords.Get(p.FirstMovedIndex)
		after := p.Positions[0]
		dist := math.Sqrt(before.DistSq(after))
		assert.LessOrEqual(t, dist, 0.3+1e-9)
	}
}

func TestCrankShaftPreservesEndpointDistances(t *testing.T) {
	sys := chainSystem(t, 6, 1.0, 1000)
	m := NewCrankShaft(2, 0.5, 0.0, math.Pi)
	rng := rand.New(rand.NewSource(2))
	p := &Proposal{}

	var proposed bool
	for trial := 0; trial < 20 && !proposed; trial++ {
		proposed = m.Propose(sys, rng, p)
	}
	require.True(t, proposed)

	lo, hi := p.Range()
	for k := lo; k < hi; k++ {
		before := sys.Coords.Get(k)
		after := p.Positions[k-lo]
		// Rotation about the crankshaft axis preserves distance to the
		// pivot atom at lo-1.
		pivot := sys.Coords.Get(lo - 1)
		db := math.Sqrt(pivot.DistSq(before))
		da := math.Sqrt(pivot.DistSq(after))
		assert.InDelta(t, db, da, 1e-9)
	}
}

func TestTerminalRequiresEnoughResidues(t *testing.T) {
	sys := chainSystem(t, 3, 1.0, 100)
	m := NewTerminal(4, 0.3, 0.0, 1.0)
	rng := rand.New(rand.NewSource(3))
	p := &Proposal{}
	ok := m.Propose(sys, rng, p)
	assert.False(t, ok)
}

func TestChainFragmentAttenuatesTowardEnds(t *testing.T) {
	sys := chainSystem(t, 7, 1.0, 1000)
	m := NewChainFragment(5, 1.0, 0.0, 1.0)
	rng := rand.New(rand.NewSource(4))
	p := &Proposal{}
	require.True(t, m.Propose(sys, rng, p))

	lo, _ := p.Range()
	edgeBefore := sys.Coords.Get(lo)
	edgeAfter := p.Positions[0]
	midBefore := sys.Coords.Get(lo + 2)
	midAfter := p.Positions[2]

	edgeDisp := math.Sqrt(edgeBefore.DistSq(edgeAfter))
	midDisp := math.Sqrt(midBefore.DistSq(midAfter))
	assert.Less(t, edgeDisp, midDisp)
}

func TestVolumeChangeRescalesAllCoordinatesAndReportsRatio(t *testing.T) {
	sys := chainSystem(t, 4, 1.0, 10)
	m := NewVolumeChange(0.1, 0.0, 1.0)
	rng := rand.New(rand.NewSource(5))
	p := &Proposal{}
	require.True(t, m.Propose(sys, rng, p))

	assert.Equal(t, sys.Coords.Size(), p.Size())
	assert.NotZero(t, p.NewBoxLen)

	oldVolume := 10.0 * 10.0 * 10.0
	newVolume := oldVolume * math.Exp(m.LogVolumeRatio())
	assert.InDelta(t, newVolume-oldVolume, m.VolumeDelta(), 1e-6)
}

func TestAdaptiveWidensRangeOnHighAcceptance(t *testing.T) {
	inner := NewSingleAtom(0.2, 0.05, 2.0)
	a := NewAdaptive(inner, 0.5, 4)

	for i := 0; i < 4; i++ {
		a.Accepted()
	}
	assert.Greater(t, inner.Range(), 0.2)
}

func TestAdaptiveNarrowsRangeOnLowAcceptance(t *testing.T) {
	inner := NewSingleAtom(0.2, 0.05, 2.0)
	a := NewAdaptive(inner, 0.5, 4)

	for i := 0; i < 4; i++ {
		a.Rejected()
	}
	assert.Less(t, inner.Range(), 0.2)
}
