package nerf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioshell-go/bioshell/internal/vecmath"
)

func deg(d float64) float64 { return d * math.Pi / 180 }

// TestMethaneReconstruction mirrors spec.md §8 scenario 1: a methane
// skeleton (C + 4 H) built via the branched walk, where every pairwise
// distance among the four H atoms equals r*2*sin(theta/2).
func TestMethaneReconstruction(t *testing.T) {
	tetrahedral := deg(109.471)

	// Topology [[0,0,0,0],[0,1,0,0],[1,0,2,0],[1,2,0,3],[1,2,0,4]]:
	// atom 0 is the stub's first point (the carbon), atoms 1-4 are the
	// four hydrogens, each placed relative to (1,0,2)-style parent
	// triples per spec.md's literal indices.
	a, b, c := Stub(vecmath.NewVec3(0, 0, 0), 1.089, 1.089, tetrahedral)

	atoms := []BranchedAtom{
		{I: 1, J: 0, K: 2, Coord: InternalCoord{R: 1.089, Planar: tetrahedral, Dihedral: deg(120)}},
		{I: 1, J: 2, K: 0, Coord: InternalCoord{R: 1.089, Planar: tetrahedral, Dihedral: deg(240)}},
	}

	positions, err := BranchedWalk(a, b, c, atoms)
	require.NoError(t, err)

	// positions[1] and positions[2] are the first two hydrogens (the
	// stub's b, c endpoints relative to the carbon at a); positions[3]
	// and positions[4] are the branched atoms just placed.
	hydrogens := []vecmath.Vec3{positions[1], positions[2], positions[3], positions[4]}
	expected := 1.089 * 2 * math.Sin(tetrahedral/2)

	for i := 0; i < len(hydrogens); i++ {
		for j := i + 1; j < len(hydrogens); j++ {
			d := math.Sqrt(hydrogens[i].DistSq(hydrogens[j]))
			assert.InDelta(t, expected, d, 1e-4)
		}
	}
}

func TestPlaceRejectsDegenerateAxis(t *testing.T) {
	a := vecmath.NewVec3(0, 0, 0)
	b := vecmath.NewVec3(1, 0, 0)
	c := vecmath.NewVec3(1, 0, 0) // |b-c| == 0
	_, err := Place(a, b, c, 1.5, deg(109.5), 0)
	assert.Error(t, err)
}

func TestLinearChainRoundTrip(t *testing.T) {
	a, b, c := Stub(vecmath.NewVec3(0, 0, 0), 1.5, 1.5, deg(109.5))
	internal := []InternalCoord{
		{R: 1.5, Planar: deg(109.5), Dihedral: deg(180)},
		{R: 1.5, Planar: deg(109.5), Dihedral: deg(180)},
		{R: 1.5, Planar: deg(109.5), Dihedral: deg(180)},
	}

	positions, err := LinearChain(a, b, c, internal)
	require.NoError(t, err)
	require.Len(t, positions, 6)

	// Bond lengths between consecutive atoms must match r within tolerance.
	for i := 3; i < len(positions); i++ {
		d := math.Sqrt(positions[i-1].DistSq(positions[i]))
		assert.InDelta(t, 1.5, d, 1e-9)
	}
}
