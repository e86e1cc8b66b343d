package kintree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioshell-go/bioshell/internal/vecmath"
)

func deg(d float64) float64 { return d * math.Pi / 180 }

func buildDipeptideTree(t *testing.T) *KinematicAtomTree {
	t.Helper()
	tree := New("A", vecmath.NewVec3(0, 0, 0), 1.45, 1.52, deg(111), [3]string{"N0", "CA0", "C0"})

	require.NoError(t, tree.AddResidue(ResidueDefinition{
		Name: "R0",
		Atoms: []InternalAtomDefinition{
			{
				A: AtomRef{LocatorThis, "N0"}, B: AtomRef{LocatorThis, "CA0"}, C: AtomRef{LocatorThis, "C0"},
				D: AtomRef{Name: "O0"}, R: 1.23, Planar: deg(120.5), Dihedral: deg(180),
			},
		},
	}))

	require.NoError(t, tree.AddResidue(ResidueDefinition{
		Name: "R1",
		Atoms: []InternalAtomDefinition{
			{
				A: AtomRef{LocatorPrev, "CA0"}, B: AtomRef{LocatorPrev, "C0"}, C: AtomRef{LocatorPrev, "N0"},
				D: AtomRef{Name: "N1"}, R: 1.33, Planar: deg(116), Dihedral: deg(180), DihedralName: "omega",
			},
			{
				A: AtomRef{LocatorPrev, "C0"}, B: AtomRef{LocatorThis, "N1"}, C: AtomRef{LocatorPrev, "CA0"},
				D: AtomRef{Name: "CA1"}, R: 1.45, Planar: deg(121), Dihedral: deg(-60), DihedralName: "phi",
			},
			{
				A: AtomRef{LocatorThis, "N1"}, B: AtomRef{LocatorThis, "CA1"}, C: AtomRef{LocatorPrev, "C0"},
				D: AtomRef{Name: "C1"}, R: 1.52, Planar: deg(111), Dihedral: deg(140), DihedralName: "psi",
			},
		},
	}))

	return tree
}

func TestBuildAtomsProducesOnePositionPerAtom(t *testing.T) {
	tree := buildDipeptideTree(t)
	atoms, err := tree.BuildAtoms()
	require.NoError(t, err)
	assert.Len(t, atoms, 7) // N0, CA0, C0, O0, N1, CA1, C1
	assert.Equal(t, "C1", atoms[len(atoms)-1].Name)
}

func TestSetNamedDihedralChangesBuiltPosition(t *testing.T) {
	tree := buildDipeptideTree(t)
	before, err := tree.BuildAtoms()
	require.NoError(t, err)

	require.NoError(t, tree.SetNamedDihedral(1, "phi", deg(60)))
	after, err := tree.BuildAtoms()
	require.NoError(t, err)

	ca1Before := before[5].Position
	ca1After := after[5].Position
	assert.Greater(t, ca1Before.DistSq(ca1After), 1e-6)
}

func TestSetNamedDihedralUnknownNameErrors(t *testing.T) {
	tree := buildDipeptideTree(t)
	err := tree.SetNamedDihedral(1, "chi1", deg(30))
	assert.Error(t, err)
}

func TestMissingAtomLocatorErrors(t *testing.T) {
	tree := New("A", vecmath.NewVec3(0, 0, 0), 1.45, 1.52, deg(111), [3]string{"N0", "CA0", "C0"})
	err := tree.AddResidue(ResidueDefinition{
		Name: "R0",
		Atoms: []InternalAtomDefinition{
			{A: AtomRef{LocatorThis, "N0"}, B: AtomRef{LocatorThis, "CA0"}, C: AtomRef{LocatorThis, "XX"}, D: AtomRef{Name: "O0"}, R: 1.2, Planar: deg(120), Dihedral: 0},
		},
	})
	assert.Error(t, err)
}
