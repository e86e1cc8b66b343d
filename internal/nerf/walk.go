package nerf

import "github.com/bioshell-go/bioshell/internal/vecmath"

// InternalCoord is one atom's (r, planar, dihedral) relative to its
// three parent atoms (spec.md §3/§4.8).
type InternalCoord struct {
	R, Planar, Dihedral float64
}

// LinearChain reconstructs a chain where atom i depends on i-3, i-2,
// i-1 (spec.md §4.8's "linear" walk). The first three positions are
// supplied directly (typically from Stub); internal holds one entry
// per atom from index 3 onward.
func LinearChain(a, b, c vecmath.Vec3, internal []InternalCoord) ([]vecmath.Vec3, error) {
	positions := make([]vecmath.Vec3, 3+len(internal))
	positions[0], positions[1], positions[2] = a, b, c

	for k, ic := range internal {
		i := k + 3
		d, err := Place(positions[i-3], positions[i-2], positions[i-1], ic.R, ic.Planar, ic.Dihedral)
		if err != nil {
			return nil, err
		}
		positions[i] = d
	}
	return positions, nil
}

// BranchedAtom is one slot of a branched restoration walk: its
// internal coordinates plus the explicit (i, j, k) indices of its
// three parent atoms, per spec.md §3's KinematicAtomTree quadruple
// (the atom's own slot is its position in the returned slice, i.e. l).
type BranchedAtom struct {
	I, J, K int
	Coord   InternalCoord
}

// BranchedWalk reconstructs a tree of atoms where each entry names its
// own three parents explicitly, rather than assuming i-3/i-2/i-1
// (spec.md §4.8's "branched" walk, used once a chain has side-chain
// branches or patched termini). The first three positions are stub
// atoms supplied directly; atoms lists entries for every position from
// index 3 onward, in an order where every parent index is already
// resolved (spec.md §3: "for every i>=3, i, j, k < l").
func BranchedWalk(a, b, c vecmath.Vec3, atoms []BranchedAtom) ([]vecmath.Vec3, error) {
	positions := make([]vecmath.Vec3, 3+len(atoms))
	positions[0], positions[1], positions[2] = a, b, c

	for k, atom := range atoms {
		l := k + 3
		d, err := Place(positions[atom.I], positions[atom.J], positions[atom.K], atom.Coord.R, atom.Coord.Planar, atom.Coord.Dihedral)
		if err != nil {
			return nil, err
		}
		positions[l] = d
	}
	return positions, nil
}
