package surpass

import "github.com/bioshell-go/bioshell/internal/vecmath"

// AdjustBondLength restores the invariant |r_{i+1} - r_i| = d0 within
// eps for every bond in s, walking each chain from its start and
// nudging residue i+1 back onto the sphere of radius d0 around residue
// i (spec.md §9: "because rotations are converted to integer via
// round, bond lengths drift over many accepted moves... an
// adjust_bond_length repair routine SHOULD be invoked every k accepted
// moves"). Residue i is left untouched; the correction cascades down
// the chain so the first residue's position is never perturbed.
func AdjustBondLength(s *SurpassAlphaSystem, d0, eps float64) {
	for c := 0; c < s.NumChains(); c++ {
		cr := s.ChainRangeAt(c)
		for i := cr.Start; i+1 < cr.End; i++ {
			current := s.BondLength(i)
			drift := current - d0
			if drift > eps || drift < -eps {
				from := s.PositionFloat(i)
				pi, pj := s.positions[i], s.positions[i+1]
				dir := vecmath.NewVec3(
					s.decode(deltaAxis(pj.X, pi.X)),
					s.decode(deltaAxis(pj.Y, pi.Y)),
					s.decode(deltaAxis(pj.Z, pi.Z)),
				)
				length := dir.Length()
				if length == 0 {
					continue
				}
				corrected := from.Add(dir.Scale(d0 / length))
				s.SetPositionFloat(i+1, corrected)
			}
		}
	}
}
