// Package nerf implements the Natural Extension Reference Frame
// construction (spec.md §4.8, component C9): placing a new atom d
// given three previously placed atoms a, b, c and the internal
// coordinates (bond length r, planar angle, dihedral angle) that
// locate d relative to them.
//
// PHYSICIST: same rotation-matrix construction the teacher's
// coordinate_builder.go reached for via quaternions; NeRF builds the
// local frame directly from bc/cross-product axes instead, which is
// the textbook formulation spec.md asks for and avoids a quaternion
// dependency this package has no other use for.
package nerf

import (
	"math"

	"github.com/bioshell-go/bioshell/internal/bioshellerr"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

const degenerateThreshold = 1e-12

// Place computes the Cartesian position of a fourth atom d, given
// three previously placed atoms a, b, c, and the internal coordinates
// (r, planar, dihedral) locating d relative to c (spec.md §4.8).
//
//	bc = normalize(c - b)
//	n  = normalize((b - a) x bc)
//	cross = n x bc
//	R  = [bc | cross | n]        (columns)
//	alpha = pi - planar
//	d  = c + R . (r*cos(alpha), r*sin(alpha)*cos(dihedral), r*sin(alpha)*sin(dihedral))
func Place(a, b, c vecmath.Vec3, r, planar, dihedral float64) (vecmath.Vec3, error) {
	bcRaw := c.Sub(b)
	if bcRaw.LengthSq() < degenerateThreshold {
		return vecmath.Vec3{}, bioshellerr.New(bioshellerr.KindDegenerateGeometry, "nerf.Place: |b-c| == 0", 0, nil)
	}
	bc := bcRaw.Normalize()

	baRaw := b.Sub(a)
	nRaw := baRaw.Cross(bc)
	if nRaw.LengthSq() < degenerateThreshold {
		return vecmath.Vec3{}, bioshellerr.New(bioshellerr.KindDegenerateGeometry, "nerf.Place: a, b, c are collinear", 0, nil)
	}
	n := nRaw.Normalize()
	cross := n.Cross(bc)

	rot := vecmath.FromColumnVectors(bc, cross, n)

	alpha := math.Pi - planar
	local := vecmath.NewVec3(
		r*math.Cos(alpha),
		r*math.Sin(alpha)*math.Cos(dihedral),
		r*math.Sin(alpha)*math.Sin(dihedral),
	)
	return c.Add(rot.MulVec(local)), nil
}

// Stub places the first three atoms of a chain analytically (spec.md
// §4.8): a at start, b at bond length r1 along +x from a, c completing
// the planar angle planar2 in the xy-plane.
func Stub(start vecmath.Vec3, r1, r2, planar2 float64) (a, b, c vecmath.Vec3) {
	a = start
	b = a.Add(vecmath.NewVec3(r1, 0, 0))
	theta := math.Pi - planar2
	c = b.Add(vecmath.NewVec3(r2*math.Cos(theta), r2*math.Sin(theta), 0))
	return a, b, c
}
