package vecmath

import "math"

// Rototranslation bundles a pivot point with a forward rotation and its
// inverse, so that Apply/ApplyInverse never need to recompute the
// inverse matrix on every call. It is the primitive every rigid-body
// mover (CrankShaft, Terminal, SURPASS hinge/tail) is built on.
type Rototranslation struct {
	Pivot   Vec3
	Forward Matrix3x3
	Inverse Matrix3x3
}

// NewRototranslation builds the rotation that takes axisStart/axisEnd
// as the rotation axis and rotates by angle radians about it, pivoting
// at axisStart.
func NewRototranslation(axisStart, axisEnd Vec3, angle float64) Rototranslation {
	axis := axisEnd.Sub(axisStart).Normalize()
	fwd := rotationAboutAxis(axis, angle)
	inv := rotationAboutAxis(axis, -angle)
	return Rototranslation{Pivot: axisStart, Forward: fwd, Inverse: inv}
}

// rotationAboutAxis builds a Rodrigues rotation matrix for a unit axis.
func rotationAboutAxis(axis Vec3, angle float64) Matrix3x3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c

	x, y, z := axis.X, axis.Y, axis.Z

	return Matrix3x3{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c,
	}
}

// Apply rotates v about the pivot by the forward rotation.
func (r Rototranslation) Apply(v Vec3) Vec3 {
	rel := v.Sub(r.Pivot)
	rotated := r.Forward.MulVec(rel)
	out := rotated.Add(r.Pivot)
	out.Chain, out.ResType, out.AtomType = v.Chain, v.ResType, v.AtomType
	return out
}

// ApplyInverse undoes Apply: ApplyInverse(Apply(v)) == v within
// floating-point tolerance (spec.md §8 round-trip property).
func (r Rototranslation) ApplyInverse(v Vec3) Vec3 {
	rel := v.Sub(r.Pivot)
	rotated := r.Inverse.MulVec(rel)
	out := rotated.Add(r.Pivot)
	out.Chain, out.ResType, out.AtomType = v.Chain, v.ResType, v.AtomType
	return out
}
