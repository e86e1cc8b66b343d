// Package vecmath provides the 3-vector, matrix, and rigid-body
// primitives that every other BioShell package builds on.
//
// PHYSICIST: plain Cartesian algebra — no surprises, no allocation in
// the hot path. Vec3 is a value type so it lives on the stack and
// passes through energy/neighbor loops without escaping.
package vecmath

import "math"

// Vec3 is a 3-component vector with optional per-particle metadata.
// The metadata fields are carried here (rather than in a parallel
// array) because movers and energy kernels routinely need "this atom's
// chain" alongside its position, and a parallel lookup would cost a
// second cache line on every hot-path access.
type Vec3 struct {
	X, Y, Z float64

	Chain    int // chain index this coordinate belongs to
	ResType  int // residue/monomer type code
	AtomType int // atom type code within the residue
}

// NewVec3 builds a bare Vec3 with zeroed metadata.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z, Chain: v.Chain, ResType: v.ResType, AtomType: v.AtomType}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z, Chain: v.Chain, ResType: v.ResType, AtomType: v.AtomType}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s, Chain: v.Chain, ResType: v.ResType, AtomType: v.AtomType}
}

// AddInPlace adds o to v in place.
func (v *Vec3) AddInPlace(o Vec3) {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
}

// SubInPlace subtracts o from v in place.
func (v *Vec3) SubInPlace(o Vec3) {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
}

// ScaleInPlace multiplies v by s in place.
func (v *Vec3) ScaleInPlace(s float64) {
	v.X *= s
	v.Y *= s
	v.Z *= s
}

// Dot returns the scalar (inner) product.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the vector (cross) product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Outer returns the 3x3 outer product v ⊗ o.
func (v Vec3) Outer(o Vec3) Matrix3x3 {
	return Matrix3x3{
		v.X * o.X, v.Y * o.X, v.Z * o.X,
		v.X * o.Y, v.Y * o.Y, v.Z * o.Y,
		v.X * o.Z, v.Y * o.Z, v.Z * o.Z,
	}
}

// LengthSq returns |v|².
func (v Vec3) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns |v|.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// Normalize returns v scaled to unit length. The zero vector is
// returned unchanged rather than producing NaN — callers that feed a
// degenerate difference vector (e.g. |a-b| = 0 in NeRF) are expected
// to check for that condition themselves and raise DegenerateGeometry.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1.0 / l)
}

// DistSq returns |v - o|² without any periodic-boundary adjustment.
// Coordinate-container callers should prefer ClosestDistanceSquared
// for minimum-image distances; this helper is for NeRF/kinematic code
// that has no periodic box.
func (v Vec3) DistSq(o Vec3) float64 {
	return v.Sub(o).LengthSq()
}
