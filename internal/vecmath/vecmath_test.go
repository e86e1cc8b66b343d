package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVec3Basics(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	require.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	require.Equal(t, NewVec3(-3, -3, -3), a.Sub(b))
	require.InDelta(t, 32.0, a.Dot(b), 1e-12)

	cross := a.Cross(b)
	require.InDelta(t, -3, cross.X, 1e-12)
	require.InDelta(t, 6, cross.Y, 1e-12)
	require.InDelta(t, -3, cross.Z, 1e-12)
}

func TestNormalizeZeroVector(t *testing.T) {
	z := Vec3{}
	require.Equal(t, z, z.Normalize())
}

func TestMatrixRowColumnTranspose(t *testing.T) {
	v1 := NewVec3(1, 0, 0)
	v2 := NewVec3(0, 1, 0)
	v3 := NewVec3(0, 0, 1)

	row := FromRowVectors(v1, v2, v3)
	col := FromColumnVectors(v1, v2, v3)

	require.Equal(t, col, row.Transpose())
}

func TestMatrixInverseRoundTrip(t *testing.T) {
	m := Matrix3x3{2, 0, 0, 0, 3, 0, 0, 0, 4}
	inv, err := m.Inverse()
	require.NoError(t, err)

	prod := m.Mul(inv)
	ident := Identity()
	for i := range prod {
		require.InDelta(t, ident[i], prod[i], 1e-9)
	}
}

func TestRototranslationRoundTrip(t *testing.T) {
	start := NewVec3(0, 0, 0)
	end := NewVec3(0, 0, 1)
	rot := NewRototranslation(start, end, math.Pi/3)

	v := NewVec3(1.5, -2.3, 0.7)
	got := rot.ApplyInverse(rot.Apply(v))

	require.InDelta(t, v.X, got.X, 1e-9)
	require.InDelta(t, v.Y, got.Y, 1e-9)
	require.InDelta(t, v.Z, got.Z, 1e-9)
}

func TestRototranslationNinetyDegrees(t *testing.T) {
	// Rotating (1,0,0) by 90 degrees about the Z axis gives (0,1,0).
	rot := NewRototranslation(NewVec3(0, 0, 0), NewVec3(0, 0, 1), math.Pi/2)
	got := rot.Apply(NewVec3(1, 0, 0))
	require.InDelta(t, 0, got.X, 1e-9)
	require.InDelta(t, 1, got.Y, 1e-9)
	require.InDelta(t, 0, got.Z, 1e-9)
}
