package vecmath

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix3x3 stores nine float64 entries in column-major logical order:
// element (row, col) lives at index col*3+row. Columns are the natural
// unit for this codebase because NeRF builds rotations column-by-column
// (bc | cross | n — see internal/nerf).
type Matrix3x3 [9]float64

// Identity returns the 3x3 identity matrix.
func Identity() Matrix3x3 {
	return Matrix3x3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// FromColumns builds a matrix whose columns are c0, c1, c2.
func FromColumns(c0, c1, c2 Vec3) Matrix3x3 {
	return Matrix3x3{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}
}

// FromColumnVectors is an alias kept for readability at call sites that
// mirror spec.md's "from_column_vectors" naming.
func FromColumnVectors(c0, c1, c2 Vec3) Matrix3x3 { return FromColumns(c0, c1, c2) }

// FromRowVectors builds a matrix whose rows are r0, r1, r2.
func FromRowVectors(r0, r1, r2 Vec3) Matrix3x3 {
	return Matrix3x3{
		r0.X, r1.X, r2.X,
		r0.Y, r1.Y, r2.Y,
		r0.Z, r1.Z, r2.Z,
	}
}

func (m Matrix3x3) at(row, col int) float64 { return m[col*3+row] }

// Transpose returns the matrix transpose.
func (m Matrix3x3) Transpose() Matrix3x3 {
	var t Matrix3x3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			t[r*3+c] = m.at(r, c)
		}
	}
	return t
}

// Add returns m + o, element-wise.
func (m Matrix3x3) Add(o Matrix3x3) Matrix3x3 {
	var s Matrix3x3
	for i := range m {
		s[i] = m[i] + o[i]
	}
	return s
}

// ScaleInPlace multiplies every entry of m by s.
func (m *Matrix3x3) ScaleInPlace(s float64) {
	for i := range m {
		m[i] *= s
	}
}

// MulVec returns m * v.
func (m Matrix3x3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m.at(0, 0)*v.X + m.at(0, 1)*v.Y + m.at(0, 2)*v.Z,
		Y: m.at(1, 0)*v.X + m.at(1, 1)*v.Y + m.at(1, 2)*v.Z,
		Z: m.at(2, 0)*v.X + m.at(2, 1)*v.Y + m.at(2, 2)*v.Z,
	}
}

// Mul returns m * o.
func (m Matrix3x3) Mul(o Matrix3x3) Matrix3x3 {
	var p Matrix3x3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m.at(r, k) * o.at(k, c)
			}
			p[c*3+r] = sum
		}
	}
	return p
}

// Determinant returns det(m).
func (m Matrix3x3) Determinant() float64 {
	a, b, c := m.at(0, 0), m.at(0, 1), m.at(0, 2)
	d, e, f := m.at(1, 0), m.at(1, 1), m.at(1, 2)
	g, h, i := m.at(2, 0), m.at(2, 1), m.at(2, 2)
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// Inverse returns the matrix inverse. The 3x3 solve is delegated to
// gonum's mat.Dense.Inverse rather than a hand-rolled cofactor
// expansion: the cofactor formula is easy to get subtly wrong for a
// column-major custom layout, and gonum's LU-based solver is already
// exercised by the wider corpus (kortschak-loopy, inference-sim,
// pthm-soup all depend on gonum.org/v1/gonum). The flat [9]float64
// representation stays the canonical hot-path type; conversion to/from
// mat.Dense only happens on this cold path.
func (m Matrix3x3) Inverse() (Matrix3x3, error) {
	d := mat.NewDense(3, 3, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			d.Set(r, c, m.at(r, c))
		}
	}
	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return Matrix3x3{}, fmt.Errorf("vecmath: matrix not invertible: %w", err)
	}
	var out Matrix3x3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[c*3+r] = inv.At(r, c)
		}
	}
	return out, nil
}
