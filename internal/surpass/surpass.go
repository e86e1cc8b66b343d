// Package surpass implements the low-precision alpha-carbon chain
// representation of spec.md §4.10 (component C11): positions stored as
// i32 fixed-point, where wraparound under 32-bit arithmetic implements
// the periodic box for free, paired with hinge/tail rotation moves and
// an excluded-volume kernel that exits early on integer-unit overflow.
//
// Grounded on the teacher's Coordinates/NeighborList split (internal/coords,
// internal/neighbor): SurpassAlphaSystem plays the same structural role
// for a reduced, single-point-per-residue model, generalized from
// floating-point storage to the fixed-point scheme spec.md calls for.
package surpass

import (
	"fmt"
	"math"

	"github.com/bioshell-go/bioshell/internal/bioshellerr"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

// IntVec3 is one CA position encoded as three i32 fixed-point
// coordinates. Subtracting two IntVec3 components with ordinary i32
// arithmetic already yields the minimum-image displacement, provided
// the system's scale satisfies boxLen*scale == 2^32 (spec.md §9).
type IntVec3 struct {
	X, Y, Z int32
}

// ChainRange is a half-open residue index range [Start, End) within one chain.
type ChainRange struct {
	Start, End int
}

// SurpassAlphaSystem holds one fixed-point CA chain representation.
type SurpassAlphaSystem struct {
	scale     float64
	boxLen    float64
	positions []IntVec3
	chains    []ChainRange
}

// wrapToInt32 reduces raw modulo 2^32 and reinterprets the bit pattern
// as a signed i32, matching the wraparound semantics spec.md §9
// assigns to PBC: this is an explicit modulus rather than relying on
// implementation-specific float-to-int32 truncation behavior.
func wrapToInt32(raw int64) int32 {
	const modulus = int64(1) << 32
	wrapped := raw % modulus
	if wrapped < 0 {
		wrapped += modulus
	}
	if wrapped >= modulus/2 {
		wrapped -= modulus
	}
	return int32(wrapped)
}

// NewSurpassAlphaSystem allocates n residues in a cubic box of side
// boxLen, choosing the fixed-point scale so that boxLen*scale == 2^32
// (spec.md §4.10, §9).
func NewSurpassAlphaSystem(n int, boxLen float64) *SurpassAlphaSystem {
	scale := math.Ldexp(1, 32) / boxLen
	return &SurpassAlphaSystem{
		scale:     scale,
		boxLen:    boxLen,
		positions: make([]IntVec3, n),
	}
}

// Size returns the number of residues.
func (s *SurpassAlphaSystem) Size() int { return len(s.positions) }

// Scale returns the fixed-point scale factor S.
func (s *SurpassAlphaSystem) Scale() float64 { return s.scale }

// BoxLen returns the periodic box side length.
func (s *SurpassAlphaSystem) BoxLen() float64 { return s.boxLen }

func (s *SurpassAlphaSystem) encode(x float64) int32 {
	return wrapToInt32(int64(math.Round(x * s.scale)))
}

func (s *SurpassAlphaSystem) decode(v int32) float64 {
	return float64(v) / s.scale
}

// SetPositionFloat stores v at residue i, converting to fixed point.
func (s *SurpassAlphaSystem) SetPositionFloat(i int, v vecmath.Vec3) {
	s.positions[i] = IntVec3{X: s.encode(v.X), Y: s.encode(v.Y), Z: s.encode(v.Z)}
}

// PositionFloat recovers residue i's position as a float triple.
func (s *SurpassAlphaSystem) PositionFloat(i int) vecmath.Vec3 {
	p := s.positions[i]
	return vecmath.NewVec3(s.decode(p.X), s.decode(p.Y), s.decode(p.Z))
}

// PositionInt returns residue i's raw fixed-point position.
func (s *SurpassAlphaSystem) PositionInt(i int) IntVec3 { return s.positions[i] }

// SetPositionInt writes a raw fixed-point position directly, without
// a float round trip.
func (s *SurpassAlphaSystem) SetPositionInt(i int, v IntVec3) { s.positions[i] = v }

// SetChains installs the chain partition, mirroring coords.Coordinates.SetChains.
func (s *SurpassAlphaSystem) SetChains(ranges []ChainRange) error {
	prevEnd := 0
	for _, r := range ranges {
		if r.Start != prevEnd || r.End < r.Start || r.End > len(s.positions) {
			return bioshellerr.New(bioshellerr.KindInvariantViolation, fmt.Sprintf("chain range %v", r), 0, nil)
		}
		prevEnd = r.End
	}
	if prevEnd != len(s.positions) {
		return bioshellerr.New(bioshellerr.KindInvariantViolation, "chain ranges do not cover all residues", 0, nil)
	}
	s.chains = append([]ChainRange(nil), ranges...)
	return nil
}

// NumChains returns how many chains have been registered.
func (s *SurpassAlphaSystem) NumChains() int { return len(s.chains) }

// ChainRangeAt returns the k-th chain's range.
func (s *SurpassAlphaSystem) ChainRangeAt(k int) ChainRange { return s.chains[k] }

// ChainOf returns the chain index containing residue i, or -1.
func (s *SurpassAlphaSystem) ChainOf(i int) int {
	for k, r := range s.chains {
		if i >= r.Start && i < r.End {
			return k
		}
	}
	return -1
}

// deltaAxis returns the wrapped i32 difference a-b, which already
// equals the minimum-image displacement in fixed-point units.
func deltaAxis(a, b int32) int32 { return a - b }

// ClosestDistanceSquared returns the minimum-image squared distance
// between residues i and j in real units.
func (s *SurpassAlphaSystem) ClosestDistanceSquared(i, j int) float64 {
	pi, pj := s.positions[i], s.positions[j]
	dx := s.decode(deltaAxis(pi.X, pj.X))
	dy := s.decode(deltaAxis(pi.Y, pj.Y))
	dz := s.decode(deltaAxis(pi.Z, pj.Z))
	return dx*dx + dy*dy + dz*dz
}

// BondLength returns the real-space distance between consecutive
// residues i and i+1.
func (s *SurpassAlphaSystem) BondLength(i int) float64 {
	return math.Sqrt(s.ClosestDistanceSquared(i, i+1))
}
