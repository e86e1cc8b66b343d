package surpass

import (
	"math"
	"math/rand"

	"github.com/bioshell-go/bioshell/internal/vecmath"
)

// Proposal is a SURPASS move's candidate positions: a contiguous
// residue range plus their rotated coordinates, mirroring
// internal/movers.Proposal but over the fixed-point representation
// (spec.md §4.10: "the move proposal stores the after positions; the
// current system still holds before").
type Proposal struct {
	FirstMovedIndex int
	After           []IntVec3
}

// Size returns how many residues this proposal touches.
func (p Proposal) Size() int { return len(p.After) }

// Apply writes the proposal's positions into the system (the caller's
// commit step).
func (p Proposal) Apply(s *SurpassAlphaSystem) {
	for k, v := range p.After {
		s.positions[p.FirstMovedIndex+k] = v
	}
}

// BuildHingeProposal rotates the window [p, p+window) by angle radians
// about the axis joining its two anchors p-1 and p+window (spec.md
// §4.10). It is deterministic; HingeMove wraps it with random window
// placement and angle for sampling use.
func BuildHingeProposal(s *SurpassAlphaSystem, p, window int, angle float64) Proposal {
	axisStart := s.PositionFloat(p - 1)
	axisEnd := s.PositionFloat(p + window)
	rt := vecmath.NewRototranslation(axisStart, axisEnd, angle)

	after := make([]IntVec3, window)
	for k := 0; k < window; k++ {
		idx := p + k
		rotated := rt.Apply(s.PositionFloat(idx))
		after[k] = IntVec3{X: s.encode(rotated.X), Y: s.encode(rotated.Y), Z: s.encode(rotated.Z)}
	}
	return Proposal{FirstMovedIndex: p, After: after}
}

// HingeMove picks a random window of the requested size within a
// random chain and rotates it by a random angle in [-maxAngle,
// maxAngle] about the axis joining its two anchors (spec.md §4.10:
// "builds a rotation axis from the endpoints' neighbors (p-1) ->
// (p+k)"). ok is false if no chain is long enough to hold an anchored
// window of the requested size.
func HingeMove(s *SurpassAlphaSystem, rng *rand.Rand, window int, maxAngle float64) (Proposal, bool) {
	if s.NumChains() == 0 {
		return Proposal{}, false
	}
	chainIdx := rng.Intn(s.NumChains())
	cr := s.ChainRangeAt(chainIdx)

	// need room for anchors at p-1 and p+window within the chain.
	lo := cr.Start + 1
	hi := cr.End - window - 1
	if hi < lo {
		return Proposal{}, false
	}
	p := lo + rng.Intn(hi-lo+1)
	angle := (rng.Float64()*2 - 1) * maxAngle
	return BuildHingeProposal(s, p, window, angle), true
}

// TailMove rotates the k terminal residues of a random chain's random
// terminus about an axis anchored two residues from the end (spec.md
// §4.10).
func TailMove(s *SurpassAlphaSystem, rng *rand.Rand, k int, maxAngle float64) (Proposal, bool) {
	if s.NumChains() == 0 {
		return Proposal{}, false
	}
	chainIdx := rng.Intn(s.NumChains())
	cr := s.ChainRangeAt(chainIdx)
	if cr.End-cr.Start < k+2 {
		return Proposal{}, false
	}

	var first int
	var axisStart, axisEnd vecmath.Vec3
	if rng.Intn(2) == 0 {
		// N-terminal tail: residues [cr.Start, cr.Start+k).
		first = cr.Start
		axisStart = s.PositionFloat(cr.Start + k + 1)
		axisEnd = s.PositionFloat(cr.Start + k)
	} else {
		// C-terminal tail: residues [cr.End-k, cr.End).
		first = cr.End - k
		axisStart = s.PositionFloat(cr.End - k - 2)
		axisEnd = s.PositionFloat(cr.End - k - 1)
	}

	angle := (rng.Float64()*2 - 1) * maxAngle
	rt := vecmath.NewRototranslation(axisStart, axisEnd, angle)

	after := make([]IntVec3, k)
	for i := 0; i < k; i++ {
		idx := first + i
		rotated := rt.Apply(s.PositionFloat(idx))
		after[i] = IntVec3{X: s.encode(rotated.X), Y: s.encode(rotated.Y), Z: s.encode(rotated.Z)}
	}
	return Proposal{FirstMovedIndex: first, After: after}, true
}

// Dihedral computes the dihedral angle (radians) defined by four
// residue indices, reading their current float positions — used by
// tests and by named-angle observers over a SURPASS chain.
func Dihedral(s *SurpassAlphaSystem, i, j, k, l int) float64 {
	p0, p1, p2, p3 := s.PositionFloat(i), s.PositionFloat(j), s.PositionFloat(k), s.PositionFloat(l)
	b1 := p1.Sub(p0)
	b2 := p2.Sub(p1)
	b3 := p3.Sub(p2)

	n1 := b1.Cross(b2)
	n2 := b2.Cross(b3)
	m1 := n1.Cross(b2.Normalize())

	x := n1.Dot(n2)
	y := m1.Dot(n2)
	return math.Atan2(y, x)
}
