package movers

import (
	"math/rand"

	"github.com/bioshell-go/bioshell/internal/system"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

// CrankShaft rotates atoms (i+1..j) about the axis through r_i and the
// minimum-image position of r_j, by a random angle (spec.md §4.4).
type CrankShaft struct {
	rangeTracker // max rotation angle in radians
	Window       int
}

// NewCrankShaft builds a CrankShaft mover with a fixed window size and
// an adaptive max-angle range.
func NewCrankShaft(window int, initialAngle, minAngle, maxAngle float64) *CrankShaft {
	m := &CrankShaft{Window: window}
	m.min, m.max = minAngle, maxAngle
	m.clampSet(initialAngle)
	return m
}

// Name implements Mover.
func (m *CrankShaft) Name() string { return "CrankShaft" }

// Propose implements Mover.
func (m *CrankShaft) Propose(sys *system.System, rng *rand.Rand, p *Proposal) bool {
	n := sys.Coords.Size()
	if n < m.Window+1 {
		return false
	}
	i := rng.Intn(n - m.Window)
	j := i + m.Window + 1
	if j >= n || !sys.Coords.SameChain(i, j) {
		return false
	}

	ri := sys.Coords.Get(i)
	// Minimum-image position of r_j relative to r_i.
	rj := vecmath.Vec3{
		X: ri.X + sys.Coords.DeltaX(j, ri.X),
		Y: ri.Y + sys.Coords.DeltaY(j, ri.Y),
		Z: ri.Z + sys.Coords.DeltaZ(j, ri.Z),
	}
	if ri.Sub(rj).LengthSq() < 1e-12 {
		return false // degenerate axis
	}

	angle := (rng.Float64()*2 - 1) * m.get()
	rot := vecmath.NewRototranslation(ri, rj, angle)

	p.FirstMovedIndex = i + 1
	p.Positions = p.Positions[:0]
	for k := i + 1; k < j; k++ {
		v := sys.Coords.Get(k)
		p.Positions = append(p.Positions, rot.Apply(v))
	}
	return true
}

// Accepted implements Mover.
func (m *CrankShaft) Accepted() {}

// Rejected implements Mover.
func (m *CrankShaft) Rejected() {}

// Range returns the current max rotation angle (radians).
func (m *CrankShaft) Range() float64 { return m.get() }

// SetRange sets the max rotation angle, clamped to [min, max].
func (m *CrankShaft) SetRange(v float64) { m.clampSet(v) }

// Terminal rotates the k terminal atoms of a randomly chosen chain
// (N- or C-terminus, chosen uniformly) about an axis anchored near the
// terminus (spec.md §4.4).
type Terminal struct {
	rangeTracker // max rotation angle
	K            int
}

// NewTerminal builds a Terminal mover rotating K terminal atoms.
func NewTerminal(k int, initialAngle, minAngle, maxAngle float64) *Terminal {
	m := &Terminal{K: k}
	m.min, m.max = minAngle, maxAngle
	m.clampSet(initialAngle)
	return m
}

// Name implements Mover.
func (m *Terminal) Name() string { return "Terminal" }

// Propose implements Mover.
func (m *Terminal) Propose(sys *system.System, rng *rand.Rand, p *Proposal) bool {
	nChains := sys.Coords.NumChains()
	if nChains == 0 {
		return false
	}
	chainIdx := rng.Intn(nChains)
	cr := sys.Coords.ChainRangeAt(chainIdx)
	chainLen := cr.End - cr.Start
	if chainLen < m.K+2 {
		return false
	}

	nTerm := rng.Intn(2) == 0

	var lo, hi, anchorIdx int
	if nTerm {
		lo, hi = cr.Start, cr.Start+m.K
		anchorIdx = cr.Start + m.K // first atom past the moved window, K residues in from the free end
	} else {
		lo, hi = cr.End-m.K, cr.End
		anchorIdx = cr.End - m.K - 1
	}
	if anchorIdx < cr.Start || anchorIdx >= cr.End {
		return false
	}

	anchor := sys.Coords.Get(anchorIdx)
	axisEnd := vecmath.Vec3{X: anchor.X + 1, Y: anchor.Y, Z: anchor.Z}
	if nTerm {
		far := sys.Coords.Get(hi - 1)
		if far.Sub(anchor).LengthSq() > 1e-12 {
			axisEnd = far
		}
	} else {
		far := sys.Coords.Get(lo)
		if far.Sub(anchor).LengthSq() > 1e-12 {
			axisEnd = far
		}
	}

	angle := (rng.Float64()*2 - 1) * m.get()
	rot := vecmath.NewRototranslation(anchor, axisEnd, angle)

	p.FirstMovedIndex = lo
	p.Positions = p.Positions[:0]
	for k := lo; k < hi; k++ {
		p.Positions = append(p.Positions, rot.Apply(sys.Coords.Get(k)))
	}
	return true
}

// Accepted implements Mover.
func (m *Terminal) Accepted() {}

// Rejected implements Mover.
func (m *Terminal) Rejected() {}

// Range returns the current max rotation angle (radians).
func (m *Terminal) Range() float64 { return m.get() }

// SetRange sets the max rotation angle, clamped to [min, max].
func (m *Terminal) SetRange(v float64) { m.clampSet(v) }
