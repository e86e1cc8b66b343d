package movers

import (
	"math"
	"math/rand"

	"github.com/bioshell-go/bioshell/internal/system"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

// ChainFragment rigidly translates a short contiguous window, with a
// linear attenuation toward the endpoints so the window's boundary
// atoms move less than its center (spec.md §4.4) — this keeps the
// fragment roughly anchored to its chain neighbors rather than
// tearing the backbone.
//
// Grounded on the teacher's sampling.Fragment weighting idea (a
// fragment's influence tapers toward its edge), adapted here from
// angle-space blending into a literal translation-magnitude taper.
type ChainFragment struct {
	rangeTracker // max translation magnitude
	Window       int
}

// NewChainFragment builds a ChainFragment mover over a fixed window size.
func NewChainFragment(window int, initialDelta, minDelta, maxDelta float64) *ChainFragment {
	m := &ChainFragment{Window: window}
	m.min, m.max = minDelta, maxDelta
	m.clampSet(initialDelta)
	return m
}

// Name implements Mover.
func (m *ChainFragment) Name() string { return "ChainFragment" }

// Propose implements Mover.
func (m *ChainFragment) Propose(sys *system.System, rng *rand.Rand, p *Proposal) bool {
	n := sys.Coords.Size()
	if n < m.Window {
		return false
	}
	lo := rng.Intn(n - m.Window + 1)
	hi := lo + m.Window
	for k := lo; k < hi-1; k++ {
		if !sys.Coords.SameChain(k, k+1) {
			return false
		}
	}

	delta := m.get()
	theta := rng.Float64() * 2 * math.Pi
	cosPhi := 2*rng.Float64() - 1
	sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
	mag := rng.Float64() * delta
	dir := vecmath.Vec3{X: sinPhi * math.Cos(theta), Y: sinPhi * math.Sin(theta), Z: cosPhi}

	p.FirstMovedIndex = lo
	p.Positions = p.Positions[:0]
	mid := float64(m.Window-1) / 2
	for k := lo; k < hi; k++ {
		// Linear attenuation: 1.0 at the center, falling to 1/(mid+1) at either end.
		distFromMid := math.Abs(float64(k-lo) - mid)
		atten := 1.0
		if mid > 0 {
			atten = 1.0 - distFromMid/(mid+1)
		}
		v := sys.Coords.Get(k)
		p.Positions = append(p.Positions, v.Add(dir.Scale(mag*atten)))
	}
	return true
}

// Accepted implements Mover.
func (m *ChainFragment) Accepted() {}

// Rejected implements Mover.
func (m *ChainFragment) Rejected() {}

// Range returns the mover's current max translation magnitude.
func (m *ChainFragment) Range() float64 { return m.get() }

// SetRange sets the max translation magnitude, clamped to [min, max].
func (m *ChainFragment) SetRange(v float64) { m.clampSet(v) }
