package movers

import (
	"math"
	"math/rand"

	"github.com/bioshell-go/bioshell/internal/system"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

// Mover proposes a candidate move and is later told whether the
// sampler committed or discarded it, so adaptive-range movers can
// update their acceptance statistics (spec.md §4.4).
type Mover interface {
	// Name identifies the mover for logging and acceptance-rate reporting.
	Name() string

	// Propose writes a candidate move into proposal, given the current
	// system state. rng is supplied by the caller — no thread-local RNG
	// lives inside a mover (spec.md §9).
	Propose(sys *system.System, rng *rand.Rand, proposal *Proposal) bool

	// Accepted is called when the sampler commits this mover's last proposal.
	Accepted()

	// Rejected is called when the sampler discards this mover's last proposal.
	Rejected()
}

// rangeTracker is embedded by movers whose step size adapts to the
// recent acceptance rate (spec.md §4.4's adaptive-range decorator
// applies to any of these).
type rangeTracker struct {
	value    float64
	min, max float64
}

func (r *rangeTracker) get() float64 { return r.value }

func (r *rangeTracker) clampSet(v float64) {
	if v < r.min {
		v = r.min
	}
	if v > r.max {
		v = r.max
	}
	r.value = v
}

// SingleAtom adds a uniformly-random vector of magnitude <= delta to
// one randomly chosen atom (spec.md §4.4).
type SingleAtom struct {
	rangeTracker
}

// NewSingleAtom builds a SingleAtom mover with the given initial/min/max step size.
func NewSingleAtom(initial, min, max float64) *SingleAtom {
	m := &SingleAtom{}
	m.min, m.max = min, max
	m.clampSet(initial)
	return m
}

// Name implements Mover.
func (m *SingleAtom) Name() string { return "SingleAtom" }

// Propose implements Mover.
func (m *SingleAtom) Propose(sys *system.System, rng *rand.Rand, p *Proposal) bool {
	n := sys.Coords.Size()
	if n == 0 {
		return false
	}
	i := rng.Intn(n)
	delta := m.get()

	// Uniform direction, uniform magnitude in [0, delta].
	theta := rng.Float64() * 2 * math.Pi
	cosPhi := 2*rng.Float64() - 1
	sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
	mag := rng.Float64() * delta

	dx := mag * sinPhi * math.Cos(theta)
	dy := mag * sinPhi * math.Sin(theta)
	dz := mag * cosPhi

	cur := sys.Coords.Get(i)
	p.FirstMovedIndex = i
	p.Positions = append(p.Positions[:0], vecmath.Vec3{
		X: cur.X + dx, Y: cur.Y + dy, Z: cur.Z + dz,
		Chain: cur.Chain, ResType: cur.ResType, AtomType: cur.AtomType,
	})
	return true
}

// Accepted implements Mover.
func (m *SingleAtom) Accepted() {}

// Rejected implements Mover.
func (m *SingleAtom) Rejected() {}

// Range returns the mover's current step size (for the adaptive decorator).
func (m *SingleAtom) Range() float64 { return m.get() }

// SetRange sets the mover's step size, clamped to [min, max].
func (m *SingleAtom) SetRange(v float64) { m.clampSet(v) }
