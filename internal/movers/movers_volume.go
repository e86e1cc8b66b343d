package movers

import (
	"math"
	"math/rand"

	"github.com/bioshell-go/bioshell/internal/system"
)

// VolumeChange proposes an isotropic rescaling of the whole periodic box:
// ln V' = ln V + U(-delta, delta), every coordinate rescaled by the same
// linear factor (spec.md §4.4). Unlike the other movers, its proposal
// spans every atom in the system and carries a nonzero NewBoxLen.
//
// The augmented NPT acceptance weight
//
//	dW = (E' - E) + p*(V' - V) - (N+1)*T*ln(V'/V)
//
// depends on pressure and temperature, which this package does not own
// (spec.md keeps Mover ignorant of the thermodynamic ensemble) — so
// VolumeChange exposes LogVolumeRatio and VolumeDelta for whichever
// acceptance rule the sampler applies after Propose returns.
type VolumeChange struct {
	rangeTracker // max |ln V' - ln V|

	lastLogRatio   float64
	lastVolumeFrom float64
	lastVolumeTo   float64
}

// NewVolumeChange builds a VolumeChange mover with an adaptive
// log-volume step size.
func NewVolumeChange(initialDelta, minDelta, maxDelta float64) *VolumeChange {
	m := &VolumeChange{}
	m.min, m.max = minDelta, maxDelta
	m.clampSet(initialDelta)
	return m
}

// Name implements Mover.
func (m *VolumeChange) Name() string { return "VolumeChange" }

// Propose implements Mover.
func (m *VolumeChange) Propose(sys *system.System, rng *rand.Rand, p *Proposal) bool {
	n := sys.Coords.Size()
	if n == 0 {
		return false
	}
	boxLen := sys.Coords.BoxLen()
	if boxLen <= 0 {
		return false
	}

	volume := boxLen * boxLen * boxLen
	logDelta := (rng.Float64()*2 - 1) * m.get()
	newVolume := volume * math.Exp(logDelta)
	newBoxLen := math.Cbrt(newVolume)
	factor := newBoxLen / boxLen

	p.FirstMovedIndex = 0
	p.Positions = p.Positions[:0]
	for i := 0; i < n; i++ {
		v := sys.Coords.Get(i)
		v.X *= factor
		v.Y *= factor
		v.Z *= factor
		p.Positions = append(p.Positions, v)
	}
	p.NewBoxLen = newBoxLen

	m.lastLogRatio = logDelta
	m.lastVolumeFrom = volume
	m.lastVolumeTo = newVolume
	return true
}

// LogVolumeRatio returns ln(V'/V) for the most recently proposed move.
func (m *VolumeChange) LogVolumeRatio() float64 { return m.lastLogRatio }

// VolumeDelta returns V' - V for the most recently proposed move.
func (m *VolumeChange) VolumeDelta() float64 { return m.lastVolumeTo - m.lastVolumeFrom }

// Accepted implements Mover.
func (m *VolumeChange) Accepted() {}

// Rejected implements Mover.
func (m *VolumeChange) Rejected() {}

// Range returns the current max |ln V' - ln V| step.
func (m *VolumeChange) Range() float64 { return m.get() }

// SetRange sets the max log-volume step, clamped to [min, max].
func (m *VolumeChange) SetRange(v float64) { m.clampSet(v) }
