// Package sampler implements the isothermal Monte Carlo protocol
// (spec.md §4.6, component C7): a Sampler owns an ordered list of
// registered movers, performs sweeps of proposal/evaluate/accept over
// them, and alternates sweeps with observer callbacks.
//
// Grounded on the teacher's folding package, whose outer
// simulated-annealing loop interleaved move proposals with an
// inline Metropolis test; here the loop is generalized to an
// arbitrary set of registered movers plus a pluggable AcceptanceCriterion,
// and volume moves get the augmented NPT weight spec.md §4.4 prescribes.
package sampler

import (
	"math"
	"math/rand"

	"github.com/bioshell-go/bioshell/internal/acceptance"
	"github.com/bioshell-go/bioshell/internal/bioshelllog"
	"github.com/bioshell-go/bioshell/internal/energy"
	"github.com/bioshell-go/bioshell/internal/movers"
	"github.com/bioshell-go/bioshell/internal/system"
)

// Observer receives the system at outer-cycle boundaries, gated by its
// own lag time (spec.md §4.7); the sampler only decides when an outer
// cycle ends, not whether any given observer fires on it.
type Observer interface {
	Observe(sys *system.System, cycle int)
}

// registration pairs a mover with how many times it is attempted per sweep.
type registration struct {
	mover movers.Mover
	size  int
}

// Sampler drives registered movers against a System under a Metropolis
// (or NPT-augmented) acceptance rule.
type Sampler struct {
	System     *system.System
	Energy     *energy.Total
	Acceptance *acceptance.Metropolis
	Pressure   float64 // only consulted for VolumeChange proposals

	rng             *rand.Rand
	regs            []registration
	sweepsAttempted map[string]int
	sweepsAccepted  map[string]int
	scratch         movers.Proposal
}

// New builds a Sampler over the given system, energy, and acceptance rule.
func New(sys *system.System, e *energy.Total, acc *acceptance.Metropolis, rng *rand.Rand) *Sampler {
	return &Sampler{
		System:          sys,
		Energy:          e,
		Acceptance:      acc,
		rng:             rng,
		sweepsAttempted: make(map[string]int),
		sweepsAccepted:  make(map[string]int),
	}
}

// Register adds a mover to the sampler's sweep, attempted size times
// per sweep, in registration order (spec.md §4.6, §5).
func (s *Sampler) Register(m movers.Mover, size int) {
	s.regs = append(s.regs, registration{mover: m, size: size})
}

// AcceptanceRate returns the lifetime acceptance fraction for a
// registered mover by name, or 0 if it was never attempted.
func (s *Sampler) AcceptanceRate(name string) float64 {
	attempted := s.sweepsAttempted[name]
	if attempted == 0 {
		return 0
	}
	return float64(s.sweepsAccepted[name]) / float64(attempted)
}

// MakeSweeps performs n sweeps: one sweep attempts size moves per
// registered mover, in registration order (spec.md §4.6).
func (s *Sampler) MakeSweeps(n int) {
	for sweep := 0; sweep < n; sweep++ {
		for _, reg := range s.regs {
			for attempt := 0; attempt < reg.size; attempt++ {
				s.attempt(reg.mover)
			}
		}
	}
}

// RunSimulation alternates MakeSweeps(inner) with an observer pass,
// for outer cycles total, logging per-mover acceptance rates after
// each cycle (spec.md §4.6).
func (s *Sampler) RunSimulation(inner, outer int, observers []Observer) {
	logger := bioshelllog.Logger()
	for cycle := 0; cycle < outer; cycle++ {
		s.MakeSweeps(inner)
		for _, obs := range observers {
			obs.Observe(s.System, cycle)
		}
		for _, reg := range s.regs {
			logger.WithField("mover", reg.mover.Name()).
				WithField("cycle", cycle).
				WithField("acceptance_rate", s.AcceptanceRate(reg.mover.Name())).
				Debug("sweep cycle complete")
		}
	}
}

func (s *Sampler) attempt(m movers.Mover) {
	name := m.Name()
	proposal := &s.scratch
	proposal.Positions = proposal.Positions[:0]
	proposal.NewBoxLen = 0

	if !m.Propose(s.System, s.rng, proposal) {
		return // mover declined to propose this attempt; not counted
	}
	s.sweepsAttempted[name]++

	lo, hi := proposal.Range()
	after := s.System.Clone()
	if _, ok := m.(*movers.VolumeChange); ok {
		after.SetBoxLenRaw(proposal.NewBoxLen)
	}
	for k, pos := range proposal.Positions {
		after.Set(lo+k, pos)
	}

	delta := s.Energy.DeltaOverRange(s.System.Coords, after, s.System.Neighbors, lo, hi)

	var accept bool
	if vc, ok := m.(*movers.VolumeChange); ok {
		accept = s.checkVolumeChange(vc, delta)
	} else {
		accept = s.Acceptance.Check(0, delta)
	}

	if accept {
		if _, ok := m.(*movers.VolumeChange); ok {
			s.System.Coords.SetBoxLenRaw(proposal.NewBoxLen)
		}
		s.System.CommitRange(lo, proposal.Positions)
		m.Accepted()
		s.sweepsAccepted[name]++
	} else {
		m.Rejected()
	}
}

// checkVolumeChange applies the augmented NPT acceptance weight from
// spec.md §4.4: dW = (E'-E) + p*(V'-V) - (N+1)*T*ln(V'/V), accepted
// when U(0,1) < exp(-dW/T).
func (s *Sampler) checkVolumeChange(vc *movers.VolumeChange, deltaE float64) bool {
	n := float64(s.System.Coords.Size())
	t := s.Acceptance.Temperature()
	logRatio := vc.LogVolumeRatio()
	dW := deltaE + s.Pressure*vc.VolumeDelta() - (n+1)*t*logRatio
	if t <= 0 {
		return dW <= 0
	}
	return s.rng.Float64() < math.Exp(-dW/t)
}
