package sampler

import (
	"math"
	"math/rand"

	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/energy"
	"github.com/bioshell-go/bioshell/internal/system"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

// LinearChainGrowth is a StepwiseMover that builds a single chain bead
// by bead at a fixed bond length, trying nTrials random directions per
// step and selecting one by Boltzmann-weighted importance sampling
// (spec.md §4.6, §8 scenario 6).
//
// Grounded on the teacher's movers' spherical-direction sampling (the
// same uniform-direction/uniform-magnitude construction used by
// SingleAtom), specialized here to a fixed-magnitude extension step
// rather than a perturbation of an existing atom.
type LinearChainGrowth struct {
	BondLength float64
}

// Start implements StepwiseMover: places a single bead at the origin.
func (g *LinearChainGrowth) Start(sys *system.System, rng *rand.Rand) bool {
	if sys.Coords.Capacity() < 1 {
		return false
	}
	if err := sys.Coords.SetSize(1); err != nil {
		return false
	}
	sys.Coords.Set(0, vecmath.NewVec3(0, 0, 0))
	if err := sys.Coords.SetChains([]coords.ChainRange{{Start: 0, End: 1}}); err != nil {
		return false
	}
	sys.Neighbors.UpdateAll()
	return true
}

// GrowByOne implements StepwiseMover.
func (g *LinearChainGrowth) GrowByOne(sys *system.System, e *energy.Total, rng *rand.Rand, temperature float64, nTrials int) (float64, bool) {
	n := sys.Coords.Size()
	if n == 0 || n >= sys.Coords.Capacity() {
		return 0, false
	}
	last := sys.Coords.Get(n - 1)
	if err := sys.Coords.SetSize(n + 1); err != nil {
		return 0, false
	}

	candidates := make([]vecmath.Vec3, nTrials)
	trialEnergies := make([]float64, nTrials)
	for t := 0; t < nTrials; t++ {
		theta := rng.Float64() * 2 * math.Pi
		cosPhi := 2*rng.Float64() - 1
		sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
		dir := vecmath.Vec3{X: sinPhi * math.Cos(theta), Y: sinPhi * math.Sin(theta), Z: cosPhi}
		cand := last.Add(dir.Scale(g.BondLength))
		candidates[t] = cand

		sys.Coords.Set(n, cand)
		sys.Neighbors.Update(n)
		trialEnergies[t] = e.PerIndex(sys.Coords, sys.Neighbors, n)
	}

	chosen, rosenbluthWeight := pickTrial(trialEnergies, temperature, rng)

	sys.Coords.Set(n, candidates[chosen])
	sys.Neighbors.Update(n)
	if err := sys.Coords.SetChains([]coords.ChainRange{{Start: 0, End: n + 1}}); err != nil {
		return 0, false
	}

	return rosenbluthWeight, true
}
