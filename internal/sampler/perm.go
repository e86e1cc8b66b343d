package sampler

import (
	"math"
	"math/rand"

	weightedrand "github.com/mroth/weightedrand"

	"github.com/bioshell-go/bioshell/internal/bioshelllog"
	"github.com/bioshell-go/bioshell/internal/energy"
	"github.com/bioshell-go/bioshell/internal/neighbor"
	"github.com/bioshell-go/bioshell/internal/system"
)

// StepwiseMover places a chain one bead at a time — the growth
// primitive PERM drives (spec.md §4.6).
type StepwiseMover interface {
	// Start places the first bead(s) of a fresh chain.
	Start(sys *system.System, rng *rand.Rand) bool
	// GrowByOne proposes nTrials candidate extensions, writes the
	// chosen one into sys via importance sampling weighted by
	// exp(-E/T), and returns the Rosenbluth weight of that step (the
	// mean Boltzmann factor over all trials).
	GrowByOne(sys *system.System, e *energy.Total, rng *rand.Rand, temperature float64, nTrials int) (weight float64, ok bool)
}

// Conformation is one completed PERM sample: the final chain length
// reached and its cumulative statistical weight.
type Conformation struct {
	Length int
	Weight float64
}

// PERM implements the pruning-enriched Rosenbluth method (spec.md
// §4.6): grows chains bead by bead via a StepwiseMover, importance-
// sampling each extension among n_trials candidates, and prunes or
// enriches the population based on the running cumulative weight.
//
// Grounded on the teacher's sampling package's chain-growth helper
// (which grew a fixed-length chain one residue at a time with no
// reweighting); PERM's pruning/enrichment and the weighted-choice
// selection at each growth step are new, modeled directly on spec.md
// §4.6 and §8 scenario 6.
type PERM struct {
	Mover       StepwiseMover
	Temperature float64
	TargetLen   int
	NTrials     int
	WLow        float64
	WHigh       float64

	// NbRules, Cutoff, and Buffer parameterize the neighbor list built
	// for each enrichment clone's System, matching the seed System's
	// own construction parameters.
	NbRules neighbor.Rules
	Cutoff  float64
	Buffer  float64
}

// chainState is one member of the PERM population: a cloned System at
// its current chain length plus its cumulative weight.
type chainState struct {
	sys    *system.System
	length int
	weight float64
}

// Run grows a population of chains, starting from a single seed
// System, to TargetLen beads, applying pruning/enrichment after every
// growth step, and returns every conformation that reached TargetLen.
func (p *PERM) Run(seed *system.System, e *energy.Total, rng *rand.Rand) []Conformation {
	logger := bioshelllog.Logger()

	if !p.Mover.Start(seed, rng) {
		return nil
	}
	population := []*chainState{{sys: seed, length: 1, weight: 1.0}}
	var done []Conformation

	for len(population) > 0 {
		var next []*chainState
		for _, st := range population {
			if st.length >= p.TargetLen {
				done = append(done, Conformation{Length: st.length, Weight: st.weight})
				continue
			}
			stepWeight, ok := p.Mover.GrowByOne(st.sys, e, rng, p.Temperature, p.NTrials)
			if !ok {
				continue // dead end: chain discarded
			}
			st.weight *= stepWeight
			st.length++

			switch {
			case st.weight < p.WLow:
				// Prune: flip a coin to delete or double the weight.
				if rng.Float64() < 0.5 {
					continue
				}
				st.weight *= 2
				next = append(next, st)
			case st.weight > p.WHigh:
				// Enrich: split into two copies each holding half the weight.
				st.weight /= 2
				clone := &chainState{sys: system.New(st.sys.Clone(), p.NbRules, p.Cutoff, p.Buffer), length: st.length, weight: st.weight}
				next = append(next, st, clone)
			default:
				next = append(next, st)
			}
		}
		population = next
		logger.WithField("population", len(population)).WithField("completed", len(done)).Debug("PERM growth step")
	}
	return done
}

// pickTrial importance-samples one of nTrials candidate extensions by
// Boltzmann weight exp(-E/T), returning its index and the mean weight
// across all trials (the Rosenbluth weight contribution of this
// step). Resolves spec.md's PERM tie-break Open Question by relying on
// weightedrand's own boundary convention (a draw landing exactly on a
// cumulative-weight boundary is assigned to the following entry).
func pickTrial(energies []float64, temperature float64, rng *rand.Rand) (chosen int, rosenbluthWeight float64) {
	choices := make([]weightedrand.Choice, len(energies))
	sum := 0.0
	for i, en := range energies {
		w := math.Exp(-en / temperature)
		sum += w
		// weightedrand.Choice.Weight is a uint; scale into a fixed-point
		// integer space wide enough to preserve relative magnitude.
		scaled := uint(w * 1e9)
		if scaled == 0 {
			scaled = 1
		}
		choices[i] = weightedrand.Choice{Item: i, Weight: scaled}
	}
	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return 0, sum / float64(len(energies))
	}
	chosen = chooser.PickSource(rng).(int)
	return chosen, sum / float64(len(energies))
}
