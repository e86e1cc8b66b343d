// Package acceptance implements the Metropolis acceptance criterion
// (spec.md §4.5, component C6): accept any move that does not raise
// the energy, and accept an energy-raising move with probability
// exp((E_before - E_after)/T).
//
// Grounded on the teacher's folding.acceptMove, which computed the
// same Boltzmann ratio inline inside its simulated-annealing loop;
// here it is pulled out into its own type so temperature and RNG seed
// can be mutated independently of any one sampler run (spec.md: both
// are mutable, to support annealing schedules and reproducible reruns).
package acceptance

import (
	"math"
	"math/rand"
)

// Metropolis holds the temperature and RNG state for the acceptance test.
type Metropolis struct {
	temperature float64
	rng         *rand.Rand
}

// NewMetropolis builds a Metropolis criterion at the given temperature,
// seeded deterministically.
func NewMetropolis(temperature float64, seed int64) *Metropolis {
	return &Metropolis{
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Temperature returns the current temperature.
func (m *Metropolis) Temperature() float64 { return m.temperature }

// SetTemperature mutates the temperature, e.g. for an annealing schedule.
func (m *Metropolis) SetTemperature(t float64) { m.temperature = t }

// Reseed replaces the underlying RNG with a freshly seeded one, for
// reproducible reruns.
func (m *Metropolis) Reseed(seed int64) { m.rng = rand.New(rand.NewSource(seed)) }

// Check returns true if the move from eBefore to eAfter should be
// committed: always when the energy does not increase, otherwise with
// probability exp((eBefore-eAfter)/T).
func (m *Metropolis) Check(eBefore, eAfter float64) bool {
	if eAfter <= eBefore {
		return true
	}
	if m.temperature <= 0 {
		return false
	}
	p := expSafe((eBefore - eAfter) / m.temperature)
	return m.rng.Float64() < p
}

func expSafe(x float64) float64 {
	if x < -700 {
		return 0 // underflow guard; exp(-700) is already far below float64 epsilon
	}
	return math.Exp(x)
}
