package energy

import (
	"math"

	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/neighbor"
)

// HarmonicBond implements spec.md §4.3's bonded term:
// E_bond = k * (|r_i - r_{i+1}| - d0)^2 between successive atoms of the
// same chain.
type HarmonicBond struct {
	K, D0, W float64
}

// Weight implements Component.
func (h HarmonicBond) Weight() float64 { return h.W }

func (h HarmonicBond) bondEnergy(c *coords.Coordinates, i int) float64 {
	if i+1 >= c.Size() || !c.SameChain(i, i+1) {
		return 0
	}
	d := math.Sqrt(c.ClosestDistanceSquared(i, i+1))
	diff := d - h.D0
	return h.K * diff * diff
}

// Full implements Component: sum over every successive same-chain pair.
func (h HarmonicBond) Full(c *coords.Coordinates, _ *neighbor.List) float64 {
	total := 0.0
	for i := 0; i < c.Size()-1; i++ {
		total += h.bondEnergy(c, i)
	}
	return total
}

// PerIndex implements Component: sums at most the two bonds touching i
// (to i-1 and i+1), per spec.md §4.3.
func (h HarmonicBond) PerIndex(c *coords.Coordinates, _ *neighbor.List, i int) float64 {
	total := 0.0
	if i > 0 {
		total += h.bondEnergy(c, i-1)
	}
	if i+1 < c.Size() {
		total += h.bondEnergy(c, i)
	}
	return total
}

// DeltaOverRange implements Component: examines bonds crossing or
// inside [lo-1, hi+1], per spec.md §4.3.
func (h HarmonicBond) DeltaOverRange(before, after *coords.Coordinates, _ *neighbor.List, lo, hi int) float64 {
	start := lo - 1
	if start < 0 {
		start = 0
	}
	end := hi // last bond examined starts at hi (bond hi -> hi+1)
	if end > after.Size()-1 {
		end = after.Size() - 1
	}

	delta := 0.0
	for i := start; i <= end; i++ {
		delta += h.bondEnergy(after, i) - h.bondEnergy(before, i)
	}
	return delta
}
