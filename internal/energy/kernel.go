// Package energy implements the bonded and pairwise energy kernels of
// spec.md §3/§4.3, including the delta-evaluation contract every
// component must satisfy: delta_over_range(before, range, after) must
// equal E_after(range) - E_before(range) within floating-point
// tolerance, assuming only positions inside range changed.
//
// Grounded on the teacher's physics.CalculateTotalEnergy /
// physics.CalculateLennardJonesEnergy (full-recompute AMBER energy
// terms) generalized into the closed-form, weight-carrying Component
// interface spec.md §4.3 demands, with the neighbor list (rather than
// an O(n²) scan or the teacher's ad hoc spatial hash) as the
// pairwise-kernel's candidate source.
package energy

import (
	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/neighbor"
)

// Component is the interface every energy term (bonded or non-bonded)
// must implement. Per spec.md §4.3, every component carries a weight
// and supports full evaluation, single-index evaluation, and delta
// evaluation over a range.
type Component interface {
	// Weight returns the multiplicative weight applied to this term's
	// contribution to TotalEnergy.
	Weight() float64

	// Full returns the component's unweighted energy for the whole system.
	Full(c *coords.Coordinates, nl *neighbor.List) float64

	// PerIndex returns the unweighted energy of every bond/interaction
	// involving particle i. A pair term is counted in the PerIndex of
	// both its particles, so summing PerIndex over all i counts it twice.
	PerIndex(c *coords.Coordinates, nl *neighbor.List, i int) float64

	// DeltaOverRange returns E_after(range) - E_before(range), assuming
	// only positions in [lo, hi) changed between the two coordinate
	// snapshots. after is the coordinate container already reflecting
	// the proposed change; before supplies the prior positions for
	// indices in range (and is otherwise identical to after).
	DeltaOverRange(before, after *coords.Coordinates, nl *neighbor.List, lo, hi int) float64
}

// Kernel computes a pairwise potential energy from a squared distance.
// Returning 0 beyond the kernel's own cutoff is the kernel's
// responsibility (spec.md §4.3).
type Kernel interface {
	Phi(dSq float64) float64
	CutoffSquared() float64
}
