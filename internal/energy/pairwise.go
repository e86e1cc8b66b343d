package energy

import (
	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/neighbor"
)

// PairwiseNonBonded evaluates a Kernel over the neighbor list, per
// spec.md §4.3: per-atom energy sums phi over N(i); full energy halves
// the double-counted sum; delta visits every atom in the moved range
// twice (old-state neighbors, new-state neighbors).
type PairwiseNonBonded struct {
	Kernel Kernel
	W      float64
}

// Weight implements Component.
func (p PairwiseNonBonded) Weight() float64 { return p.W }

// Full implements Component.
func (p PairwiseNonBonded) Full(c *coords.Coordinates, nl *neighbor.List) float64 {
	total := 0.0
	for i := 0; i < c.Size(); i++ {
		total += p.PerIndex(c, nl, i)
	}
	return total / 2
}

// PerIndex implements Component: sums phi(d²) over N(i), no halving
// (the caller halves when summing the whole system).
func (p PairwiseNonBonded) PerIndex(c *coords.Coordinates, nl *neighbor.List, i int) float64 {
	total := 0.0
	for _, j := range nl.Neighbors(i) {
		d2 := c.ClosestDistanceSquared(i, j)
		if d2 <= p.Kernel.CutoffSquared() {
			total += p.Kernel.Phi(d2)
		}
	}
	return total
}

// DeltaOverRange implements Component. Per spec.md §4.3, this compares
// old-state and new-state interactions of every atom in [lo, hi) with
// its (cached) neighbor set. The neighbor list itself is assumed valid
// for both snapshots (no topology change, only position change) since
// callers update it only after the move is committed.
func (p PairwiseNonBonded) DeltaOverRange(before, after *coords.Coordinates, nl *neighbor.List, lo, hi int) float64 {
	delta := 0.0
	counted := make(map[[2]int]bool)

	for i := lo; i < hi; i++ {
		for _, j := range nl.Neighbors(i) {
			// A pair with both endpoints inside the moved range would be
			// counted twice (once from each side); dedupe via a
			// canonical ordering.
			pair := [2]int{i, j}
			if i > j {
				pair = [2]int{j, i}
			}
			if j >= lo && j < hi {
				if counted[pair] {
					continue
				}
				counted[pair] = true
			}

			dBefore := before.ClosestDistanceSquared(i, j)
			dAfter := after.ClosestDistanceSquared(i, j)

			var eBefore, eAfter float64
			if dBefore <= p.Kernel.CutoffSquared() {
				eBefore = p.Kernel.Phi(dBefore)
			}
			if dAfter <= p.Kernel.CutoffSquared() {
				eAfter = p.Kernel.Phi(dAfter)
			}
			delta += eAfter - eBefore
		}
	}
	return delta
}
