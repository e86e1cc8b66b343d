package energy

import (
	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/neighbor"
	"gonum.org/v1/gonum/floats"
)

// Total is the weighted sum of energy components (spec.md §4.3).
// Each of Evaluate, PerIndex, and DeltaOverRange dispatches to every
// registered component.
type Total struct {
	Components []Component
}

// NewTotal builds a Total from the given components.
func NewTotal(components ...Component) *Total {
	return &Total{Components: components}
}

// Evaluate returns the full weighted total energy. The per-component
// contributions are summed with gonum/floats.Sum rather than a running
// accumulator — this is the one place (full-system recompute) where
// there are enough terms for a dedicated reduction helper to be worth
// reaching for, and it is the path the rest of the pack (gonum-backed
// kortschak-loopy, inference-sim, pthm-soup) already leans on for this
// exact kind of reduction.
func (t *Total) Evaluate(c *coords.Coordinates, nl *neighbor.List) float64 {
	contribs := make([]float64, len(t.Components))
	for i, comp := range t.Components {
		contribs[i] = comp.Weight() * comp.Full(c, nl)
	}
	return floats.Sum(contribs)
}

// PerIndex returns the weighted energy attributable to particle i.
func (t *Total) PerIndex(c *coords.Coordinates, nl *neighbor.List, i int) float64 {
	total := 0.0
	for _, comp := range t.Components {
		total += comp.Weight() * comp.PerIndex(c, nl, i)
	}
	return total
}

// DeltaOverRange returns the weighted energy difference caused by a
// change restricted to [lo, hi). This is the function the sampler's
// inner loop calls on every proposed move; it must never touch pairs
// outside the moved range's interaction footprint.
func (t *Total) DeltaOverRange(before, after *coords.Coordinates, nl *neighbor.List, lo, hi int) float64 {
	total := 0.0
	for _, comp := range t.Components {
		total += comp.Weight() * comp.DeltaOverRange(before, after, nl, lo, hi)
	}
	return total
}
