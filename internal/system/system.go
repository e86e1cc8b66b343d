// Package system couples a Coordinates buffer with its NeighborList,
// the "System" named throughout spec.md §2's data-flow description.
// It deliberately holds no back-pointer to the Sampler or Energy that
// use it (spec.md §9: "avoid back-pointers" — Sampler owns System,
// Energy is parameterized by System and takes &System per call).
package system

import (
	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/neighbor"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

// System bundles the coordinate buffer with its neighbor list cache.
type System struct {
	Coords    *coords.Coordinates
	Neighbors *neighbor.List
}

// New builds a System and its neighbor list over the same coordinates.
func New(c *coords.Coordinates, rules neighbor.Rules, cutoff, buffer float64) *System {
	return &System{
		Coords:    c,
		Neighbors: neighbor.New(c, rules, cutoff, buffer),
	}
}

// CommitRange writes positions into Coords starting at firstIndex and
// updates the neighbor list for every touched index, in order — this
// is the only place a move proposal's candidate positions become the
// system's actual state (spec.md §5: "Only the Sampler may commit
// moves").
func (s *System) CommitRange(firstIndex int, positions []vecmath.Vec3) {
	for k, p := range positions {
		i := firstIndex + k
		s.Coords.Set(i, p)
		s.Neighbors.Update(i)
	}
}

// SnapshotRange returns a copy of the coordinates in [lo, hi).
func (s *System) SnapshotRange(lo, hi int) []vecmath.Vec3 {
	out := make([]vecmath.Vec3, hi-lo)
	for i := lo; i < hi; i++ {
		out[i-lo] = s.Coords.Get(i)
	}
	return out
}

// Clone returns a deep copy of the System's coordinate buffer only
// (not the neighbor list, which is a cache the caller is expected to
// rebuild on the clone if it outlives the original's lifetime). This
// is used to build the "after" state of a delta-energy evaluation,
// which is compared against the System's own coordinates as "before".
func (s *System) Clone() *coords.Coordinates {
	n := s.Coords.Size()
	clone := coords.New(s.Coords.Capacity(), s.Coords.BoxLen())
	_ = clone.SetSize(n)
	for i := 0; i < n; i++ {
		clone.Set(i, s.Coords.Get(i))
	}
	if s.Coords.NumChains() > 0 {
		ranges := make([]coords.ChainRange, s.Coords.NumChains())
		for k := range ranges {
			ranges[k] = s.Coords.ChainRangeAt(k)
		}
		_ = clone.SetChains(ranges)
	}
	return clone
}
