// Package movers implements spec.md §4.4's move proposals and the
// mover catalogue (SingleAtom, CrankShaft, Terminal, ChainFragment,
// VolumeChange), plus the adaptive-range decorator.
//
// Grounded on the teacher's sampling.perturbCoordinates (a single
// Gaussian-perturbation mover) generalized into spec.md's full mover
// catalogue, each returning a MoveProposal rather than mutating the
// system directly — the teacher always cloned the whole protein per
// trial move, which spec.md's "delta caused by a local perturbation"
// contract explicitly forbids for a production engine.
package movers

import "github.com/bioshell-go/bioshell/internal/vecmath"

// Proposal is the result of a mover: a contiguous run of candidate
// positions starting at FirstMovedIndex. Applying a proposal is
// equivalent to writing len(Positions) consecutive coordinates starting
// at FirstMovedIndex (spec.md §3).
type Proposal struct {
	FirstMovedIndex int
	Positions       []vecmath.Vec3

	// NewBoxLen is only set by VolumeChange proposals; zero means "box
	// length unchanged."
	NewBoxLen float64
}

// Size returns how many consecutive coordinates this proposal covers.
func (p *Proposal) Size() int { return len(p.Positions) }

// Range returns the half-open [lo, hi) index range this proposal covers.
func (p *Proposal) Range() (int, int) {
	return p.FirstMovedIndex, p.FirstMovedIndex + len(p.Positions)
}
