package neighbor

import "github.com/bioshell-go/bioshell/internal/coords"

// Rules decides whether a pair of particles is allowed to be neighbors
// at all (spec.md §3 NbRules) — independent of distance. The classic
// use is excluding bonded pairs within the same chain.
type Rules interface {
	Allowed(c *coords.Coordinates, i, j int) bool
}

// ExcludeBondedWithinChain excludes pairs (i, j) that belong to the
// same chain and are within K bonds of each other (|i-j| <= K). This
// is the rule named in spec.md §3's NbRules example.
type ExcludeBondedWithinChain struct {
	K int
}

// Allowed implements Rules.
func (r ExcludeBondedWithinChain) Allowed(c *coords.Coordinates, i, j int) bool {
	if !c.SameChain(i, j) {
		return true
	}
	diff := i - j
	if diff < 0 {
		diff = -diff
	}
	return diff > r.K
}

// AllowAll imposes no restriction beyond distance.
type AllowAll struct{}

// Allowed implements Rules.
func (AllowAll) Allowed(*coords.Coordinates, int, int) bool { return true }
