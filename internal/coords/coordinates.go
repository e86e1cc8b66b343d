// Package coords implements the dense coordinate container (spec.md
// §3/§4.1): an ordered sequence of particle positions inside a cubic
// periodic box, partitioned into disjoint contiguous chain ranges.
//
// Grounded on the teacher's parser.Protein/Atom arrays (a flat slice
// of positions addressed by index) generalized from "protein atoms"
// to "arbitrary interaction centers" and given an explicit periodic
// box, which the teacher's AMBER-style model never needed.
package coords

import (
	"fmt"
	"math"

	"github.com/bioshell-go/bioshell/internal/vecmath"
)

// ChainRange is a half-open index range [Start, End) within the
// coordinate array belonging to one chain.
type ChainRange struct {
	Start, End int
}

// Coordinates is the dense array of interaction centers plus the
// periodic box side length and chain partition.
//
// Invariant: every stored coordinate lies in [0, L) after any write —
// arithmetic writes are wrapped by x -> ((x mod L) + L) mod L.
type Coordinates struct {
	pos      []vecmath.Vec3
	size     int
	capacity int
	boxLen   float64
	chains   []ChainRange
}

// New allocates a container with the given capacity and box side length.
func New(capacity int, boxLen float64) *Coordinates {
	return &Coordinates{
		pos:      make([]vecmath.Vec3, capacity),
		size:     0,
		capacity: capacity,
		boxLen:   boxLen,
	}
}

// Size returns the number of coordinates currently in use.
func (c *Coordinates) Size() int { return c.size }

// Capacity returns the maximum size the container can grow to.
func (c *Coordinates) Capacity() int { return c.capacity }

// SetSize grows or shrinks the in-use range. newSize must not exceed
// Capacity.
func (c *Coordinates) SetSize(newSize int) error {
	if newSize < 0 || newSize > c.capacity {
		return fmt.Errorf("coords: SetSize(%d) exceeds capacity %d", newSize, c.capacity)
	}
	c.size = newSize
	return nil
}

// BoxLen returns the current periodic box side length.
func (c *Coordinates) BoxLen() float64 { return c.boxLen }

// SetBoxLen rescales every stored position by new/old and updates the
// box side length. Used by VolumeChange moves (spec.md §4.4).
func (c *Coordinates) SetBoxLen(newLen float64) {
	if c.boxLen == 0 {
		c.boxLen = newLen
		return
	}
	ratio := newLen / c.boxLen
	c.boxLen = newLen
	for i := 0; i < c.size; i++ {
		c.pos[i].X = c.wrap(c.pos[i].X * ratio)
		c.pos[i].Y = c.wrap(c.pos[i].Y * ratio)
		c.pos[i].Z = c.wrap(c.pos[i].Z * ratio)
	}
}

// SetBoxLenRaw updates the box side length without rescaling stored
// positions. Used by volume moves, which hand back positions already
// rescaled by the mover against the same factor SetBoxLen would apply;
// calling SetBoxLen there would rescale them a second time.
func (c *Coordinates) SetBoxLenRaw(newLen float64) {
	c.boxLen = newLen
}

// wrap folds x into [0, L).
func (c *Coordinates) wrap(x float64) float64 {
	L := c.boxLen
	if L <= 0 {
		return x
	}
	w := math.Mod(x, L)
	if w < 0 {
		w += L
	}
	return w
}

// Get returns the coordinate at index i.
func (c *Coordinates) Get(i int) vecmath.Vec3 {
	return c.pos[i]
}

// Set writes v at index i, wrapping into the periodic box.
func (c *Coordinates) Set(i int, v vecmath.Vec3) {
	v.X = c.wrap(v.X)
	v.Y = c.wrap(v.Y)
	v.Z = c.wrap(v.Z)
	c.pos[i] = v
}

// Add applies a displacement to coordinate i, wrapping the result.
func (c *Coordinates) Add(i int, dx, dy, dz float64) {
	p := c.pos[i]
	p.X = c.wrap(p.X + dx)
	p.Y = c.wrap(p.Y + dy)
	p.Z = c.wrap(p.Z + dz)
	c.pos[i] = p
}

// Copy overwrites coordinate i's position (and metadata) with rhs's.
func (c *Coordinates) Copy(i int, rhs vecmath.Vec3) {
	c.Set(i, rhs)
}

// DeltaX returns the minimum-image difference pos[i].X - x0.
func (c *Coordinates) DeltaX(i int, x0 float64) float64 {
	return c.minimumImage(c.pos[i].X - x0)
}

// DeltaY returns the minimum-image difference pos[i].Y - y0.
func (c *Coordinates) DeltaY(i int, y0 float64) float64 {
	return c.minimumImage(c.pos[i].Y - y0)
}

// DeltaZ returns the minimum-image difference pos[i].Z - z0.
func (c *Coordinates) DeltaZ(i int, z0 float64) float64 {
	return c.minimumImage(c.pos[i].Z - z0)
}

// minimumImage applies the per-axis minimum-image convention from
// spec.md §4.1: d = a-b; if d > L/2 { d -= L } else if d < -L/2 { d += L }.
func (c *Coordinates) minimumImage(d float64) float64 {
	L := c.boxLen
	if L <= 0 {
		return d
	}
	half := L / 2
	if d > half {
		d -= L
	} else if d < -half {
		d += L
	}
	return d
}

// ClosestDistanceSquared returns the minimum-image squared distance
// between coordinates i and j.
func (c *Coordinates) ClosestDistanceSquared(i, j int) float64 {
	return c.ClosestDistanceSquaredTo(i, c.pos[j])
}

// ClosestDistanceSquaredTo returns the minimum-image squared distance
// between coordinate i and an arbitrary point v (used by movers that
// compare a proposed — not-yet-committed — position against the
// system).
func (c *Coordinates) ClosestDistanceSquaredTo(i int, v vecmath.Vec3) float64 {
	dx := c.minimumImage(c.pos[i].X - v.X)
	dy := c.minimumImage(c.pos[i].Y - v.Y)
	dz := c.minimumImage(c.pos[i].Z - v.Z)
	return dx*dx + dy*dy + dz*dz
}

// ChainRangeAt returns the k-th chain's index range.
func (c *Coordinates) ChainRangeAt(k int) ChainRange {
	return c.chains[k]
}

// NumChains returns how many chains have been registered.
func (c *Coordinates) NumChains() int { return len(c.chains) }

// SetChains installs the chain partition. Ranges must be disjoint,
// sorted, and together cover exactly [0, Size()).
func (c *Coordinates) SetChains(ranges []ChainRange) error {
	prevEnd := 0
	for idx, r := range ranges {
		if r.Start != prevEnd || r.End < r.Start {
			return fmt.Errorf("coords: chain range %d [%d,%d) is not contiguous from %d", idx, r.Start, r.End, prevEnd)
		}
		prevEnd = r.End
	}
	if prevEnd != c.size {
		return fmt.Errorf("coords: chain ranges cover [0,%d) but size is %d", prevEnd, c.size)
	}
	c.chains = append([]ChainRange(nil), ranges...)
	return nil
}

// ChainOf returns the chain index that contains particle i, or -1 if
// none does (should not happen once SetChains has been called).
func (c *Coordinates) ChainOf(i int) int {
	for k, r := range c.chains {
		if i >= r.Start && i < r.End {
			return k
		}
	}
	return -1
}

// SameChain reports whether i and j belong to the same chain.
func (c *Coordinates) SameChain(i, j int) bool {
	ci, cj := c.ChainOf(i), c.ChainOf(j)
	return ci >= 0 && ci == cj
}
