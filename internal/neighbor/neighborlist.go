// Package neighbor implements the Verlet-style neighbor list with a
// buffer zone and incremental updates (spec.md §3/§4.2).
//
// Grounded on the teacher's physics.SpatialHash (a cache of
// candidate-neighbor sets rebuilt from scratch each time it's needed)
// generalized with the travelled-distance bookkeeping spec.md requires
// so that most committed moves need no rebuild at all — the teacher's
// spatial hash only ever supported "rebuild every call."
package neighbor

import (
	"fmt"
	"math"

	"github.com/bioshell-go/bioshell/internal/bioshelllog"
	"github.com/bioshell-go/bioshell/internal/coords"
)

// List maintains, for every particle i, the set of particles within
// cutoff+buffer of it (a superset of the true cutoff-neighbors), plus
// the bookkeeping needed to know when that cache has gone stale.
type List struct {
	coordinates *coords.Coordinates
	rules       Rules

	cutoff float64
	buffer float64

	neighbors [][]int
	recentPos []recordedPos
	travelled []float64

	built bool
}

type recordedPos struct{ x, y, z float64 }

// New creates a neighbor list over c with the given cutoff and buffer
// width. No rebuild happens here — per spec.md §9's Open Question
// resolution (see DESIGN.md), a freshly constructed list reports zero
// neighbors for everyone until the first UpdateAll.
func New(c *coords.Coordinates, rules Rules, cutoff, buffer float64) *List {
	n := c.Capacity()
	return &List{
		coordinates: c,
		rules:       rules,
		cutoff:      cutoff,
		buffer:      buffer,
		neighbors:   make([][]int, n),
		recentPos:   make([]recordedPos, n),
		travelled:   make([]float64, n),
	}
}

// Neighbors returns the (possibly stale-superset) neighbor set of i.
func (l *List) Neighbors(i int) []int {
	return l.neighbors[i]
}

// UpdateAll performs a full O(N²) rebuild, filtered by Rules, and
// resets every travelled distance and recorded position snapshot.
func (l *List) UpdateAll() {
	n := l.coordinates.Size()
	cut2 := (l.cutoff + l.buffer) * (l.cutoff + l.buffer)

	for i := 0; i < n; i++ {
		l.neighbors[i] = l.neighbors[i][:0]
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !l.rules.Allowed(l.coordinates, i, j) {
				continue
			}
			if l.coordinates.ClosestDistanceSquared(i, j) <= cut2 {
				l.neighbors[i] = append(l.neighbors[i], j)
				l.neighbors[j] = append(l.neighbors[j], i)
			}
		}
	}

	for i := 0; i < n; i++ {
		p := l.coordinates.Get(i)
		l.recentPos[i] = recordedPos{p.X, p.Y, p.Z}
		l.travelled[i] = 0
	}

	l.built = true
	bioshelllog.Logger().WithField("particles", n).Debug("neighbor list full rebuild")
}

// Update records that particle i's position has just been committed,
// accumulating its travelled distance since the last snapshot. If i's
// travelled distance plus the system-wide maximum travelled distance
// exceeds the buffer width (or the list was never built), a full
// rebuild is triggered and every travelled counter resets to zero
// (spec.md §4.2 algorithm).
//
// Callers MUST invoke Update(i) after every committed position change
// to i, before the next energy evaluation touches i or its neighbors
// (spec.md §5). A missed Update is not detected here: the cache is
// simply left stale, which the caller can detect with AssertConsistent.
func (l *List) Update(i int) {
	p := l.coordinates.Get(i)
	prev := l.recentPos[i]
	dx, dy, dz := p.X-prev.x, p.Y-prev.y, p.Z-prev.z
	step := math.Sqrt(dx*dx + dy*dy + dz*dz)
	l.travelled[i] += step
	l.recentPos[i] = recordedPos{p.X, p.Y, p.Z}

	if !l.built || l.travelled[i]+l.maxTravelled() > l.buffer {
		l.UpdateAll()
	}
}

func (l *List) maxTravelled() float64 {
	max := 0.0
	for _, t := range l.travelled {
		if t > max {
			max = t
		}
	}
	return max
}

// AssertConsistent re-derives the true cutoff-neighbor set by brute
// force and reports an error if List's cached neighbors are not a
// superset of it. Used by tests and the diagnostic binary to check
// the universal invariant from spec.md §8.
func (l *List) AssertConsistent() error {
	n := l.coordinates.Size()
	cut2 := l.cutoff * l.cutoff
	for i := 0; i < n; i++ {
		have := make(map[int]bool, len(l.neighbors[i]))
		for _, j := range l.neighbors[i] {
			have[j] = true
		}
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			if !l.rules.Allowed(l.coordinates, i, j) {
				continue
			}
			if l.coordinates.ClosestDistanceSquared(i, j) <= cut2 && !have[j] {
				return fmt.Errorf("neighbor: invariant violated, %d within cutoff of %d but absent from N(%d)", j, i, i)
			}
		}
	}
	return nil
}
