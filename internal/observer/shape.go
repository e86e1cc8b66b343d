// Shape-scalar observer formatters: radius of gyration squared and
// end-to-end distance squared, the two per-chain diagnostics the
// original Rust implementation's GyrationSquared and REndSquared
// observers wrote to "rg.dat"/"r2.dat" alongside the trajectory.
// Exposed here as LineWriter Format functions rather than their own
// Observer types, since both reduce to "one scalar computed from the
// System, written one line per cycle" — exactly LineWriter's contract.
package observer

import (
	"fmt"

	"github.com/bioshell-go/bioshell/internal/system"
)

// FormatGyrationSquared reports the squared radius of gyration of the
// first registered chain: the mean squared distance of every bead
// from the chain's centroid.
func FormatGyrationSquared(sys *system.System, cycle int) string {
	return fmt.Sprintf("%d %.6f", cycle, gyrationSquared(sys))
}

// FormatREndSquared reports the squared end-to-end distance of the
// first registered chain: the squared distance between its first and
// last bead.
func FormatREndSquared(sys *system.System, cycle int) string {
	return fmt.Sprintf("%d %.6f", cycle, rEndSquared(sys))
}

func gyrationSquared(sys *system.System) float64 {
	if sys.Coords.NumChains() == 0 {
		return 0
	}
	r := sys.Coords.ChainRangeAt(0)
	n := r.End - r.Start
	if n <= 0 {
		return 0
	}

	var cx, cy, cz float64
	for i := r.Start; i < r.End; i++ {
		v := sys.Coords.Get(i)
		cx += v.X
		cy += v.Y
		cz += v.Z
	}
	cx /= float64(n)
	cy /= float64(n)
	cz /= float64(n)

	var sum float64
	for i := r.Start; i < r.End; i++ {
		v := sys.Coords.Get(i)
		dx, dy, dz := v.X-cx, v.Y-cy, v.Z-cz
		sum += dx*dx + dy*dy + dz*dz
	}
	return sum / float64(n)
}

func rEndSquared(sys *system.System) float64 {
	if sys.Coords.NumChains() == 0 {
		return 0
	}
	r := sys.Coords.ChainRangeAt(0)
	if r.End-r.Start < 2 {
		return 0
	}
	a := sys.Coords.Get(r.Start)
	b := sys.Coords.Get(r.End - 1)
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return dx*dx + dy*dy + dz*dz
}
