// Package observer implements spec.md §4.7's observer set: objects
// that receive the System at outer-cycle boundaries, gated by a lag
// time, and either buffer or write data. No observer may mutate the
// System.
//
// Grounded on the teacher's validation package, which wrote periodic
// diagnostic snapshots to disk during folding runs; here that one-off
// snapshot writer becomes a registerable, lag-gated interface any
// number of observers can implement.
package observer

import "github.com/bioshell-go/bioshell/internal/system"

// Observer receives the System once every LagTime outer cycles.
type Observer interface {
	// LagTime returns how many outer cycles elapse between calls to Observe.
	LagTime() int
	// Observe is called with the current cycle count when cycle % LagTime() == 0.
	Observe(sys *system.System, cycle int)
	// Close flushes and releases any held resources (spec.md §5: file
	// handles held by observers must be released deterministically).
	Close() error
}

// Dispatch wraps a set of Observers and calls each only on the cycles
// its own lag time selects, per spec.md §4.7.
type Dispatch struct {
	observers []Observer
	calls     int
}

// NewDispatch builds a Dispatch over the given observers.
func NewDispatch(observers ...Observer) *Dispatch {
	return &Dispatch{observers: observers}
}

// Observe is called once per outer cycle; it fans out to every
// registered observer whose lag time divides the call count.
func (d *Dispatch) Observe(sys *system.System, cycle int) {
	for _, o := range d.observers {
		lag := o.LagTime()
		if lag <= 0 {
			lag = 1
		}
		if d.calls%lag == 0 {
			o.Observe(sys, cycle)
		}
	}
	d.calls++
}

// Close closes every registered observer, collecting (not stopping
// on) the first error so every handle still gets a chance to flush.
func (d *Dispatch) Close() error {
	var first error
	for _, o := range d.observers {
		if err := o.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
