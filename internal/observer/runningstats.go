package observer

import (
	"math"

	"github.com/bioshell-go/bioshell/internal/system"
)

// Sample extracts a scalar from the System for a RunningStats observer
// to accumulate (e.g. total energy, radius of gyration via an
// external collaborator).
type Sample func(sys *system.System) float64

// RunningStats accumulates mean and variance of a scalar sample via
// Welford's online algorithm, without retaining individual samples.
//
// gonum/stat's Mean/Variance operate over a materialized []float64;
// a Monte Carlo run of any real length makes that memory-unbounded,
// so this is implemented directly against Welford's recurrence rather
// than reached for gonum/stat — the one deliberate stdlib-only piece
// in this package (see DESIGN.md).
type RunningStats struct {
	Lag    int
	Sample Sample

	count int
	mean  float64
	m2    float64
}

// NewRunningStats builds a RunningStats observer sampling fn every lag cycles.
func NewRunningStats(lag int, fn Sample) *RunningStats {
	return &RunningStats{Lag: lag, Sample: fn}
}

// LagTime implements Observer.
func (r *RunningStats) LagTime() int { return r.Lag }

// Observe implements Observer: folds one new sample into the running
// mean/variance accumulators.
func (r *RunningStats) Observe(sys *system.System, _ int) {
	x := r.Sample(sys)
	r.count++
	delta := x - r.mean
	r.mean += delta / float64(r.count)
	delta2 := x - r.mean
	r.m2 += delta * delta2
}

// Close implements Observer; RunningStats holds no resources to release.
func (r *RunningStats) Close() error { return nil }

// Count returns how many samples have been folded in.
func (r *RunningStats) Count() int { return r.count }

// Mean returns the running mean.
func (r *RunningStats) Mean() float64 { return r.mean }

// Variance returns the running (population) variance.
func (r *RunningStats) Variance() float64 {
	if r.count < 2 {
		return 0
	}
	return r.m2 / float64(r.count)
}

// StdDev returns the running standard deviation.
func (r *RunningStats) StdDev() float64 { return math.Sqrt(r.Variance()) }
