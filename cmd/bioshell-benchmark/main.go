// Command bioshell-benchmark reports sweep throughput and energy
// evaluation cost for a configurable bead count, sanity-checking the
// O(N²) neighbor rebuild cost spec.md §4.2 calls out.
//
// Grounded on the teacher's backend/cmd/benchmark and benchmark_v2
// harnesses, which timed prediction runs across a curated protein set
// and reported per-case and aggregate timings; this is the same
// shape applied to sampler throughput instead of prediction accuracy.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bioshell-go/bioshell/internal/acceptance"
	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/energy"
	"github.com/bioshell-go/bioshell/internal/movers"
	"github.com/bioshell-go/bioshell/internal/neighbor"
	"github.com/bioshell-go/bioshell/internal/sampler"
	"github.com/bioshell-go/bioshell/internal/system"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

var (
	beadCounts []int
	sweeps     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bioshell-benchmark",
		Short: "Report sweep throughput and energy-evaluation cost across bead counts",
		RunE:  run,
	}
	rootCmd.Flags().IntSliceVar(&beadCounts, "beads", []int{50, 200, 800}, "bead counts to benchmark")
	rootCmd.Flags().IntVar(&sweeps, "sweeps", 200, "sweeps timed per bead count")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// result mirrors one row of the teacher's BenchmarkResult, narrowed to
// throughput metrics instead of structure-quality metrics.
type result struct {
	Beads        int
	SweepsPerSec float64
	EvalsPerSec  float64
}

func run(cmd *cobra.Command, args []string) error {
	fmt.Printf("%8s %16s %16s\n", "beads", "sweeps/sec", "energy-evals/sec")
	results := make([]result, 0, len(beadCounts))
	for _, n := range beadCounts {
		r := benchmarkOne(n, sweeps)
		results = append(results, r)
		fmt.Printf("%8d %16.1f %16.1f\n", r.Beads, r.SweepsPerSec, r.EvalsPerSec)
	}
	return nil
}

func benchmarkOne(beads, sweeps int) result {
	boxLen := float64(beads) // loose chain, one bead per unit length on average
	c := coords.New(beads, boxLen)
	_ = c.SetSize(beads)
	for i := 0; i < beads; i++ {
		c.Set(i, vecmath.NewVec3(float64(i), 0, 0))
	}
	_ = c.SetChains([]coords.ChainRange{{Start: 0, End: beads}})

	sys := system.New(c, neighbor.ExcludeBondedWithinChain{K: 1}, 2.5, 0.5)

	e := energy.NewTotal(
		energy.HarmonicBond{K: 20.0, D0: 1.0, W: 1.0},
		energy.PairwiseNonBonded{Kernel: energy.ExcludedVolume{RRep: 0.8, Penalty: 50.0}, W: 1.0},
	)
	acc := acceptance.NewMetropolis(1.0, 1)
	rng := rand.New(rand.NewSource(1))
	s := sampler.New(sys, e, acc, rng)
	s.Register(movers.NewSingleAtom(0.1, 0.01, 1.0), beads)

	start := time.Now()
	s.MakeSweeps(sweeps)
	sweepElapsed := time.Since(start)

	const evalRounds = 1000
	start = time.Now()
	for i := 0; i < evalRounds; i++ {
		e.Evaluate(sys.Coords, sys.Neighbors)
	}
	evalElapsed := time.Since(start)

	return result{
		Beads:        beads,
		SweepsPerSec: float64(sweeps) / sweepElapsed.Seconds(),
		EvalsPerSec:  float64(evalRounds) / evalElapsed.Seconds(),
	}
}
