// Command bioshell-diagnose loads a trajectory frame, recomputes its
// total energy from scratch, and checks the neighbor-list and
// delta-energy invariants spec.md §8 calls universal, exiting non-zero
// on any violation (spec.md §7's user-visible failure contract).
//
// Grounded on the teacher's backend/cmd/diagnostic, which loaded a
// built structure and ran targeted numerical diagnostics (gradient,
// LBFGS state) rather than trusting the pipeline blindly; here the
// targets are the neighbor list and the delta-energy contract instead
// of an optimizer's internal state.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/energy"
	"github.com/bioshell-go/bioshell/internal/neighbor"
	"github.com/bioshell-go/bioshell/internal/pdbio"
	"github.com/bioshell-go/bioshell/internal/system"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

var (
	inPath    string
	frameNum  int
	tolerance float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bioshell-diagnose",
		Short: "Recompute energy and check neighbor-list/delta-energy invariants for a trajectory frame",
		RunE:  run,
	}
	rootCmd.Flags().StringVarP(&inPath, "in", "i", "", "input trajectory file (required)")
	rootCmd.Flags().IntVar(&frameNum, "frame", 0, "zero-based frame index to diagnose")
	rootCmd.Flags().Float64Var(&tolerance, "tolerance", 1e-6, "maximum tolerated mismatch between delta and full-recompute energy")
	_ = rootCmd.MarkFlagRequired("in")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("bioshell-diagnose: %w", err)
	}
	defer f.Close()

	frames, err := pdbio.ParseTrajectory(f)
	if err != nil {
		return err
	}
	if frameNum < 0 || frameNum >= len(frames) {
		return fmt.Errorf("bioshell-diagnose: frame %d out of range (trajectory has %d frames)", frameNum, len(frames))
	}
	frame := frames[frameNum]
	if len(frame.Atoms) < 2 {
		return fmt.Errorf("bioshell-diagnose: frame has too few atoms to diagnose")
	}

	sys := buildSystemFromFrame(frame)
	e := energy.NewTotal(
		energy.HarmonicBond{K: 20.0, D0: 1.0, W: 1.0},
		energy.PairwiseNonBonded{Kernel: energy.ExcludedVolume{RRep: 0.8, Penalty: 50.0}, W: 1.0},
	)

	violations := 0

	fullEnergy := e.Evaluate(sys.Coords, sys.Neighbors)
	fmt.Printf("atoms=%d full_energy=%.6f\n", sys.Coords.Size(), fullEnergy)

	if err := sys.Neighbors.AssertConsistent(); err != nil {
		fmt.Printf("VIOLATION neighbor-list: %v\n", err)
		violations++
	} else {
		fmt.Println("OK neighbor-list consistent")
	}

	rng := rand.New(rand.NewSource(1))
	i := rng.Intn(sys.Coords.Size())
	perturbed := sys.Clone()
	perturbed.Set(i, vecmath.NewVec3(
		sys.Coords.Get(i).X+0.1,
		sys.Coords.Get(i).Y+0.1,
		sys.Coords.Get(i).Z+0.1,
	))

	delta := e.DeltaOverRange(sys.Coords, perturbed, sys.Neighbors, i, i+1)
	perturbedEnergy := e.Evaluate(perturbed, sys.Neighbors)
	mismatch := math.Abs((fullEnergy + delta) - perturbedEnergy)
	if mismatch > tolerance {
		fmt.Printf("VIOLATION delta-energy contract: mismatch=%.9f (tolerance=%.9f)\n", mismatch, tolerance)
		violations++
	} else {
		fmt.Printf("OK delta-energy contract: mismatch=%.9f\n", mismatch)
	}

	if violations > 0 {
		fmt.Printf("%d invariant violation(s) found\n", violations)
		os.Exit(1)
	}
	fmt.Println("all invariants hold")
	return nil
}

// buildSystemFromFrame treats every atom in the frame as one contiguous
// chain, which is sufficient to evaluate the bonded/non-bonded
// invariants this diagnostic checks regardless of the structure's true
// chain topology.
func buildSystemFromFrame(frame pdbio.Frame) *system.System {
	n := len(frame.Atoms)
	maxCoord := 0.0
	for _, a := range frame.Atoms {
		maxCoord = math.Max(maxCoord, math.Max(math.Abs(a.Pos.X), math.Max(math.Abs(a.Pos.Y), math.Abs(a.Pos.Z))))
	}
	boxLen := maxCoord*2 + 10 // generous box; negative coordinates are still wrapped into [0, L) by Set

	c := coords.New(n, boxLen)
	_ = c.SetSize(n)
	for i, a := range frame.Atoms {
		c.Set(i, a.Pos)
	}
	_ = c.SetChains([]coords.ChainRange{{Start: 0, End: n}})

	sys := system.New(c, neighbor.ExcludeBondedWithinChain{K: 1}, 2.5, 0.5)
	sys.Neighbors.UpdateAll()
	return sys
}
