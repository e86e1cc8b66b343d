// Package replica runs independent Sampler replicas (spec.md §5:
// "independent replicas on different threads, each owns a full
// System + Sampler + RNG... each replica MUST hold an independent RNG
// and MUST NOT share mutable state"). Replicas communicate only
// through a bounded channel carrying finished-run summaries to
// RunAll, which collects them into the slice it returns.
//
// Grounded on abondrn-poly/bebop-poly's shared blake3 dependency for
// deterministic seed derivation, and ehrlich-b-wingthing's use of
// google/uuid for stable run identifiers.
package replica

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"lukechampine.com/blake3"

	"github.com/bioshell-go/bioshell/internal/bioshelllog"
	"github.com/bioshell-go/bioshell/internal/sampler"
)

// DeriveSeed computes a per-replica RNG seed from a master seed and
// replica index via blake3(masterSeed || index), so replicas sharing a
// master seed never collide or correlate (spec.md §9: "every stochastic
// component takes an RNG by reference; no thread-local RNG in the
// core").
func DeriveSeed(masterSeed int64, index int) int64 {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(masterSeed))
	binary.BigEndian.PutUint64(buf[8:16], uint64(index))
	digest := blake3.Sum256(buf[:])
	return int64(binary.BigEndian.Uint64(digest[:8]))
}

// Summary is one replica's finished-run report, the only thing carried
// across the replica/aggregator boundary.
type Summary struct {
	RunID          string
	ReplicaIndex   int
	AcceptanceRate map[string]float64
}

// Runner owns one replica's Sampler and RNG, fully isolated from every
// other replica (spec.md §5).
type Runner struct {
	RunID   uuid.UUID
	Index   int
	Sampler *sampler.Sampler
	RNG     *rand.Rand

	MoverNames []string
}

// NewRunner builds a Sampler wrapper whose RNG is derived independently
// of every other replica sharing masterSeed. Movers must still be
// registered on Runner.Sampler by the caller before Run is invoked.
func NewRunner(masterSeed int64, index int, build func(rng *rand.Rand) *sampler.Sampler, moverNames []string) *Runner {
	seed := DeriveSeed(masterSeed, index)
	rng := rand.New(rand.NewSource(seed))
	return &Runner{
		RunID:      uuid.New(),
		Index:      index,
		Sampler:    build(rng),
		RNG:        rng,
		MoverNames: moverNames,
	}
}

// Run executes inner*outer sweeps on this replica and returns its summary.
func (r *Runner) Run(inner, outer int, observers []sampler.Observer) Summary {
	r.Sampler.RunSimulation(inner, outer, observers)
	rates := make(map[string]float64, len(r.MoverNames))
	for _, name := range r.MoverNames {
		rates[name] = r.Sampler.AcceptanceRate(name)
	}
	bioshelllog.Logger().WithField("replica", r.Index).WithField("run_id", r.RunID).Info("replica finished")
	return Summary{RunID: r.RunID.String(), ReplicaIndex: r.Index, AcceptanceRate: rates}
}

// RunAll launches n independent replicas built by newRunner(index),
// each running inner*outer sweeps, and collects their summaries
// through a bounded channel (capacity n) rather than shared mutable
// state (spec.md §5). ctx cancellation stops collection early and
// returns the summaries received so far together with the context
// error; summaries not yet received are dropped.
func RunAll(ctx context.Context, n int, newRunner func(index int) *Runner, inner, outer int, observersFor func(index int) []sampler.Observer) ([]Summary, error) {
	results := make(chan Summary, n)

	for i := 0; i < n; i++ {
		go func(idx int) {
			runner := newRunner(idx)
			results <- runner.Run(inner, outer, observersFor(idx))
		}(i)
	}

	summaries := make([]Summary, 0, n)
	for i := 0; i < n; i++ {
		select {
		case s := <-results:
			summaries = append(summaries, s)
		case <-ctx.Done():
			return summaries, fmt.Errorf("replica: %w", ctx.Err())
		}
	}
	return summaries, nil
}
