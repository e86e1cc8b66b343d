package replica

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioshell-go/bioshell/internal/acceptance"
	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/energy"
	"github.com/bioshell-go/bioshell/internal/movers"
	"github.com/bioshell-go/bioshell/internal/neighbor"
	"github.com/bioshell-go/bioshell/internal/sampler"
	"github.com/bioshell-go/bioshell/internal/system"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

func TestDeriveSeedVariesByIndexAndIsDeterministic(t *testing.T) {
	a := DeriveSeed(42, 0)
	b := DeriveSeed(42, 1)
	c := DeriveSeed(42, 0)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
}

func buildTinySystem(t *testing.T) *system.System {
	t.Helper()
	c := coords.New(20, 20)
	require.NoError(t, c.SetSize(5))
	for i := 0; i < 5; i++ {
		c.Set(i, vecmath.NewVec3(float64(i), 0, 0))
	}
	require.NoError(t, c.SetChains([]coords.ChainRange{{Start: 0, End: 5}}))
	sys := system.New(c, neighbor.ExcludeBondedWithinChain{K: 1}, 2.0, 0.5)
	sys.Neighbors.UpdateAll()
	return sys
}

func TestRunAllCollectsOneSummaryPerReplica(t *testing.T) {
	const n = 3
	newRunner := func(idx int) *Runner {
		sys := buildTinySystem(t)
		e := energy.NewTotal(energy.HarmonicBond{K: 1, D0: 1, W: 1})
		acc := acceptance.NewMetropolis(1.0, 1)
		names := []string{"SingleAtom"}
		return NewRunner(7, idx, func(rng *rand.Rand) *sampler.Sampler {
			s := sampler.New(sys, e, acc, rng)
			s.Register(movers.NewSingleAtom(0.1, 0.01, 1.0), 2)
			return s
		}, names)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	summaries, err := RunAll(ctx, n, newRunner, 2, 2, func(int) []sampler.Observer { return nil })
	require.NoError(t, err)
	require.Len(t, summaries, n)

	seen := make(map[int]bool)
	for _, s := range summaries {
		assert.NotEmpty(t, s.RunID)
		seen[s.ReplicaIndex] = true
	}
	assert.Len(t, seen, n)
}
