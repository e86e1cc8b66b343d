package observer

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/neighbor"
	"github.com/bioshell-go/bioshell/internal/system"
)

func trivialSystem(t *testing.T) *system.System {
	t.Helper()
	c := coords.New(3, 100)
	require.NoError(t, c.SetSize(3))
	return system.New(c, neighbor.AllowAll{}, 1.0, 0.5)
}

func TestRunningStatsAccumulatesMeanAndVariance(t *testing.T) {
	rs := NewRunningStats(1, func(sys *system.System) float64 { return float64(sys.Coords.Size()) })
	sys := trivialSystem(t)
	for i := 0; i < 10; i++ {
		rs.Observe(sys, i)
	}
	assert.Equal(t, 10, rs.Count())
	assert.InDelta(t, 3.0, rs.Mean(), 1e-9)
	assert.InDelta(t, 0.0, rs.Variance(), 1e-9)
}

func TestDispatchRespectsLagTime(t *testing.T) {
	calls := 0
	rs := NewRunningStats(3, func(sys *system.System) float64 { calls++; return 1.0 })
	d := NewDispatch(rs)
	sys := trivialSystem(t)

	for cycle := 0; cycle < 9; cycle++ {
		d.Observe(sys, cycle)
	}
	assert.Equal(t, 3, calls)
}

func TestLineWriterFlushesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.txt")
	lw, err := NewLineWriter(path, 1, func(sys *system.System, cycle int) string {
		return "cycle"
	})
	require.NoError(t, err)

	sys := trivialSystem(t)
	lw.Observe(sys, 0)
	lw.Observe(sys, 1)
	require.NoError(t, lw.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lines := 0
	for scanner.Scan() {
		lines++
	}
	assert.Equal(t, 2, lines)
}
