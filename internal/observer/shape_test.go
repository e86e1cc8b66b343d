package observer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioshell-go/bioshell/internal/coords"
	"github.com/bioshell-go/bioshell/internal/neighbor"
	"github.com/bioshell-go/bioshell/internal/system"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

func threeBeadChain(t *testing.T) *system.System {
	t.Helper()
	c := coords.New(3, 100)
	require.NoError(t, c.SetSize(3))
	c.Set(0, vecmath.NewVec3(0, 0, 0))
	c.Set(1, vecmath.NewVec3(1, 0, 0))
	c.Set(2, vecmath.NewVec3(2, 0, 0))
	require.NoError(t, c.SetChains([]coords.ChainRange{{Start: 0, End: 3}}))
	return system.New(c, neighbor.AllowAll{}, 1.0, 0.5)
}

func TestFormatREndSquaredMatchesDirectComputation(t *testing.T) {
	sys := threeBeadChain(t)
	line := FormatREndSquared(sys, 7)
	assert.True(t, strings.HasPrefix(line, "7 "))
	assert.Contains(t, line, "4.000000") // (2-0)^2
}

func TestFormatGyrationSquaredMatchesDirectComputation(t *testing.T) {
	sys := threeBeadChain(t)
	line := FormatGyrationSquared(sys, 0)
	// centroid at x=1; squared deviations are 1, 0, 1 -> mean 2/3
	assert.Contains(t, line, "0.666667")
}
