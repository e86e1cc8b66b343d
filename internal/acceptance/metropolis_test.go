package acceptance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlwaysAcceptsNonIncreasingEnergy(t *testing.T) {
	m := NewMetropolis(1.0, 1)
	assert.True(t, m.Check(5.0, 5.0))
	assert.True(t, m.Check(5.0, 3.0))
}

func TestLowTemperatureRejectsEnergyIncrease(t *testing.T) {
	m := NewMetropolis(1e-9, 42)
	accepted := 0
	for i := 0; i < 1000; i++ {
		if m.Check(0.0, 1.0) {
			accepted++
		}
	}
	assert.Less(t, accepted, 10)
}

func TestZeroTemperatureNeverAcceptsIncrease(t *testing.T) {
	m := NewMetropolis(0, 1)
	assert.False(t, m.Check(0.0, 0.1))
	assert.True(t, m.Check(0.0, 0.0))
}

func TestSetTemperatureAffectsAcceptance(t *testing.T) {
	m := NewMetropolis(1e-9, 7)
	m.SetTemperature(100.0)
	accepted := 0
	for i := 0; i < 200; i++ {
		if m.Check(0.0, 1.0) {
			accepted++
		}
	}
	assert.Greater(t, accepted, 50)
}
