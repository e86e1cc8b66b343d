package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysYamlOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("temperature: 2.5\nbeads_per_chain: 80\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, cfg.Temperature, 1e-12)
	assert.Equal(t, 80, cfg.BeadsPerChain)
	assert.Equal(t, Default().NumChains, cfg.NumChains) // untouched field keeps its default
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("temperature: [this is not a float\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := Default()
	cfg.Temperature = 3.3
	cfg.OutputPrefix = "run-A"

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEffectiveBoxWidthDerivesFromDensity(t *testing.T) {
	cfg := Default()
	cfg.BeadsPerChain = 10
	cfg.NumChains = 2
	cfg.Density = 0.2
	width := cfg.EffectiveBoxWidth()
	assert.InDelta(t, 4.641588834, width, 1e-6) // cbrt(20/0.2) == cbrt(100)
}

func TestEffectiveBoxWidthFallsBackWhenDensityUnset(t *testing.T) {
	cfg := Default()
	assert.Equal(t, cfg.BoxWidth, cfg.EffectiveBoxWidth())
}
