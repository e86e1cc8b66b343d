// Package config defines the Sampler CLI surface (spec.md §6,
// SPEC_FULL.md §1.2): temperature, pressure, sweep counts, bead/chain
// geometry, and output naming, loaded from an optional YAML file with
// flag-bindable defaults so the binary layer works with zero
// arguments.
//
// Grounded on the teacher-adjacent config style in the pack's
// ehrlich-b-wingthing (internal/config/wing.go): an optional YAML
// file, read with gopkg.in/yaml.v3, that falls back to the Default()
// values when absent rather than erroring.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// SamplerConfig is the full set of knobs a bioshell-sampler run needs.
type SamplerConfig struct {
	Temperature float64 `yaml:"temperature"`
	Pressure    float64 `yaml:"pressure"`

	InnerSweeps int `yaml:"inner_sweeps"`
	OuterCycles int `yaml:"outer_cycles"`

	BeadsPerChain int `yaml:"beads_per_chain"`
	NumChains     int `yaml:"num_chains"`

	BondLength float64 `yaml:"bond_length"`
	BoxWidth   float64 `yaml:"box_width"`
	Density    float64 `yaml:"density,omitempty"` // if set, box_width is derived instead

	Cutoff float64 `yaml:"cutoff"`
	Buffer float64 `yaml:"buffer"`

	Seed         int64  `yaml:"seed"`
	OutputPrefix string `yaml:"output_prefix"`

	AdaptiveTarget float64 `yaml:"adaptive_target"`
	AdaptiveEvery  int     `yaml:"adaptive_every"`
}

// Default returns the configuration bioshell-sampler uses when invoked
// with no flags and no config file (spec.md §6).
func Default() SamplerConfig {
	return SamplerConfig{
		Temperature:    1.0,
		Pressure:       0.0,
		InnerSweeps:    100,
		OuterCycles:    100,
		BeadsPerChain:  50,
		NumChains:      1,
		BondLength:     1.0,
		BoxWidth:       50.0,
		Cutoff:         2.5,
		Buffer:         0.5,
		Seed:           1,
		OutputPrefix:   "bioshell-run",
		AdaptiveTarget: 0.4,
		AdaptiveEvery:  100,
	}
}

// Load reads a YAML config file at path, overlaying it onto Default().
// A missing file is not an error: the defaults are returned as-is,
// matching the optional-config-file behavior spec.md §6 calls for.
func Load(path string) (SamplerConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg SamplerConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

// EffectiveBoxWidth returns BoxWidth, or derives it from Density when
// Density is set (N beads at the configured density fill a cube of
// side (N/density)^(1/3)).
func (c SamplerConfig) EffectiveBoxWidth() float64 {
	if c.Density <= 0 {
		return c.BoxWidth
	}
	n := float64(c.BeadsPerChain * c.NumChains)
	volume := n / c.Density
	return math.Cbrt(volume)
}
