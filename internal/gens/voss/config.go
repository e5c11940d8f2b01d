package voss

import (
	"fmt"
	"strconv"

	"github.com/ricardoprins/TerrainErosion/internal/core"

	"go.uber.org/multierr"
)

// Config controls the lattice size and the displacement constants.
type Config struct {
	Size int

	// Roughness sets how fast the displacement amplitude decays per halving.
	Roughness float64
	// Amplitude scales each normal perturbation before rounding to the lattice.
	Amplitude float64

	// Heights are lattice/HeightScale + HeightOffset.
	HeightScale  float64
	HeightOffset float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:         129,
		Roughness:    2.0,
		Amplitude:    2000.0,
		HeightScale:  150.0,
		HeightOffset: 20.0,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["roughness"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Roughness = parsed
		}
	}
	if v, ok := cfg["amplitude"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Amplitude = parsed
		}
	}
	if v, ok := cfg["height_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed != 0 {
			c.HeightScale = parsed
		}
	}
	if v, ok := cfg["height_offset"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.HeightOffset = parsed
		}
	}
	return c
}

// Validate reports every precondition the configuration violates.
func (c Config) Validate() error {
	var err error
	if c.Size < 3 {
		err = multierr.Append(err, fmt.Errorf("%w: size %d, need at least 3", core.ErrInvalidConfiguration, c.Size))
	} else if !IsPowerOfTwoPlusOne(c.Size) {
		err = multierr.Append(err, fmt.Errorf("%w: size %d is not 2^k+1", core.ErrInvalidConfiguration, c.Size))
	}
	if c.Roughness < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: negative roughness %g", core.ErrInvalidConfiguration, c.Roughness))
	}
	if c.Amplitude < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: negative amplitude %g", core.ErrInvalidConfiguration, c.Amplitude))
	}
	if c.HeightScale == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: zero height scale", core.ErrInvalidConfiguration))
	}
	return err
}

// IsPowerOfTwoPlusOne reports whether n-1 is a positive power of two.
func IsPowerOfTwoPlusOne(n int) bool {
	m := n - 1
	return m > 0 && m&(m-1) == 0
}
