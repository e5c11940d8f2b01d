package erosion

import (
	"fmt"
	"strconv"

	"github.com/ricardoprins/TerrainErosion/internal/core"

	"go.uber.org/multierr"
)

// Params holds the droplet constants.
type Params struct {
	ErodeSpeed     float32
	DepositSpeed   float32
	EvaporateSpeed float32
	Gravity        float32

	MaxDropletLifetime int
	InitialSpeed       float32
	InitialWater       float32

	// Inertia of 0 turns a droplet straight downhill, 1 never turns it.
	Inertia float32

	// SedimentCapacityFactor multiplies how much sediment a droplet can carry.
	SedimentCapacityFactor float32
	// MinSedimentCapacity keeps capacity away from zero on flat ground.
	MinSedimentCapacity float32
}

// Config controls the erosion brush radius and the spawn source seed.
type Config struct {
	Radius int
	Seed   int64

	Params Params
}

// Radius slider bounds used by interactive front ends.
const (
	MinRadius     = 2
	MaxRadius     = 8
	InitialRadius = 3
)

// DefaultParams returns the standard droplet constants.
func DefaultParams() Params {
	return Params{
		ErodeSpeed:             0.3,
		DepositSpeed:           0.3,
		EvaporateSpeed:         0.01,
		Gravity:                4.0,
		MaxDropletLifetime:     30,
		InitialSpeed:           1.0,
		InitialWater:           1.0,
		Inertia:                0.05,
		SedimentCapacityFactor: 4.0,
		MinSedimentCapacity:    0.01,
	}
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Radius: InitialRadius,
		Seed:   1337,
		Params: DefaultParams(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Radius = parsed
		}
	}
	if v, ok := cfg["erosion_seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	parseUnit := func(key string, dst *float32) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 && parsed <= 1 {
				*dst = float32(parsed)
			}
		}
	}
	parsePositive := func(key string, dst *float32) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
				*dst = float32(parsed)
			}
		}
	}
	parseUnit("erode_speed", &c.Params.ErodeSpeed)
	parseUnit("deposit_speed", &c.Params.DepositSpeed)
	parseUnit("evaporate_speed", &c.Params.EvaporateSpeed)
	parseUnit("inertia", &c.Params.Inertia)
	parsePositive("gravity", &c.Params.Gravity)
	parsePositive("initial_speed", &c.Params.InitialSpeed)
	parsePositive("initial_water", &c.Params.InitialWater)
	parsePositive("sediment_capacity_factor", &c.Params.SedimentCapacityFactor)
	parsePositive("min_sediment_capacity", &c.Params.MinSedimentCapacity)
	if v, ok := cfg["max_droplet_lifetime"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.MaxDropletLifetime = parsed
		}
	}
	return c
}

// Validate reports every constant outside the range the droplet model is
// defined for.
func (p Params) Validate() error {
	var err error
	unit := func(name string, v float32) {
		if !(v >= 0 && v <= 1) {
			err = multierr.Append(err, fmt.Errorf("%w: %s %g outside [0,1]", core.ErrInvalidConfiguration, name, v))
		}
	}
	nonNegative := func(name string, v float32) {
		if !(v >= 0) {
			err = multierr.Append(err, fmt.Errorf("%w: negative %s %g", core.ErrInvalidConfiguration, name, v))
		}
	}
	unit("erode speed", p.ErodeSpeed)
	unit("deposit speed", p.DepositSpeed)
	unit("evaporate speed", p.EvaporateSpeed)
	unit("inertia", p.Inertia)
	nonNegative("gravity", p.Gravity)
	nonNegative("initial speed", p.InitialSpeed)
	nonNegative("initial water", p.InitialWater)
	nonNegative("sediment capacity factor", p.SedimentCapacityFactor)
	nonNegative("min sediment capacity", p.MinSedimentCapacity)
	if p.MaxDropletLifetime <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: droplet lifetime %d", core.ErrInvalidConfiguration, p.MaxDropletLifetime))
	}
	return err
}

// Validate checks the radius against a grid of the given size along with the
// droplet constants.
func (c Config) Validate(size int) error {
	return multierr.Append(validateRadius(size, c.Radius), c.Params.Validate())
}

func validateRadius(size, radius int) error {
	if size < 3 {
		return fmt.Errorf("%w: grid size %d", core.ErrInvalidConfiguration, size)
	}
	if radius <= 0 || 2*radius >= size {
		return fmt.Errorf("%w: erosion radius %d must be in (0, %d/2)", core.ErrInvalidConfiguration, radius, size)
	}
	return nil
}
