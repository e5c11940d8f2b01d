// Package simplex is an alternative terrain source built from fractal
// opensimplex noise. Tiles are sampled in world space so neighbours join
// without seams.
package simplex

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ricardoprins/TerrainErosion/internal/core"

	"github.com/ojrac/opensimplex-go"
	"go.uber.org/multierr"
)

// Config controls the noise stack.
type Config struct {
	Size int
	Seed int64

	Octaves     int
	Persistence float64
	// Scale converts lattice units to noise space.
	Scale float64

	Amplitude    float64
	HeightOffset float64
}

// DefaultConfig returns a configuration whose heights cover roughly the same
// band as the midpoint-displacement generator.
func DefaultConfig() Config {
	return Config{
		Size:         129,
		Seed:         1337,
		Octaves:      6,
		Persistence:  0.5,
		Scale:        1.0 / 96,
		Amplitude:    14,
		HeightOffset: 20,
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
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["octaves"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Octaves = parsed
		}
	}
	if v, ok := cfg["persistence"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Persistence = parsed
		}
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Scale = parsed
		}
	}
	if v, ok := cfg["amplitude"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Amplitude = parsed
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
	}
	if c.Octaves <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: octaves %d", core.ErrInvalidConfiguration, c.Octaves))
	}
	if c.Persistence <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: persistence %g", core.ErrInvalidConfiguration, c.Persistence))
	}
	if c.Scale <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: scale %g", core.ErrInvalidConfiguration, c.Scale))
	}
	return err
}

// Generator fills a heightfield with octave-summed simplex noise.
type Generator struct {
	cfg        Config
	grid       *core.Heightfield
	noise      opensimplex.Noise
	amplitudes []float64
	ampSum     float64
}

// New returns a generator writing into grid.
func New(grid *core.Heightfield, cfg Config) (*Generator, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil heightfield", core.ErrInvalidConfiguration)
	}
	cfg.Size = grid.Size()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:        cfg,
		grid:       grid,
		noise:      opensimplex.New(cfg.Seed),
		amplitudes: make([]float64, cfg.Octaves),
	}
	for i := range g.amplitudes {
		g.amplitudes[i] = math.Pow(cfg.Persistence, float64(i))
		g.ampSum += g.amplitudes[i]
	}
	return g, nil
}

// Name returns the generator identifier.
func (g *Generator) Name() string { return "simplex" }

// Eval returns the normalized fractal noise in [-1, 1] at world-space lattice
// coordinates (wx, wy).
func (g *Generator) Eval(wx, wy float64) float64 {
	var sum float64
	for octave, amp := range g.amplitudes {
		freq := float64(int(1) << octave)
		sum += amp * g.noise.Eval2(wx*g.cfg.Scale*freq, wy*g.cfg.Scale*freq)
	}
	return sum / g.ampSum
}

// Generate writes the tile (worldX, worldY) into the heightfield. Adjacent
// tiles share their border nodes.
func (g *Generator) Generate(worldX, worldY int) *core.Heightfield {
	size := g.cfg.Size
	span := size - 1
	ox := float64(worldX * span)
	oy := float64(worldY * span)
	cells := g.grid.Cells()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			h := g.cfg.HeightOffset + g.cfg.Amplitude*g.Eval(ox+float64(x), oy+float64(y))
			if h < 0 {
				h = 0
			}
			cells[y*size+x] = float32(h)
		}
	}
	return g.grid
}

func init() {
	core.Register("simplex", func(grid *core.Heightfield, cfg map[string]string) (core.Generator, error) {
		return New(grid, FromMap(cfg))
	})
}
