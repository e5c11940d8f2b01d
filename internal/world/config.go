package world

import (
	"strconv"
	"strings"

	"github.com/ricardoprins/TerrainErosion/internal/erosion"
)

// Iterations slider bounds and the per-step default.
const (
	MinIterations     = 0
	MaxIterations     = 5000
	InitialIterations = 500
	IterationsStep    = 100
)

// RandomTileSpan bounds ResetRandom: coordinates are drawn from
// [-RandomTileSpan, RandomTileSpan).
const RandomTileSpan = 5000

// genPrefix marks keys forwarded to the generator factory.
const genPrefix = "gen."

// Config controls a terrain session.
type Config struct {
	Generator  string
	Size       int
	Iterations int

	WorldX int
	WorldY int

	// Seed drives ResetRandom tile selection.
	Seed int64

	Erosion erosion.Config
	// GenOptions are handed to the generator factory as-is.
	GenOptions map[string]string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Generator:  "voss",
		Size:       129,
		Iterations: InitialIterations,
		Seed:       1337,
		Erosion:    erosion.DefaultConfig(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Keys prefixed with "gen." are forwarded to the generator without the prefix;
// erosion keys are parsed by erosion.FromMap.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["generator"]; ok && v != "" {
		c.Generator = v
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Iterations = parsed
		}
	}
	if v, ok := cfg["world_x"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.WorldX = parsed
		}
	}
	if v, ok := cfg["world_y"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.WorldY = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	c.Erosion = erosion.FromMap(cfg)
	for key, v := range cfg {
		if name, ok := strings.CutPrefix(key, genPrefix); ok && name != "" {
			if c.GenOptions == nil {
				c.GenOptions = map[string]string{}
			}
			c.GenOptions[name] = v
		}
	}
	return c
}
