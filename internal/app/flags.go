// Package app holds the command-line configuration shared by the headless
// commands.
package app

import (
	"flag"
	"strconv"
	"strings"

	"github.com/ricardoprins/TerrainErosion/internal/world"
)

// KVList collects repeatable key=value flag values.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map. Malformed entries are skipped and later
// entries win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

// Config represents the session flags common to the commands.
type Config struct {
	Generator  string
	Size       int
	Iterations int
	WorldX     int
	WorldY     int
	Seed       int64

	Set KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := world.DefaultConfig()
	return &Config{
		Generator:  def.Generator,
		Size:       def.Size,
		Iterations: def.Iterations,
		Seed:       def.Seed,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Generator, "gen", c.Generator, "terrain generator")
	fs.IntVar(&c.Size, "size", c.Size, "heightfield side length (2^k+1)")
	fs.IntVar(&c.Iterations, "iterations", c.Iterations, "droplets per step")
	fs.IntVar(&c.WorldX, "x", c.WorldX, "world tile x")
	fs.IntVar(&c.WorldY, "y", c.WorldY, "world tile y")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random tile selection")
	fs.Var(&c.Set, "set", "session override in key=value form (repeatable)")
}

// WorldConfig merges the flags with the -set overrides. Overrides win.
func (c *Config) WorldConfig() world.Config {
	m := map[string]string{
		"generator":  c.Generator,
		"size":       strconv.Itoa(c.Size),
		"iterations": strconv.Itoa(c.Iterations),
		"world_x":    strconv.Itoa(c.WorldX),
		"world_y":    strconv.Itoa(c.WorldY),
		"seed":       strconv.FormatInt(c.Seed, 10),
	}
	for k, v := range c.Set.Map() {
		m[k] = v
	}
	return world.FromMap(m)
}
