// Package world ties one heightfield, one terrain generator and one erosion
// simulator into a session that front ends drive frame by frame.
package world

import (
	"context"
	"fmt"

	"github.com/ricardoprins/TerrainErosion/internal/core"
	"github.com/ricardoprins/TerrainErosion/internal/erosion"
	_ "github.com/ricardoprins/TerrainErosion/internal/gens/simplex"
	_ "github.com/ricardoprins/TerrainErosion/internal/gens/voss"
)

// World is a single terrain session. It is not safe for concurrent use.
type World struct {
	cfg  Config
	grid *core.Heightfield
	gen  core.Generator
	sim  *erosion.Simulator
	rng  *core.RNG

	// baseline holds the raw tile as generated, before any erosion.
	baseline *core.Heightfield

	worldX, worldY int
	steps          int
}

// New builds a session and generates the configured tile.
func New(cfg Config) (*World, error) {
	factory, ok := core.Generators()[cfg.Generator]
	if !ok {
		return nil, fmt.Errorf("%w: unknown generator %q (have %v)", core.ErrInvalidConfiguration, cfg.Generator, core.GeneratorNames())
	}
	if cfg.Iterations < 0 {
		return nil, fmt.Errorf("%w: negative iterations %d", core.ErrInvalidConfiguration, cfg.Iterations)
	}
	grid, err := core.NewHeightfield(cfg.Size)
	if err != nil {
		return nil, err
	}
	gen, err := factory(grid, cfg.GenOptions)
	if err != nil {
		return nil, fmt.Errorf("generator %s: %w", cfg.Generator, err)
	}
	sim, err := erosion.New(grid, cfg.Erosion)
	if err != nil {
		return nil, err
	}
	w := &World{
		cfg:      cfg,
		grid:     grid,
		baseline: grid.Clone(),
		gen:      gen,
		sim:      sim,
		rng:      core.NewRNG(cfg.Seed),
	}
	if err := w.Reset(cfg.WorldX, cfg.WorldY); err != nil {
		return nil, err
	}
	return w, nil
}

// Name returns the generator driving the session.
func (w *World) Name() string { return w.gen.Name() }

// Size returns the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.Size(), H: w.grid.Size()} }

// Heightfield exposes the current terrain read-only.
func (w *World) Heightfield() core.HeightReader { return w.grid }

// Baseline exposes the tile as generated by the last reset.
func (w *World) Baseline() core.HeightReader { return w.baseline }

// Stats summarizes the current terrain.
func (w *World) Stats() core.Stats { return w.grid.Stats() }

// Simulator returns the erosion simulator.
func (w *World) Simulator() *erosion.Simulator { return w.sim }

// Coords returns the world tile currently loaded.
func (w *World) Coords() (int, int) { return w.worldX, w.worldY }

// Steps returns how many Step calls ran since the last reset.
func (w *World) Steps() int { return w.steps }

// Iterations returns the droplets simulated per Step.
func (w *World) Iterations() int { return w.cfg.Iterations }

// Reset regenerates tile (worldX, worldY) and prepares the erosion brush.
func (w *World) Reset(worldX, worldY int) error {
	w.worldX, w.worldY = worldX, worldY
	w.gen.Generate(worldX, worldY)
	if err := w.baseline.CopyFrom(w.grid); err != nil {
		return err
	}
	w.steps = 0
	return w.sim.Erode(0)
}

// ResetRandom jumps to a random tile drawn from the session RNG.
func (w *World) ResetRandom() error {
	x := w.rng.IntRange(-RandomTileSpan, RandomTileSpan)
	y := w.rng.IntRange(-RandomTileSpan, RandomTileSpan)
	return w.Reset(x, y)
}

// Step erodes the configured number of droplets.
func (w *World) Step() error {
	if err := w.sim.Erode(w.cfg.Iterations); err != nil {
		return err
	}
	w.steps++
	return nil
}

// StepContext erodes the configured number of droplets in batches, stopping
// early once ctx is done. A cancelled step still counts when any droplet ran.
func (w *World) StepContext(ctx context.Context, batch int) error {
	done, err := w.sim.ErodeContext(ctx, w.cfg.Iterations, batch)
	if done > 0 {
		w.steps++
	}
	return err
}

// Change summarizes how far erosion has moved the terrain away from the raw
// tile.
type Change struct {
	MaxCut  float32
	MaxFill float32
	Net     float64
	Moved   int
}

// Change compares the current terrain with the baseline.
func (w *World) Change() Change {
	var c Change
	base := w.baseline.Cells()
	for i, h := range w.grid.Cells() {
		d := h - base[i]
		if d == 0 {
			continue
		}
		c.Moved++
		c.Net += float64(d)
		if -d > c.MaxCut {
			c.MaxCut = -d
		}
		if d > c.MaxFill {
			c.MaxFill = d
		}
	}
	return c
}
