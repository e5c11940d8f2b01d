// Package voss generates raw terrain by recursive midpoint displacement over
// a (2^k+1)-sided lattice, seeded from the world tile coordinates so that
// neighbouring tiles line up along their shared edges.
package voss

import (
	"fmt"
	"math"

	"github.com/ricardoprins/TerrainErosion/internal/core"
)

// Generator fills a heightfield with Voss midpoint-displacement terrain.
type Generator struct {
	cfg  Config
	grid *core.Heightfield
	seq  *core.Sequence

	sideDecay  float64
	innerDecay float64

	lattice *Lattice
}

// New returns a generator writing into grid using the default constants.
// The grid size is not checked against the 2^k+1 precondition.
func New(grid *core.Heightfield) *Generator {
	cfg := DefaultConfig()
	cfg.Size = grid.Size()
	return newGenerator(grid, cfg)
}

// NewWithConfig returns a generator writing into grid after validating cfg.
func NewWithConfig(grid *core.Heightfield, cfg Config) (*Generator, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil heightfield", core.ErrInvalidConfiguration)
	}
	if cfg.Size != grid.Size() {
		return nil, fmt.Errorf("%w: generator size %d does not match heightfield size %d", core.ErrInvalidConfiguration, cfg.Size, grid.Size())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGenerator(grid, cfg), nil
}

func newGenerator(grid *core.Heightfield, cfg Config) *Generator {
	return &Generator{
		cfg:        cfg,
		grid:       grid,
		seq:        core.NewSequence(0),
		sideDecay:  math.Pow(0.5, 2*cfg.Roughness),
		innerDecay: math.Pow(0.5, cfg.Roughness),
	}
}

// Name returns the generator identifier.
func (g *Generator) Name() string { return "voss" }

// Config returns the active configuration.
func (g *Generator) Config() Config { return g.cfg }

// Lattice returns the integer lattice built by the last Generate call.
func (g *Generator) Lattice() *Lattice { return g.lattice }

// Generate rebuilds the terrain for world tile (worldX, worldY) and returns
// the heightfield it wrote into. The result depends only on the grid size,
// the configuration and the coordinates.
func (g *Generator) Generate(worldX, worldY int) *core.Heightfield {
	size := g.cfg.Size
	last := size - 1
	l := newLattice(size)
	l.settle(0, 0, 0)
	l.settle(last, 0, 0)
	l.settle(0, last, 0)
	l.settle(last, last, 0)

	x, y := float64(worldX), float64(worldY)

	// Opposite edges of neighbouring tiles start from the same seed.
	g.seq.Seed(edgeSeed(x, y, 0))
	g.side(l, 0, 0, last, 0, 1)
	g.seq.Seed(edgeSeed(y, x, 0.1))
	g.side(l, 0, 0, 0, last, 1)
	g.seq.Seed(edgeSeed(x+1, y, 0))
	g.side(l, 0, last, last, last, 1)
	g.seq.Seed(edgeSeed(y+1, x, 0.1))
	g.side(l, last, 0, last, last, 1)

	g.interior(l, 0, 0, last, last, 1)

	cells := g.grid.Cells()
	for i, v := range l.data {
		cells[i] = float32(max(0, float64(v)/g.cfg.HeightScale+g.cfg.HeightOffset))
	}
	g.lattice = l
	return g.grid
}

func edgeSeed(major, minor, offset float64) float64 {
	return float64(major*1e-3) + float64(minor*1e-6) + offset
}

// displace returns floor(avg + round(amplitude*N(0, d))) with halves rounded up.
func (g *Generator) displace(avg, d float64) int32 {
	n := float64(g.cfg.Amplitude * g.seq.Normal(0, d))
	return int32(math.Floor(avg + math.Floor(n+0.5)))
}

// side bisects one border edge. Edge midpoints are always assigned.
func (g *Generator) side(l *Lattice, x1, y1, x2, y2 int, d float64) {
	if x1 == x2 {
		if y2-y1 <= 1 {
			return
		}
		y3 := y1 + (y2-y1)/2
		avg := float64(int64(l.Value(x1, y1))+int64(l.Value(x1, y2))) / 2
		l.settle(x1, y3, g.displace(avg, d))

		d *= g.sideDecay
		g.side(l, x1, y1, x2, y3, d)
		g.side(l, x1, y3, x2, y2, d)
		return
	}

	if x2-x1 <= 1 {
		return
	}
	x3 := x1 + (x2-x1)/2
	avg := float64(int64(l.Value(x1, y1))+int64(l.Value(x2, y1))) / 2
	l.settle(x3, y1, g.displace(avg, d))

	d *= g.sideDecay
	g.side(l, x1, y1, x3, y2, d)
	g.side(l, x3, y1, x2, y2, d)
}

// interior fills the centre and edge midpoints of a square whose corners are
// settled, then recurses into its four quadrants. Settled nodes are never
// overwritten.
func (g *Generator) interior(l *Lattice, x1, y1, x2, y2 int, d float64) {
	if x2-x1 <= 1 || y2-y1 <= 1 {
		return
	}
	x3 := x1 + (x2-x1)/2
	y3 := y1 + (y2-y1)/2

	nw := int64(l.Value(x1, y1))
	ne := int64(l.Value(x2, y1))
	sw := int64(l.Value(x1, y2))
	se := int64(l.Value(x2, y2))

	if !l.Settled(x3, y3) {
		l.settle(x3, y3, g.displace(float64(nw+sw+ne+se)/4, d))
	}
	if !l.Settled(x1, y3) {
		l.settle(x1, y3, g.displace(float64(nw+sw)/2, d))
	}
	if !l.Settled(x3, y1) {
		l.settle(x3, y1, g.displace(float64(nw+ne)/2, d))
	}
	if !l.Settled(x2, y3) {
		l.settle(x2, y3, g.displace(float64(ne+se)/2, d))
	}
	if !l.Settled(x3, y2) {
		l.settle(x3, y2, g.displace(float64(sw+se)/2, d))
	}

	d *= g.innerDecay
	g.interior(l, x1, y1, x3, y3, d)
	g.interior(l, x3, y1, x2, y3, d)
	g.interior(l, x3, y3, x2, y2, d)
	g.interior(l, x1, y3, x3, y2, d)
}

func init() {
	core.Register("voss", func(grid *core.Heightfield, cfg map[string]string) (core.Generator, error) {
		c := FromMap(cfg)
		c.Size = grid.Size()
		return NewWithConfig(grid, c)
	})
}
