package core

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// HeightReader is the read-only view of a heightfield handed to consumers
// such as renderers.
type HeightReader interface {
	Size() int
	Height(x, y int) float32
}

// Heightfield stores a square grid of float32 heights in row-major order.
type Heightfield struct {
	size int
	data []float32
}

// NewHeightfield allocates a zeroed heightfield with the given side length.
func NewHeightfield(size int) (*Heightfield, error) {
	if size < 3 {
		return nil, fmt.Errorf("%w: heightfield size %d, need at least 3", ErrInvalidConfiguration, size)
	}
	return &Heightfield{size: size, data: make([]float32, size*size)}, nil
}

// Size returns the side length of the grid.
func (g *Heightfield) Size() int { return g.size }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Heightfield) Cells() []float32 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Heightfield) Index(x, y int) int { return y*g.size + x }

// InBounds reports whether (x, y) addresses a node of the grid.
func (g *Heightfield) InBounds(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// Height returns the height at (x, y), or 0 outside the grid.
func (g *Heightfield) Height(x, y int) float32 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.data[y*g.size+x]
}

// SetHeight stores h at (x, y). Writes outside the grid are ignored.
func (g *Heightfield) SetHeight(x, y int, h float32) {
	if !g.InBounds(x, y) {
		return
	}
	g.data[y*g.size+x] = h
}

// Fill sets every node to v.
func (g *Heightfield) Fill(v float32) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns an independent copy of the grid.
func (g *Heightfield) Clone() *Heightfield {
	return &Heightfield{size: g.size, data: append([]float32(nil), g.data...)}
}

// CopyFrom overwrites g with the contents of src. Both grids must share a size.
func (g *Heightfield) CopyFrom(src *Heightfield) error {
	if src.size != g.size {
		return fmt.Errorf("%w: copy %d grid into %d grid", ErrInvalidConfiguration, src.size, g.size)
	}
	copy(g.data, src.data)
	return nil
}

// Sample bilinearly interpolates the height and gradient at the continuous
// position (px, py). The position is clamped so the 2x2 stencil stays inside
// the grid.
func (g *Heightfield) Sample(px, py float32) (height, gx, gy float32) {
	last := float32(g.size - 1)
	px = clamp32(px, 0, last)
	py = clamp32(py, 0, last)

	cx := min(int(px), g.size-2)
	cy := min(int(py), g.size-2)
	// offset inside the cell: (0,0) at the NW node, (1,1) at the SE node
	x := px - float32(cx)
	y := py - float32(cy)

	i := cy*g.size + cx
	nw := g.data[i]
	ne := g.data[i+1]
	sw := g.data[i+g.size]
	se := g.data[i+g.size+1]

	gx = (ne-nw)*(1-y) + (se-sw)*y
	gy = (sw-nw)*(1-x) + (se-ne)*x
	height = nw*(1-x)*(1-y) + ne*x*(1-y) + sw*(1-x)*y + se*x*y
	return height, gx, gy
}

// Stats summarizes the heights currently stored in a grid.
type Stats struct {
	Min, Max  float32
	Mean      float64
	Sum       float64
	NonFinite int
}

// Stats scans the grid. Non-finite values are counted and excluded from the
// other aggregates.
func (g *Heightfield) Stats() Stats {
	s := Stats{Min: math.MaxFloat32, Max: -math.MaxFloat32}
	n := 0
	for _, v := range g.data {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			s.NonFinite++
			continue
		}
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		s.Sum += float64(v)
		n++
	}
	if n > 0 {
		s.Mean = s.Sum / float64(n)
	}
	return s
}

func clamp32(v, lo, hi float32) float32 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
