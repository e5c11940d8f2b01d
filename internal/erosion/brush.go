package erosion

import "math"

// Brush holds, for every grid cell, the neighbouring node indices within the
// erosion radius and their normalized cone weights.
type Brush struct {
	size   int
	radius int

	start   []int32
	indices []int32
	weights []float32
}

type brushOffset struct {
	dx, dy int
	weight float64
}

// BuildBrush precomputes the erosion brush for a square grid.
//
// Cells whose footprint fits inside the grid share one normalized kernel;
// cells near a border get their own clipped, renormalized footprint.
func BuildBrush(size, radius int) (*Brush, error) {
	if err := validateRadius(size, radius); err != nil {
		return nil, err
	}

	kernel := coneKernel(radius)
	var kernelSum float64
	for _, k := range kernel {
		kernelSum += k.weight
	}
	full := make([]float32, len(kernel))
	for i, k := range kernel {
		full[i] = float32(k.weight / kernelSum)
	}

	reach := radius - 1
	cells := size * size
	clipIdx := make([]int32, 0, len(kernel))
	clipW := make([]float64, 0, len(kernel))
	b := &Brush{
		size:    size,
		radius:  radius,
		start:   make([]int32, cells+1),
		indices: make([]int32, 0, cells*len(kernel)),
		weights: make([]float32, 0, cells*len(kernel)),
	}
	for i := 0; i < cells; i++ {
		cx, cy := i%size, i/size
		b.start[i] = int32(len(b.indices))

		if cx >= reach && cx+reach < size && cy >= reach && cy+reach < size {
			for j, k := range kernel {
				b.indices = append(b.indices, int32((cy+k.dy)*size+cx+k.dx))
				b.weights = append(b.weights, full[j])
			}
			continue
		}

		clipIdx, clipW = clipIdx[:0], clipW[:0]
		var sum float64
		for _, k := range kernel {
			x, y := cx+k.dx, cy+k.dy
			if x < 0 || x >= size || y < 0 || y >= size {
				continue
			}
			clipIdx = append(clipIdx, int32(y*size+x))
			clipW = append(clipW, k.weight)
			sum += k.weight
		}
		b.indices = append(b.indices, clipIdx...)
		for _, w := range clipW {
			b.weights = append(b.weights, float32(w/sum))
		}
	}
	b.start[cells] = int32(len(b.indices))
	return b, nil
}

// coneKernel lists every offset strictly inside the radius with weight
// 1 - distance/radius.
func coneKernel(radius int) []brushOffset {
	var out []brushOffset
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := dx*dx + dy*dy
			if d2 >= r2 {
				continue
			}
			w := 1 - math.Sqrt(float64(d2))/float64(radius)
			out = append(out, brushOffset{dx: dx, dy: dy, weight: w})
		}
	}
	return out
}

// Cell returns the node indices and weights for the cell at linear index i.
// The slices alias the brush and must not be modified.
func (b *Brush) Cell(i int) ([]int32, []float32) {
	lo, hi := b.start[i], b.start[i+1]
	return b.indices[lo:hi], b.weights[lo:hi]
}

// Size returns the grid side the brush was built for.
func (b *Brush) Size() int { return b.size }

// Radius returns the brush radius.
func (b *Brush) Radius() int { return b.radius }

// Len returns the total number of (index, weight) entries.
func (b *Brush) Len() int { return len(b.indices) }
