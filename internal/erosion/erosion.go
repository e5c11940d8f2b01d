// Package erosion weathers a heightfield by simulating water droplets that
// flow downhill, picking up sediment where they speed up and dropping it
// where they slow down or climb.
package erosion

import (
	"context"
	"fmt"

	"github.com/ricardoprins/TerrainErosion/internal/core"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Source provides uniform values in [0, 1) for droplet spawn positions.
// *core.RNG, *core.Sequence and *rand.Rand all satisfy it.
type Source interface {
	Float64() float64
}

// RunStats aggregates the droplets of one Erode call.
type RunStats struct {
	Droplets     int
	Steps        int
	Eroded       float64
	Deposited    float64
	Terminations [3]int
}

func (r *RunStats) add(res DropletResult) {
	r.Droplets++
	r.Steps += res.Steps
	r.Eroded += float64(res.Eroded)
	r.Deposited += float64(res.Deposited)
	r.Terminations[res.Termination]++
}

// Simulator runs droplet lifecycles against one heightfield. It is not safe
// for concurrent use; droplets are applied strictly in sequence because each
// one reads the terrain left by the previous.
type Simulator struct {
	grid   *core.Heightfield
	params Params
	radius int
	brush  *Brush
	src    Source
	last   RunStats
}

// Option customises a Simulator.
type Option func(*Simulator)

// WithSource replaces the seeded default spawn source.
func WithSource(src Source) Option {
	return func(s *Simulator) {
		if src != nil {
			s.src = src
		}
	}
}

// New returns a simulator eroding grid. The brush is built on the first
// Erode call.
func New(grid *core.Heightfield, cfg Config, opts ...Option) (*Simulator, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil heightfield", core.ErrInvalidConfiguration)
	}
	if err := cfg.Validate(grid.Size()); err != nil {
		return nil, err
	}
	s := &Simulator{
		grid:   grid,
		params: cfg.Params,
		radius: cfg.Radius,
		src:    core.NewRNG(cfg.Seed),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Radius returns the erosion radius.
func (s *Simulator) Radius() int { return s.radius }

// SetErosionRadius changes the radius. The brush is rebuilt before the next
// droplet runs.
func (s *Simulator) SetErosionRadius(radius int) error {
	if err := validateRadius(s.grid.Size(), radius); err != nil {
		return err
	}
	if radius != s.radius {
		s.radius = radius
		s.brush = nil
	}
	return nil
}

// Params returns the droplet constants.
func (s *Simulator) Params() Params { return s.params }

// SetParams replaces the droplet constants.
func (s *Simulator) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	return nil
}

// Brush returns the current brush, or nil if it has not been built for the
// current radius yet.
func (s *Simulator) Brush() *Brush { return s.brush }

// LastRun reports the statistics of the most recent Erode call.
func (s *Simulator) LastRun() RunStats { return s.last }

func (s *Simulator) ensureBrush() error {
	if s.brush != nil && s.brush.Radius() == s.radius && s.brush.Size() == s.grid.Size() {
		return nil
	}
	b, err := BuildBrush(s.grid.Size(), s.radius)
	if err != nil {
		return err
	}
	s.brush = b
	return nil
}

// Erode runs iterations droplets from random spawn points. Zero iterations
// only prepares the brush.
func (s *Simulator) Erode(iterations int) error {
	if iterations < 0 {
		return fmt.Errorf("%w: negative iteration count %d", core.ErrInvalidConfiguration, iterations)
	}
	if err := s.ensureBrush(); err != nil {
		return err
	}
	s.last = RunStats{}
	for i := 0; i < iterations; i++ {
		s.last.add(s.simulate(s.spawn()))
	}
	return nil
}

// ErodeContext runs iterations droplets in batches, stopping between batches
// once ctx is done. It returns the number of droplets simulated.
func (s *Simulator) ErodeContext(ctx context.Context, iterations, batch int) (int, error) {
	if batch <= 0 {
		batch = iterations
	}
	if err := s.Erode(0); err != nil {
		return 0, err
	}
	total := RunStats{}
	done := 0
	for done < iterations {
		if err := ctx.Err(); err != nil {
			s.last = total
			return done, err
		}
		n := min(batch, iterations-done)
		if err := s.Erode(n); err != nil {
			s.last = total
			return done, err
		}
		total.Merge(s.last)
		done += n
	}
	s.last = total
	return done, nil
}

// Merge adds o into r.
func (r *RunStats) Merge(o RunStats) {
	r.Droplets += o.Droplets
	r.Steps += o.Steps
	r.Eroded += o.Eroded
	r.Deposited += o.Deposited
	for i := range r.Terminations {
		r.Terminations[i] += o.Terminations[i]
	}
}

// SimulateDroplet runs a single droplet from (x, y). The position is clamped
// into the valid spawn region.
func (s *Simulator) SimulateDroplet(x, y float32) (DropletResult, error) {
	if err := s.ensureBrush(); err != nil {
		return DropletResult{}, err
	}
	limit := float32(s.grid.Size() - 1)
	return s.simulate(mgl32.Vec2{clampSpawn(x, limit), clampSpawn(y, limit)}), nil
}

func (s *Simulator) spawn() mgl32.Vec2 {
	limit := float32(s.grid.Size() - 1)
	x := float32(s.src.Float64() * float64(limit))
	y := float32(s.src.Float64() * float64(limit))
	return mgl32.Vec2{clampSpawn(x, limit), clampSpawn(y, limit)}
}

// clampSpawn keeps a coordinate in [0, limit). Rounding to float32 can land
// exactly on limit.
func clampSpawn(v, limit float32) float32 {
	if !(v >= 0) {
		return 0
	}
	if v >= limit {
		return math32.Nextafter(limit, 0)
	}
	return v
}
