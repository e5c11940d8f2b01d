package erosion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Termination says why a droplet lifecycle ended.
type Termination int

const (
	// MaxSteps means the droplet used its whole lifetime.
	MaxSteps Termination = iota
	// ZeroVelocity means the flow direction vanished on flat ground.
	ZeroVelocity
	// OutOfBounds means the droplet left the sampling region.
	OutOfBounds
)

func (t Termination) String() string {
	switch t {
	case MaxSteps:
		return "max-steps"
	case ZeroVelocity:
		return "zero-velocity"
	case OutOfBounds:
		return "out-of-bounds"
	default:
		return "unknown"
	}
}

// DropletResult describes one finished droplet lifecycle.
type DropletResult struct {
	Steps       int
	Termination Termination

	// Sediment is the mass still carried when the droplet stopped.
	Sediment  float32
	Eroded    float32
	Deposited float32
}

// simulate runs one droplet from start until it terminates, mutating the grid.
// start must lie inside [0, size-1) on both axes.
func (s *Simulator) simulate(start mgl32.Vec2) DropletResult {
	p := s.params
	size := s.grid.Size()
	limit := float32(size - 1)
	cells := s.grid.Cells()

	pos := start
	var dir mgl32.Vec2
	speed := p.InitialSpeed
	water := p.InitialWater
	var sediment float32

	res := DropletResult{Termination: MaxSteps}
	for step := 0; step < p.MaxDropletLifetime; step++ {
		res.Steps = step + 1

		nodeX, nodeY := int(pos.X()), int(pos.Y())
		cell := nodeY*size + nodeX
		// offset inside the cell: (0,0) at the NW node, (1,1) at the SE node
		offX := pos.X() - float32(nodeX)
		offY := pos.Y() - float32(nodeY)

		height, gx, gy := s.grid.Sample(pos.X(), pos.Y())

		// Move one unit regardless of speed.
		dir = dir.Mul(p.Inertia).Sub(mgl32.Vec2{gx, gy}.Mul(1 - p.Inertia))
		if l := dir.Len(); l != 0 {
			dir = mgl32.Vec2{dir.X() / l, dir.Y() / l}
		}
		pos = pos.Add(dir)

		if dir.X() == 0 && dir.Y() == 0 {
			res.Termination = ZeroVelocity
			break
		}
		if pos.X() < 0 || pos.X() >= limit || pos.Y() < 0 || pos.Y() >= limit {
			res.Termination = OutOfBounds
			break
		}

		newHeight, _, _ := s.grid.Sample(pos.X(), pos.Y())
		deltaHeight := newHeight - height

		// Higher when moving fast down a slope with lots of water.
		capacity := math32.Max(-deltaHeight*speed*water*p.SedimentCapacityFactor, p.MinSedimentCapacity)

		if sediment > capacity || deltaHeight > 0 {
			// Uphill: fill the pit behind up to the new height. Otherwise drop
			// a fraction of the excess.
			var amount float32
			if deltaHeight > 0 {
				amount = math32.Min(deltaHeight, sediment)
			} else {
				amount = (sediment - capacity) * p.DepositSpeed
			}
			sediment -= amount
			res.Deposited += amount

			// Deposition stays on the four cell nodes so small pits fill precisely.
			cells[cell] += amount * (1 - offX) * (1 - offY)
			cells[cell+1] += amount * offX * (1 - offY)
			cells[cell+size] += amount * (1 - offX) * offY
			cells[cell+size+1] += amount * offX * offY
		} else {
			// Never dig deeper than the drop just taken.
			amount := math32.Min((capacity-sediment)*p.ErodeSpeed, -deltaHeight)

			indices, weights := s.brush.Cell(cell)
			for j, node := range indices {
				// Nodes at or below zero give nothing.
				taken := math32.Max(0, math32.Min(cells[node], amount*weights[j]))
				cells[node] -= taken
				sediment += taken
				res.Eroded += taken
			}
		}

		speed = speed*speed + deltaHeight*p.Gravity
		if speed < 0 {
			speed = 0
		} else {
			speed = math32.Sqrt(speed)
		}
		water *= 1 - p.EvaporateSpeed
	}
	res.Sediment = sediment
	return res
}
