package core

import "math"

// irwinHallScale is the standard deviation of a sum of ten uniform draws.
var irwinHallScale = math.Sqrt(10.0 / 12.0)

// Sequence is the chaotic scalar generator that drives midpoint displacement.
// Its whole state is one float64, so reseeding it from world coordinates
// reproduces a tile exactly.
type Sequence struct {
	seek float64
}

// NewSequence returns a sequence positioned at seed.
func NewSequence(seed float64) *Sequence {
	return &Sequence{seek: seed}
}

// Seed repositions the sequence.
func (s *Sequence) Seed(v float64) { s.seek = v }

// Seek returns the current state.
func (s *Sequence) Seek() float64 { return s.seek }

// Next advances the map seek = frac(11*seek + pi) and returns the new value
// in [0, 1).
func (s *Sequence) Next() float64 {
	// The conversion forces rounding of the product so the stream does not
	// depend on whether the platform fuses multiply-add.
	v := float64(11*s.seek) + math.Pi
	s.seek = v - math.Floor(v)
	return s.seek
}

// Float64 is Next under the name shared with other random sources.
func (s *Sequence) Float64() float64 { return s.Next() }

// Normal draws an approximately normal value with the given mean whose
// variance is varianceScale.
func (s *Sequence) Normal(mean, varianceScale float64) float64 {
	x := 0.0
	for i := 0; i < 10; i++ {
		x += s.Next()
	}
	return (x-5.0)*math.Sqrt(varianceScale)/irwinHallScale + mean
}
