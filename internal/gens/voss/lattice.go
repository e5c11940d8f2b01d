package voss

// Lattice is the integer displacement field built during one Generate call,
// with a parallel mask of nodes that have already been assigned.
type Lattice struct {
	size    int
	data    []int32
	settled []bool
}

func newLattice(size int) *Lattice {
	return &Lattice{size: size, data: make([]int32, size*size), settled: make([]bool, size*size)}
}

// Size returns the side length of the lattice.
func (l *Lattice) Size() int { return l.size }

// Value returns the displacement at (x, y).
func (l *Lattice) Value(x, y int) int32 { return l.data[y*l.size+x] }

// Settled reports whether (x, y) has been assigned.
func (l *Lattice) Settled(x, y int) bool { return l.settled[y*l.size+x] }

// Values exposes the raw displacement values in row-major order.
func (l *Lattice) Values() []int32 { return l.data }

func (l *Lattice) settle(x, y int, v int32) {
	i := y*l.size + x
	l.data[i] = v
	l.settled[i] = true
}
