package voss

import (
	"errors"
	"slices"
	"testing"

	"github.com/ricardoprins/TerrainErosion/internal/core"

	"go.uber.org/multierr"
)

func buildGenerator(t *testing.T, size int) *Generator {
	t.Helper()
	grid, err := core.NewHeightfield(size)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Size = size
	gen, err := NewWithConfig(grid, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return gen
}

func TestGenerateKnownLattice(t *testing.T) {
	gen := buildGenerator(t, 9)
	gen.Generate(0, 0)

	want := [][]int32{
		{0, -756, -1570, -1799, -1616, -531, 169, 59, 0},
		{-516, -540, -296, -537, -569, -377, 171, -988, -106},
		{-957, 771, 702, 839, -194, -529, -488, -686, -246},
		{-1244, -1606, 736, -952, 42, -377, -1038, -352, -964},
		{-1616, -922, -602, -751, 811, 566, -362, -1154, -1485},
		{-1432, -328, -1373, -121, -331, -1090, -572, 89, -1487},
		{-661, -532, -587, -79, -868, -198, 181, -187, -1429},
		{-221, -819, 558, -1372, -1367, -790, -1104, -374, -816},
		{0, -613, -1209, -1138, -1485, -1979, -2028, -832, 0},
	}
	l := gen.Lattice()
	for y, row := range want {
		for x, v := range row {
			if got := l.Value(x, y); got != v {
				t.Fatalf("lattice (%d,%d) = %d, expected %d", x, y, got, v)
			}
		}
	}
}

func TestGenerateLatticeChecksums(t *testing.T) {
	tests := []struct {
		size     int
		wx, wy   int
		sum      int64
		min, max int32
	}{
		{size: 17, wx: 3, wy: 5, sum: -136633, min: -3642, max: 1453},
		{size: 129, wx: 1000, wy: 2000, sum: 4951508, min: -1744, max: 3603},
	}
	for _, tc := range tests {
		gen := buildGenerator(t, tc.size)
		gen.Generate(tc.wx, tc.wy)

		values := gen.Lattice().Values()
		var sum int64
		for _, v := range values {
			sum += int64(v)
		}
		if sum != tc.sum {
			t.Fatalf("size %d (%d,%d): lattice sum %d, expected %d", tc.size, tc.wx, tc.wy, sum, tc.sum)
		}
		if got := slices.Min(values); got != tc.min {
			t.Fatalf("size %d: lattice min %d, expected %d", tc.size, got, tc.min)
		}
		if got := slices.Max(values); got != tc.max {
			t.Fatalf("size %d: lattice max %d, expected %d", tc.size, got, tc.max)
		}
	}
}

func TestGenerateCornersAtBaseHeight(t *testing.T) {
	for _, size := range []int{3, 5, 9, 33, 65} {
		gen := buildGenerator(t, size)
		for _, coords := range [][2]int{{0, 0}, {1000, 2000}, {-4321, 17}} {
			grid := gen.Generate(coords[0], coords[1])
			last := size - 1
			for _, c := range [][2]int{{0, 0}, {last, 0}, {0, last}, {last, last}} {
				if got := grid.Height(c[0], c[1]); got != 20 {
					t.Fatalf("size %d world %v corner %v = %f, expected 20", size, coords, c, got)
				}
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := buildGenerator(t, 65)
	b := buildGenerator(t, 65)

	first := append([]float32(nil), a.Generate(12, -7).Cells()...)
	a.Generate(99, 99)
	again := a.Generate(12, -7).Cells()
	other := b.Generate(12, -7).Cells()

	if !slices.Equal(first, again) {
		t.Fatal("regenerating the same tile changed the heights")
	}
	if !slices.Equal(first, other) {
		t.Fatal("two generators disagree on the same tile")
	}
	if slices.Equal(first, b.Generate(13, -7).Cells()) {
		t.Fatal("different tiles should not produce identical terrain")
	}
}

func TestGenerateSettlesEveryNode(t *testing.T) {
	gen := buildGenerator(t, 33)
	gen.Generate(4, 2)
	l := gen.Lattice()
	for y := 0; y < l.Size(); y++ {
		for x := 0; x < l.Size(); x++ {
			if !l.Settled(x, y) {
				t.Fatalf("node (%d,%d) left unsettled", x, y)
			}
		}
	}
}

func TestNeighbouringTilesShareEdges(t *testing.T) {
	const size = 33
	last := size - 1
	gen := buildGenerator(t, size)

	base := gen.Generate(5, 8).Clone()
	below := gen.Generate(6, 8).Clone()
	right := gen.Generate(5, 9).Clone()

	for i := 0; i < size; i++ {
		if base.Height(i, last) != below.Height(i, 0) {
			t.Fatalf("bottom row of (5,8) differs from top row of (6,8) at x=%d", i)
		}
		if base.Height(last, i) != right.Height(0, i) {
			t.Fatalf("right column of (5,8) differs from left column of (5,9) at y=%d", i)
		}
	}
}

func TestHeightsFollowAffineMap(t *testing.T) {
	gen := buildGenerator(t, 17)
	grid := gen.Generate(3, 5)
	l := gen.Lattice()
	for y := 0; y < 17; y++ {
		for x := 0; x < 17; x++ {
			want := float32(max(0, float64(l.Value(x, y))/150+20))
			if got := grid.Height(x, y); got != want {
				t.Fatalf("height (%d,%d) = %f, expected %f", x, y, got, want)
			}
		}
	}
}

func TestHeightsClampedAtZero(t *testing.T) {
	gen := buildGenerator(t, 129)
	grid := gen.Generate(1147, 159)
	if slices.Min(gen.Lattice().Values()) >= -3000 {
		t.Fatal("tile (1147,159) should reach below the zero height level")
	}
	clamped := 0
	for i, v := range grid.Cells() {
		if v < 0 {
			t.Fatalf("cell %d = %f, expected non-negative", i, v)
		}
		if v == 0 {
			clamped++
		}
	}
	if clamped == 0 {
		t.Fatal("expected some cells clamped to zero")
	}
}

func TestIrregularSizeStillTerminates(t *testing.T) {
	grid, _ := core.NewHeightfield(12)
	gen := New(grid)
	gen.Generate(1, 1)
	if grid.Height(0, 0) != 20 || grid.Height(11, 11) != 20 {
		t.Fatal("corners should stay at the base height for any size")
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Config{Size: 10, Roughness: -1, Amplitude: -5, HeightScale: 0}
	err := cfg.Validate()
	if !errors.Is(err, core.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if got := len(multierr.Errors(err)); got != 4 {
		t.Fatalf("expected 4 problems, got %d: %v", got, err)
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestNewWithConfigRejectsSizeMismatch(t *testing.T) {
	grid, _ := core.NewHeightfield(17)
	if _, err := NewWithConfig(grid, DefaultConfig()); !errors.Is(err, core.ErrInvalidConfiguration) {
		t.Fatalf("expected size mismatch error, got %v", err)
	}
}

func TestFromMapOverrides(t *testing.T) {
	c := FromMap(map[string]string{"roughness": "1.5", "amplitude": "bogus", "height_scale": "0", "height_offset": "-3"})
	if c.Roughness != 1.5 {
		t.Fatalf("roughness override ignored: %f", c.Roughness)
	}
	if c.Amplitude != 2000 || c.HeightScale != 150 {
		t.Fatalf("invalid overrides should keep defaults, got %+v", c)
	}
	if c.HeightOffset != -3 {
		t.Fatalf("height offset override ignored: %f", c.HeightOffset)
	}
}

func TestRegistered(t *testing.T) {
	factory, ok := core.Generators()["voss"]
	if !ok {
		t.Fatal("voss generator not registered")
	}
	grid, _ := core.NewHeightfield(9)
	gen, err := factory(grid, nil)
	if err != nil {
		t.Fatal(err)
	}
	if gen.Name() != "voss" {
		t.Fatalf("unexpected name %q", gen.Name())
	}
	if _, err := factory(mustGrid(t, 10), nil); err == nil {
		t.Fatal("registry factory should reject sizes that are not 2^k+1")
	}
}

func mustGrid(t *testing.T, size int) *core.Heightfield {
	t.Helper()
	g, err := core.NewHeightfield(size)
	if err != nil {
		t.Fatal(err)
	}
	return g
}
