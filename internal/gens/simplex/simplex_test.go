package simplex

import (
	"errors"
	"slices"
	"testing"

	"github.com/ricardoprins/TerrainErosion/internal/core"

	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, size int) *Generator {
	t.Helper()
	grid, err := core.NewHeightfield(size)
	require.NoError(t, err)
	gen, err := New(grid, DefaultConfig())
	require.NoError(t, err)
	return gen
}

func TestGenerateDeterministic(t *testing.T) {
	a := newTestGenerator(t, 33)
	b := newTestGenerator(t, 33)

	first := append([]float32(nil), a.Generate(2, 3).Cells()...)
	require.True(t, slices.Equal(first, b.Generate(2, 3).Cells()))
	require.False(t, slices.Equal(first, b.Generate(3, 3).Cells()))
}

func TestNeighbouringTilesShareEdges(t *testing.T) {
	const size = 17
	gen := newTestGenerator(t, size)
	left := gen.Generate(0, 0).Clone()
	right := gen.Generate(1, 0).Clone()
	below := gen.Generate(0, 1).Clone()
	for i := 0; i < size; i++ {
		require.Equal(t, left.Height(size-1, i), right.Height(0, i), "column seam at y=%d", i)
		require.Equal(t, left.Height(i, size-1), below.Height(i, 0), "row seam at x=%d", i)
	}
}

func TestHeightsStayInBand(t *testing.T) {
	gen := newTestGenerator(t, 65)
	s := gen.Generate(-4, 9).Stats()
	require.Zero(t, s.NonFinite)
	require.GreaterOrEqual(t, s.Min, float32(0))
	require.LessOrEqual(t, s.Max, float32(20+14))
}

func TestValidate(t *testing.T) {
	err := Config{Size: 2}.Validate()
	require.True(t, errors.Is(err, core.ErrInvalidConfiguration))
	require.NoError(t, DefaultConfig().Validate())
}

func TestRegistered(t *testing.T) {
	factory, ok := core.Generators()["simplex"]
	require.True(t, ok)
	grid, err := core.NewHeightfield(9)
	require.NoError(t, err)
	gen, err := factory(grid, map[string]string{"octaves": "2"})
	require.NoError(t, err)
	require.Equal(t, "simplex", gen.Name())
}
