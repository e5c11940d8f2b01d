// Package core holds the heightfield grid, the random sources and the small
// registry shared by the terrain generators, the erosion simulator and the
// session layer.
package core

import (
	"errors"
	"sort"
)

// ErrInvalidConfiguration reports a size, radius or parameter outside the
// range the algorithms are defined for.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Generator fills a heightfield with raw terrain for a world tile.
type Generator interface {
	Name() string
	Generate(worldX, worldY int) *Heightfield
}

// Factory constructs a Generator writing into grid, using an optional
// configuration map.
type Factory func(grid *Heightfield, cfg map[string]string) (Generator, error)

var generators = map[string]Factory{}

// Register adds a generator factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	generators[name] = f
}

// Generators exposes the registry of available generator factories.
func Generators() map[string]Factory {
	return generators
}

// GeneratorNames lists the registered generators in sorted order.
func GeneratorNames() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
