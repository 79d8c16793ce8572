// Package scene defines the geometry the renderer can draw.
package scene

import (
	"math/rand"
	"sort"
)

// Scene is one indexed mesh. A nil Colors means one random colour per vertex,
// sampled once at setup.
type Scene struct {
	Name     string
	Vertices []float32
	Indices  []uint32
	Colors   []float32
}

var scenes = map[string]Scene{
	"triangle": {
		Name: "triangle",
		Vertices: []float32{
			-0.8, -0.8, 1.2,
			0.8, 0.8, -1.2,
			0.0, 0.4, 0.0,
		},
		Indices: []uint32{0, 1, 2},
	},
	"quad": {
		Name: "quad",
		Vertices: []float32{
			-0.5, -0.5, 0,
			0.5, -0.5, 0,
			0.5, 0.5, 0,
			-0.5, 0.5, 0,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	},
	"fan": {
		Name: "fan",
		Vertices: []float32{
			0.0, 0.0, 0,
			0.6, 0.0, 0,
			0.3, 0.5, 0,
			-0.3, 0.5, 0,
			-0.6, 0.0, 0,
			-0.3, -0.5, 0,
			0.3, -0.5, 0,
		},
		Indices: []uint32{
			0, 1, 2,
			0, 2, 3,
			0, 3, 4,
			0, 4, 5,
			0, 5, 6,
			0, 6, 1,
		},
		Colors: []float32{
			1, 1, 1, 1,
			1, 0, 0, 1,
			1, 1, 0, 1,
			0, 1, 0, 1,
			0, 1, 1, 1,
			0, 0, 1, 1,
			1, 0, 1, 1,
		},
	},
}

// Lookup returns the named scene.
func Lookup(name string) (Scene, bool) {
	s, ok := scenes[name]
	return s, ok
}

// Names lists the available scenes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VertexCount is the number of xyz triples in the scene.
func (s Scene) VertexCount() int {
	return len(s.Vertices) / 3
}

// WithColors returns s with Colors filled from rng when the scene leaves
// them unset.
func (s Scene) WithColors(rng *rand.Rand) Scene {
	if s.Colors == nil {
		s.Colors = RandomColors(s.VertexCount(), rng)
	}
	return s
}

// RandomColors returns n opaque RGBA colours whose channels are multiples of
// a tenth in [0, 0.9].
func RandomColors(n int, rng *rand.Rand) []float32 {
	colors := make([]float32, 0, n*4)
	for i := 0; i < n; i++ {
		for c := 0; c < 3; c++ {
			colors = append(colors, float32(rng.Intn(10))/10)
		}
		colors = append(colors, 1)
	}
	return colors
}
