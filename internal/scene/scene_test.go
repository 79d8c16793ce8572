package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tinyrange/gloom/internal/mesh"
)

func TestScenesAreWellFormed(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, name := range Names() {
		s, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) failed", name)
		}
		s = s.WithColors(rng)
		if err := mesh.CheckLayout(s.Vertices, s.Indices, s.Colors); err != nil {
			t.Errorf("scene %q: %v", name, err)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("teapot"); ok {
		t.Error("Lookup(teapot) succeeded")
	}
}

func TestRandomColors(t *testing.T) {
	colors := RandomColors(50, rand.New(rand.NewSource(3)))
	if len(colors) != 200 {
		t.Fatalf("len = %d, want 200", len(colors))
	}
	for i := 0; i < len(colors); i += 4 {
		for c := 0; c < 3; c++ {
			v := colors[i+c]
			tenths := float64(v) * 10
			if v < 0 || v > 0.9 || math.Abs(tenths-math.Round(tenths)) > 1e-4 {
				t.Errorf("channel %d of colour %d = %v, want a tenth in [0, 0.9]", c, i/4, v)
			}
		}
		if colors[i+3] != 1 {
			t.Errorf("alpha of colour %d = %v, want 1", i/4, colors[i+3])
		}
	}
}

func TestWithColorsKeepsExplicitColors(t *testing.T) {
	fan, _ := Lookup("fan")
	got := fan.WithColors(rand.New(rand.NewSource(1)))
	if &got.Colors[0] != &fan.Colors[0] {
		t.Error("WithColors replaced explicit colours")
	}
}
