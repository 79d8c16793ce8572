package input

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/tinyrange/gloom/internal/window"
)

func TestKeySetPressIsIdempotent(t *testing.T) {
	var s KeySet
	if !s.Press(window.KeyA) {
		t.Fatal("first Press(A) reported no change")
	}
	if s.Press(window.KeyA) {
		t.Error("second Press(A) reported a change")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestKeySetReleaseAbsentIsNoop(t *testing.T) {
	var s KeySet
	s.Press(window.KeyW)
	if s.Release(window.KeyS) {
		t.Error("Release of an absent key reported a change")
	}
	if got := s.Snapshot(); len(got) != 1 || got[0] != window.KeyW {
		t.Errorf("Snapshot() = %v, want [W]", got)
	}
}

func TestKeySetKeepsPressOrder(t *testing.T) {
	var s KeySet
	for _, k := range []window.Key{window.KeyD, window.KeyA, window.KeyW} {
		s.Press(k)
	}
	s.Release(window.KeyA)
	want := []window.Key{window.KeyD, window.KeyW}
	got := s.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("Snapshot() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Snapshot() = %v, want %v", got, want)
		}
	}
}

// A key is held iff the last event for it was a press, whatever the sequence.
func TestKeySetMatchesLastEvent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	keys := []window.Key{window.KeyA, window.KeyD, window.KeyQ, window.KeySpace}

	for round := 0; round < 200; round++ {
		var s KeySet
		last := map[window.Key]bool{}
		for i := 0; i < 50; i++ {
			k := keys[rng.Intn(len(keys))]
			if rng.Intn(2) == 0 {
				s.Press(k)
				last[k] = true
			} else {
				s.Release(k)
				last[k] = false
			}
		}

		held := 0
		for _, k := range keys {
			if s.Contains(k) != last[k] {
				t.Fatalf("round %d: Contains(%v) = %v, last event press = %v", round, k, s.Contains(k), last[k])
			}
			if last[k] {
				held++
			}
		}
		if s.Len() != held {
			t.Fatalf("round %d: Len() = %d, want %d (duplicates?)", round, s.Len(), held)
		}
	}
}

func TestMouseDeltaTakeResets(t *testing.T) {
	var d MouseDelta
	d.Add(1.5, -2)
	d.Add(0.5, 4)
	dx, dy := d.Take()
	if dx != 2 || dy != 2 {
		t.Errorf("Take() = (%v, %v), want (2, 2)", dx, dy)
	}
	if dx, dy := d.Take(); dx != 0 || dy != 0 {
		t.Errorf("second Take() = (%v, %v), want (0, 0)", dx, dy)
	}
}

// Every sample added by the producer is observed by exactly one Take.
func TestMouseDeltaNoSampleLost(t *testing.T) {
	var c Cell[MouseDelta]
	const samples = 5000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < samples; i++ {
			_ = c.With(func(d *MouseDelta) { d.Add(1, -1) })
		}
	}()

	var sumX, sumY float32
	stop := make(chan struct{})
	go func() {
		wg.Wait()
		close(stop)
	}()
	for {
		select {
		case <-stop:
			_ = c.With(func(d *MouseDelta) {
				dx, dy := d.Take()
				sumX += dx
				sumY += dy
			})
			if sumX != samples || sumY != -samples {
				t.Fatalf("sum = (%v, %v), want (%d, %d)", sumX, sumY, samples, -samples)
			}
			return
		default:
			_ = c.With(func(d *MouseDelta) {
				dx, dy := d.Take()
				sumX += dx
				sumY += dy
			})
		}
	}
}

func TestWindowSizeDirtyFlag(t *testing.T) {
	s := NewState(800, 600)

	var w, h int
	var ok bool
	_ = s.Size.With(func(ws *WindowSize) { w, h, ok = ws.Consume() })
	if ok {
		t.Fatal("initial size reported dirty")
	}
	if w != 800 || h != 600 {
		t.Errorf("initial size = %dx%d, want 800x600", w, h)
	}

	_ = s.Size.With(func(ws *WindowSize) {
		ws.Set(640, 480)
		ws.Set(1024, 768)
	})
	_ = s.Size.With(func(ws *WindowSize) {
		if !ws.Dirty {
			t.Error("Dirty = false after Set")
		}
		w, h, ok = ws.Consume()
	})
	if !ok || w != 1024 || h != 768 {
		t.Errorf("Consume() = (%d, %d, %v), want (1024, 768, true)", w, h, ok)
	}
	_ = s.Size.With(func(ws *WindowSize) { _, _, ok = ws.Consume() })
	if ok {
		t.Error("second Consume() reported dirty")
	}
}

func TestKeySetSnapshotIsDetached(t *testing.T) {
	var s KeySet
	s.Press(window.KeyA)
	got := s.Snapshot()
	got[0] = window.KeyZ
	s.Press(window.KeyB)

	if !s.Contains(window.KeyA) || s.Contains(window.KeyZ) {
		t.Error("writing to a snapshot changed the set")
	}
	if len(got) != 1 {
		t.Errorf("snapshot grew with the set: %v", got)
	}
}
