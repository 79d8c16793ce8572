package input

import (
	"slices"

	"github.com/tinyrange/gloom/internal/window"
)

// State bundles the three cells shared by the dispatcher and the renderer.
// It is created once at startup and passed by pointer to both sides.
type State struct {
	Keys  Cell[KeySet]
	Mouse Cell[MouseDelta]
	Size  Cell[WindowSize]
}

// NewState returns a State for a window of the given initial size. The size
// starts clean: the renderer sets its viewport from the same values.
func NewState(width, height int) *State {
	s := &State{}
	s.Size.v = WindowSize{Width: width, Height: height}
	return s
}

// KeySet is the ordered set of keys currently held down.
type KeySet struct {
	keys []window.Key
}

// Press adds k if it is not already held. It reports whether the set changed.
func (s *KeySet) Press(k window.Key) bool {
	if slices.Contains(s.keys, k) {
		return false
	}
	s.keys = append(s.keys, k)
	return true
}

// Release removes k if it is held. It reports whether the set changed.
func (s *KeySet) Release(k window.Key) bool {
	i := slices.Index(s.keys, k)
	if i < 0 {
		return false
	}
	s.keys = slices.Delete(s.keys, i, i+1)
	return true
}

func (s *KeySet) Contains(k window.Key) bool {
	return slices.Contains(s.keys, k)
}

func (s *KeySet) Len() int {
	return len(s.keys)
}

// Snapshot returns a copy of the held keys in press order.
func (s *KeySet) Snapshot() []window.Key {
	return slices.Clone(s.keys)
}

// MouseDelta accumulates pointer movement between two renderer reads.
type MouseDelta struct {
	X, Y float32
}

// Add accumulates one motion sample.
func (d *MouseDelta) Add(dx, dy float32) {
	d.X += dx
	d.Y += dy
}

// Take returns the accumulated movement and resets it to zero.
func (d *MouseDelta) Take() (dx, dy float32) {
	dx, dy = d.X, d.Y
	d.X, d.Y = 0, 0
	return dx, dy
}

// WindowSize is the latest client size with a dirty flag marking that the
// renderer has not applied it yet.
type WindowSize struct {
	Width, Height int
	Dirty         bool
}

// Set records a resize. The last write wins.
func (s *WindowSize) Set(width, height int) {
	s.Width, s.Height, s.Dirty = width, height, true
}

// Consume returns the size and clears the dirty flag. ok is false when no
// resize happened since the previous Consume.
func (s *WindowSize) Consume() (width, height int, ok bool) {
	if !s.Dirty {
		return s.Width, s.Height, false
	}
	s.Dirty = false
	return s.Width, s.Height, true
}
