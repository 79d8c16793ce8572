// Package input holds the state shared between the event thread and the
// render thread. Each value lives in its own Cell with its own lock; callers
// never hold two cells at once, so no lock ordering is needed.
package input

import (
	"errors"
	"sync"
)

// ErrPoisoned is returned by Cell.With after a previous accessor panicked
// while holding the lock. The value may be half-updated and is not exposed
// again.
var ErrPoisoned = errors.New("input: cell poisoned")

// Cell is a mutex-guarded value. The zero value holds the zero T and is ready
// to use.
type Cell[T any] struct {
	mu       sync.Mutex
	poisoned bool
	v        T
}

// NewCell returns a Cell holding v.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{v: v}
}

// With runs fn with exclusive access to the value and releases the lock on
// every exit path. If fn panics, the cell is poisoned and the panic continues
// up the caller's stack. On a poisoned cell fn is not run and ErrPoisoned is
// returned; callers treat that as "skip this cycle".
func (c *Cell[T]) With(fn func(v *T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.poisoned {
		return ErrPoisoned
	}

	done := false
	defer func() {
		if !done {
			c.poisoned = true
		}
	}()
	fn(&c.v)
	done = true
	return nil
}

// Poisoned reports whether an accessor has panicked while holding the lock.
func (c *Cell[T]) Poisoned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.poisoned
}
