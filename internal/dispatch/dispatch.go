// Package dispatch runs the event side of the harness: it waits on the
// window's event stream and folds each event into the shared input state.
package dispatch

import (
	"log/slog"

	"github.com/tinyrange/gloom/internal/input"
	"github.com/tinyrange/gloom/internal/logging"
	"github.com/tinyrange/gloom/internal/supervise"
	"github.com/tinyrange/gloom/internal/window"
)

// ControlFlow is the dispatcher's decision after an event.
type ControlFlow int

const (
	// Wait blocks for the next event.
	Wait ControlFlow = iota
	// Exit ends Run after the current event.
	Exit
)

func (c ControlFlow) String() string {
	if c == Exit {
		return "exit"
	}
	return "wait"
}

// Dispatcher folds window events into the shared input state.
type Dispatcher struct {
	state  *input.State
	health *supervise.Health
	log    *slog.Logger
}

// New returns a dispatcher writing into state. health is read before every
// event; a nil logger discards output.
func New(state *input.State, health *supervise.Health, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		state:  state,
		health: health,
		log:    logging.OrNop(logger),
	}
}

// Run handles events until one of them asks to exit or the render thread is
// found unhealthy. It returns the render failure, if that is why it stopped.
// Run never spins: every iteration starts with a blocking WaitEvent.
func (d *Dispatcher) Run(events window.Events) error {
	for {
		ev := events.WaitEvent()

		flow := Wait
		if !d.health.Healthy() {
			d.log.Warn("render thread unhealthy, exiting")
			flow = Exit
		}
		if d.Handle(ev) == Exit {
			flow = Exit
		}
		if flow == Exit {
			return d.health.Err()
		}
	}
}

// Handle applies one event to the shared state. A poisoned cell drops the
// update silently; Escape and Q exit either way.
func (d *Dispatcher) Handle(ev window.Event) ControlFlow {
	switch ev := ev.(type) {
	case window.ResizeEvent:
		_ = d.state.Size.With(func(s *input.WindowSize) {
			s.Set(ev.Width, ev.Height)
		})
		d.log.Debug("window resized", "width", ev.Width, "height", ev.Height)

	case window.CloseEvent:
		return Exit

	case window.KeyEvent:
		if ev.Key == window.KeyUnknown {
			return Wait
		}
		_ = d.state.Keys.With(func(k *input.KeySet) {
			if ev.State == window.KeyPressed {
				k.Press(ev.Key)
			} else {
				k.Release(ev.Key)
			}
		})
		if ev.Key == window.KeyEscape || ev.Key == window.KeyQ {
			return Exit
		}

	case window.MouseMotionEvent:
		_ = d.state.Mouse.With(func(m *input.MouseDelta) {
			m.Add(float32(ev.DX), float32(ev.DY))
		})
	}
	return Wait
}
