package supervise

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// ErrExited is reported when the render goroutine ends without returning,
// as runtime.Goexit does.
var ErrExited = errors.New("render thread exited without returning")

// Spawn runs fn on a new goroutine and returns a channel that receives
// exactly one value when fn finishes: its error, an error carrying the panic
// value and stack if fn panicked, or ErrExited if the goroutine ended any
// other way. The channel is then closed.
func Spawn(fn func(stop <-chan struct{}) error, stop <-chan struct{}) <-chan error {
	results := make(chan error, 1)
	go func() {
		defer close(results)
		returned := false
		defer func() {
			if !returned {
				results <- ErrExited
			}
		}()
		results <- run(fn, stop)
		returned = true
	}()
	return results
}

func run(fn func(stop <-chan struct{}) error, stop <-chan struct{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.WithStack(e)
			} else {
				err = errors.Errorf("panic: %v", r)
			}
			err = errors.Wrap(err, "render thread panicked")
		}
	}()
	return fn(stop)
}

// Watch blocks until the render thread reports its result. A nil result is
// a normal exit and changes nothing. A failure is logged with its stack,
// recorded in health and followed by wake, so a dispatcher blocked waiting
// for events gets to see the flag. Watch never touches GPU resources.
func Watch(results <-chan error, health *Health, wake func(), logger *slog.Logger) {
	err, ok := <-results
	if !ok || err == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	if health.MarkFailed(err) {
		logger.Error("render thread failed", "err", err, "stack", stackOf(err))
	}
	if wake != nil {
		wake()
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackOf formats the innermost stack recorded in err.
func stackOf(err error) string {
	var st stackTracer
	for e := err; e != nil; e = errors.Unwrap(e) {
		if s, ok := e.(stackTracer); ok {
			st = s
		}
	}
	if st == nil {
		return ""
	}
	return fmt.Sprintf("%+v", st.StackTrace())
}
