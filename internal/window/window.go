package window

import "errors"

// ErrNoDisplay is returned by New when no display server can be reached.
var ErrNoDisplay = errors.New("window: cannot open display")

// Options configures the window created by New.
type Options struct {
	Title  string
	Width  int
	Height int
	// VSync ties Swap to the display refresh once the context is current.
	VSync bool
}

// Context is the graphics context half of a Window. It is created unbound;
// the render thread claims it with MakeCurrent and is then its only user.
type Context interface {
	// MakeCurrent binds the context to the calling OS thread. It must be
	// called exactly once, from the thread that will issue GL calls.
	MakeCurrent() error
	// ProcAddress resolves a GL entry point for the current context.
	ProcAddress(name string) uintptr
	// Resize adapts the presentation surface to a new client size.
	Resize(width, height int)
	// Swap presents the back buffer. With vsync enabled it blocks until the
	// next vertical blank.
	Swap()
}

// Events is the event-stream half of a Window, owned by the thread that
// created it.
type Events interface {
	// WaitEvent blocks until the next event is available.
	WaitEvent() Event
	// Wake makes a blocked WaitEvent return a WakeEvent. Safe to call from
	// any goroutine.
	Wake()
}

type Window interface {
	Context
	Events
	// Size reports the current client size in pixels.
	Size() (width, height int)
	Close()
}
