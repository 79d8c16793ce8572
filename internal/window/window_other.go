//go:build !linux

package window

import (
	"errors"
	"runtime"
)

// New is only implemented for X11/GLX on Linux.
func New(Options) (Window, error) {
	return nil, errors.New("window: no backend for " + runtime.GOOS)
}
