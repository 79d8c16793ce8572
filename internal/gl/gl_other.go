//go:build !linux

package gl

import (
	"errors"
	"runtime"
)

// Load is only implemented for GLX on Linux.
func Load(func(name string) uintptr) (OpenGL, error) {
	return nil, errors.New("gl: no loader for " + runtime.GOOS)
}
