// Package osthread pins goroutines to OS threads for APIs with thread
// affinity, such as a current GL context.
package osthread

import "runtime"

// Lock wires the calling goroutine to its current OS thread and returns the
// kernel thread id, for diagnostics. The goroutine must not unlock while it
// owns thread-affine state.
func Lock() int {
	runtime.LockOSThread()
	return id()
}
