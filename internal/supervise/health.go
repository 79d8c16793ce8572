// Package supervise runs the render thread and reports its failure to the
// rest of the process.
package supervise

import "sync"

// Health records whether the render thread is still running normally. It
// starts healthy and can only flip to failed, once.
type Health struct {
	mu     sync.RWMutex
	failed bool
	cause  error
}

// Healthy reports whether no failure has been recorded.
func (h *Health) Healthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.failed
}

// Err returns the recorded failure, or nil while healthy.
func (h *Health) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cause
}

// MarkFailed records err as the failure cause. Only the first call has an
// effect; it reports whether this call flipped the flag.
func (h *Health) MarkFailed(err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failed {
		return false
	}
	h.failed = true
	h.cause = err
	return true
}
