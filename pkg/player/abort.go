// ABOUTME: Cross-goroutine track stop handle
// ABOUTME: One handle per enqueued track, checked on each refresh tick
package player

import "sync/atomic"

// AbortHandle asks a playing track to stop. Abort may be called from
// any goroutine; the track's periodic-access callback polls the flag
// and stops the wrapped source, so the stop lands within one
// propagation interval.
type AbortHandle struct {
	aborted atomic.Bool
}

// Abort flags the track for stopping. Idempotent.
func (h *AbortHandle) Abort() {
	h.aborted.Store(true)
}

// Aborted reports whether Abort has been called.
func (h *AbortHandle) Aborted() bool {
	return h.aborted.Load()
}
