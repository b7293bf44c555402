// ABOUTME: Stop adaptor
// ABOUTME: Ends the wrapped stream early when stopped
package source

import "time"

// Stoppable ends the wrapped stream as soon as Stop is called. Stop must
// only be called with exclusive access, e.g. from a PeriodicAccess
// callback; lifetime/stop semantics belong here, not in the queue.
type Stoppable struct {
	inner Source
	stop  bool
}

// NewStoppable wraps inner.
func NewStoppable(inner Source) *Stoppable {
	return &Stoppable{inner: inner}
}

// Stop makes all subsequent pulls report end of stream.
func (s *Stoppable) Stop() {
	s.stop = true
}

func (s *Stoppable) Next() (float32, bool) {
	if s.stop {
		return 0, false
	}
	return s.inner.Next()
}

func (s *Stoppable) SampleRate() int                      { return s.inner.SampleRate() }
func (s *Stoppable) Channels() int                        { return s.inner.Channels() }
func (s *Stoppable) TotalDuration() (time.Duration, bool) { return s.inner.TotalDuration() }
