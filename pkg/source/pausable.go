// ABOUTME: Pause adaptor
// ABOUTME: Emits silence instead of pulling from the source while paused
package source

import "time"

// Pausable emits silence while paused, without consuming the wrapped
// source. SetPaused must only be called with exclusive access, e.g.
// from a PeriodicAccess callback.
type Pausable struct {
	inner  Source
	paused bool
}

// NewPausable wraps inner, starting in the given pause state.
func NewPausable(inner Source, paused bool) *Pausable {
	return &Pausable{inner: inner, paused: paused}
}

// SetPaused switches between playing and silence.
func (p *Pausable) SetPaused(paused bool) {
	p.paused = paused
}

func (p *Pausable) Next() (float32, bool) {
	if p.paused {
		return 0, true
	}
	return p.inner.Next()
}

func (p *Pausable) SampleRate() int                      { return p.inner.SampleRate() }
func (p *Pausable) Channels() int                        { return p.inner.Channels() }
func (p *Pausable) TotalDuration() (time.Duration, bool) { return p.inner.TotalDuration() }
