// ABOUTME: Compile-time-typed take and periodic-access adaptors
// ABOUTME: Sample limits and control callbacks with static dispatch
package static

import (
	"math"
	"time"
)

// TakeSamples passes through at most n samples of the wrapped source.
type TakeSamples[R Rate, C Layout, S Source[R, C]] struct {
	inner S
	left  uint64
}

// NewTakeSamples wraps inner, ending the stream after n samples.
func NewTakeSamples[R Rate, C Layout, S Source[R, C]](inner S, n uint64) *TakeSamples[R, C, S] {
	return &TakeSamples[R, C, S]{inner: inner, left: n}
}

// NewTakeDuration wraps inner, ending the stream after d of playback.
func NewTakeDuration[R Rate, C Layout, S Source[R, C]](inner S, d time.Duration) *TakeSamples[R, C, S] {
	perChannel := d.Seconds() * float64(hertz[R]())
	left := uint64(math.Ceil(perChannel)) * uint64(channelCount[C]())
	return &TakeSamples[R, C, S]{inner: inner, left: left}
}

func (t *TakeSamples[R, C, S]) Next() (float32, bool) {
	if t.left == 0 {
		return 0, false
	}
	t.left--
	return t.inner.Next()
}

func (t *TakeSamples[R, C, S]) TotalDuration() (time.Duration, bool) {
	return t.inner.TotalDuration()
}

func (t *TakeSamples[R, C, S]) StaticFormat() (r R, c C) { return }

// PeriodicAccess runs a callback with exclusive access to the wrapped
// source once every N pulled samples, N computed once from the interval
// and the static rate. The callback must be cheap: it runs on the
// sample-production path.
type PeriodicAccess[R Rate, C Layout, S Source[R, C]] struct {
	inner        S
	access       func(S)
	updatePeriod uint32
	samplesLeft  uint32
}

// NewPeriodicAccess wraps inner. The callback runs before the first
// sample is pulled and then once every interval of playback.
func NewPeriodicAccess[R Rate, C Layout, S Source[R, C]](inner S, interval time.Duration, access func(S)) *PeriodicAccess[R, C, S] {
	period := uint32(interval.Seconds()*float64(hertz[R]()) + 0.5)
	if period == 0 {
		period = 1
	}
	return &PeriodicAccess[R, C, S]{
		inner:        inner,
		access:       access,
		updatePeriod: period,
	}
}

func (p *PeriodicAccess[R, C, S]) Next() (float32, bool) {
	if p.samplesLeft == 0 {
		p.access(p.inner)
		p.samplesLeft = p.updatePeriod
	}
	p.samplesLeft--
	return p.inner.Next()
}

func (p *PeriodicAccess[R, C, S]) TotalDuration() (time.Duration, bool) {
	return p.inner.TotalDuration()
}

func (p *PeriodicAccess[R, C, S]) StaticFormat() (r R, c C) { return }
