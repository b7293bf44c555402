// ABOUTME: Periodic access adaptor
// ABOUTME: Runs a control callback once every N pulled samples
package source

import "time"

// PeriodicAccess runs a callback with exclusive access to the wrapped
// source once every N pulled samples, where N is computed once from the
// requested wall-clock interval and the source's sample rate. This is
// the only mechanism by which external state (volume, pause, abort)
// reaches the per-sample hot path, so the callback must be cheap: it
// stalls sample delivery for its duration.
type PeriodicAccess struct {
	inner        Source
	access       func(Source)
	updatePeriod uint32 // in samples
	samplesLeft  uint32
}

// NewPeriodicAccess wraps inner. The callback runs before the first
// sample is pulled and then once every interval of playback.
func NewPeriodicAccess(inner Source, interval time.Duration, access func(Source)) *PeriodicAccess {
	period := uint32(interval.Seconds()*float64(inner.SampleRate()) + 0.5)
	if period == 0 {
		period = 1
	}
	return &PeriodicAccess{
		inner:        inner,
		access:       access,
		updatePeriod: period,
	}
}

func (p *PeriodicAccess) Next() (float32, bool) {
	if p.samplesLeft == 0 {
		p.access(p.inner)
		p.samplesLeft = p.updatePeriod
	}
	p.samplesLeft--
	return p.inner.Next()
}

func (p *PeriodicAccess) SampleRate() int                      { return p.inner.SampleRate() }
func (p *PeriodicAccess) Channels() int                        { return p.inner.Channels() }
func (p *PeriodicAccess) TotalDuration() (time.Duration, bool) { return p.inner.TotalDuration() }
