// ABOUTME: Take adaptors
// ABOUTME: Limits a source to a sample count or wall-clock duration
package source

import (
	"math"
	"time"
)

// TakeSamples passes through at most n samples of the wrapped source.
type TakeSamples struct {
	inner Source
	left  uint64
}

// NewTakeSamples wraps inner, ending the stream after n samples.
func NewTakeSamples(inner Source, n uint64) *TakeSamples {
	return &TakeSamples{inner: inner, left: n}
}

func (t *TakeSamples) Next() (float32, bool) {
	if t.left == 0 {
		return 0, false
	}
	t.left--
	return t.inner.Next()
}

func (t *TakeSamples) SampleRate() int                      { return t.inner.SampleRate() }
func (t *TakeSamples) Channels() int                        { return t.inner.Channels() }
func (t *TakeSamples) TotalDuration() (time.Duration, bool) { return t.inner.TotalDuration() }

// NewTakeDuration wraps inner, ending the stream after d of playback.
func NewTakeDuration(inner Source, d time.Duration) *TakeSamples {
	perChannel := d.Seconds() * float64(inner.SampleRate())
	left := uint64(math.Ceil(perChannel)) * uint64(inner.Channels())
	return &TakeSamples{inner: inner, left: left}
}
