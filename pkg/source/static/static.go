// ABOUTME: Marker types and the generic Source interface
// ABOUTME: Binds sample rate and channel count into the type system
package static

import (
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

// Rate is implemented by the sample-rate marker types.
type Rate interface{ Hertz() int }

// Layout is implemented by the channel-count marker types.
type Layout interface{ Count() int }

// Sample-rate markers.
type (
	Rate22050 struct{}
	Rate44100 struct{}
	Rate48000 struct{}
	Rate96000 struct{}
)

func (Rate22050) Hertz() int { return 22050 }
func (Rate44100) Hertz() int { return 44100 }
func (Rate48000) Hertz() int { return 48000 }
func (Rate96000) Hertz() int { return 96000 }

// Channel-layout markers.
type (
	Mono   struct{}
	Stereo struct{}
)

func (Mono) Count() int   { return 1 }
func (Stereo) Count() int { return 2 }

// Source is a sample source whose format is fixed at compile time.
// StaticFormat is never called for its value; it exists to bind the
// marker types so only sources declared for (R, C) satisfy Source[R, C].
type Source[R Rate, C Layout] interface {
	// Next returns the next sample, or false at end of stream.
	Next() (float32, bool)
	// TotalDuration returns the remaining duration if known. The value
	// may change between calls and must not be cached.
	TotalDuration() (time.Duration, bool)
	// StaticFormat binds the format markers to the implementing type.
	StaticFormat() (R, C)
}

func hertz[R Rate]() int {
	var r R
	return r.Hertz()
}

func channelCount[C Layout]() int {
	var c C
	return c.Count()
}

// AsSource exposes a static source as a runtime-fixed one, for mixing
// with code built on the parent package. The total duration is
// delegated; the adaptor claims nothing stronger than its input has.
func AsSource[R Rate, C Layout, S Source[R, C]](s S) source.Source {
	return &adaptor[R, C, S]{inner: s}
}

type adaptor[R Rate, C Layout, S Source[R, C]] struct {
	inner S
}

func (a *adaptor[R, C, S]) Next() (float32, bool) { return a.inner.Next() }
func (a *adaptor[R, C, S]) SampleRate() int       { return hertz[R]() }
func (a *adaptor[R, C, S]) Channels() int         { return channelCount[C]() }

func (a *adaptor[R, C, S]) TotalDuration() (time.Duration, bool) {
	return a.inner.TotalDuration()
}

// Promote asserts that a runtime-fixed source has the static format
// (R, C). If the parameters do not match, the typed rejection from the
// parent package is returned; the runtime guarantee is checked once
// here instead of on every use.
func Promote[R Rate, C Layout](s source.Source) (Source[R, C], error) {
	if s.Channels() != channelCount[C]() {
		return nil, &source.WrongChannelCountError{Expected: channelCount[C](), Got: s.Channels()}
	}
	if s.SampleRate() != hertz[R]() {
		return nil, &source.WrongSampleRateError{Expected: hertz[R](), Got: s.SampleRate()}
	}
	return &promoted[R, C]{inner: s}, nil
}

type promoted[R Rate, C Layout] struct {
	inner source.Source
}

func (p *promoted[R, C]) Next() (float32, bool)               { return p.inner.Next() }
func (p *promoted[R, C]) TotalDuration() (time.Duration, bool) { return p.inner.TotalDuration() }
func (p *promoted[R, C]) StaticFormat() (r R, c C)            { return }
