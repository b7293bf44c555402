// ABOUTME: Sample-rate conversion for dynamic (span) sources
// ABOUTME: Runs one fixed resampler per constant-format segment
package convert

import (
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

// segment presents the input as a runtime-fixed source that ends at
// the first span boundary where the format changes. Consumption is
// counted in input samples, so span lengths are applied directly.
type segment struct {
	input    source.SpanSource
	rate     int
	channels int
	left     int // samples left in the current span, -1 when unbounded
	done     bool

	changed      bool
	nextRate     int
	nextChannels int
}

func newSegment(input source.SpanSource, rate, channels int) *segment {
	s := &segment{input: input, rate: rate, channels: channels}
	s.refreshSpan()
	return s
}

func (s *segment) refreshSpan() {
	n, ok := s.input.CurrentSpanLen()
	switch {
	case !ok:
		s.left = -1
	case n == 0:
		s.done = true
	default:
		s.left = n
	}
}

func (s *segment) Next() (float32, bool) {
	if s.done {
		return 0, false
	}
	if s.left == 0 {
		rate, channels := s.input.SampleRate(), s.input.Channels()
		if rate != s.rate || channels != s.channels {
			s.done = true
			s.changed = true
			s.nextRate, s.nextChannels = rate, channels
			return 0, false
		}
		s.refreshSpan()
		if s.done {
			return 0, false
		}
	}
	v, ok := s.input.Next()
	if !ok {
		s.done = true
		return 0, false
	}
	if s.left > 0 {
		s.left--
	}
	return v, true
}

func (s *segment) SampleRate() int { return s.rate }
func (s *segment) Channels() int   { return s.channels }

func (s *segment) TotalDuration() (time.Duration, bool) {
	return s.input.TotalDuration()
}

// SpanResampler converts a dynamic source to a fixed target sample
// rate. Each stretch of constant input format is resampled by a fresh
// Resampler; interpolation history does not carry across a format
// change, so a discontinuity at the boundary stays local to it.
type SpanResampler struct {
	input   source.SpanSource
	outRate int
	seg     *segment
	core    *Resampler
}

// NewSpanResampler wraps input, converting it to targetRate.
func NewSpanResampler(input source.SpanSource, targetRate int) *SpanResampler {
	if targetRate <= 0 {
		panic("convert: sample rate must be > 0")
	}
	r := &SpanResampler{input: input, outRate: targetRate}
	r.startSegment(input.SampleRate(), input.Channels())
	return r
}

func (r *SpanResampler) startSegment(rate, channels int) {
	r.seg = newSegment(r.input, rate, channels)
	r.core = NewResampler(r.seg, r.outRate)
}

func (r *SpanResampler) Next() (float32, bool) {
	for {
		if v, ok := r.core.Next(); ok {
			return v, true
		}
		if !r.seg.changed {
			return 0, false
		}
		r.startSegment(r.seg.nextRate, r.seg.nextChannels)
	}
}

func (r *SpanResampler) SampleRate() int { return r.outRate }

// Channels reports the channel count of the current segment. Combine
// with a channel converter first when a fixed count is required.
func (r *SpanResampler) Channels() int { return r.seg.channels }

func (r *SpanResampler) TotalDuration() (time.Duration, bool) {
	return r.input.TotalDuration()
}

// CurrentSpanLen scales the input's span length by the resampling
// ratio. The count is approximate when the ratio is not integral.
func (r *SpanResampler) CurrentSpanLen() (int, bool) {
	n, ok := r.input.CurrentSpanLen()
	if !ok {
		return 0, false
	}
	ratio := float64(r.outRate) / float64(r.seg.rate)
	return int(float64(n) * ratio), true
}
