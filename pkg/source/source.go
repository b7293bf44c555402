// ABOUTME: Core Source interface definitions
// ABOUTME: Runtime-fixed and dynamic (span) source strengths
package source

import (
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/audio"
)

// validateFormat panics when a consumer is constructed with an invalid
// format. See audio.Format.Validate.
func validateFormat(sampleRate, channels int) {
	audio.Format{SampleRate: sampleRate, Channels: channels}.Validate()
}

// Source produces a lazy sequence of interleaved float32 samples.
//
// SampleRate and Channels must never change their answer for the
// lifetime of one instance. TotalDuration reports false when the length
// is unknown or unbounded; the reported value is allowed to change
// between calls, so callers must not cache it.
type Source interface {
	// Next returns the next sample, or false at end of stream.
	// Once Next returns false it keeps returning false.
	Next() (float32, bool)
	// SampleRate returns the sample rate in Hz, always > 0.
	SampleRate() int
	// Channels returns the channel count, always > 0.
	Channels() int
	// TotalDuration returns the remaining duration if known.
	TotalDuration() (time.Duration, bool)
}

// SpanSource is a source whose format may change at span boundaries.
// SampleRate and Channels report the current span's format; consumers
// must re-query them after each span ends.
type SpanSource interface {
	Source
	// CurrentSpanLen returns how many samples remain in the current
	// span, or false when the span extends to the end of the stream.
	CurrentSpanLen() (int, bool)
}

// AsSpan exposes a runtime-fixed source as a dynamic one. The span never
// ends, the format never changes and the total duration is delegated.
// The adaptor claims no more than its input guarantees.
func AsSpan(s Source) SpanSource {
	return &fixedSpan{s}
}

type fixedSpan struct {
	Source
}

func (f *fixedSpan) CurrentSpanLen() (int, bool) {
	return 0, false
}
