// ABOUTME: Audio format type definitions
// ABOUTME: Defines the (sample rate, channel count) pair and its invariants
package audio

import (
	"fmt"
	"time"
)

// Format describes how to interpret a sample sequence.
type Format struct {
	SampleRate int
	Channels   int
}

// Validate panics if either field is not positive. Sources call this at
// construction so a broken format can never reach the pull path.
func (f Format) Validate() {
	if f.SampleRate <= 0 {
		panic(fmt.Sprintf("audio: sample rate must be > 0, got %d", f.SampleRate))
	}
	if f.Channels <= 0 {
		panic(fmt.Sprintf("audio: channel count must be > 0, got %d", f.Channels))
	}
}

// FrameSize returns the number of interleaved samples in one frame.
func (f Format) FrameSize() int { return f.Channels }

// Duration returns how long n interleaved samples last at this format.
func (f Format) Duration(n int) time.Duration {
	frames := n / f.Channels
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

// SamplesFor returns the number of interleaved samples spanning d,
// rounded up to a whole frame.
func (f Format) SamplesFor(d time.Duration) int {
	frames := int(d.Seconds()*float64(f.SampleRate) + 0.5)
	return frames * f.Channels
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch", f.SampleRate, f.Channels)
}
