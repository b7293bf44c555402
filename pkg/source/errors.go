// ABOUTME: Submission-time error definitions
// ABOUTME: Typed rejections for format mismatches and dropped consumers
package source

import (
	"errors"
	"fmt"
)

// ErrQueueDropped reports a submission to a queue or mixer whose
// consuming half has been dropped. Recoverable by creating a new one.
var ErrQueueDropped = errors.New("source: consuming half of the queue was dropped")

// ErrQueueFull reports that the bounded pending buffer is exhausted.
// Submissions are never blocked on the audio thread draining; beyond
// the buffer bound they are rejected instead.
var ErrQueueFull = errors.New("source: pending buffer is full")

// WrongChannelCountError reports a source submitted with a channel
// count different from what the consumer was built for. The source is
// never silently converted.
type WrongChannelCountError struct {
	Expected, Got int
}

func (e *WrongChannelCountError) Error() string {
	return fmt.Sprintf("source: wrong channel count: expected %d, got %d", e.Expected, e.Got)
}

// WrongSampleRateError reports a source submitted with a sample rate
// different from what the consumer was built for. The source is never
// silently resampled.
type WrongSampleRateError struct {
	Expected, Got int
}

func (e *WrongSampleRateError) Error() string {
	return fmt.Sprintf("source: wrong sample rate: expected %d, got %d", e.Expected, e.Got)
}

// checkFormat returns the typed rejection for a source that does not
// match the expected format.
func checkFormat(s Source, sampleRate, channels int) error {
	if s.Channels() != channels {
		return &WrongChannelCountError{Expected: channels, Got: s.Channels()}
	}
	if s.SampleRate() != sampleRate {
		return &WrongSampleRateError{Expected: sampleRate, Got: s.SampleRate()}
	}
	return nil
}
