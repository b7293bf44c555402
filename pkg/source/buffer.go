// ABOUTME: In-memory sample buffer source
// ABOUTME: Wraps a slice of samples as a fixed-format Source
package source

import (
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/audio"
)

// SamplesBuffer is a buffer of samples treated as a source. Its total
// duration is always known.
type SamplesBuffer struct {
	data   []float32
	pos    int
	format audio.Format
}

// NewSamplesBuffer builds a buffer source over data. It panics if the
// sample rate or channel count is zero.
func NewSamplesBuffer(sampleRate, channels int, data []float32) *SamplesBuffer {
	format := audio.Format{SampleRate: sampleRate, Channels: channels}
	format.Validate()
	return &SamplesBuffer{data: data, format: format}
}

func (b *SamplesBuffer) Next() (float32, bool) {
	if b.pos >= len(b.data) {
		return 0, false
	}
	s := b.data[b.pos]
	b.pos++
	return s, true
}

func (b *SamplesBuffer) SampleRate() int { return b.format.SampleRate }
func (b *SamplesBuffer) Channels() int   { return b.format.Channels }

func (b *SamplesBuffer) TotalDuration() (time.Duration, bool) {
	return b.format.Duration(len(b.data)), true
}
