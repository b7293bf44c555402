// ABOUTME: Channel-count conversion for dynamic (span) sources
// ABOUTME: Re-reads the input channel count each frame
package convert

import (
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

// SpanChannelConverter converts a dynamic source to a fixed target
// channel count. The per-frame algorithm matches ChannelConverter, but
// the input's channel count is re-read at every frame since it may
// change at span boundaries. Frames never straddle a span boundary, so
// querying once per frame is sound.
type SpanChannelConverter struct {
	input        source.SpanSource
	target       int
	sampleRepeat float32
	nextPos      int
}

// NewSpanChannelConverter wraps input, converting to target channels.
func NewSpanChannelConverter(input source.SpanSource, target int) *SpanChannelConverter {
	if target <= 0 {
		panic("convert: channel count must be > 0")
	}
	return &SpanChannelConverter{input: input, target: target}
}

func (c *SpanChannelConverter) Next() (float32, bool) {
	chIn := c.input.Channels()

	var v float32
	var ok bool
	switch {
	case c.nextPos == 0:
		v, ok = c.input.Next()
		c.sampleRepeat = v
	case c.nextPos < chIn:
		v, ok = c.input.Next()
		if !ok {
			panic("convert: sources may not emit half frames")
		}
	case c.nextPos == 1:
		v, ok = c.sampleRepeat, true
	default:
		v, ok = 0, true
	}

	if !ok {
		return 0, false
	}

	c.nextPos++
	if c.nextPos == c.target {
		c.nextPos = 0
		for i := c.target; i < chIn; i++ {
			c.input.Next()
		}
	}
	return v, true
}

func (c *SpanChannelConverter) SampleRate() int { return c.input.SampleRate() }
func (c *SpanChannelConverter) Channels() int   { return c.target }

func (c *SpanChannelConverter) TotalDuration() (time.Duration, bool) {
	return c.input.TotalDuration()
}

// CurrentSpanLen reports the input's span length rescaled to output
// samples, so consumers counting what they pull from the converter see
// the span boundary in the right place.
func (c *SpanChannelConverter) CurrentSpanLen() (int, bool) {
	n, ok := c.input.CurrentSpanLen()
	if !ok {
		return 0, false
	}
	return n / c.input.Channels() * c.target, true
}
