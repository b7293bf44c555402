// ABOUTME: Channel-count conversion for runtime-fixed sources
// ABOUTME: Upmix by repeating the first frame sample, downmix by discarding
package convert

import (
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/audio"
	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

// ChannelConverter converts a runtime-fixed source to a different
// channel count. On upmix the first sample of each input frame is
// repeated into the second channel slot and any slot beyond 2 is filled
// with silence; on downmix the extra input channels of each frame are
// discarded. One full input frame is always consumed before a full
// output frame is produced; a source handing out half frames is a
// programming error and panics.
type ChannelConverter struct {
	input        source.Source
	target       int
	sampleRepeat float32
	nextPos      int
}

// NewChannelConverter wraps input, converting to target channels. It
// panics if target is not positive.
func NewChannelConverter(input source.Source, target int) *ChannelConverter {
	audio.Format{SampleRate: input.SampleRate(), Channels: target}.Validate()
	return &ChannelConverter{input: input, target: target}
}

func (c *ChannelConverter) Next() (float32, bool) {
	chIn := c.input.Channels()

	var v float32
	var ok bool
	switch {
	case c.nextPos == 0:
		// Save the first sample for mono -> stereo conversion.
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
		v, ok = 0, true // all other added channels are empty
	}

	if !ok {
		return 0, false
	}

	c.nextPos++
	if c.nextPos == c.target {
		c.nextPos = 0
		for i := c.target; i < chIn; i++ {
			c.input.Next() // discarding extra input
		}
	}
	return v, true
}

func (c *ChannelConverter) SampleRate() int { return c.input.SampleRate() }
func (c *ChannelConverter) Channels() int   { return c.target }

func (c *ChannelConverter) TotalDuration() (time.Duration, bool) {
	return c.input.TotalDuration()
}
