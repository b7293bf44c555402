// ABOUTME: Compile-time channel-count conversion
// ABOUTME: Converts between static layouts one full frame at a time
package static

import "time"

// ChannelConvertor converts a static source from layout CIn to COut with
// zero runtime format checks. On upmix the first sample of each input
// frame is repeated into the second channel slot and any slot beyond 2
// is filled with silence; on downmix the extra input channels of each
// frame are discarded. One full input frame is always consumed before a
// full output frame is produced.
type ChannelConvertor[R Rate, CIn, COut Layout, S Source[R, CIn]] struct {
	input        S
	sampleRepeat float32
	nextPos      int
}

// NewChannelConvertor wraps input.
func NewChannelConvertor[R Rate, CIn, COut Layout, S Source[R, CIn]](input S) *ChannelConvertor[R, CIn, COut, S] {
	return &ChannelConvertor[R, CIn, COut, S]{input: input}
}

func (c *ChannelConvertor[R, CIn, COut, S]) Next() (float32, bool) {
	chIn := channelCount[CIn]()
	chOut := channelCount[COut]()

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
			panic("static: sources may not emit half frames")
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
	if c.nextPos == chOut {
		c.nextPos = 0
		for i := chOut; i < chIn; i++ {
			c.input.Next() // discarding extra input
		}
	}
	return v, true
}

func (c *ChannelConvertor[R, CIn, COut, S]) TotalDuration() (time.Duration, bool) {
	return c.input.TotalDuration()
}

func (c *ChannelConvertor[R, CIn, COut, S]) StaticFormat() (r R, out COut) { return }
