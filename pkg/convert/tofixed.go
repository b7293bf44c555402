// ABOUTME: Pins a dynamic source to a fixed output format
// ABOUTME: Channel conversion first, then rate conversion
package convert

import "github.com/Chorus-Audio/chorus-go/pkg/source"

// ToFixed adapts a dynamic source to a runtime-fixed format. The
// result always reports the requested rate and channel count, whatever
// the input's spans do. Channels are converted before the rate so the
// resampler never sees a channel change.
func ToFixed(input source.SpanSource, sampleRate, channels int) source.Source {
	conv := NewSpanChannelConverter(input, channels)
	return NewSpanResampler(conv, sampleRate)
}
