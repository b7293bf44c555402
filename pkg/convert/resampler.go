// ABOUTME: Sample-rate conversion for runtime-fixed sources
// ABOUTME: Windowed-sinc interpolation over fixed-size input chunks
package convert

import (
	"math"
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

const (
	// chunkFrames is the number of input frames read per refill.
	chunkFrames = 1024

	kernelLen = 2 * kernelHalf
)

// Resampler converts a source with a fixed sample rate to a target
// rate. Input is consumed in chunks of chunkFrames frames. The history
// region is primed with zeros so the first output sample lines up with
// the first input sample; the final chunk is padded with silence so no
// trailing input is lost.
type Resampler struct {
	input    source.Source
	outRate  int
	channels int
	step     float64 // input frames advanced per output frame
	kern     *sincKernel
	bypass   bool

	// buf holds, per channel: kernelLen history frames, up to
	// chunkFrames chunk frames, and kernelHalf frames of pad.
	buf     [][]float64
	loaded  int   // frames in the chunk region
	basePos int64 // input frame index of the first chunk frame

	outFrame int64
	out      []float32
	outIdx   int

	eos      bool
	finished bool
}

// NewResampler wraps input, converting it to targetRate. Passing the
// input's own rate yields a passthrough.
func NewResampler(input source.Source, targetRate int) *Resampler {
	if targetRate <= 0 {
		panic("convert: sample rate must be > 0")
	}
	r := &Resampler{
		input:    input,
		outRate:  targetRate,
		channels: input.Channels(),
	}
	inRate := input.SampleRate()
	if inRate == targetRate {
		r.bypass = true
		return r
	}
	r.step = float64(inRate) / float64(targetRate)
	r.kern = newSincKernel(float64(targetRate) / float64(inRate))
	r.buf = make([][]float64, r.channels)
	for ch := range r.buf {
		r.buf[ch] = make([]float64, kernelLen+chunkFrames+kernelHalf)
	}
	return r
}

func (r *Resampler) Next() (float32, bool) {
	if r.bypass {
		return r.input.Next()
	}
	for r.outIdx >= len(r.out) {
		if r.finished {
			return 0, false
		}
		r.refill()
	}
	v := r.out[r.outIdx]
	r.outIdx++
	return v, true
}

func (r *Resampler) refill() {
	// Carry the tail of the previous chunk as history.
	if r.loaded > 0 {
		for ch := range r.buf {
			copy(r.buf[ch][:kernelLen], r.buf[ch][r.loaded:r.loaded+kernelLen])
		}
		r.basePos += int64(r.loaded)
	}

	n := 0
	for n < chunkFrames {
		v, ok := r.input.Next()
		if !ok {
			r.eos = true
			break
		}
		r.buf[0][kernelLen+n] = float64(v)
		for ch := 1; ch < r.channels; ch++ {
			v, ok := r.input.Next()
			if !ok {
				panic("convert: sources may not emit half frames")
			}
			r.buf[ch][kernelLen+n] = float64(v)
		}
		n++
	}
	r.loaded = n

	if r.eos {
		// Silence past the final frame so trailing centers still
		// see a full interpolation window.
		for ch := range r.buf {
			tail := r.buf[ch][kernelLen+n:]
			for i := range tail {
				tail[i] = 0
			}
		}
		r.finished = true
	}

	r.out = r.out[:0]
	r.outIdx = 0
	end := r.basePos + int64(n)
	for {
		p := float64(r.outFrame) * r.step
		if r.eos {
			if p >= float64(end) {
				break
			}
		} else if int64(math.Floor(p))+kernelHalf >= end {
			// The window runs past the loaded data; resume after
			// the next chunk arrives.
			break
		}
		for ch := 0; ch < r.channels; ch++ {
			r.out = append(r.out, r.interpolate(ch, p))
		}
		r.outFrame++
	}
}

func (r *Resampler) interpolate(ch int, p float64) float32 {
	ip := math.Floor(p)
	frac := p - ip
	base := int64(ip) - r.basePos + kernelLen
	buf := r.buf[ch]
	var acc float64
	for k := -kernelHalf + 1; k <= kernelHalf; k++ {
		acc += buf[base+int64(k)] * r.kern.at(float64(k)-frac)
	}
	return float32(acc)
}

func (r *Resampler) SampleRate() int { return r.outRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) TotalDuration() (time.Duration, bool) {
	return r.input.TotalDuration()
}
