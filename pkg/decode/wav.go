// ABOUTME: WAV file decoding
// ABOUTME: Streams go-audio PCM buffers as float32 samples
package decode

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavSource streams samples from a WAV file in PCMBuffer-sized reads.
type wavSource struct {
	file    *os.File
	decoder *wav.Decoder
	scale   float32

	duration    time.Duration
	durationSet bool

	buf *audio.IntBuffer
	pos int
	n   int
	eof bool
}

const wavBufSamples = 2048

func newWAVSource(f *os.File) (*wavSource, error) {
	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("failed to decode WAV: invalid file")
	}

	s := &wavSource{
		file:    f,
		decoder: dec,
		scale:   float32(int64(1) << (dec.BitDepth - 1)),
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %w", err)
	}
	frameBytes := int64(dec.NumChans) * int64(dec.BitDepth) / 8
	if frames := dec.PCMLen() / frameBytes; frames > 0 {
		secs := float64(frames) / float64(dec.SampleRate)
		s.duration = time.Duration(secs * float64(time.Second))
		s.durationSet = true
	}
	s.buf = &audio.IntBuffer{
		Data: make([]int, wavBufSamples),
		Format: &audio.Format{
			NumChannels: int(dec.NumChans),
			SampleRate:  int(dec.SampleRate),
		},
	}
	return s, nil
}

func (s *wavSource) Next() (float32, bool) {
	if s.pos >= s.n {
		if !s.refill() {
			return 0, false
		}
	}
	v := s.buf.Data[s.pos]
	s.pos++
	return float32(v) / s.scale, true
}

func (s *wavSource) refill() bool {
	if s.eof {
		return false
	}
	n, err := s.decoder.PCMBuffer(s.buf)
	if err != nil || n == 0 {
		s.eof = true
	}
	s.n = n
	s.pos = 0
	return s.n > 0
}

func (s *wavSource) SampleRate() int { return int(s.decoder.SampleRate) }
func (s *wavSource) Channels() int   { return int(s.decoder.NumChans) }

func (s *wavSource) TotalDuration() (time.Duration, bool) {
	return s.duration, s.durationSet
}

func (s *wavSource) Close() error { return s.file.Close() }
