// ABOUTME: FLAC file decoding
// ABOUTME: Interleaves mewkiz/flac frames into float32 samples
package decode

import (
	"fmt"
	"os"
	"time"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// flacSource streams samples from a FLAC file, interleaving the
// per-channel subframes of each parsed frame.
type flacSource struct {
	file   *os.File
	stream *flac.Stream
	scale  float32

	frame    *frame.Frame
	framePos int
	channels int
	eof      bool
}

func newFLACSource(f *os.File) (*flacSource, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}
	info := stream.Info
	return &flacSource{
		file:     f,
		stream:   stream,
		scale:    float32(int64(1) << (info.BitsPerSample - 1)),
		channels: int(info.NChannels),
	}, nil
}

func (s *flacSource) Next() (float32, bool) {
	if s.frame == nil || s.framePos >= int(s.frame.BlockSize)*s.channels {
		if !s.parseNext() {
			return 0, false
		}
	}
	i := s.framePos / s.channels
	ch := s.framePos % s.channels
	s.framePos++
	return float32(s.frame.Subframes[ch].Samples[i]) / s.scale, true
}

func (s *flacSource) parseNext() bool {
	if s.eof {
		return false
	}
	fr, err := s.stream.ParseNext()
	if err != nil {
		s.eof = true
		return false
	}
	s.frame = fr
	s.framePos = 0
	return fr.BlockSize > 0
}

func (s *flacSource) SampleRate() int { return int(s.stream.Info.SampleRate) }
func (s *flacSource) Channels() int   { return s.channels }

func (s *flacSource) TotalDuration() (time.Duration, bool) {
	total := s.stream.Info.NSamples
	if total == 0 {
		return 0, false
	}
	secs := float64(total) / float64(s.stream.Info.SampleRate)
	return time.Duration(secs * float64(time.Second)), true
}

func (s *flacSource) Close() error { return s.file.Close() }
