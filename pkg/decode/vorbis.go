// ABOUTME: Ogg Vorbis file decoding
// ABOUTME: Streams oggvorbis float32 output directly
package decode

import (
	"fmt"
	"os"
	"time"

	"github.com/jfreymuth/oggvorbis"
)

// vorbisSource streams samples from an Ogg Vorbis file. The decoder
// already produces float32, so samples pass through unscaled.
type vorbisSource struct {
	file   *os.File
	reader *oggvorbis.Reader

	buf []float32
	pos int
	n   int
	eof bool
}

const vorbisBufSamples = 2048

func newVorbisSource(f *os.File) (*vorbisSource, error) {
	r, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Ogg Vorbis: %w", err)
	}
	return &vorbisSource{
		file:   f,
		reader: r,
		buf:    make([]float32, vorbisBufSamples),
	}, nil
}

func (s *vorbisSource) Next() (float32, bool) {
	if s.pos >= s.n {
		if !s.refill() {
			return 0, false
		}
	}
	v := s.buf[s.pos]
	s.pos++
	return v, true
}

func (s *vorbisSource) refill() bool {
	if s.eof {
		return false
	}
	n, err := s.reader.Read(s.buf)
	if err != nil {
		s.eof = true
	}
	s.n = n
	s.pos = 0
	return s.n > 0
}

func (s *vorbisSource) SampleRate() int { return s.reader.SampleRate() }
func (s *vorbisSource) Channels() int   { return s.reader.Channels() }

func (s *vorbisSource) TotalDuration() (time.Duration, bool) {
	frames := s.reader.Length()
	if frames <= 0 {
		return 0, false
	}
	secs := float64(frames) / float64(s.reader.SampleRate())
	return time.Duration(secs * float64(time.Second)), true
}

func (s *vorbisSource) Close() error { return s.file.Close() }
