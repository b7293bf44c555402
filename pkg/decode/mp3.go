// ABOUTME: MP3 file decoding
// ABOUTME: Streams go-mp3 output as float32 samples
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Source streams samples from an MP3 file. go-mp3 always outputs
// 16-bit little-endian stereo.
type mp3Source struct {
	file    *os.File
	decoder *mp3.Decoder

	buf []byte
	pos int
	n   int
	eof bool
}

const mp3BufBytes = 4096

func newMP3Source(f *os.File) (*mp3Source, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}
	return &mp3Source{
		file:    f,
		decoder: dec,
		buf:     make([]byte, mp3BufBytes),
	}, nil
}

func (s *mp3Source) Next() (float32, bool) {
	if s.pos >= s.n {
		if !s.refill() {
			return 0, false
		}
	}
	v := int16(binary.LittleEndian.Uint16(s.buf[s.pos:]))
	s.pos += 2
	return float32(v) / 32768, true
}

func (s *mp3Source) refill() bool {
	if s.eof {
		return false
	}
	n, err := io.ReadFull(s.decoder, s.buf)
	if err != nil {
		s.eof = true
	}
	// Samples are two bytes; a torn trailing byte is dropped.
	s.n = n &^ 1
	s.pos = 0
	return s.n > 0
}

func (s *mp3Source) SampleRate() int { return s.decoder.SampleRate() }
func (s *mp3Source) Channels() int   { return 2 }

func (s *mp3Source) TotalDuration() (time.Duration, bool) {
	// Length reports decoded bytes: 2 bytes per sample, 2 channels.
	frames := s.decoder.Length() / 4
	if frames <= 0 {
		return 0, false
	}
	secs := float64(frames) / float64(s.decoder.SampleRate())
	return time.Duration(secs * float64(time.Second)), true
}

func (s *mp3Source) Close() error { return s.file.Close() }
