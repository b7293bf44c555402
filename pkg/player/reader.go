// ABOUTME: io.Reader bridge from a sample source to the sound device
// ABOUTME: Encodes pulled samples as little-endian float32 bytes
package player

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

// sampleReader adapts a source to the byte stream oto pulls from. The
// device may read lengths that are not a multiple of four, so a torn
// sample is carried over to the following read.
type sampleReader struct {
	src source.Source
	rem [4]byte
	// bytes of rem already handed out
	remUsed int
	eos     bool
}

func newSampleReader(src source.Source) *sampleReader {
	return &sampleReader{src: src, remUsed: 4}
}

func (r *sampleReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.remUsed < 4 {
			p[n] = r.rem[r.remUsed]
			r.remUsed++
			n++
			continue
		}
		if r.eos {
			break
		}
		v, ok := r.src.Next()
		if !ok {
			r.eos = true
			break
		}
		binary.LittleEndian.PutUint32(r.rem[:], math.Float32bits(v))
		r.remUsed = 0
	}
	if n == 0 && r.eos {
		return 0, io.EOF
	}
	return n, nil
}
