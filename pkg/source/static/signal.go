// ABOUTME: Compile-time-typed waveform generators
// ABOUTME: Mono test signals bound to a static sample rate
package static

import (
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

// SignalGenerator is an infinite mono source at static rate R.
type SignalGenerator[R Rate] struct {
	inner *source.SignalGenerator
}

// NewSignalGenerator builds a generator for an arbitrary waveform.
func NewSignalGenerator[R Rate](freq float64, fn source.GeneratorFunction) *SignalGenerator[R] {
	return &SignalGenerator[R]{inner: source.NewSignalGenerator(hertz[R](), freq, fn)}
}

// NewSineWave returns an infinite mono sine source at static rate R.
func NewSineWave[R Rate](freq float64) *SignalGenerator[R] {
	return &SignalGenerator[R]{inner: source.NewSineWave(hertz[R](), freq)}
}

// NewSquareWave returns an infinite mono square source at static rate R.
func NewSquareWave[R Rate](freq float64) *SignalGenerator[R] {
	return &SignalGenerator[R]{inner: source.NewSquareWave(hertz[R](), freq)}
}

func (g *SignalGenerator[R]) Next() (float32, bool) { return g.inner.Next() }

func (g *SignalGenerator[R]) TotalDuration() (time.Duration, bool) {
	return 0, false
}

func (g *SignalGenerator[R]) StaticFormat() (r R, c Mono) { return }
