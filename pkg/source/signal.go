// ABOUTME: Test waveform generators
// ABOUTME: Infinite mono sources producing sine, square, triangle, sawtooth
package source

import (
	"math"
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/audio"
)

// GeneratorFunction maps a phase in [0, 1) to an amplitude.
type GeneratorFunction func(phase float32) float32

func sineSignal(phase float32) float32 {
	return float32(math.Sin(2 * math.Pi * float64(phase)))
}

func triangleSignal(phase float32) float32 {
	return 4*float32(math.Abs(float64(phase)-math.Floor(float64(phase)+0.5))) - 1
}

func squareSignal(phase float32) float32 {
	if math.Mod(float64(phase), 1.0) < 0.5 {
		return 1
	}
	return -1
}

func sawtoothSignal(phase float32) float32 {
	return 2 * (phase - float32(math.Floor(float64(phase)+0.5)))
}

// SignalGenerator is an infinite mono source producing a periodic
// waveform at a fixed frequency.
type SignalGenerator struct {
	fn         GeneratorFunction
	phase      float32
	phaseStep  float32
	sampleRate int
}

// NewSignalGenerator builds a generator. It panics if the sample rate is
// zero or the frequency is not positive.
func NewSignalGenerator(sampleRate int, freq float64, fn GeneratorFunction) *SignalGenerator {
	audio.Format{SampleRate: sampleRate, Channels: 1}.Validate()
	if freq <= 0 {
		panic("source: frequency must be greater than zero")
	}
	return &SignalGenerator{
		fn:         fn,
		phaseStep:  float32(freq / float64(sampleRate)),
		sampleRate: sampleRate,
	}
}

// NewSineWave returns an infinite mono sine source.
func NewSineWave(sampleRate int, freq float64) *SignalGenerator {
	return NewSignalGenerator(sampleRate, freq, sineSignal)
}

// NewSquareWave returns an infinite mono square source.
func NewSquareWave(sampleRate int, freq float64) *SignalGenerator {
	return NewSignalGenerator(sampleRate, freq, squareSignal)
}

// NewTriangleWave returns an infinite mono triangle source.
func NewTriangleWave(sampleRate int, freq float64) *SignalGenerator {
	return NewSignalGenerator(sampleRate, freq, triangleSignal)
}

// NewSawtoothWave returns an infinite mono sawtooth source.
func NewSawtoothWave(sampleRate int, freq float64) *SignalGenerator {
	return NewSignalGenerator(sampleRate, freq, sawtoothSignal)
}

func (g *SignalGenerator) Next() (float32, bool) {
	v := g.fn(g.phase)
	g.phase += g.phaseStep
	if g.phase >= 1 {
		g.phase -= float32(math.Floor(float64(g.phase)))
	}
	return v, true
}

func (g *SignalGenerator) SampleRate() int { return g.sampleRate }
func (g *SignalGenerator) Channels() int   { return 1 }

func (g *SignalGenerator) TotalDuration() (time.Duration, bool) {
	return 0, false
}
