// ABOUTME: Gain adaptor and volume factor conversions
// ABOUTME: Multiplies samples by a linear factor settable between frames
package source

import (
	"math"
	"time"
)

// Factor expresses an amplification in one of three scales that all
// reduce to a linear gain.
type Factor struct {
	linear float32
}

// Linear builds a factor from a plain linear gain.
func Linear(v float32) Factor { return Factor{linear: v} }

// Decibel builds a factor from a dB value. 0 dB is no change, positive
// values amplify, negative values attenuate.
func Decibel(db float32) Factor {
	return Factor{linear: float32(math.Pow(10, float64(db)/20))}
}

// Normalized builds a factor from a [0.0, 1.0] volume that matches
// perceived loudness better than a linear scale. Values outside the
// range are clamped.
// Based on: https://www.dr-lex.be/info-stuff/volumecontrols.html
func Normalized(v float32) Factor {
	const (
		growthRate  = 6.907_755_4
		scaleFactor = 1000.0
	)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	amplitude := float32(math.Exp(growthRate*float64(v))) / scaleFactor
	if v < 0.1 {
		amplitude *= v * 10
	}
	return Factor{linear: amplitude}
}

// AsLinear returns the gain as a plain multiplier.
func (f Factor) AsLinear() float32 { return f.linear }

// Amplify multiplies every sample of the wrapped source by a factor.
// SetFactor must only be called with exclusive access to the source,
// e.g. from a PeriodicAccess callback.
type Amplify struct {
	inner  Source
	factor float32
}

// NewAmplify wraps inner with the given gain.
func NewAmplify(inner Source, factor Factor) *Amplify {
	return &Amplify{inner: inner, factor: factor.AsLinear()}
}

// SetFactor replaces the gain applied to subsequent samples.
func (a *Amplify) SetFactor(factor Factor) {
	a.factor = factor.AsLinear()
}

func (a *Amplify) Next() (float32, bool) {
	s, ok := a.inner.Next()
	return s * a.factor, ok
}

func (a *Amplify) SampleRate() int                      { return a.inner.SampleRate() }
func (a *Amplify) Channels() int                        { return a.inner.Channels() }
func (a *Amplify) TotalDuration() (time.Duration, bool) { return a.inner.TotalDuration() }
