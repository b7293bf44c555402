// ABOUTME: Windowed-sinc interpolation kernel shared by the resamplers
// ABOUTME: Precomputed Blackman-windowed table with linear lookup
package convert

import (
	"math"

	"github.com/mjibson/go-dsp/window"
)

const (
	// kernelHalf is the half width of the interpolation kernel in
	// input frames. Each output sample sums 2*kernelHalf input samples.
	kernelHalf = 64

	// kernelOversample is the table resolution per input frame.
	kernelOversample = 128
)

// sincKernel is a Blackman-windowed sinc evaluated on an oversampled
// grid over [0, kernelHalf]. The kernel is symmetric, so only the
// non-negative half is stored. cutoff is the normalized passband edge
// relative to the input Nyquist; downsampling lowers it below 1 to
// suppress aliasing.
type sincKernel struct {
	table []float64
}

func newSincKernel(cutoff float64) *sincKernel {
	if cutoff > 1 {
		cutoff = 1
	}
	n := kernelHalf * kernelOversample
	win := window.Blackman(2*n + 1)
	table := make([]float64, n+1)
	for i := range table {
		t := float64(i) / kernelOversample
		table[i] = cutoff * sinc(cutoff*t) * win[n+i]
	}

	// Normalize so a DC input passes through at unity gain.
	var sum float64
	for k := -kernelHalf + 1; k <= kernelHalf; k++ {
		sum += lookup(table, math.Abs(float64(k)))
	}
	for i := range table {
		table[i] /= sum
	}
	return &sincKernel{table: table}
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// at evaluates the kernel at distance t (in input frames) from the
// interpolation center. Returns 0 outside the kernel support.
func (k *sincKernel) at(t float64) float64 {
	return lookup(k.table, math.Abs(t))
}

func lookup(table []float64, t float64) float64 {
	pos := t * kernelOversample
	i := int(pos)
	if i >= len(table)-1 {
		return 0
	}
	frac := pos - float64(i)
	return table[i]*(1-frac) + table[i+1]*frac
}
