// ABOUTME: Shared playback parameter cell
// ABOUTME: Atomic volume and pause state crossing the control boundary
package player

import (
	"math"
	"sync/atomic"
)

// Params carries volume and pause state from the control plane to the
// audio goroutine. Setters may run on any goroutine; the audio
// goroutine reads the cell from a periodic-access callback, so writes
// take effect within one propagation interval.
type Params struct {
	volume atomic.Uint32 // float32 bits
	paused atomic.Bool
}

// NewParams builds a cell with the given initial state.
func NewParams(volume float32, paused bool) *Params {
	p := &Params{}
	p.SetVolume(volume)
	p.SetPaused(paused)
	return p
}

// SetVolume stores a linear gain.
func (p *Params) SetVolume(v float32) {
	p.volume.Store(math.Float32bits(v))
}

// Volume returns the current linear gain.
func (p *Params) Volume() float32 {
	return math.Float32frombits(p.volume.Load())
}

// SetPaused stores the pause state.
func (p *Params) SetPaused(paused bool) {
	p.paused.Store(paused)
}

// Paused returns the current pause state.
func (p *Params) Paused() bool {
	return p.paused.Load()
}
