// ABOUTME: Tests for the averaging mixers
// ABOUTME: Tests skip-on-exhausted, precision switch and frame-boundary growth
package source

import (
	"errors"
	"math"
	"testing"
	"time"
)

func constSources(n int, value float32, samples int) []Source {
	sources := make([]Source, n)
	for i := range sources {
		data := make([]float32, samples)
		for j := range data {
			data[j] = value
		}
		sources[i] = NewSamplesBuffer(44100, 1, data)
	}
	return sources
}

func TestMixerAveragesSources(t *testing.T) {
	a := NewSamplesBuffer(44100, 1, []float32{0.2, 0.2})
	b := NewSamplesBuffer(44100, 1, []float32{0.4, 0.4})

	m, err := NewMixer([]Source{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := collect(m)
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	for i, v := range got {
		if math.Abs(float64(v)-0.3) > 1e-6 {
			t.Errorf("sample %d: expected 0.3, got %f", i, v)
		}
	}
}

func TestMixerSkipsExhaustedSources(t *testing.T) {
	short := NewSamplesBuffer(44100, 1, []float32{0.4})
	long := NewSamplesBuffer(44100, 1, []float32{0.4, 0.8, 0.8})

	m, err := NewMixer([]Source{short, long})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := collect(m)
	// First sample averages both, the rest comes from the long source
	// alone (skipped, not zero-filled).
	want := []float32{0.4, 0.8, 0.8}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestMixerEndsWhenAllExhausted(t *testing.T) {
	m, err := NewMixer(constSources(3, 0.1, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	collect(m)
	if _, ok := m.Next(); ok {
		t.Error("expected end of stream, not silence")
	}
}

func TestMixerEmptyIsEndOfStream(t *testing.T) {
	m, err := NewMixer(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.Next(); ok {
		t.Error("expected end of stream from an empty mixer")
	}
}

func TestMixerRejectsFormatMismatch(t *testing.T) {
	a := NewSamplesBuffer(44100, 1, []float32{0})
	b := NewSamplesBuffer(48000, 1, []float32{0})

	_, err := NewMixer([]Source{a, b})
	var rateErr *WrongSampleRateError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected WrongSampleRateError, got %v", err)
	}
	if rateErr.Expected != 44100 || rateErr.Got != 48000 {
		t.Errorf("unexpected fields: %+v", rateErr)
	}

	c := NewSamplesBuffer(44100, 2, []float32{0, 0})
	_, err = NewMixer([]Source{a, c})
	var chErr *WrongChannelCountError
	if !errors.As(err, &chErr) {
		t.Fatalf("expected WrongChannelCountError, got %v", err)
	}
}

func TestMixerAccumulatesInDoublePrecision(t *testing.T) {
	// A small contribution between two large opposite-sign samples is
	// lost entirely by a float32 accumulator (1e8 + 1 == 1e8 in
	// float32). The mixer must preserve it regardless of source count.
	m, _ := NewMixer([]Source{
		NewSamplesBuffer(44100, 1, []float32{1e8}),
		NewSamplesBuffer(44100, 1, []float32{1}),
		NewSamplesBuffer(44100, 1, []float32{-1e8}),
	})
	got, ok := m.Next()
	if !ok {
		t.Fatal("expected a sample")
	}
	want := float32(1.0 / 3.0)
	if math.Abs(float64(got-want)) > 1e-7 {
		t.Errorf("expected %g, got %g", want, got)
	}
}

func TestMixerDurationIsLongest(t *testing.T) {
	a := NewSamplesBuffer(1000, 1, make([]float32, 1000)) // 1s
	b := NewSamplesBuffer(1000, 1, make([]float32, 3000)) // 3s

	m, _ := NewMixer([]Source{a, b})
	d, known := m.TotalDuration()
	if !known || d != 3*time.Second {
		t.Errorf("expected 3s, got %v known=%v", d, known)
	}

	// Any unknown duration makes the mix unknown.
	m2, _ := NewMixer([]Source{NewSamplesBuffer(1000, 1, nil), NewSineWave(1000, 100)})
	if _, known := m2.TotalDuration(); known {
		t.Error("expected unknown duration")
	}
}

func TestChanMixerEmptyIsEndOfStream(t *testing.T) {
	m, _ := NewChanMixer(44100, 2)
	if _, ok := m.Next(); ok {
		t.Error("expected end of stream from a mixer with zero active sources")
	}
}

func TestChanMixerAcceptsAtFrameBoundaries(t *testing.T) {
	m, handle := NewChanMixer(1000, 2)

	first := make([]float32, 8)
	for i := range first {
		first[i] = 0.5
	}
	if err := handle.Add(NewSamplesBuffer(1000, 2, first)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Pull one sample: mid-frame now.
	if v, ok := m.Next(); !ok || v != 0.5 {
		t.Fatalf("expected 0.5, got %f ok=%v", v, ok)
	}

	second := make([]float32, 8)
	for i := range second {
		second[i] = 1.0
	}
	if err := handle.Add(NewSamplesBuffer(1000, 2, second)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Second half of the current frame must not include the new source.
	if v, _ := m.Next(); v != 0.5 {
		t.Errorf("new source joined mid-frame: got %f", v)
	}

	// Next frame boundary: now both mix to 0.75.
	if v, _ := m.Next(); math.Abs(float64(v)-0.75) > 1e-6 {
		t.Errorf("expected 0.75 at the next frame, got %f", v)
	}
}

func TestChanMixerRejectsMismatchAndDropped(t *testing.T) {
	m, handle := NewChanMixer(44100, 2)

	err := handle.Add(NewSamplesBuffer(44100, 1, nil))
	var chErr *WrongChannelCountError
	if !errors.As(err, &chErr) {
		t.Fatalf("expected WrongChannelCountError, got %v", err)
	}

	m.Close()
	err = handle.Add(NewSamplesBuffer(44100, 2, nil))
	if !errors.Is(err, ErrQueueDropped) {
		t.Errorf("expected ErrQueueDropped, got %v", err)
	}
}
