// ABOUTME: Tests for the compile-time-fixed source strength
// ABOUTME: Tests markers, adaptors, converters, mixers and the uniform queue
package static

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

// buffer is a static test source over a sample slice.
type buffer[R Rate, C Layout] struct {
	data []float32
	pos  int
}

func newBuffer[R Rate, C Layout](data []float32) *buffer[R, C] {
	return &buffer[R, C]{data: data}
}

func (b *buffer[R, C]) Next() (float32, bool) {
	if b.pos >= len(b.data) {
		return 0, false
	}
	v := b.data[b.pos]
	b.pos++
	return v, true
}

func (b *buffer[R, C]) TotalDuration() (time.Duration, bool) {
	frames := len(b.data) / channelCount[C]()
	return time.Duration(frames) * time.Second / time.Duration(hertz[R]()), true
}

func (b *buffer[R, C]) StaticFormat() (r R, c C) { return }

func drain[R Rate, C Layout](s Source[R, C]) []float32 {
	var out []float32
	for {
		v, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestAsSourceReportsStaticFormat(t *testing.T) {
	s := AsSource[Rate48000, Stereo](newBuffer[Rate48000, Stereo]([]float32{0, 0}))

	if s.SampleRate() != 48000 {
		t.Errorf("expected 48000, got %d", s.SampleRate())
	}
	if s.Channels() != 2 {
		t.Errorf("expected 2 channels, got %d", s.Channels())
	}
	if _, known := s.TotalDuration(); !known {
		t.Error("total duration must be preserved by delegation")
	}
}

func TestPromoteChecksOnce(t *testing.T) {
	ok := source.NewSamplesBuffer(44100, 2, []float32{1, 2})
	promoted, err := Promote[Rate44100, Stereo](ok)
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if v, _ := promoted.Next(); v != 1 {
		t.Errorf("expected delegated sample, got %f", v)
	}

	_, err = Promote[Rate48000, Stereo](source.NewSamplesBuffer(44100, 2, nil))
	var rateErr *source.WrongSampleRateError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected WrongSampleRateError, got %v", err)
	}
}

func TestChannelConvertorMonoToStereo(t *testing.T) {
	mono := newBuffer[Rate44100, Mono]([]float32{0.1, 0.2, 0.3})
	stereo := NewChannelConvertor[Rate44100, Mono, Stereo](mono)

	got := drain[Rate44100, Stereo](stereo)
	want := []float32{0.1, 0.1, 0.2, 0.2, 0.3, 0.3}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestChannelConvertorStereoToMono(t *testing.T) {
	stereo := newBuffer[Rate44100, Stereo]([]float32{0.1, 0.9, 0.2, 0.8})
	mono := NewChannelConvertor[Rate44100, Stereo, Mono](stereo)

	got := drain[Rate44100, Mono](mono)
	want := []float32{0.1, 0.2}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestMixerAveragesAndSwitchesPrecision(t *testing.T) {
	a := newBuffer[Rate44100, Mono]([]float32{0.2})
	b := newBuffer[Rate44100, Mono]([]float32{0.4})
	m := NewMixer[Rate44100, Mono](
		[]*buffer[Rate44100, Mono]{a, b},
	)
	if m.useDouble {
		t.Error("two sources must use the single-precision path")
	}
	if v, ok := m.Next(); !ok || math.Abs(float64(v)-0.3) > 1e-6 {
		t.Errorf("expected 0.3, got %f ok=%v", v, ok)
	}

	many := make([]*buffer[Rate44100, Mono], 20)
	for i := range many {
		many[i] = newBuffer[Rate44100, Mono]([]float32{1})
	}
	if !NewMixer[Rate44100, Mono](many).useDouble {
		t.Error("20 sources must use the double-precision path")
	}
}

func TestListPlaysBackToBack(t *testing.T) {
	l := NewList[Rate44100, Mono]([]*buffer[Rate44100, Mono]{
		newBuffer[Rate44100, Mono]([]float32{0.1, 0.2}),
		newBuffer[Rate44100, Mono](nil),
		newBuffer[Rate44100, Mono]([]float32{0.3}),
	})

	got := drain[Rate44100, Mono](l)
	want := []float32{0.1, 0.2, 0.3}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}
	if _, ok := l.Next(); ok {
		t.Error("expected end of stream to stick")
	}
}

func TestListDurationSums(t *testing.T) {
	l := NewList[Rate44100, Mono]([]*buffer[Rate44100, Mono]{
		newBuffer[Rate44100, Mono](make([]float32, 44100)),
		newBuffer[Rate44100, Mono](make([]float32, 22050)),
	})
	d, known := l.TotalDuration()
	if !known || d != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v known=%v", d, known)
	}

	// Any unknown element makes the whole list unknown.
	u := NewList[Rate44100, Mono]([]Source[Rate44100, Mono]{
		newBuffer[Rate44100, Mono](nil),
		NewSineWave[Rate44100](440),
	})
	if _, known := u.TotalDuration(); known {
		t.Error("expected unknown duration")
	}
}

func TestPairMixerHeterogeneousTypes(t *testing.T) {
	tone := NewSineWave[Rate44100](440)
	buf := newBuffer[Rate44100, Mono](make([]float32, 4))

	m := NewPairMixer[Rate44100, Mono](buf, tone)
	for i := 0; i < 8; i++ {
		if _, ok := m.Next(); !ok {
			t.Fatal("sine keeps the mix alive after the buffer drains")
		}
	}
}

func TestChanMixerGrows(t *testing.T) {
	m, tx := NewChanMixer[Rate44100, Mono, *buffer[Rate44100, Mono]]()

	if _, ok := m.Next(); ok {
		t.Fatal("expected end of stream with zero active sources")
	}

	tx <- newBuffer[Rate44100, Mono]([]float32{0.5, 0.5})
	if v, ok := m.Next(); !ok || v != 0.5 {
		t.Errorf("expected source picked up at frame boundary, got %f ok=%v", v, ok)
	}
}

func TestUniformQueueOrdering(t *testing.T) {
	q, handle := NewUniformQueue[Rate44100, Mono, *buffer[Rate44100, Mono]]()

	first, err := handle.Add(newBuffer[Rate44100, Mono]([]float32{1, 1}))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	second, err := handle.Add(newBuffer[Rate44100, Mono]([]float32{2, 2}))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if second.Source <= first.Source {
		t.Error("ids must be monotonically increasing")
	}

	want := []float32{1, 1, 2, 2}
	for i, w := range want {
		v, ok := q.Next()
		if !ok || v != w {
			t.Fatalf("sample %d: expected %f, got %f ok=%v", i, w, v, ok)
		}
	}
	if id := handle.Current(); id.Source != second.Source {
		t.Errorf("expected current id %d, got %d", second.Source, id.Source)
	}

	// Starved: silence, not end of stream.
	if v, ok := q.Next(); !ok || v != 0 {
		t.Errorf("expected silence fill, got %f ok=%v", v, ok)
	}
}

func TestUniformQueueDropped(t *testing.T) {
	q, handle := NewUniformQueue[Rate44100, Mono, *buffer[Rate44100, Mono]]()
	q.Close()

	_, err := handle.Add(newBuffer[Rate44100, Mono](nil))
	if !errors.Is(err, source.ErrQueueDropped) {
		t.Errorf("expected ErrQueueDropped, got %v", err)
	}
}

func TestTakeAndPeriodicAccess(t *testing.T) {
	tone := NewSineWave[Rate44100](440)
	limited := NewTakeSamples[Rate44100, Mono](tone, 10)

	calls := 0
	// 44100 samples per second; huge interval means exactly one call.
	p := NewPeriodicAccess[Rate44100, Mono](limited, time.Hour, func(*TakeSamples[Rate44100, Mono, *SignalGenerator[Rate44100]]) {
		calls++
	})

	n := 0
	for {
		if _, ok := p.Next(); !ok {
			break
		}
		n++
	}
	if n != 10 {
		t.Errorf("expected 10 samples, got %d", n)
	}
	if calls != 1 {
		t.Errorf("expected one access, got %d", calls)
	}
}
