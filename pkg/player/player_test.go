// ABOUTME: Tests for the playback composition pieces
// ABOUTME: Exercises the pull chain without touching a real device
package player

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

func TestParamsRoundTrip(t *testing.T) {
	p := NewParams(0.8, true)
	if v := p.Volume(); v != 0.8 {
		t.Errorf("Volume() = %v, want 0.8", v)
	}
	if !p.Paused() {
		t.Error("Paused() = false, want true")
	}

	p.SetVolume(0.25)
	p.SetPaused(false)
	if v := p.Volume(); v != 0.25 {
		t.Errorf("Volume() = %v, want 0.25", v)
	}
	if p.Paused() {
		t.Error("Paused() = true, want false")
	}
}

func TestAbortHandle(t *testing.T) {
	h := &AbortHandle{}
	if h.Aborted() {
		t.Error("new handle reports aborted")
	}
	h.Abort()
	h.Abort()
	if !h.Aborted() {
		t.Error("Aborted() = false after Abort")
	}
}

// TestParameterPropagation builds the audio goroutine's pull chain by
// hand and checks that parameter writes land within one refresh
// interval of samples.
func TestParameterPropagation(t *testing.T) {
	const interval = 10 * time.Millisecond

	queue, handle := source.NewQueue(1000, 1)
	params := NewParams(1.0, false)
	pausable := source.NewPausable(queue, params.Paused())
	amplified := source.NewAmplify(pausable, source.Linear(params.Volume()))
	controlled := source.NewPeriodicAccess(amplified, interval, func(source.Source) {
		pausable.SetPaused(params.Paused())
		amplified.SetFactor(source.Linear(params.Volume()))
	})

	if _, err := handle.Add(source.NewSamplesBuffer(1000, 1, constant(100, 0.5))); err != nil {
		t.Fatal(err)
	}

	// 10ms at 1000 Hz is 10 samples per refresh.
	for i := 0; i < 10; i++ {
		if v, _ := controlled.Next(); v != 0.5 {
			t.Fatalf("sample %d = %v, want 0.5", i, v)
		}
	}

	params.SetVolume(0.5)
	if v, _ := controlled.Next(); v != 0.25 {
		t.Errorf("after volume change: sample = %v, want 0.25", v)
	}

	params.SetPaused(true)
	for i := 0; i < 10; i++ {
		controlled.Next()
	}
	if v, _ := controlled.Next(); v != 0 {
		t.Errorf("while paused: sample = %v, want 0", v)
	}
}

// TestAbortReplacesTrack mirrors Add's track chain: aborting the
// previous handle must end the old track so the queue moves on to the
// new one instead of playing both back to back in full.
func TestAbortReplacesTrack(t *testing.T) {
	const interval = 10 * time.Millisecond

	queue, handle := source.NewQueue(1000, 1)

	makeTrack := func(v float32) (source.Source, *AbortHandle) {
		inner := source.NewStoppable(source.NewSamplesBuffer(1000, 1, constant(500, v)))
		abort := &AbortHandle{}
		entry := source.NewPeriodicAccess(inner, interval, func(source.Source) {
			if abort.Aborted() {
				inner.Stop()
			}
		})
		return entry, abort
	}

	first, firstAbort := makeTrack(0.1)
	if _, err := handle.Add(first); err != nil {
		t.Fatal(err)
	}
	second, _ := makeTrack(0.2)
	firstAbort.Abort()
	if _, err := handle.Add(second); err != nil {
		t.Fatal(err)
	}

	// The first track may play out the refresh period in flight, but
	// must end at the next tick rather than after its full 500
	// samples.
	got := 0.0
	for i := 0; i < 30; i++ {
		v, _ := queue.Next()
		got = float64(v)
		if got == 0.2 {
			break
		}
	}
	if got != 0.2 {
		t.Fatalf("second track not reached within 30 samples of an abort")
	}
}

func TestSampleReaderEncodesLittleEndianFloats(t *testing.T) {
	buf := source.NewSamplesBuffer(1000, 1, []float32{1.0})
	r := newSampleReader(buf)

	out := make([]byte, 8)
	n, err := r.Read(out)
	if err != nil || n != 4 {
		t.Fatalf("Read() = %d, %v, want 4, nil", n, err)
	}
	// 1.0 is 0x3f800000.
	want := []byte{0x00, 0x00, 0x80, 0x3f}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, out[i], want[i])
		}
	}

	if _, err := r.Read(out); err != io.EOF {
		t.Errorf("Read() after end = %v, want io.EOF", err)
	}
}

func TestSampleReaderTornReads(t *testing.T) {
	buf := source.NewSamplesBuffer(1000, 1, []float32{1.0, -1.0})
	r := newSampleReader(buf)

	var got []byte
	chunk := make([]byte, 3)
	for {
		n, err := r.Read(chunk)
		got = append(got, chunk[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	want := []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x80, 0xbf}
	if len(got) != len(want) {
		t.Fatalf("read %d bytes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

type closeCounter struct{ n int }

func (c *closeCounter) Close() error { c.n++; return nil }

func TestCloseWhenDone(t *testing.T) {
	c := &closeCounter{}
	src := &closeWhenDone{
		Source: source.NewSamplesBuffer(1000, 1, []float32{0.5}),
		closer: c,
	}

	if _, ok := src.Next(); !ok {
		t.Fatal("Next() ended early")
	}
	if c.n != 0 {
		t.Fatal("closed before end of stream")
	}
	src.Next()
	src.Next()
	if c.n != 1 {
		t.Errorf("closer called %d times, want 1", c.n)
	}
}

func TestCloseWhenDoneOnStop(t *testing.T) {
	c := &closeCounter{}
	stoppable := source.NewStoppable(source.NewSamplesBuffer(1000, 1, constant(100, 0.5)))
	src := &closeWhenDone{Source: stoppable, closer: c}

	src.Next()
	stoppable.Stop()
	src.Next()
	if c.n != 1 {
		t.Errorf("closer called %d times after stop, want 1", c.n)
	}
}

// TestCloseDropsQueue runs the goroutine's shutdown path directly and
// checks that a handle held across Close rejects new tracks instead of
// accepting entries nothing will ever play.
func TestCloseDropsQueue(t *testing.T) {
	queue, handle := source.NewQueue(1000, 1)
	p := &Player{quit: make(chan struct{})}

	done := make(chan struct{})
	dev := &closeCounter{}
	go func() {
		p.serve(dev, queue)
		close(done)
	}()

	p.Close()
	p.Close()
	<-done

	if dev.n != 1 {
		t.Errorf("device closed %d times, want 1", dev.n)
	}
	_, err := handle.Add(source.NewSamplesBuffer(1000, 1, []float32{0}))
	if !errors.Is(err, source.ErrQueueDropped) {
		t.Errorf("Add after Close = %v, want ErrQueueDropped", err)
	}
}

func constant(n int, v float32) []float32 {
	data := make([]float32, n)
	for i := range data {
		data[i] = v
	}
	return data
}
