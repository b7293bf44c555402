// ABOUTME: Playback composition root
// ABOUTME: Owns the device binding, audio goroutine and track lifecycle
package player

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/Chorus-Audio/chorus-go/pkg/convert"
	"github.com/Chorus-Audio/chorus-go/pkg/decode"
	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

const (
	// Internal pipeline format. Tracks are converted to this at add
	// time so the queue only ever sees one format.
	pipelineRate     = 44100
	pipelineChannels = 2

	// Device format. Oto resamples poorly on some backends, so the
	// device leg runs through our own converters when it differs
	// from the pipeline.
	deviceRate     = 48000
	deviceChannels = 2

	// propagationInterval is how often the audio goroutine re-reads
	// the parameter cell and tracks poll their abort flags.
	propagationInterval = 50 * time.Millisecond
)

// Player plays audio files on the default output device. One audio
// goroutine owns the device and the pull chain; all other methods are
// safe to call from any goroutine.
type Player struct {
	params *Params
	handle *source.QueueHandle

	mu        sync.Mutex
	lastAbort *AbortHandle

	quit      chan struct{}
	closeOnce sync.Once
}

// New opens the default output device and starts the audio goroutine.
// It returns once the goroutine has handed back the queue's submission
// handle, or fails if the device cannot be opened.
func New(initialVolume float32, initialPaused bool) (*Player, error) {
	p := &Player{
		params: NewParams(initialVolume, initialPaused),
		quit:   make(chan struct{}),
	}

	handles := make(chan *source.QueueHandle, 1)
	errs := make(chan error, 1)
	go p.run(handles, errs)

	select {
	case h := <-handles:
		p.handle = h
		return p, nil
	case err := <-errs:
		return nil, err
	}
}

// run is the audio goroutine. It owns the oto context and the full
// pull chain, sends the queue handle back exactly once, then blocks
// until Close.
func (p *Player) run(handles chan<- *source.QueueHandle, errs chan<- error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   deviceRate,
		ChannelCount: deviceChannels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		errs <- fmt.Errorf("failed to open output device: %w", err)
		return
	}
	<-ready

	queue, handle := source.NewQueue(pipelineRate, pipelineChannels)
	pausable := source.NewPausable(queue, p.params.Paused())
	amplified := source.NewAmplify(pausable, source.Linear(p.params.Volume()))
	controlled := source.NewPeriodicAccess(amplified, propagationInterval, func(source.Source) {
		pausable.SetPaused(p.params.Paused())
		amplified.SetFactor(source.Linear(p.params.Volume()))
	})

	var out source.Source = controlled
	if deviceChannels != pipelineChannels {
		out = convert.NewChannelConverter(out, deviceChannels)
	}
	if deviceRate != pipelineRate {
		out = convert.NewResampler(out, deviceRate)
	}

	dev := ctx.NewPlayer(newSampleReader(out))
	dev.Play()
	log.Printf("audio output running: %d Hz, %d channels", deviceRate, deviceChannels)

	handles <- handle

	p.serve(dev, queue)
}

// serve blocks until Close, then releases the device and drops the
// queue so handles left in user hands report the dropped queue instead
// of accepting tracks nothing will ever play.
func (p *Player) serve(dev io.Closer, queue *source.Queue) {
	<-p.quit
	dev.Close()
	queue.Close()
}

// Add decodes the file at path and enqueues it, stopping whatever was
// added before. Decode and format errors surface here; once a track is
// accepted the sample path cannot fail.
func (p *Player) Add(path string) error {
	dec, err := decode.Open(path)
	if err != nil {
		return err
	}

	var track source.Source = dec
	if track.Channels() != pipelineChannels {
		track = convert.NewChannelConverter(track, pipelineChannels)
	}
	if track.SampleRate() != pipelineRate {
		track = convert.NewResampler(track, pipelineRate)
	}

	stoppable := source.NewStoppable(track)
	abort := &AbortHandle{}
	// The close wrapper sits outside the stoppable so the file is
	// released on early stop as well as on natural end of stream.
	done := &closeWhenDone{Source: stoppable, closer: dec}
	entry := source.NewPeriodicAccess(done, propagationInterval, func(source.Source) {
		if abort.Aborted() {
			stoppable.Stop()
		}
	})

	p.mu.Lock()
	if p.lastAbort != nil {
		p.lastAbort.Abort()
	}
	p.lastAbort = abort
	p.mu.Unlock()

	// Give the previous track one refresh tick to notice the abort
	// so it ends before the new entry starts.
	time.Sleep(propagationInterval)

	if _, err := p.handle.Add(entry); err != nil {
		dec.Close()
		return fmt.Errorf("failed to enqueue %s: %w", path, err)
	}
	return nil
}

// Pause silences playback without consuming the queue.
func (p *Player) Pause() {
	p.params.SetPaused(true)
}

// Unpause resumes playback.
func (p *Player) Unpause() {
	p.params.SetPaused(false)
}

// SetVolume sets the linear playback gain.
func (p *Player) SetVolume(v float32) {
	p.params.SetVolume(v)
}

// Current reports which queue entry is playing; a zero source id means
// silence.
func (p *Player) Current() source.SourceID {
	return p.handle.Current()
}

// Close stops the audio goroutine and releases the device. Idempotent.
func (p *Player) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
	})
}

// closeWhenDone closes the underlying file once the track has been
// fully pulled. Stopped tracks end the same way, so the file never
// outlives playback.
type closeWhenDone struct {
	source.Source
	closer io.Closer
	closed bool
}

func (c *closeWhenDone) Next() (float32, bool) {
	v, ok := c.Source.Next()
	if !ok && !c.closed {
		c.closed = true
		c.closer.Close()
	}
	return v, ok
}
