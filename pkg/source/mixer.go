// ABOUTME: Averaging mixers over runtime-fixed sources
// ABOUTME: Fixed-set mixer with precision switch and channel-fed growing mixer
package source

import "time"

// Mixer combines a collection of same-format sources, fixed at
// construction, into one source by averaging the samples of all sources
// that still have output. Exhausted sources are skipped, not
// zero-filled; the mixed stream ends when every source is exhausted.
// Runtime-sized collections always accumulate in float64: the count is
// not known at compile time, so the cheaper float32 path cannot be
// proven safe. The static subpackage carries the precision switch for
// collections whose size is a compile-time fact.
type Mixer struct {
	sources []Source
	format  [2]int // sample rate, channels
}

// NewMixer builds a mixer over sources. All sources must share one
// format; a mismatch is reported as a typed rejection against the first
// source's format. The collection cannot change afterwards.
func NewMixer(sources []Source) (*Mixer, error) {
	if len(sources) == 0 {
		return &Mixer{}, nil
	}
	rate, channels := sources[0].SampleRate(), sources[0].Channels()
	for _, s := range sources[1:] {
		if err := checkFormat(s, rate, channels); err != nil {
			return nil, err
		}
	}
	return &Mixer{
		sources: sources,
		format:  [2]int{rate, channels},
	}, nil
}

func (m *Mixer) Next() (float32, bool) {
	var sum float64
	mixed := 0
	for _, s := range m.sources {
		if v, ok := s.Next(); ok {
			sum += float64(v)
			mixed++
		}
	}
	if mixed == 0 {
		return 0, false
	}
	return float32(sum / float64(mixed)), true
}

func (m *Mixer) SampleRate() int { return m.format[0] }
func (m *Mixer) Channels() int   { return m.format[1] }

// TotalDuration is the longest of the sources' durations: mixing waits
// for the longest source, not the shortest. Unknown if any source's
// duration is unknown.
func (m *Mixer) TotalDuration() (time.Duration, bool) {
	return longestDuration(m.sources)
}

func longestDuration(sources []Source) (time.Duration, bool) {
	var longest time.Duration
	for _, s := range sources {
		d, ok := s.TotalDuration()
		if !ok {
			return 0, false
		}
		if d > longest {
			longest = d
		}
	}
	return longest, true
}

// ChanMixer combines a dynamically-growing set of same-format sources.
// New sources are accepted through a MixerHandle and join the active set
// at most one per frame boundary, never mid-frame, so channel
// interleaving cannot be corrupted. Always accumulates in float64 since
// the set can grow without bound.
type ChanMixer struct {
	active        []Source
	pending       chan Source
	done          chan struct{}
	sampleRate    int
	channels      int
	sampleCounter int // kept between 0 and channels
}

// MixerHandle submits new sources to a running ChanMixer from other
// threads. Add never blocks.
type MixerHandle struct {
	sampleRate int
	channels   int
	tx         chan<- Source
	done       <-chan struct{}
}

// pendingSources bounds the pre-allocated buffer between control plane
// and audio thread. Sends never block below this. See ErrQueueFull.
const pendingSources = 256

// NewChanMixer builds a growing mixer bound to the given format. It
// panics if the format is invalid.
func NewChanMixer(sampleRate, channels int) (*ChanMixer, *MixerHandle) {
	validateFormat(sampleRate, channels)
	pending := make(chan Source, pendingSources)
	done := make(chan struct{})
	mixer := &ChanMixer{
		active:     make([]Source, 0, 10),
		pending:    pending,
		done:       done,
		sampleRate: sampleRate,
		channels:   channels,
	}
	return mixer, &MixerHandle{
		sampleRate: sampleRate,
		channels:   channels,
		tx:         pending,
		done:       done,
	}
}

// Add submits a source to be mixed in at the next frame boundary. The
// source's format must match the mixer's; mismatches are rejected, never
// converted.
func (h *MixerHandle) Add(s Source) error {
	if err := checkFormat(s, h.sampleRate, h.channels); err != nil {
		return err
	}
	select {
	case <-h.done:
		return ErrQueueDropped
	default:
	}
	select {
	case h.tx <- s:
		return nil
	default:
		return ErrQueueFull
	}
}

func (m *ChanMixer) updateActive() {
	// Poll at most once, and only between frames.
	if m.sampleCounter != 0 {
		return
	}
	select {
	case s := <-m.pending:
		m.active = append(m.active, s)
	default:
	}
}

func (m *ChanMixer) Next() (float32, bool) {
	m.updateActive()

	var sum float64
	mixed := 0
	for _, s := range m.active {
		if v, ok := s.Next(); ok {
			sum += float64(v)
			mixed++
		}
	}
	if mixed == 0 {
		return 0, false
	}
	m.sampleCounter++
	m.sampleCounter %= m.channels
	return float32(sum / float64(mixed)), true
}

func (m *ChanMixer) SampleRate() int { return m.sampleRate }
func (m *ChanMixer) Channels() int   { return m.channels }

func (m *ChanMixer) TotalDuration() (time.Duration, bool) {
	return longestDuration(m.active)
}

// Close drops the consuming half; later Adds report ErrQueueDropped.
func (m *ChanMixer) Close() {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}
