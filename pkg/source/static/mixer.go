// ABOUTME: Compile-time-typed averaging mixers
// ABOUTME: Fixed-set, heterogeneous-pair and channel-fed growing variants
package static

import "time"

// doublePrecisionThreshold is the input count from which the
// accumulator moves to float64 to keep the summed value inside the
// float32 mantissa. Below it float32 is safe and helps simd codegen.
// Only the static mixers carry this switch; the runtime mixers always
// accumulate in float64.
const doublePrecisionThreshold = 20

// Mixer averages a homogeneous collection of static sources fixed at
// construction. No format checks are needed: the type system already
// proved all sources share (R, C). Collections of 20 or more accumulate
// in double precision.
type Mixer[R Rate, C Layout, S Source[R, C]] struct {
	sources   []S
	useDouble bool
}

// NewMixer builds a mixer over sources. The collection cannot change
// afterwards; adds and removes belong to ChanMixer.
func NewMixer[R Rate, C Layout, S Source[R, C]](sources []S) *Mixer[R, C, S] {
	return &Mixer[R, C, S]{
		sources:   sources,
		useDouble: len(sources) >= doublePrecisionThreshold,
	}
}

func (m *Mixer[R, C, S]) Next() (float32, bool) {
	if m.useDouble {
		var sum float64
		mixed := 0
		for i := range m.sources {
			if v, ok := m.sources[i].Next(); ok {
				sum += float64(v)
				mixed++
			}
		}
		if mixed == 0 {
			return 0, false
		}
		return float32(sum / float64(mixed)), true
	}

	var sum float32
	mixed := 0
	for i := range m.sources {
		if v, ok := m.sources[i].Next(); ok {
			sum += v
			mixed++
		}
	}
	if mixed == 0 {
		return 0, false
	}
	return sum / float32(mixed), true
}

// TotalDuration is the longest source duration when all are known.
func (m *Mixer[R, C, S]) TotalDuration() (time.Duration, bool) {
	var longest time.Duration
	for i := range m.sources {
		d, ok := m.sources[i].TotalDuration()
		if !ok {
			return 0, false
		}
		if d > longest {
			longest = d
		}
	}
	return longest, true
}

func (m *Mixer[R, C, S]) StaticFormat() (r R, c C) { return }

// PairMixer averages two static sources of different concrete types (the
// heterogeneous tuple case). Two inputs always fit the single-precision
// accumulator.
type PairMixer[R Rate, C Layout, S1, S2 Source[R, C]] struct {
	first  S1
	second S2
}

// NewPairMixer builds a mixer over two differently-typed sources.
func NewPairMixer[R Rate, C Layout, S1, S2 Source[R, C]](first S1, second S2) *PairMixer[R, C, S1, S2] {
	return &PairMixer[R, C, S1, S2]{first: first, second: second}
}

func (m *PairMixer[R, C, S1, S2]) Next() (float32, bool) {
	var sum float32
	mixed := 0
	if v, ok := m.first.Next(); ok {
		sum += v
		mixed++
	}
	if v, ok := m.second.Next(); ok {
		sum += v
		mixed++
	}
	if mixed == 0 {
		return 0, false
	}
	return sum / float32(mixed), true
}

func (m *PairMixer[R, C, S1, S2]) TotalDuration() (time.Duration, bool) {
	a, ok := m.first.TotalDuration()
	if !ok {
		return 0, false
	}
	b, ok := m.second.TotalDuration()
	if !ok {
		return 0, false
	}
	if a > b {
		return a, true
	}
	return b, true
}

func (m *PairMixer[R, C, S1, S2]) StaticFormat() (r R, c C) { return }

// ChanMixer averages a dynamically-growing set of static sources fed
// through a channel. New sources join at most one per frame boundary,
// never mid-frame. The accumulator is always double precision since the
// set can grow without bound.
type ChanMixer[R Rate, C Layout, S Source[R, C]] struct {
	active        []S
	pending       <-chan S
	sampleCounter int // kept between 0 and the channel count
}

// NewChanMixer builds a growing mixer and the send side used to feed it.
// The sender must not block on a full buffer; sends beyond the bound are
// the caller's to reject.
func NewChanMixer[R Rate, C Layout, S Source[R, C]]() (*ChanMixer[R, C, S], chan<- S) {
	pending := make(chan S, 256)
	return &ChanMixer[R, C, S]{
		active:  make([]S, 0, 10),
		pending: pending,
	}, pending
}

func (m *ChanMixer[R, C, S]) updateActive() {
	if m.sampleCounter != 0 {
		return
	}
	select {
	case s := <-m.pending:
		m.active = append(m.active, s)
	default:
	}
}

func (m *ChanMixer[R, C, S]) Next() (float32, bool) {
	m.updateActive()

	var sum float64
	mixed := 0
	for i := range m.active {
		if v, ok := m.active[i].Next(); ok {
			sum += float64(v)
			mixed++
		}
	}
	if mixed == 0 {
		return 0, false
	}
	m.sampleCounter++
	m.sampleCounter %= channelCount[C]()
	return float32(sum / float64(mixed)), true
}

func (m *ChanMixer[R, C, S]) TotalDuration() (time.Duration, bool) {
	var longest time.Duration
	for i := range m.active {
		d, ok := m.active[i].TotalDuration()
		if !ok {
			return 0, false
		}
		if d > longest {
			longest = d
		}
	}
	return longest, true
}

func (m *ChanMixer[R, C, S]) StaticFormat() (r R, c C) { return }

// MixBoxed averages type-erased static sources; the heap indirection
// stands in for generic dispatch when element types differ and the
// count is only known at run time. Always double precision.
func MixBoxed[R Rate, C Layout](sources []Source[R, C]) *Mixer[R, C, Source[R, C]] {
	return NewMixer[R, C](sources)
}
