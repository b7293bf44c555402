// ABOUTME: Fixed sequential list of static sources
// ABOUTME: Plays a collection back-to-back with no gap or silence fill
package static

import "time"

// List plays a collection fixed at construction back-to-back, in order,
// ending when the last source is exhausted. Unlike a queue it inserts
// no silence and accepts no later submissions; the homogeneous element
// type keeps the format proof at compile time.
type List[R Rate, C Layout, S Source[R, C]] struct {
	sources []S
	current int
}

// NewList builds a list over sources. The collection cannot change
// afterwards.
func NewList[R Rate, C Layout, S Source[R, C]](sources []S) *List[R, C, S] {
	return &List[R, C, S]{sources: sources}
}

func (l *List[R, C, S]) Next() (float32, bool) {
	for l.current < len(l.sources) {
		if v, ok := l.sources[l.current].Next(); ok {
			return v, true
		}
		l.current++
	}
	return 0, false
}

// TotalDuration sums the remaining durations of all sources, known only
// when every source reports one.
func (l *List[R, C, S]) TotalDuration() (time.Duration, bool) {
	var total time.Duration
	for i := l.current; i < len(l.sources); i++ {
		d, known := l.sources[i].TotalDuration()
		if !known {
			return 0, false
		}
		total += d
	}
	return total, true
}

func (l *List[R, C, S]) StaticFormat() (r R, c C) { return }
