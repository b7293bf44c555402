// ABOUTME: Compile-time-typed playback queue
// ABOUTME: Same hand-off algorithm as the runtime queue with static dispatch
package static

import (
	"sync/atomic"
	"time"

	"github.com/Chorus-Audio/chorus-go/pkg/source"
)

type uniformEntry[S any] struct {
	source S
	id     uint32
}

// UniformQueue is the compile-time-typed queue: all entries share one
// concrete source type, so dispatch to Next resolves statically and no
// format checks are needed at submission. The algorithm is otherwise
// identical to the runtime queue: entries play in arrival order and the
// stream fills with silence when starved.
type UniformQueue[R Rate, C Layout, S Source[R, C]] struct {
	current   *S
	pending   chan uniformEntry[S]
	done      chan struct{}
	currentID *atomic.Uint32
}

// UniformQueueHandle submits entries from other threads. Add and
// Current never block.
type UniformQueueHandle[R Rate, C Layout, S Source[R, C]] struct {
	queueID   uint32
	nextID    atomic.Uint32
	currentID *atomic.Uint32
	tx        chan<- uniformEntry[S]
	done      <-chan struct{}
}

// NewUniformQueue builds a queue together with its handle.
func NewUniformQueue[R Rate, C Layout, S Source[R, C]]() (*UniformQueue[R, C, S], *UniformQueueHandle[R, C, S]) {
	id := source.NextQueueID()
	currentID := &atomic.Uint32{}
	pending := make(chan uniformEntry[S], 256)
	done := make(chan struct{})

	queue := &UniformQueue[R, C, S]{
		pending:   pending,
		done:      done,
		currentID: currentID,
	}
	handle := &UniformQueueHandle[R, C, S]{
		queueID:   id,
		currentID: currentID,
		tx:        pending,
		done:      done,
	}
	return queue, handle
}

// Add enqueues a source and returns its id. Ids are queue-scoped,
// monotonically increasing and wrap after ~4 billion entries.
func (h *UniformQueueHandle[R, C, S]) Add(s S) (source.SourceID, error) {
	select {
	case <-h.done:
		return source.SourceID{}, source.ErrQueueDropped
	default:
	}

	id := h.nextID.Add(1)
	select {
	case h.tx <- uniformEntry[S]{source: s, id: id}:
		return source.SourceID{Queue: h.queueID, Source: id}, nil
	default:
		return source.SourceID{}, source.ErrQueueFull
	}
}

// Current returns the id of the last entry whose first sample was
// pulled, or a zero source id if none yet.
func (h *UniformQueueHandle[R, C, S]) Current() source.SourceID {
	return source.SourceID{Queue: h.queueID, Source: h.currentID.Load()}
}

func (q *UniformQueue[R, C, S]) Next() (float32, bool) {
	for {
		if q.current != nil {
			if s, ok := (*q.current).Next(); ok {
				return s, true
			}
			q.current = nil
		}

		select {
		case entry := <-q.pending:
			q.current = &entry.source
			q.currentID.Store(entry.id)
		default:
			return 0, true
		}
	}
}

// TotalDuration is always unknown: the queue is endless.
func (q *UniformQueue[R, C, S]) TotalDuration() (time.Duration, bool) {
	return 0, false
}

func (q *UniformQueue[R, C, S]) StaticFormat() (r R, c C) { return }

// Close drops the consuming half; later Adds report ErrQueueDropped.
func (q *UniformQueue[R, C, S]) Close() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}
