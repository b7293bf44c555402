// ABOUTME: Streaming playback queue
// ABOUTME: Plays independently submitted sources back-to-back with silence fill
package source

import (
	"sync/atomic"
	"time"
)

// queueID hands out process-wide queue ids, one per queue instance,
// never reused. Wraps after ~4 billion queues, which no process is
// expected to reach.
var queueID atomic.Uint32

func init() {
	// Skip 0 so a SourceID zero value never matches a live queue.
	queueID.Store(1)
}

// NextQueueID reserves a fresh process-wide queue id. Used by every
// queue flavour so ids stay unique across them.
func NextQueueID() uint32 {
	return queueID.Add(1) - 1
}

// SourceID identifies one queue entry. A Source of 0 means nothing is
// currently playing (silence).
type SourceID struct {
	Queue  uint32
	Source uint32
}

type queueEntry struct {
	source Source
	id     uint32
}

// Queue is an endless source that plays a hand-off chain of submitted
// sources in arrival order, filling with silence when no entry is active
// or pending. Entries are type-erased; submissions of the wrong format
// are rejected at add time since the type system cannot check them.
//
// Dropping the consuming half (Close) does not stop a source already
// playing; stop semantics belong to a Stoppable wrapper instead.
type Queue struct {
	sampleRate int
	channels   int
	current    Source
	pending    chan queueEntry
	done       chan struct{}
	// zero means silence is 'playing'; written only by the pulling
	// thread, read from anywhere.
	currentID *atomic.Uint32
}

// QueueHandle submits sources to a running queue from other threads and
// reports which entry is currently playing. Add and Current never block.
type QueueHandle struct {
	sampleRate int
	channels   int
	queueID    uint32
	nextID     atomic.Uint32
	currentID  *atomic.Uint32
	tx         chan<- queueEntry
	done       <-chan struct{}
}

// NewQueue builds a queue bound to one format together with its handle.
// It panics if the format is invalid.
func NewQueue(sampleRate, channels int) (*Queue, *QueueHandle) {
	validateFormat(sampleRate, channels)

	id := NextQueueID()
	currentID := &atomic.Uint32{}
	pending := make(chan queueEntry, pendingSources)
	done := make(chan struct{})

	queue := &Queue{
		sampleRate: sampleRate,
		channels:   channels,
		pending:    pending,
		done:       done,
		currentID:  currentID,
	}
	handle := &QueueHandle{
		sampleRate: sampleRate,
		channels:   channels,
		queueID:    id,
		currentID:  currentID,
		tx:         pending,
		done:       done,
	}
	return queue, handle
}

// Add enqueues a source and returns its id. Ids are queue-scoped and
// monotonically increasing; they wrap after ~4 billion entries, which is
// accepted since no queue is expected to exceed that. Add never blocks,
// even if the consuming side has not drained: beyond the pre-allocated
// pending buffer it rejects with ErrQueueFull.
func (h *QueueHandle) Add(s Source) (SourceID, error) {
	if err := checkFormat(s, h.sampleRate, h.channels); err != nil {
		return SourceID{}, err
	}
	select {
	case <-h.done:
		return SourceID{}, ErrQueueDropped
	default:
	}

	id := h.nextID.Add(1)
	select {
	case h.tx <- queueEntry{source: s, id: id}:
		return SourceID{Queue: h.queueID, Source: id}, nil
	default:
		return SourceID{}, ErrQueueFull
	}
}

// Current returns the id of the last entry whose first sample was
// pulled, or a zero source id if none yet.
func (h *QueueHandle) Current() SourceID {
	return SourceID{Queue: h.queueID, Source: h.currentID.Load()}
}

func (q *Queue) Next() (float32, bool) {
	for {
		if q.current != nil {
			if s, ok := q.current.Next(); ok {
				return s, true
			}
			// Entry consumed exactly once, dropped immediately.
			q.current = nil
		}

		select {
		case entry := <-q.pending:
			q.current = entry.source
			q.currentID.Store(entry.id)
		default:
			return 0, true
		}
	}
}

func (q *Queue) SampleRate() int { return q.sampleRate }
func (q *Queue) Channels() int   { return q.channels }

// TotalDuration is always unknown: the queue is endless.
func (q *Queue) TotalDuration() (time.Duration, bool) {
	return 0, false
}

// Close drops the consuming half; later Adds report ErrQueueDropped.
// It does not stop an entry that is already playing.
func (q *Queue) Close() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}
