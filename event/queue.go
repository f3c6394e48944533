package event

import (
	"sync/atomic"

	"github.com/lixenwraith/graphview/parameter"
)

// slot is one ring cell; seq is the write position plus one once ev is complete
type slot struct {
	ev  GraphEvent
	seq atomic.Uint64
}

// Queue is a lock-free multi-producer, single-consumer ring of graph events
// Producers reserve a position with one atomic add and stamp the slot when done.
// The consumer only takes slots stamped with the position it expects, so a
// half-written or lapped slot ends the batch.
// When full, the oldest unread events are overwritten and counted in Dropped.
type Queue struct {
	slots   [parameter.EventQueueSize]slot
	head    atomic.Uint64 // next position to read
	tail    atomic.Uint64 // next position to write
	dropped atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends ev; safe for concurrent producers
func (q *Queue) Push(ev GraphEvent) {
	pos := q.tail.Add(1) - 1
	s := &q.slots[pos&parameter.EventBufferMask]
	s.ev = ev
	s.seq.Store(pos + 1)

	// Full: move head past whatever this write overwrote
	floor := pos + 1
	if floor <= parameter.EventQueueSize {
		return
	}
	floor -= parameter.EventQueueSize
	for {
		head := q.head.Load()
		if head >= floor {
			return
		}
		if q.head.CompareAndSwap(head, floor) {
			q.dropped.Add(floor - head)
			return
		}
	}
}

// Emit pushes an event built from its parts
func (q *Queue) Emit(t EventType, payload any, frame int64) {
	q.Push(GraphEvent{Type: t, Payload: payload, Frame: frame})
}

// Consume returns pending events in FIFO order; nil when empty
// Single consumer only
func (q *Queue) Consume() []GraphEvent {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail <= head {
			return nil
		}

		n := min(tail-head, uint64(parameter.EventQueueSize))
		out := make([]GraphEvent, 0, n)
		for pos := head; pos < head+n; pos++ {
			s := &q.slots[pos&parameter.EventBufferMask]
			if s.seq.Load() != pos+1 {
				break
			}
			out = append(out, s.ev)
		}

		// A producer lapping us moved head; retry from the new head
		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate number of unread events
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, uint64(parameter.EventQueueSize)))
}

// Dropped returns how many events were overwritten before being consumed
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
