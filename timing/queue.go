package timing

import (
	"container/heap"
	"sync"
	"sync/atomic"
)

const (
	eventPending int32 = iota
	eventDelivered
	eventStopped
)

// futureEvent is a scheduled event waiting in an engine queue. It doubles as
// the Timer handed back to the caller.
type futureEvent struct {
	ScheduledEvent

	seq   uint64
	state atomic.Int32
}

// Stop marks the event as stopped if it has not been delivered yet.
func (e *futureEvent) Stop() bool {
	return e.state.CompareAndSwap(eventPending, eventStopped)
}

func (e *futureEvent) claim() bool {
	return e.state.CompareAndSwap(eventPending, eventDelivered)
}

type eventQueue interface {
	Push(*futureEvent)
	Pop() *futureEvent
	Len() int
	Peek() *futureEvent
}

type futureEventQueue struct {
	sync.Mutex
	events futureEventHeap
}

func newFutureEventQueue() *futureEventQueue {
	q := &futureEventQueue{}
	q.events = make([]*futureEvent, 0)
	heap.Init(&q.events)
	return q
}

func (q *futureEventQueue) Push(evt *futureEvent) {
	q.Lock()
	heap.Push(&q.events, evt)
	q.Unlock()
}

func (q *futureEventQueue) Pop() *futureEvent {
	q.Lock()
	defer q.Unlock()
	if q.events.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.events).(*futureEvent)
}

func (q *futureEventQueue) Len() int {
	q.Lock()
	defer q.Unlock()
	return q.events.Len()
}

func (q *futureEventQueue) Peek() *futureEvent {
	q.Lock()
	defer q.Unlock()
	if q.events.Len() == 0 {
		return nil
	}
	return q.events[0]
}

// futureEventHeap orders by time, then by scheduling order so that events
// of the same time come out first-in first-out.
type futureEventHeap []*futureEvent

func (h futureEventHeap) Len() int { return len(h) }

func (h futureEventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h futureEventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *futureEventHeap) Push(x any) {
	*h = append(*h, x.(*futureEvent))
}

func (h *futureEventHeap) Pop() any {
	old := *h
	n := len(old)
	evt := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return evt
}
