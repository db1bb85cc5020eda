package timing

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/KomalYerkal/Preparation-of-Soap/instrumentation/hooking"
)

// SerialEngine processes scheduled events one after another in virtual time.
// Virtual time only moves when events are delivered or when RunUntil is
// asked to move it, which makes the lab's delayed transitions reproducible.
type SerialEngine struct {
	*hooking.HookableBase

	timeLock sync.RWMutex
	now      VTime

	seq            atomic.Uint64
	queue          eventQueue
	secondaryQueue eventQueue

	singleRunLock sync.Mutex
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{
		HookableBase:   hooking.NewHookableBase(),
		queue:          newFutureEventQueue(),
		secondaryQueue: newFutureEventQueue(),
	}
}

// Schedule registers an event to be handled in the future.
func (e *SerialEngine) Schedule(evt ScheduledEvent) Timer {
	now := e.readNow()
	if evt.Time < now {
		panic(fmt.Sprintf(
			"timing: cannot schedule event in the past, evt %s @ %s, now %s",
			reflect.TypeOf(evt.Event), evt.Time, now,
		))
	}

	fe := &futureEvent{ScheduledEvent: evt, seq: e.seq.Add(1)}
	if evt.IsSecondary {
		e.secondaryQueue.Push(fe)
		return fe
	}

	e.queue.Push(fe)
	return fe
}

func (e *SerialEngine) readNow() VTime {
	e.timeLock.RLock()
	t := e.now
	e.timeLock.RUnlock()
	return t
}

func (e *SerialEngine) writeNow(t VTime) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// Run delivers all scheduled events until the queues are drained. It stops
// at the first handler error.
func (e *SerialEngine) Run() error {
	return e.run(nil)
}

// RunUntil delivers the events due at or before t, then moves the clock to
// t. Events scheduled later stay queued.
func (e *SerialEngine) RunUntil(t VTime) error {
	if err := e.run(&t); err != nil {
		return err
	}

	if t > e.readNow() {
		e.writeNow(t)
	}

	return nil
}

func (e *SerialEngine) run(until *VTime) error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		evt := e.nextEvent(until)
		if evt == nil {
			return nil
		}

		if err := e.deliver(evt); err != nil {
			return err
		}
	}
}

func (e *SerialEngine) deliver(evt *futureEvent) error {
	now := e.readNow()
	if evt.Time < now {
		panic(fmt.Sprintf(
			"timing: cannot run event in the past, evt %s @ %s, now %s",
			reflect.TypeOf(evt.Event), evt.Time, now,
		))
	}

	e.writeNow(evt.Time)

	hookCtx := hooking.HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   &evt.ScheduledEvent,
	}
	e.InvokeHook(hookCtx)

	var err error
	if evt.Handler != nil {
		err = evt.Handler.Handle(evt.Event)
	}

	hookCtx.Pos = HookPosAfterEvent
	e.InvokeHook(hookCtx)

	if err != nil {
		return fmt.Errorf("timing: handling %s @ %s: %w",
			reflect.TypeOf(evt.Event), evt.Time, err)
	}

	return nil
}

// nextEvent pops the earliest live event, discarding stopped ones. Nil means
// there is nothing left to run before the limit.
func (e *SerialEngine) nextEvent(until *VTime) *futureEvent {
	for {
		evt := e.peekEarliest()
		if evt == nil {
			return nil
		}

		if until != nil && evt.Time > *until {
			return nil
		}

		e.popEarliest()

		if evt.claim() {
			return evt
		}
	}
}

func (e *SerialEngine) peekEarliest() *futureEvent {
	primary := e.queue.Peek()
	secondary := e.secondaryQueue.Peek()

	switch {
	case primary == nil:
		return secondary
	case secondary == nil:
		return primary
	case primary.Time <= secondary.Time:
		return primary
	default:
		return secondary
	}
}

func (e *SerialEngine) popEarliest() {
	primary := e.queue.Peek()
	secondary := e.secondaryQueue.Peek()

	if primary != nil && (secondary == nil || primary.Time <= secondary.Time) {
		e.queue.Pop()
		return
	}

	e.secondaryQueue.Pop()
}

// Pending returns the number of queued events, stopped ones included.
func (e *SerialEngine) Pending() int {
	return e.queue.Len() + e.secondaryQueue.Len()
}

// CurrentTime returns the time of the most recently delivered event, or the
// limit of the last RunUntil if that is later.
func (e *SerialEngine) CurrentTime() VTime {
	return e.readNow()
}

var _ Scheduler = (*SerialEngine)(nil)
