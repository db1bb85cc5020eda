package timing

import "time"

// VTime is a point on a scheduler's timeline, measured in nanoseconds since
// the scheduler started.
type VTime int64

// Duration converts the time point into the elapsed duration since start.
func (t VTime) Duration() time.Duration {
	return time.Duration(t)
}

// Add returns the time point d after t.
func (t VTime) Add(d time.Duration) VTime {
	return t + VTime(d)
}

// Sub returns the duration t-u.
func (t VTime) Sub(u VTime) time.Duration {
	return time.Duration(t - u)
}

func (t VTime) String() string {
	return time.Duration(t).String()
}

// Handler processes events of various types.
// Events are plain data structs. Handlers type switch on them:
//
//	func (l *Lab) Handle(event any) error {
//	    switch e := event.(type) {
//	    case *ReactionCompleteEvent:
//	        // ...
//	    default:
//	        return fmt.Errorf("unknown event type: %T", event)
//	    }
//	    return nil
//	}
type Handler interface {
	Handle(event any) error
}

// TimeTeller exposes the current time of a scheduler.
type TimeTeller interface {
	CurrentTime() VTime
}

// A Timer is the handle of a scheduled event.
type Timer interface {
	// Stop prevents the event from being delivered. It returns false if the
	// event has already been delivered or stopped.
	Stop() bool
}

// Scheduler places events on a timeline and delivers them to their
// handlers when their time comes.
type Scheduler interface {
	TimeTeller
	Schedule(evt ScheduledEvent) Timer
}

// ScheduledEvent is the scheduler-facing wrapper for user-defined events.
type ScheduledEvent struct {
	// Event is the payload delivered to the handler, typically a pointer to
	// a struct defined by the caller.
	Event any

	// Time is when the event should be processed.
	Time VTime

	// Handler is the object that will process this event.
	Handler Handler

	// IsSecondary events are processed after all primary events of the same
	// time.
	IsSecondary bool
}

// ScheduleAfter schedules evt to reach h once delay has elapsed on s.
func ScheduleAfter(
	s Scheduler,
	delay time.Duration,
	evt any,
	h Handler,
) Timer {
	return s.Schedule(ScheduledEvent{
		Event:   evt,
		Time:    s.CurrentTime().Add(delay),
		Handler: h,
	})
}
