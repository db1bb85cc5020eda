package timing

import (
	"time"
)

// WallClock schedules events in real time. Handlers run on the timer's own
// goroutine, so they must guard their state.
type WallClock struct {
	start time.Time

	// ErrorHandler, when set, receives errors returned by handlers.
	ErrorHandler func(evt ScheduledEvent, err error)
}

// NewWallClock creates a WallClock whose timeline starts now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// CurrentTime returns the time elapsed since the clock was created.
func (c *WallClock) CurrentTime() VTime {
	return VTime(time.Since(c.start))
}

// Schedule starts a timer that delivers evt at evt.Time. Times that have
// already passed are delivered immediately.
func (c *WallClock) Schedule(evt ScheduledEvent) Timer {
	delay := evt.Time.Sub(c.CurrentTime())
	if delay < 0 {
		delay = 0
	}

	return time.AfterFunc(delay, func() {
		if evt.Handler == nil {
			return
		}

		err := evt.Handler.Handle(evt.Event)
		if err != nil && c.ErrorHandler != nil {
			c.ErrorHandler(evt, err)
		}
	})
}

var _ Scheduler = (*WallClock)(nil)
