// Package timing provides the schedulers that drive delayed transitions.
//
// Two schedulers implement the same Scheduler interface. SerialEngine keeps
// a virtual timeline and only advances it when asked, which suits tests and
// offline simulation. WallClock maps the timeline onto real time with
// time.AfterFunc and is what the HTTP server uses.
//
// Every Schedule call returns a Timer. Stopping a timer before its event is
// delivered guarantees the handler is not called for it.
package timing
