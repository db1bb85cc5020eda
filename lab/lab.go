// Package lab implements the virtual lab's mixing vessel.
//
// A Lab tracks which of water, oil and lye have been poured in and projects
// that set onto a MixtureView. When the third ingredient arrives the lab
// schedules a ReactionCompleteEvent on its scheduler. Reset cancels that
// event, and any completion that still slips through carries an outdated
// generation and is dropped, so a superseded mixture can never overwrite the
// emptied vessel.
//
// Hooks run after the lab's lock is released. Under a wall clock, hooks of
// concurrent calls may therefore arrive out of order. Every view carries the
// Generation and Revision it was taken at, and observers order by Revision.
package lab

import (
	"fmt"
	"sync"
	"time"

	"github.com/KomalYerkal/Preparation-of-Soap/instrumentation/hooking"
	"github.com/KomalYerkal/Preparation-of-Soap/timing"
)

// DefaultReactionDelay is how long saponification takes before the lab
// reports success.
const DefaultReactionDelay = 3 * time.Second

// Config holds the lab's tunables.
type Config struct {
	ReactionDelay time.Duration
}

// DefaultConfig returns the configuration used by the page.
func DefaultConfig() Config {
	return Config{ReactionDelay: DefaultReactionDelay}
}

// ReactionCompleteEvent is scheduled when the mixture becomes complete.
type ReactionCompleteEvent struct {
	Generation uint64
}

// Lab is the mixture state machine of one visitor.
type Lab struct {
	*hooking.HookableBase

	scheduler timing.Scheduler
	delay     time.Duration

	mu         sync.Mutex
	set        IngredientSet
	reacted    bool
	generation uint64
	revision   uint64
	pending    timing.Timer
	view       MixtureView
}

// New creates an empty lab that schedules its delayed transition on s.
func New(s timing.Scheduler, cfg Config) *Lab {
	if cfg.ReactionDelay < 0 {
		cfg.ReactionDelay = 0
	}

	return &Lab{
		HookableBase: hooking.NewHookableBase(),
		scheduler:    s,
		delay:        cfg.ReactionDelay,
		view:         Project(0, false),
	}
}

// AddIngredient pours i into the vessel. Adding an ingredient that is
// already present changes nothing and returns the current view.
func (l *Lab) AddIngredient(i Ingredient) (MixtureView, error) {
	if !i.Valid() {
		return l.View(), fmt.Errorf("%w: %s", ErrInvalidIngredient, i)
	}

	l.mu.Lock()

	if l.set.Has(i) {
		view := l.view.clone()
		l.mu.Unlock()
		return view, nil
	}

	l.set = l.set.With(i)
	l.project(false)
	view := l.view.clone()

	var due timing.VTime
	started := l.set.Complete()
	if started {
		due = l.scheduleReaction()
	}

	l.mu.Unlock()

	l.InvokeHook(hooking.HookCtx{
		Domain: l,
		Pos:    HookPosIngredientAdded,
		Item:   view,
		Detail: i,
	})

	if started {
		l.InvokeHook(hooking.HookCtx{
			Domain: l,
			Pos:    HookPosReactionStarted,
			Item:   view,
			Detail: due,
		})
	}

	return view, nil
}

// AddIngredientByName parses name and adds the ingredient.
func (l *Lab) AddIngredientByName(name string) (MixtureView, error) {
	i, err := ParseIngredient(name)
	if err != nil {
		return l.View(), err
	}

	return l.AddIngredient(i)
}

// project refreshes the stored view. It must be called with l.mu held.
func (l *Lab) project(reacted bool) {
	l.revision++
	l.view = Project(l.set, reacted)
	l.view.Generation = l.generation
	l.view.Revision = l.revision
}

// scheduleReaction must be called with l.mu held.
func (l *Lab) scheduleReaction() timing.VTime {
	due := l.scheduler.CurrentTime().Add(l.delay)
	l.pending = l.scheduler.Schedule(timing.ScheduledEvent{
		Event:   &ReactionCompleteEvent{Generation: l.generation},
		Time:    due,
		Handler: l,
	})

	return due
}

// Reset empties the vessel and cancels a pending reaction.
func (l *Lab) Reset() MixtureView {
	l.mu.Lock()

	if l.pending != nil {
		l.pending.Stop()
		l.pending = nil
	}

	l.generation++
	l.set = 0
	l.reacted = false
	l.project(false)
	view := l.view.clone()

	l.mu.Unlock()

	l.InvokeHook(hooking.HookCtx{
		Domain: l,
		Pos:    HookPosReset,
		Item:   view,
	})

	return view
}

// View returns the current projection.
func (l *Lab) View() MixtureView {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.view.clone()
}

// Ingredients returns the current ingredient set.
func (l *Lab) Ingredients() IngredientSet {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.set
}

// Generation counts resets. Completion events from older generations are
// ignored.
func (l *Lab) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.generation
}

// Handle receives the lab's scheduled events.
func (l *Lab) Handle(event any) error {
	switch e := event.(type) {
	case *ReactionCompleteEvent:
		l.completeReaction(e)
	default:
		return fmt.Errorf("lab: unknown event type: %T", event)
	}

	return nil
}

func (l *Lab) completeReaction(e *ReactionCompleteEvent) {
	l.mu.Lock()

	if e.Generation != l.generation || !l.set.Complete() || l.reacted {
		view := l.view.clone()
		l.mu.Unlock()

		l.InvokeHook(hooking.HookCtx{
			Domain: l,
			Pos:    HookPosStaleReactionDropped,
			Item:   view,
			Detail: e.Generation,
		})
		return
	}

	l.reacted = true
	l.pending = nil
	l.project(true)
	view := l.view.clone()

	l.mu.Unlock()

	l.InvokeHook(hooking.HookCtx{
		Domain: l,
		Pos:    HookPosReactionComplete,
		Item:   view,
	})
}
