// Package session owns the per-visitor state of the page: a lab vessel and
// a quiz walk, both reachable by session id.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/KomalYerkal/Preparation-of-Soap/idgen"
	"github.com/KomalYerkal/Preparation-of-Soap/instrumentation/hooking"
	"github.com/KomalYerkal/Preparation-of-Soap/lab"
	"github.com/KomalYerkal/Preparation-of-Soap/quiz"
	"github.com/KomalYerkal/Preparation-of-Soap/timing"
)

// ErrUnknownSession is returned for ids the manager does not hold.
var ErrUnknownSession = errors.New("session: unknown session")

// Session is one visitor's state.
type Session struct {
	ID      string
	Created time.Time
	Lab     *lab.Lab
	Quiz    *quiz.Session
}

// HookFactory builds the lab hooks of a new session.
type HookFactory func(sessionID string) []hooking.Hook

// Options configure a Manager.
type Options struct {
	Scheduler timing.Scheduler
	// LabConfig is used as given, a zero delay included. Nil selects
	// lab.DefaultConfig.
	LabConfig *lab.Config
	Bank      *quiz.Bank
	IDs       idgen.Generator
	Hooks     HookFactory
}

// Manager creates and tracks sessions.
type Manager struct {
	opts Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager fills unset options with defaults: a wall clock, the default
// lab config, the embedded quiz bank and xid ids.
func NewManager(opts Options) *Manager {
	if opts.Scheduler == nil {
		opts.Scheduler = timing.NewWallClock()
	}
	if opts.LabConfig == nil {
		cfg := lab.DefaultConfig()
		opts.LabConfig = &cfg
	}
	if opts.Bank == nil {
		opts.Bank = quiz.DefaultBank()
	}
	if opts.IDs == nil {
		opts.IDs = idgen.NewXID()
	}

	return &Manager{
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session.
func (m *Manager) Create() *Session {
	id := m.opts.IDs.Generate()

	l := lab.New(m.opts.Scheduler, *m.opts.LabConfig)
	if m.opts.Hooks != nil {
		for _, h := range m.opts.Hooks(id) {
			l.AcceptHook(h)
		}
	}

	s := &Session{
		ID:      id,
		Created: time.Now(),
		Lab:     l,
		Quiz:    quiz.NewSession(m.opts.Bank),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	return s
}

// Get looks a session up.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSession, id)
	}
	return s, nil
}

// Delete drops a session and resets its lab so a pending reaction dies
// with it. It reports whether the session existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Lab.Reset()
	}
	return ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// IDs lists the live session ids in lexical order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Scheduler returns the scheduler the labs run on.
func (m *Manager) Scheduler() timing.Scheduler {
	return m.opts.Scheduler
}
