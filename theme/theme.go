// Package theme remembers each visitor's light or dark preference.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidTheme is returned for names other than light and dark.
var ErrInvalidTheme = errors.New("theme: invalid theme")

// Theme is a color scheme preference.
type Theme string

// The supported themes. Light is the default.
const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse reads a theme name.
func Parse(name string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(name))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, name)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Store persists one preference per client.
type Store interface {
	// Load returns the saved theme, or Light when nothing was saved.
	Load(ctx context.Context, client string) (Theme, error)
	Save(ctx context.Context, client string, t Theme) error
}

// Toggle flips the saved theme of client and returns the new one.
func Toggle(ctx context.Context, s Store, client string) (Theme, error) {
	current, err := s.Load(ctx, client)
	if err != nil {
		return "", err
	}

	next := current.Toggle()
	if err := s.Save(ctx, client, next); err != nil {
		return "", err
	}
	return next, nil
}

// MemoryStore keeps preferences in a map.
type MemoryStore struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{themes: make(map[string]Theme)}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, client string) (Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.themes[client]; ok {
		return t, nil
	}
	return Light, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, client string, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}

	s.mu.Lock()
	s.themes[client] = t
	s.mu.Unlock()
	return nil
}
