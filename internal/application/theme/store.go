// Package theme owns the light/dark preference. The store is constructed
// explicitly and handed to whatever needs it; nothing reads the preference
// through package state.
package theme

import (
	"context"
	"fmt"
	"sync"

	"github.com/rajshekhar/folio/internal/infrastructure/logging"
	"github.com/rajshekhar/folio/internal/ports"
)

// StorageKey is the durable key holding the preference.
const StorageKey = "theme"

// Persisted values.
const (
	Dark  = "dark"
	Light = "light"
)

// Applier receives the effective mode whenever it is loaded or changed.
type Applier interface {
	ApplyTheme(dark bool)
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(dark bool)

// ApplyTheme implements Applier.
func (f ApplierFunc) ApplyTheme(dark bool) { f(dark) }

// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	dark     bool
	kv       ports.KeyValueStore
	logger   ports.Logger
	appliers []Applier
}

// Load reads the persisted preference, defaulting to dark when the key is
// absent or holds an unknown value, and applies it to every applier.
func Load(ctx context.Context, kv ports.KeyValueStore, logger ports.Logger, appliers ...Applier) (*Store, error) {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	logger = logger.With("component", "theme", "layer", "application")

	value, found, err := kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read theme preference: %w", err)
	}

	dark := true
	switch {
	case !found:
	case value == Light:
		dark = false
	case value != Dark:
		logger.Warn(ctx, "ignoring unknown theme preference", "value", value)
	}

	s := &Store{dark: dark, kv: kv, logger: logger, appliers: appliers}
	s.apply(dark)
	logger.Debug(ctx, "theme loaded", "mode", mode(dark), "persisted", found)
	return s, nil
}

// IsDarkMode reports the current mode.
func (s *Store) IsDarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// Mode returns "dark" or "light".
func (s *Store) Mode() string { return mode(s.IsDarkMode()) }

// Register adds an applier and immediately applies the current mode to it.
func (s *Store) Register(a Applier) {
	s.mu.Lock()
	s.appliers = append(s.appliers, a)
	dark := s.dark
	s.mu.Unlock()
	a.ApplyTheme(dark)
}

// Toggle flips the mode, applies it and persists it. A persistence failure is
// returned but the in-memory mode still changes.
func (s *Store) Toggle(ctx context.Context) error {
	s.mu.Lock()
	s.dark = !s.dark
	dark := s.dark
	s.mu.Unlock()

	s.apply(dark)
	if err := s.kv.Set(ctx, StorageKey, mode(dark)); err != nil {
		s.logger.Error(ctx, "failed to persist theme", "error", err)
		return fmt.Errorf("persist theme preference: %w", err)
	}
	s.logger.Info(ctx, "theme toggled", "mode", mode(dark))
	return nil
}

// Close releases the underlying store.
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) apply(dark bool) {
	s.mu.RLock()
	appliers := append([]Applier(nil), s.appliers...)
	s.mu.RUnlock()
	for _, a := range appliers {
		a.ApplyTheme(dark)
	}
}

func mode(dark bool) string {
	if dark {
		return Dark
	}
	return Light
}
