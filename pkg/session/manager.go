package session

import (
	"context"
	"fmt"
	"sync"

	"log/slog"

	tour "github.com/josephwaugh312/shiftsync-tour"
	"github.com/josephwaugh312/shiftsync-tour/internal/logging"
	"github.com/josephwaugh312/shiftsync-tour/pkg/persistence/middleware"
	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"
)

// Factory builds the engine for a session the first time it is acquired.
type Factory func(ctx context.Context, sessionID string) (*tour.Engine, error)

// ReleaseFunc returns a session handle. Released engines stay cached so an
// active tour survives between acquisitions; Evict or Shutdown close them.
type ReleaseFunc func(ctx context.Context)

// entry holds the engine and the reference count.
type entry struct {
	engine *tour.Engine
	refs   int
}

// Manager orchestrates per-session engines, ensuring safe concurrent access.
// It uses Reference Counting to garbage collect unused engines.
type Manager struct {
	factory Factory

	mu      sync.Mutex // Global lock for the map
	entries map[string]*entry

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new session Manager with the given engine factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory: factory,
		entries: make(map[string]*entry),
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SharedStoreFactory builds engines that persist into one shared store,
// each session scoped under its own key namespace. Extra engine options
// apply to every session.
func SharedStoreFactory(store ports.KeyValueStore, base ...tour.Option) Factory {
	return func(ctx context.Context, sessionID string) (*tour.Engine, error) {
		scoped := middleware.Wrap(store, middleware.NewNamespaceMiddleware(sessionID))
		opts := append(append([]tour.Option{}, base...), tour.WithStore(scoped))
		return tour.New(ctx, opts...)
	}
}

// Acquire returns the engine for the session, creating it on first use.
// The caller MUST call the returned ReleaseFunc when done with the engine.
func (m *Manager) Acquire(ctx context.Context, sessionID string) (*tour.Engine, ReleaseFunc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.entries[sessionID]
	if !exists {
		engine, err := m.factory(ctx, sessionID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create session engine: %w", err)
		}
		e = &entry{engine: engine}
		m.entries[sessionID] = e
		m.logger.Debug("Session engine created", "session_id", sessionID)
	}
	e.refs++

	var once sync.Once
	release := func(ctx context.Context) {
		once.Do(func() { m.release(ctx, sessionID) })
	}
	return e.engine, release, nil
}

// With runs fn against the session's engine, acquiring and releasing it
// around the call.
func (m *Manager) With(ctx context.Context, sessionID string, fn func(*tour.Engine) error) error {
	engine, release, err := m.Acquire(ctx, sessionID)
	if err != nil {
		return err
	}
	defer release(ctx)
	return fn(engine)
}

// Len reports how many session engines are currently live.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Shutdown closes every live engine. Outstanding releases become no-ops.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, e := range m.entries {
		e.engine.Close(ctx)
		delete(m.entries, id)
	}
}

// Evict closes the session's engine if no holder still references it.
// Reports whether the engine was closed.
func (m *Manager) Evict(ctx context.Context, sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.entries[sessionID]
	if !exists || e.refs > 0 {
		return false
	}
	e.engine.Close(ctx)
	delete(m.entries, sessionID)
	m.logger.Debug("Session engine closed", "session_id", sessionID)
	return true
}

// release decrements the reference count. The engine stays cached.
func (m *Manager) release(ctx context.Context, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.entries[sessionID]
	if !exists {
		return // Shutdown already swept it
	}
	e.refs--
}
