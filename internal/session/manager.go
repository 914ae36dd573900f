// ABOUTME: Manager threads the previous intent through turns of a stored session
// ABOUTME: Turns of the same session are serialized; different sessions run in parallel
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/harper/vegra/internal/metrics"
	"github.com/harper/vegra/internal/models"
	"github.com/harper/vegra/internal/state"
)

// Responder is the assistant entry point
type Responder interface {
	ResolveAndRespond(ctx context.Context, utterance string, previous models.Tag) models.TurnResult
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// Manager runs turns against a state store
type Manager struct {
	responder Responder
	store     state.Store

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// NewManager creates a Manager
func NewManager(responder Responder, store state.Store) *Manager {
	return &Manager{
		responder: responder,
		store:     store,
		locks:     make(map[string]*sessionLock),
	}
}

// Store returns the backing state store
func (m *Manager) Store() state.Store {
	return m.store
}

// Turn runs one utterance for session id and saves the resulting tag.
// A farewell clears the session so the next conversation starts fresh.
func (m *Manager) Turn(ctx context.Context, id, utterance string) (models.TurnResult, error) {
	unlock := m.lock(id)
	defer unlock()

	previous, err := state.PreviousTag(ctx, m.store, id)
	if err != nil {
		return models.TurnResult{}, fmt.Errorf("load session %s: %w", id, err)
	}

	result := m.responder.ResolveAndRespond(ctx, utterance, previous)

	if result.Exit {
		if err := m.store.Delete(ctx, id); err != nil {
			return result, fmt.Errorf("clear session %s: %w", id, err)
		}
		return result, nil
	}
	if err := m.store.Set(ctx, id, result.Tag); err != nil {
		return result, fmt.Errorf("save session %s: %w", id, err)
	}
	return result, nil
}

// Reset forgets the session's previous intent
func (m *Manager) Reset(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()
	return m.store.Delete(ctx, id)
}

// lock acquires the per-session mutex and returns its release func.
// Entries are dropped once no turn holds or waits on them.
func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	metrics.ActiveSessions.Inc()

	return func() {
		metrics.ActiveSessions.Dec()
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// pending reports how many sessions have a lock entry
func (m *Manager) pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
