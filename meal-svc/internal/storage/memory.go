package storage

import (
	"context"
	"sync"

	"school-meal/meal-svc/internal/domain"
)

// MemorySessionStore keeps popup state in process memory. It is used when no
// Redis is configured; state is lost on restart.
type MemorySessionStore struct {
	mu     sync.Mutex
	states map[string]domain.PopupState
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{states: make(map[string]domain.PopupState)}
}

func (s *MemorySessionStore) Load(ctx context.Context, sessionID string) (domain.PopupState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[sessionID], nil
}

func (s *MemorySessionStore) Save(ctx context.Context, sessionID string, state domain.PopupState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state
	return nil
}
