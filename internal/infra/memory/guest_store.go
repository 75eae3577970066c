package memory

import (
	"context"
	"sync"

	"github.com/akshay-rawal/Quiz-Game/internal/domain"
)

// GuestStore is an in-memory implementation of app.GuestStore. State is
// scoped per session id and guarded by a single mutex so concurrent guest
// requests cannot corrupt it.
type GuestStore struct {
	mu       sync.RWMutex
	sessions map[string]map[domain.Category]domain.GuestState
}

func NewGuestStore() *GuestStore {
	return &GuestStore{sessions: make(map[string]map[domain.Category]domain.GuestState)}
}

func (s *GuestStore) Get(_ context.Context, sessionID string, category domain.Category) (domain.GuestState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories, ok := s.sessions[sessionID]
	if !ok {
		return domain.GuestState{}, false, nil
	}
	state, ok := categories[category]
	return state, ok, nil
}

func (s *GuestStore) Put(_ context.Context, sessionID string, category domain.Category, state domain.GuestState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories, ok := s.sessions[sessionID]
	if !ok {
		categories = make(map[domain.Category]domain.GuestState)
		s.sessions[sessionID] = categories
	}
	categories[category] = state
	return nil
}

func (s *GuestStore) Categories(_ context.Context, sessionID string) (map[domain.Category]domain.GuestState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.Category]domain.GuestState, len(s.sessions[sessionID]))
	for category, state := range s.sessions[sessionID] {
		out[category] = state
	}
	return out, nil
}

// Drop discards every category of a session, e.g. on session expiry.
func (s *GuestStore) Drop(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
