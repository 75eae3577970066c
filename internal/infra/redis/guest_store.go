package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akshay-rawal/Quiz-Game/internal/domain"
	"github.com/redis/go-redis/v9"
)

// GuestStore keeps guest session state in Redis so ephemeral scores survive
// process restarts and are shared across instances. Each (session, category)
// is one JSON value under guest:{sessionID}:{category}; the TTL is refreshed
// on every write so active sessions do not expire mid-quiz.
type GuestStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuestStore(client *redis.Client, ttl time.Duration) *GuestStore {
	return &GuestStore{client: client, ttl: ttl}
}

func (s *GuestStore) Get(ctx context.Context, sessionID string, category domain.Category) (domain.GuestState, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID, category)).Bytes()
	if err == redis.Nil {
		return domain.GuestState{}, false, nil
	}
	if err != nil {
		return domain.GuestState{}, false, err
	}
	var state domain.GuestState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.GuestState{}, false, err
	}
	return state, true, nil
}

func (s *GuestStore) Put(ctx context.Context, sessionID string, category domain.Category, state domain.GuestState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sessionID, category), data, s.ttl).Err()
}

func (s *GuestStore) Categories(ctx context.Context, sessionID string) (map[domain.Category]domain.GuestState, error) {
	out := make(map[domain.Category]domain.GuestState)
	for _, category := range domain.Categories() {
		state, ok, err := s.Get(ctx, sessionID, category)
		if err != nil {
			return nil, err
		}
		if ok {
			out[category] = state
		}
	}
	return out, nil
}

func (s *GuestStore) key(sessionID string, category domain.Category) string {
	return "guest:" + sessionID + ":" + string(category)
}
