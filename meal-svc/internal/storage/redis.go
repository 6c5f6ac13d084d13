package storage

import (
	"context"
	"errors"
	"time"

	"school-meal/meal-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) PopupKey(sessionID string) string {
	return "session:" + sessionID + ":popup"
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (domain.PopupState, error) {
	value, err := s.Client.Get(ctx, s.PopupKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.PopupState{}, nil
	}
	if err != nil {
		return domain.PopupState{}, err
	}
	return domain.PopupState{Visible: value == "1"}, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, state domain.PopupState) error {
	value := "0"
	if state.Visible {
		value = "1"
	}
	return s.Client.Set(ctx, s.PopupKey(sessionID), value, s.TTL).Err()
}
