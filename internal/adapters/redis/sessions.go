// Package redis holds the redis-backed session store and the
// confirmation-replay cache.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Sessions struct {
	client *redis.Client
}

func NewSessions(client *redis.Client) *Sessions {
	return &Sessions{client: client}
}

// Add registers a live session for the user. Tokens are only honored while
// their session id is present here, which is what makes sign-out effective
// before the JWT expires.
func (s *Sessions) Add(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, "sess:"+sessionID, userID, ttl).Err()
}

func (s *Sessions) Alive(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, "sess:"+sessionID).Result()
	return n > 0, err
}

func (s *Sessions) Revoke(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, "sess:"+sessionID).Err()
}
