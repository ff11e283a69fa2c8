package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConfirmCache stores the response of a completed booking confirmation under
// the caller's idempotency key, so a retried confirm replays the first
// response instead of appending another history entry.
type ConfirmCache struct {
	client *redis.Client
}

func NewConfirmCache(client *redis.Client) *ConfirmCache {
	return &ConfirmCache{client: client}
}

type CachedResponse struct {
	Status int
	Result []byte
}

func (c *ConfirmCache) Get(ctx context.Context, key string) (*CachedResponse, error) {
	val, err := c.client.Get(ctx, "confirm:"+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp CachedResponse
	err = json.Unmarshal(val, &resp)
	return &resp, err
}

func (c *ConfirmCache) Set(ctx context.Context, key string, resp CachedResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "confirm:"+key, data, ttl).Err()
}
