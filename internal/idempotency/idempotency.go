// Package idempotency replays stored responses for repeated write requests.
// The booking confirm endpoint uses it because the history append is not
// idempotent: a client retrying with the same Idempotency-Key gets the first
// response back instead of a duplicate history entry.
package idempotency

import (
	"context"
	"time"

	redisadapter "github.com/Bhushan1137/Movie-Ticket-Booking/internal/adapters/redis"
)

type Idempotency struct {
	cache *redisadapter.ConfirmCache
	ttl   time.Duration
}

func NewIdempotency(cache *redisadapter.ConfirmCache, ttl time.Duration) *Idempotency {
	return &Idempotency{cache: cache, ttl: ttl}
}

type Response struct {
	Status int
	Result []byte
}

func (i *Idempotency) Get(ctx context.Context, key string) (*Response, error) {
	if key == "" {
		return nil, nil
	}
	resp, err := i.cache.Get(ctx, key)
	if err != nil || resp == nil {
		return nil, err
	}
	return &Response{Status: resp.Status, Result: resp.Result}, nil
}

func (i *Idempotency) Set(ctx context.Context, key string, resp Response) error {
	if key == "" {
		return nil
	}
	return i.cache.Set(ctx, key, redisadapter.CachedResponse{
		Status: resp.Status,
		Result: resp.Result,
	}, i.ttl)
}
