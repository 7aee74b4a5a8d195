package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OrderCache hands out question order indexes for an interview. Reservation
// is atomic so two concurrent generations never share an index.
type OrderCache interface {
	// ReserveNext seeds the counter from persistedCount when absent and
	// returns the next free 1-based index.
	ReserveNext(ctx context.Context, interviewID string, persistedCount int64) (int, error)
	Reset(ctx context.Context, interviewID string) error
}

type orderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOrderCache creates a new question order cache
func NewOrderCache(client *redis.Client) OrderCache {
	return &orderCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *orderCache) key(interviewID string) string {
	return fmt.Sprintf("interview:%s:qorder", interviewID)
}

func (c *orderCache) ReserveNext(ctx context.Context, interviewID string, persistedCount int64) (int, error) {
	key := c.key(interviewID)

	// Seed so the counter survives restarts without re-issuing indexes
	// already taken by persisted questions. INCR after SETNX is still a
	// single winner per index across concurrent callers, and the first
	// increment over an empty interview yields 1.
	if err := c.client.SetNX(ctx, key, persistedCount, c.ttl).Err(); err != nil {
		return 0, err
	}
	next, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	c.client.Expire(ctx, key, c.ttl)
	return int(next), nil
}

func (c *orderCache) Reset(ctx context.Context, interviewID string) error {
	return c.client.Del(ctx, c.key(interviewID)).Err()
}
