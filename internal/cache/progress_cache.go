package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProgressCache keeps the latest computed progress per interview so detail
// views do not recompute it on every read.
type ProgressCache interface {
	SetProgress(ctx context.Context, interviewID string, progress int) error
	GetProgress(ctx context.Context, interviewID string) (int, bool, error)
	Delete(ctx context.Context, interviewID string) error
}

type progressCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProgressCache creates a new progress cache
func NewProgressCache(client *redis.Client) ProgressCache {
	return &progressCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *progressCache) key(interviewID string) string {
	return fmt.Sprintf("interview:%s:progress", interviewID)
}

func (c *progressCache) SetProgress(ctx context.Context, interviewID string, progress int) error {
	return c.client.Set(ctx, c.key(interviewID), progress, c.ttl).Err()
}

func (c *progressCache) GetProgress(ctx context.Context, interviewID string) (int, bool, error) {
	data, err := c.client.Get(ctx, c.key(interviewID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	progress, err := strconv.Atoi(data)
	if err != nil {
		return 0, false, err
	}
	return progress, true, nil
}

func (c *progressCache) Delete(ctx context.Context, interviewID string) error {
	return c.client.Del(ctx, c.key(interviewID)).Err()
}
