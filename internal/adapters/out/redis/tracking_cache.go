// Package redis caches public tracking views in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces tracking views in a shared Redis database.
const DefaultKeyPrefix = "shipping:track:"

// TrackingCache implements ports.TrackingCache.
type TrackingCache struct {
	client *redis.Client
	prefix string
}

// NewTrackingCache connects to redisURL, formatted as
// redis://[:password@]host[:port][/database]. An empty prefix uses DefaultKeyPrefix.
func NewTrackingCache(redisURL, prefix string) (*TrackingCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &TrackingCache{client: redis.NewClient(opts), prefix: prefix}, nil
}

// Get returns ports.ErrCacheMiss when nothing is stored for code.
func (c *TrackingCache) Get(ctx context.Context, code string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracking view %s: %w", code, err)
	}
	return val, nil
}

func (c *TrackingCache) Set(ctx context.Context, code string, view []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(code), view, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set tracking view %s: %w", code, err)
	}
	return nil
}

// Invalidate removes the view of code. Removing a missing key is not an error.
func (c *TrackingCache) Invalidate(ctx context.Context, code string) error {
	if err := c.client.Del(ctx, c.key(code)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate tracking view %s: %w", code, err)
	}
	return nil
}

func (c *TrackingCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *TrackingCache) Close() error {
	return c.client.Close()
}

func (c *TrackingCache) key(code string) string {
	return c.prefix + code
}
