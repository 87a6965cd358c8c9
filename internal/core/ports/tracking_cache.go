package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by TrackingCache.Get when nothing is cached for a code.
var ErrCacheMiss = errors.New("tracking view not cached")

// TrackingCache stores serialized public tracking views by tracking code.
// Entries expire after the TTL given to Set.
type TrackingCache interface {
	Get(ctx context.Context, code string) ([]byte, error)
	Set(ctx context.Context, code string, view []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, code string) error
}
