package arr

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mock_cache.go -package=mocks github.com/vmunix/hmwrap/pkg/arr Cache

// Cache stores raw response bodies by key.
type Cache interface {
	// Get returns the cached value, or false when missing or expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
