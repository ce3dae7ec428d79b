// Package cache is the cache-aside layer in front of the gadget store.
// It is never a source of truth: every entry carries a TTL and readers
// fall back to the store on a miss or on any cache failure.
package cache

import (
  "context"
  "time"
)

// DefaultTTL bounds how long a stale entry can be served after an
// untouched filter combination goes out of date.
const DefaultTTL = time.Hour

type CacheService interface {
  // Get returns the cached value for key. ok is false on a miss or an
  // expired entry. A non-nil error means the backend itself failed.
  Get(ctx context.Context, key string) (value string, ok bool, err error)
  // Set stores value under key for ttl.
  Set(ctx context.Context, key, value string, ttl time.Duration) error
  // Invalidate removes the given keys, best effort. Keys that do not
  // exist are not an error.
  Invalidate(ctx context.Context, keys ...string) error
}
