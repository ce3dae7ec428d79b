package cache

import (
  "context"
  "time"

  "github.com/viccon/sturdyc"

  "github.com/yungbote/gadgetvault-backend/internal/logger"
)

const (
  memoryCapacity           = 10000
  memoryShards             = 64
  memoryEvictionPercentage = 10
)

// memoryCache is the in-process fallback used when no redis address is
// configured, and by tests. It is sharded and TTL-bounded like the redis
// backend, but entries share the cache's configured TTL: the per-call ttl
// argument is accepted for interface parity and entries still expire at
// the cache-wide bound set at construction.
type memoryCache struct {
  log    *logger.Logger
  client *sturdyc.Client[string]
  ttl    time.Duration
}

func NewMemoryCache(log *logger.Logger, ttl time.Duration) CacheService {
  if ttl <= 0 {
    ttl = DefaultTTL
  }
  client := sturdyc.New[string](memoryCapacity, memoryShards, ttl, memoryEvictionPercentage)
  var memLog *logger.Logger
  if log != nil {
    memLog = log.With("service", "MemoryCache")
  }
  return &memoryCache{log: memLog, client: client, ttl: ttl}
}

func (mc *memoryCache) Get(ctx context.Context, key string) (string, bool, error) {
  val, ok := mc.client.Get(key)
  if !ok {
    return "", false, nil
  }
  return val, true, nil
}

func (mc *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
  if ttl != mc.ttl && mc.log != nil {
    mc.log.Debug("Requested TTL differs from cache-wide bound", "key", key, "requested_ttl", ttl, "cache_ttl", mc.ttl)
  }
  mc.client.Set(key, value)
  return nil
}

func (mc *memoryCache) Invalidate(ctx context.Context, keys ...string) error {
  for _, key := range keys {
    mc.client.Delete(key)
  }
  return nil
}
