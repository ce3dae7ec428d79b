package cache

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/yungbote/gadgetvault-backend/internal/logger"
  "github.com/yungbote/gadgetvault-backend/internal/utils"
)

type redisCache struct {
  log *logger.Logger
  rdb *goredis.Client
}

// NewRedisCache connects to the redis instance named by REDIS_ADDR and
// verifies the connection before returning.
func NewRedisCache(log *logger.Logger) (CacheService, error) {
  if log == nil {
    return nil, fmt.Errorf("logger required")
  }

  addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
  if addr == "" {
    return nil, fmt.Errorf("missing REDIS_ADDR")
  }

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &redisCache{
    log: log.With("service", "RedisCache"),
    rdb: rdb,
  }, nil
}

func (rc *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
  val, err := rc.rdb.Get(ctx, key).Result()
  if errors.Is(err, goredis.Nil) {
    return "", false, nil
  }
  if err != nil {
    return "", false, fmt.Errorf("redis get %q: %w", key, err)
  }
  return val, true, nil
}

func (rc *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
  if err := rc.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
    return fmt.Errorf("redis set %q: %w", key, err)
  }
  return nil
}

func (rc *redisCache) Invalidate(ctx context.Context, keys ...string) error {
  if len(keys) == 0 {
    return nil
  }
  if err := rc.rdb.Del(ctx, keys...).Err(); err != nil {
    return fmt.Errorf("redis del: %w", err)
  }
  return nil
}
