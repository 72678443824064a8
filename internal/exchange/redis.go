package exchange

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redis "github.com/go-redis/redis/v8"
)

const ratesKey = "exchange:rates"

// How long a snapshot survives in redis. Longer than the freshness TTL
// on purpose: a stale entry is still the fallback when a fetch fails.
const redisEntryTTL = 7 * 24 * time.Hour

// RedisCache implements Cache on redis so multiple instances share one
// rate snapshot. Cache errors are logged and treated as a miss; the
// provider's fallback chain handles the rest.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a redis-backed snapshot cache
func NewRedisCache(addr, password string, db int) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Get reads the snapshot from redis
func (c *RedisCache) Get(ctx context.Context) (Snapshot, bool) {
	val, err := c.client.Get(ctx, ratesKey).Result()
	if err == redis.Nil {
		return Snapshot{}, false
	}
	if err != nil {
		slog.Warn("redis rates read failed", "error", err)
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		slog.Warn("corrupt rates cache entry", "error", err)
		return Snapshot{}, false
	}
	return snap, true
}

// Set writes the snapshot to redis
func (c *RedisCache) Set(ctx context.Context, snap Snapshot) {
	value, err := json.Marshal(snap)
	if err != nil {
		slog.Warn("failed to encode rates snapshot", "error", err)
		return
	}
	if err := c.client.Set(ctx, ratesKey, value, redisEntryTTL).Err(); err != nil {
		slog.Warn("redis rates write failed", "error", err)
	}
}

// Close releases the redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
