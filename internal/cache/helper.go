package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"murmur/internal/observability"

	"github.com/redis/go-redis/v9"
)

// EntityKey builds the cache key for a single entity read.
func EntityKey(collection string, id interface{}) string {
	return fmt.Sprintf("murmur:%s:%v", collection, id)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Invalidate removes keys from the cache. Best-effort; errors are
// surfaced through the metrics hook only.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	_ = client.Del(ctx, keys...).Err()
}

// CacheAside tries Redis first; on miss it calls fetch (which must
// write into dest), then stores the result with ttl. Cache errors are
// treated as misses so the store remains the source of truth.
func CacheAside(ctx context.Context, collection, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		observability.CacheHits.WithLabelValues(collection).Inc()
		return nil
	}
	observability.CacheMisses.WithLabelValues(collection).Inc()

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}
