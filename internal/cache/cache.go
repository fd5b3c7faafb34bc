// Package cache wraps the optional Redis client. A nil *Cache is valid
// and turns every operation into a no-op, so request paths never depend
// on Redis being up.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ProductListTTL   = 5 * time.Minute
	ProductDetailTTL = 10 * time.Minute
)

type Cache struct {
	rdb *redis.Client
}

// Connect pings Redis and returns the cache, or nil when the address is
// empty or Redis is unreachable.
func Connect(ctx context.Context, addr, password string) *Cache {
	if addr == "" {
		log.Println("⚠️  REDIS_HOST not set, running without cache")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Println("⚠️  Redis unreachable, running without cache:", err)
		return nil
	}

	log.Println("✅ Redis connected:", addr)
	return &Cache{rdb: rdb}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// GetJSON loads and decodes a cached value; false on miss or decode
// failure.
func (c *Cache) GetJSON(ctx context.Context, key string, v any) bool {
	if c == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), v) == nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		c.rdb.Set(ctx, key, data, ttl)
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}

// DeletePattern invalidates every key matching the pattern, used when a
// product write must drop all cached catalog pages.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) {
	if c == nil {
		return
	}
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}

// Incr counts an event under a key, refreshing the window on each hit.
// Used by the login rate limiter.
func (c *Cache) Incr(ctx context.Context, key string, window time.Duration) int64 {
	if c == nil {
		return 0
	}
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0
	}
	c.rdb.Expire(ctx, key, window)
	return n
}

// Count returns the current value of a counter key, 0 when absent.
func (c *Cache) Count(ctx context.Context, key string) int64 {
	if c == nil {
		return 0
	}
	n, err := c.rdb.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return n
}
