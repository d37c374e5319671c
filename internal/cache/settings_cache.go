package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const settingsKeyPrefix = "settings:"
const settingsTTL = 10 * time.Minute

// SettingsCache keeps serialized settings documents in Redis. A nil receiver
// or nil client degrades to cache misses, so the app runs without Redis.
type SettingsCache struct {
	client *redis.Client
}

// NewSettingsCache wraps an already-connected Redis client. Pass nil to
// disable caching.
func NewSettingsCache(client *redis.Client) *SettingsCache {
	return &SettingsCache{client: client}
}

// Get returns the cached raw settings value for a key, if present.
func (c *SettingsCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, settingsKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores the raw settings value. Failures are ignored; the database
// remains the source of truth.
func (c *SettingsCache) Set(ctx context.Context, key string, value []byte) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, settingsKeyPrefix+key, value, settingsTTL)
}

// Invalidate drops the cached value after a settings write.
func (c *SettingsCache) Invalidate(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, settingsKeyPrefix+key)
}

// Connect dials Redis and verifies the connection. Returns nil on failure so
// callers can fall back to running uncached.
func Connect(ctx context.Context, addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil
	}
	return client
}
