package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/mirror"
)

const keyPrefix = "mirror:license:"

// RedisMirrorCache is a best-effort read cache; failures only cost a
// database round trip.
type RedisMirrorCache struct {
	client redis.Cmdable
	log    *slog.Logger
}

var _ mirror.Cache = (*RedisMirrorCache)(nil)

func NewRedisMirrorCache(client redis.Cmdable, log *slog.Logger) *RedisMirrorCache {
	return &RedisMirrorCache{
		client: client,
		log:    log.With("component", "mirror_cache"),
	}
}

func (c *RedisMirrorCache) Get(ctx context.Context, key string) (*mirror.Entry, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache get failed", "error", err)
		}
		return nil, false
	}

	var e mirror.Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.log.Warn("cache entry corrupt", "error", err)
		return nil, false
	}
	return &e, true
}

func (c *RedisMirrorCache) Set(ctx context.Context, e mirror.Entry, ttl time.Duration) {
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+e.LicenseKey, raw, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "error", err)
	}
}

func (c *RedisMirrorCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		c.log.Warn("cache delete failed", "error", err)
	}
}
