// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed full-page HTML cache.
// Catalog pages are rendered once and stored under their request path, so
// repeat requests skip template execution entirely. A nil *PageCache is a
// valid, always-missing cache.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"thearchives/internal/observability"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// Cache event labels.
const (
	eventHit   = "hit"
	eventMiss  = "miss"
	eventSet   = "set"
	eventError = "error"
)

// PageCache manages full-page HTML caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a page key.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache(eventMiss)
		return nil, false
	}
	if err != nil {
		observability.ObserveCache(eventError)
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	observability.ObserveCache(eventHit)
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		observability.ObserveCache(eventError)
		slog.Warn("page cache set error", "key", key, "error", err)
		return
	}
	observability.ObserveCache(eventSet)
}

// InvalidatePage removes a single page from the cache.
func (pc *PageCache) InvalidatePage(ctx context.Context, key string) error {
	if pc == nil {
		return nil
	}
	if err := pc.client.Del(ctx, pageKeyPrefix+key).Err(); err != nil {
		return err
	}
	slog.Debug("page cache invalidated", "key", key)
	return nil
}

// InvalidateAll removes all cached pages by scanning for the prefix and
// returns how many were deleted. Used after deploying a new catalog, since
// any page could be affected.
func (pc *PageCache) InvalidateAll(ctx context.Context) (int, error) {
	if pc == nil {
		return 0, nil
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, err
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache fully cleared", "deleted", deleted)
	}
	return deleted, nil
}

// PathKey returns the cache key for a request path and its raw query.
func PathKey(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}
