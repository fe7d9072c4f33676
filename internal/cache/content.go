// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content.go provides a Valkey-backed cache of content records keyed by
// slug. The slug lookup is the public read path, so a hit skips the DB
// entirely. Writes invalidate the affected slug; staleness is otherwise
// bounded by a short TTL. A nil *ContentCache is valid and always misses,
// which is how the app runs when Valkey is not configured.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"contentpress/internal/models"
)

const (
	// contentKeyPrefix is the Valkey key prefix for cached records.
	contentKeyPrefix = "content:slug:"

	// DefaultContentTTL is how long a cached record stays before expiry.
	DefaultContentTTL = 5 * time.Minute
)

// ContentCache caches JSON-encoded content records in Valkey by slug.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a content cache backed by the given Valkey client.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if ttl == 0 {
		ttl = DefaultContentTTL
	}
	return &ContentCache{client: client, ttl: ttl}
}

// Get retrieves a cached record by slug. Returns (nil, false) on miss,
// decode failure, or when the cache is disabled.
func (cc *ContentCache) Get(ctx context.Context, slug string) (*models.Content, bool) {
	if cc == nil {
		return nil, false
	}
	val, err := cc.client.Get(ctx, contentKeyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("content cache get error", "slug", slug, "error", err)
		return nil, false
	}

	var c models.Content
	if err := json.Unmarshal(val, &c); err != nil {
		slog.Warn("content cache decode error", "slug", slug, "error", err)
		return nil, false
	}
	slog.Debug("content cache hit", "slug", slug)
	return &c, true
}

// Set stores a record under its slug with the configured TTL.
func (cc *ContentCache) Set(ctx context.Context, c *models.Content) {
	if cc == nil {
		return
	}
	data, err := json.Marshal(c)
	if err != nil {
		slog.Warn("content cache encode error", "slug", c.Slug, "error", err)
		return
	}
	if err := cc.client.Set(ctx, contentKeyPrefix+c.Slug, data, cc.ttl).Err(); err != nil {
		slog.Warn("content cache set error", "slug", c.Slug, "error", err)
	}
}

// Invalidate removes a record from the cache by slug. Called on every
// mutation so readers never see a deleted or superseded record past the
// write that changed it.
func (cc *ContentCache) Invalidate(ctx context.Context, slugs ...string) {
	if cc == nil {
		return
	}
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		if err := cc.client.Del(ctx, contentKeyPrefix+slug).Err(); err != nil {
			slog.Warn("content cache invalidate error", "slug", slug, "error", err)
		}
	}
}
