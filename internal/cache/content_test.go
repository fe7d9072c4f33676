// Integration tests for the content cache. Skipped when Valkey is not
// reachable; a dedicated DB index keeps test keys away from real data.
package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"contentpress/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Valkey client on DB 15 for tests.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, contentKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func TestContentCacheSetGet(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewContentCache(client, time.Minute)
	ctx := context.Background()

	c := &models.Content{
		ID:       uuid.New(),
		Title:    "Cached Article",
		Slug:     "cached-article",
		Category: "news",
	}
	cc.Set(ctx, c)

	got, ok := cc.Get(ctx, "cached-article")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.ID != c.ID || got.Title != c.Title {
		t.Errorf("cached record mismatch: got %+v", got)
	}
}

func TestContentCacheMiss(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewContentCache(client, time.Minute)

	if _, ok := cc.Get(context.Background(), "never-stored"); ok {
		t.Error("expected miss for unknown slug")
	}
}

func TestContentCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewContentCache(client, time.Minute)
	ctx := context.Background()

	c := &models.Content{ID: uuid.New(), Title: "Gone", Slug: "gone-soon"}
	cc.Set(ctx, c)

	cc.Invalidate(ctx, "gone-soon")
	if _, ok := cc.Get(ctx, "gone-soon"); ok {
		t.Error("expected miss after invalidation")
	}

	// Empty slugs are ignored without error.
	cc.Invalidate(ctx, "")
}

// A nil cache is the disabled configuration: every lookup misses and
// writes are no-ops.
func TestContentCacheNilSafe(t *testing.T) {
	var cc *ContentCache
	ctx := context.Background()

	if _, ok := cc.Get(ctx, "anything"); ok {
		t.Error("nil cache must miss")
	}
	cc.Set(ctx, &models.Content{Slug: "anything"})
	cc.Invalidate(ctx, "anything")
}

func TestContentCacheTTL(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewContentCache(client, 0)
	if cc.ttl != DefaultContentTTL {
		t.Errorf("zero TTL should fall back to default, got %v", cc.ttl)
	}
}
