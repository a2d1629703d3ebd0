package radius

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStorage counts Get calls that reach the backend.
type countingStorage struct {
	DocumentStorage
	gets int
}

func (c *countingStorage) Get(ctx context.Context, name string) (*StoredDocument, error) {
	c.gets++
	return c.DocumentStorage.Get(ctx, name)
}

func newCountingCache(t *testing.T, config CacheConfig) (*CachedStorage, *countingStorage) {
	t.Helper()
	backend := &countingStorage{DocumentStorage: NewMemoryStorage()}
	return NewCachedStorage(backend, config), backend
}

func TestCachedStorage_DocumentStorage(t *testing.T) {
	testDocumentStorage(t, func(t *testing.T) DocumentStorage {
		return NewCachedStorage(NewMemoryStorage(), DefaultCacheConfig())
	})
}

func TestNewCachedStorage_Defaults(t *testing.T) {
	cache := NewCachedStorage(NewMemoryStorage(), CacheConfig{})
	assert.Equal(t, DefaultCacheTTL, cache.config.TTL)
	assert.Equal(t, DefaultCacheMaxEntries, cache.config.MaxEntries)
	assert.Zero(t, cache.config.NegativeTTL)
	assert.IsType(t, &MemoryStorage{}, cache.Unwrap())
}

func TestCachedStorage_Get(t *testing.T) {
	ctx := context.Background()
	cache, backend := newCountingCache(t, DefaultCacheConfig())
	require.NoError(t, cache.Save(ctx, &StoredDocument{Name: "layout", Source: "v1"}))

	for i := 0; i < 3; i++ {
		doc, err := cache.Get(ctx, "layout")
		require.NoError(t, err)
		assert.Equal(t, "v1", doc.Source)
	}
	assert.Equal(t, 1, backend.gets)

	stats := cache.Stats()
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestCachedStorage_SaveInvalidates(t *testing.T) {
	ctx := context.Background()
	cache, backend := newCountingCache(t, DefaultCacheConfig())
	require.NoError(t, cache.Save(ctx, &StoredDocument{Name: "layout", Source: "v1"}))
	_, err := cache.Get(ctx, "layout")
	require.NoError(t, err)

	require.NoError(t, cache.Save(ctx, &StoredDocument{Name: "layout", Source: "v2"}))
	doc, err := cache.Get(ctx, "layout")
	require.NoError(t, err)
	assert.Equal(t, "v2", doc.Source)
	assert.Equal(t, 2, backend.gets)

	require.NoError(t, cache.Delete(ctx, "layout"))
	_, err = cache.Get(ctx, "layout")
	assert.True(t, errors.Is(err, ErrDocumentNotFound))
}

func TestCachedStorage_NegativeCache(t *testing.T) {
	ctx := context.Background()

	t.Run("enabled", func(t *testing.T) {
		cache, backend := newCountingCache(t, CacheConfig{NegativeTTL: time.Minute})
		for i := 0; i < 2; i++ {
			_, err := cache.Get(ctx, "missing")
			assert.True(t, errors.Is(err, ErrDocumentNotFound))
		}
		assert.Equal(t, 1, backend.gets)
		assert.Equal(t, 1, cache.Stats().Negative)

		exists, err := cache.Exists(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("disabled", func(t *testing.T) {
		cache, backend := newCountingCache(t, CacheConfig{})
		for i := 0; i < 2; i++ {
			_, err := cache.Get(ctx, "missing")
			assert.Error(t, err)
		}
		assert.Equal(t, 2, backend.gets)
	})
}

func TestCachedStorage_Expiry(t *testing.T) {
	ctx := context.Background()
	cache, backend := newCountingCache(t, CacheConfig{TTL: time.Millisecond})
	require.NoError(t, cache.Save(ctx, &StoredDocument{Name: "page", Source: "x"}))

	_, err := cache.Get(ctx, "page")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.Get(ctx, "page")
	require.NoError(t, err)

	assert.Equal(t, 2, backend.gets)
}

func TestCachedStorage_Eviction(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCountingCache(t, CacheConfig{MaxEntries: 2})
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Save(ctx, &StoredDocument{Name: name, Source: name}))
	}

	_, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = cache.Get(ctx, "b")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = cache.Get(ctx, "a")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = cache.Get(ctx, "c")
	require.NoError(t, err)

	cache.mu.Lock()
	_, hasA := cache.entries["a"]
	_, hasB := cache.entries["b"]
	_, hasC := cache.entries["c"]
	cache.mu.Unlock()

	assert.True(t, hasA)
	assert.False(t, hasB, "least recently used entry is evicted")
	assert.True(t, hasC)
}

func TestCachedStorage_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	cache, backend := newCountingCache(t, DefaultCacheConfig())
	require.NoError(t, cache.Save(ctx, &StoredDocument{Name: "page", Source: "x"}))
	_, _ = cache.Get(ctx, "page")

	cache.InvalidateAll()
	assert.Equal(t, 0, cache.Stats().Entries)

	_, _ = cache.Get(ctx, "page")
	assert.Equal(t, 2, backend.gets)
}

func TestCachedStorage_RenderUsesCache(t *testing.T) {
	ctx := context.Background()
	cache, backend := newCountingCache(t, DefaultCacheConfig())
	engine := MustNew(WithStorage(cache))
	defer engine.Close()

	_, err := engine.SaveDocument(ctx, "item", "*", nil)
	require.NoError(t, err)
	_, err = engine.SaveDocument(ctx, "list",
		`<radius:snippet name="item" /><radius:snippet name="item" /><radius:snippet name="item" />`, nil)
	require.NoError(t, err)

	out, err := engine.Render(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, "***", out)
	assert.Equal(t, 2, backend.gets, "one load for list, one for item")
}
