package radius

import (
	"context"
	"errors"
	"sync"
	"time"
)

// CachedStorage wraps a DocumentStorage and caches the latest version of each
// document looked up by name. Writes through the wrapper invalidate the
// affected name; writes that bypass it are seen once the TTL expires.
type CachedStorage struct {
	storage DocumentStorage
	config  CacheConfig

	mu      sync.Mutex
	entries map[string]*cacheEntry
	closed  bool
	hits    int
	misses  int
}

// CacheConfig configures the caching behavior.
type CacheConfig struct {
	// TTL is how long a cached document stays valid.
	// Default: 5 minutes
	TTL time.Duration

	// MaxEntries bounds the cache. The least recently used entry is evicted.
	// Default: 1000
	MaxEntries int

	// NegativeTTL is how long a missing document is remembered.
	// 0 disables negative caching.
	NegativeTTL time.Duration
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Entries  int
	Negative int
	Hits     int
	Misses   int
}

type cacheEntry struct {
	doc        *StoredDocument
	missing    bool
	cachedAt   time.Time
	accessedAt time.Time
}

// DefaultCacheConfig returns the default caching configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:         DefaultCacheTTL,
		MaxEntries:  DefaultCacheMaxEntries,
		NegativeTTL: DefaultCacheNegativeTTL,
	}
}

// NewCachedStorage wraps storage with a cache. Zero TTL and MaxEntries take
// their defaults.
func NewCachedStorage(storage DocumentStorage, config CacheConfig) *CachedStorage {
	if config.TTL <= 0 {
		config.TTL = DefaultCacheTTL
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultCacheMaxEntries
	}
	return &CachedStorage{
		storage: storage,
		config:  config,
		entries: make(map[string]*cacheEntry),
	}
}

// Unwrap returns the wrapped storage.
func (s *CachedStorage) Unwrap() DocumentStorage {
	return s.storage
}

// Get returns the latest version of name, from the cache when possible.
func (s *CachedStorage) Get(ctx context.Context, name string) (*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, NewStorageClosedError()
	}
	if entry, ok := s.lookup(name); ok {
		s.hits++
		entry.accessedAt = time.Now()
		doc, missing := copyStoredDocument(entry.doc), entry.missing
		s.mu.Unlock()
		if missing {
			return nil, NewDocumentNotFoundError(name)
		}
		return doc, nil
	}
	s.misses++
	s.mu.Unlock()

	doc, err := s.storage.Get(ctx, name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, NewStorageClosedError()
	}

	switch {
	case err == nil:
		s.store(name, &cacheEntry{doc: copyStoredDocument(doc)})
	case errors.Is(err, ErrDocumentNotFound) && s.config.NegativeTTL > 0:
		s.store(name, &cacheEntry{missing: true})
	}
	return doc, err
}

// GetVersion is not cached; versions are read straight from the backend.
func (s *CachedStorage) GetVersion(ctx context.Context, name string, version int) (*StoredDocument, error) {
	return s.storage.GetVersion(ctx, name, version)
}

// Save writes through and invalidates name.
func (s *CachedStorage) Save(ctx context.Context, doc *StoredDocument) error {
	if err := s.storage.Save(ctx, doc); err != nil {
		return err
	}
	s.Invalidate(doc.Name)
	return nil
}

// Delete removes through and invalidates name.
func (s *CachedStorage) Delete(ctx context.Context, name string) error {
	if err := s.storage.Delete(ctx, name); err != nil {
		return err
	}
	s.Invalidate(name)
	return nil
}

// List is not cached.
func (s *CachedStorage) List(ctx context.Context, prefix string) ([]*StoredDocument, error) {
	return s.storage.List(ctx, prefix)
}

// Exists answers from a live cache entry when there is one.
func (s *CachedStorage) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, NewStorageClosedError()
	}
	if entry, ok := s.lookup(name); ok {
		s.mu.Unlock()
		return !entry.missing, nil
	}
	s.mu.Unlock()

	return s.storage.Exists(ctx, name)
}

// ListVersions is not cached.
func (s *CachedStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	return s.storage.ListVersions(ctx, name)
}

// Close drops the cache and closes the wrapped storage.
func (s *CachedStorage) Close() error {
	s.mu.Lock()
	s.closed = true
	s.entries = nil
	s.mu.Unlock()

	return s.storage.Close()
}

// Invalidate forgets name.
func (s *CachedStorage) Invalidate(name string) {
	s.mu.Lock()
	delete(s.entries, name)
	s.mu.Unlock()
}

// InvalidateAll empties the cache.
func (s *CachedStorage) InvalidateAll() {
	s.mu.Lock()
	if !s.closed {
		s.entries = make(map[string]*cacheEntry)
	}
	s.mu.Unlock()
}

// Stats returns the current cache counters.
func (s *CachedStorage) Stats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := CacheStats{Hits: s.hits, Misses: s.misses}
	for name := range s.entries {
		entry, ok := s.lookup(name)
		if !ok {
			continue
		}
		stats.Entries++
		if entry.missing {
			stats.Negative++
		}
	}
	return stats
}

// lookup returns the live entry for name, dropping it if expired.
// Caller holds the lock.
func (s *CachedStorage) lookup(name string) (*cacheEntry, bool) {
	entry, ok := s.entries[name]
	if !ok {
		return nil, false
	}
	ttl := s.config.TTL
	if entry.missing {
		ttl = s.config.NegativeTTL
	}
	if time.Since(entry.cachedAt) >= ttl {
		delete(s.entries, name)
		return nil, false
	}
	return entry, true
}

// store adds entry under name, evicting the least recently used entry when
// full. Caller holds the lock.
func (s *CachedStorage) store(name string, entry *cacheEntry) {
	if _, exists := s.entries[name]; !exists && len(s.entries) >= s.config.MaxEntries {
		var oldest string
		var oldestAt time.Time
		for key, e := range s.entries {
			if oldest == "" || e.accessedAt.Before(oldestAt) {
				oldest, oldestAt = key, e.accessedAt
			}
		}
		delete(s.entries, oldest)
	}

	now := time.Now()
	entry.cachedAt = now
	entry.accessedAt = now
	s.entries[name] = entry
}
