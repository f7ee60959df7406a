// Package memory provides an in-process image byte cache. It is the
// default for one-shot exports where persistence across runs is not
// worth a database file.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

// DefaultTTL matches the persistent cache default.
const DefaultTTL = 24 * time.Hour

// Ensure Cache implements the interface.
var _ driven.ByteCache = (*Cache)(nil)

// Cache is an in-memory implementation of driven.ByteCache backed by
// an expiring key/value store.
type Cache struct {
	items *gocache.Cache
}

// NewCache creates an in-memory image cache. A ttl of zero means
// DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	// No janitor goroutine; expired items are evicted lazily on Get
	// and explicitly via CleanupExpired.
	return &Cache{items: gocache.New(ttl, 0)}
}

// cacheKey namespaces image keys by file, since image refs are only
// unique within a single file.
func cacheKey(fileID string, key domain.ImageKey) string {
	return fileID + "\x00" + key.String()
}

// Get retrieves cached image bytes.
func (c *Cache) Get(_ context.Context, fileID string, key domain.ImageKey) (*domain.ImageBlob, error) {
	val, ok := c.items.Get(cacheKey(fileID, key))
	if !ok {
		return nil, domain.ErrNotFound
	}
	blob := val.(domain.ImageBlob)
	return &blob, nil
}

// Put stores image bytes, replacing any existing entry for the key.
func (c *Cache) Put(_ context.Context, fileID string, key domain.ImageKey, blob domain.ImageBlob) error {
	if blob.StoredAt.IsZero() {
		blob.StoredAt = time.Now().UTC()
	}
	c.items.SetDefault(cacheKey(fileID, key), blob)
	return nil
}

// CleanupExpired evicts expired entries and reports how many were
// removed.
func (c *Cache) CleanupExpired(_ context.Context) (int64, error) {
	before := c.items.ItemCount()
	c.items.DeleteExpired()
	return int64(before - c.items.ItemCount()), nil
}

// Close is a no-op for the in-memory cache.
func (c *Cache) Close() error {
	return nil
}
