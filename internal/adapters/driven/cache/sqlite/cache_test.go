package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := NewCache(t.TempDir(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_PutAndGet(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	blob := domain.ImageBlob{
		Data:        []byte{0x89, 0x50, 0x4E, 0x47},
		ContentType: "image/png",
		StoredAt:    time.Now().UTC(),
	}
	key := domain.RefKey("img-ref-1")

	err := c.Put(ctx, "file-a", key, blob)
	require.NoError(t, err)

	got, err := c.Get(ctx, "file-a", key)
	require.NoError(t, err)
	assert.Equal(t, blob.Data, got.Data)
	assert.Equal(t, "image/png", got.ContentType)
}

func TestCache_Get_NotFound(t *testing.T) {
	c := newTestCache(t, time.Hour)

	_, err := c.Get(context.Background(), "file-a", domain.RefKey("missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCache_KeyedByFile(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()
	key := domain.RefKey("shared-ref")

	err := c.Put(ctx, "file-a", key, domain.ImageBlob{Data: []byte("a"), ContentType: "image/png"})
	require.NoError(t, err)

	// Same image key under a different file is a distinct entry
	_, err = c.Get(ctx, "file-b", key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCache_Put_Overwrites(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()
	key := domain.NodeKey("1:2")

	require.NoError(t, c.Put(ctx, "file-a", key, domain.ImageBlob{Data: []byte("old"), ContentType: "image/png"}))
	require.NoError(t, c.Put(ctx, "file-a", key, domain.ImageBlob{Data: []byte("new"), ContentType: "image/svg+xml"}))

	got, err := c.Get(ctx, "file-a", key)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got.Data)
	assert.Equal(t, "image/svg+xml", got.ContentType)
}

func TestCache_Get_Expired(t *testing.T) {
	c := newTestCache(t, time.Millisecond)
	ctx := context.Background()
	key := domain.RefKey("short-lived")

	require.NoError(t, c.Put(ctx, "file-a", key, domain.ImageBlob{Data: []byte("x"), ContentType: "image/png"}))

	time.Sleep(10 * time.Millisecond)

	_, err := c.Get(ctx, "file-a", key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCache_CleanupExpired(t *testing.T) {
	c := newTestCache(t, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "file-a", domain.RefKey("r1"), domain.ImageBlob{Data: []byte("1"), ContentType: "image/png"}))
	require.NoError(t, c.Put(ctx, "file-a", domain.RefKey("r2"), domain.ImageBlob{Data: []byte("2"), ContentType: "image/png"}))

	time.Sleep(10 * time.Millisecond)

	deleted, err := c.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// Second run has nothing left to remove
	deleted, err = c.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestCache_ReopenPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	key := domain.RefKey("persisted")

	c1, err := NewCache(dir, time.Hour)
	require.NoError(t, err)
	require.NoError(t, c1.Put(ctx, "file-a", key, domain.ImageBlob{Data: []byte("bytes"), ContentType: "image/png"}))
	require.NoError(t, c1.Close())

	c2, err := NewCache(dir, time.Hour)
	require.NoError(t, err)
	defer c2.Close()

	got, err := c2.Get(ctx, "file-a", key)
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes"), got.Data)
}
