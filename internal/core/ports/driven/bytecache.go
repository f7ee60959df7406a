package driven

import (
	"context"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
)

// ByteCache is an optional persistent cache of downloaded image bytes
// that outlives a single export session. Entries are keyed by
// (fileID, ImageKey) because image keys are unique within one file only.
//
// The per-session memoisation of the byte store is unaffected: a warm
// cache only replaces the network fetch.
type ByteCache interface {
	// Get returns the cached blob, or domain.ErrNotFound when absent
	// or expired.
	Get(ctx context.Context, fileID string, key domain.ImageKey) (*domain.ImageBlob, error)

	// Put stores a blob. Overwrites any existing entry for the key.
	Put(ctx context.Context, fileID string, key domain.ImageKey, blob domain.ImageBlob) error

	// CleanupExpired removes expired entries and reports how many were
	// deleted.
	CleanupExpired(ctx context.Context) (int64, error)

	// Close releases resources.
	Close() error
}
