package driven

import "github.com/slidevault-labs/slidevault-cli/internal/core/domain"

// ExportMetrics receives structured pipeline events. It replaces inline
// logging as the pipeline's observability surface: implementations may
// count, aggregate or forward events, and the pipeline never blocks on
// them. Implementations must be safe for concurrent use.
type ExportMetrics interface {
	// TierUsed records that a resolution tier contributed entries to a
	// file's image resolution map.
	TierUsed(fileID string, tier domain.ResolutionTier)

	// CacheHit records a byte-store memoisation hit.
	CacheHit(fileID string, key domain.ImageKey)

	// CacheMiss records a byte-store miss that triggered a download.
	CacheMiss(fileID string, key domain.ImageKey)

	// BytesDownloaded records the size of one completed image download.
	BytesDownloaded(fileID string, n int)

	// NodeExported records one successfully assembled response entry.
	NodeExported(fileID, nodeID string)

	// NodeMissing records a requested node absent from the document
	// response.
	NodeMissing(fileID, nodeID string)

	// FileFailed records a file whose whole pipeline was abandoned.
	FileFailed(fileID string, err error)
}
