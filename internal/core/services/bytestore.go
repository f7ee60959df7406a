package services

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
	"github.com/slidevault-labs/slidevault-cli/internal/logger"
)

const (
	// InlineThreshold is the byte-size cutoff above which an image is
	// referenced by URL instead of embedded as base64. The consumer
	// embeds results in a single JSON response, so inlining must stay
	// bounded; the design service's own raster-export ceiling (~4 MiB)
	// bounds the worst case for any single asset.
	InlineThreshold = 512 << 10

	// defaultContentType is assumed when the download response carries
	// no Content-Type header.
	defaultContentType = "image/png"
)

// ImagePayload is the outcome of resolving one image's bytes.
// The zero value means "nothing resolved": no inline data, not oversized.
type ImagePayload struct {
	// InlineData is a data URI ("data:<type>;base64,..."), empty when
	// the image is oversized or the download failed.
	InlineData string

	// Oversized marks an image above the inline threshold. The caller
	// must fetch it out-of-band by URL instead of embedding it.
	Oversized bool
}

// ByteStore downloads image bytes, decides inline-vs-oversized, and
// memoises the result per ImageKey for the lifetime of one file's
// export. Concurrent resolvers of the same key coalesce into a single
// download. A second Resolve with the same key returns the cached
// result without a network call even if the URL differs - the URL may
// be a freshly signed variant of the same logical asset.
//
// A ByteStore is scoped to one file within one export call. Create a
// fresh one per file; never share across calls.
type ByteStore struct {
	fileID     string
	fetcher    driven.ImageFetcher
	persistent driven.ByteCache // may be nil
	metrics    driven.ExportMetrics
	threshold  int

	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]ImagePayload
}

// NewByteStore creates a byte store for one file's export session.
// persistent may be nil to disable the second-level cache.
func NewByteStore(fileID string, fetcher driven.ImageFetcher, persistent driven.ByteCache, metrics driven.ExportMetrics) *ByteStore {
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	return &ByteStore{
		fileID:     fileID,
		fetcher:    fetcher,
		persistent: persistent,
		metrics:    metrics,
		threshold:  InlineThreshold,
		entries:    make(map[string]ImagePayload),
	}
}

// Resolve downloads the image behind url and returns its payload.
// Failures are soft: a download error resolves to the zero payload and
// the fill simply ends up without image bytes.
func (s *ByteStore) Resolve(ctx context.Context, key domain.ImageKey, url string) ImagePayload {
	ck := key.String()

	s.mu.Lock()
	if p, ok := s.entries[ck]; ok {
		s.mu.Unlock()
		s.metrics.CacheHit(s.fileID, key)
		return p
	}
	s.mu.Unlock()

	v, _, shared := s.group.Do(ck, func() (any, error) {
		p := s.resolveUncached(ctx, key, url)
		s.mu.Lock()
		s.entries[ck] = p
		s.mu.Unlock()
		return p, nil
	})
	if shared {
		s.metrics.CacheHit(s.fileID, key)
	}
	return v.(ImagePayload)
}

func (s *ByteStore) resolveUncached(ctx context.Context, key domain.ImageKey, url string) ImagePayload {
	s.metrics.CacheMiss(s.fileID, key)

	data, contentType, err := s.load(ctx, key, url)
	if err != nil {
		logger.Warn("image download failed for %s %s: %v", s.fileID, key, err)
		return ImagePayload{}
	}
	s.metrics.BytesDownloaded(s.fileID, len(data))

	if len(data) >= s.threshold {
		return ImagePayload{Oversized: true}
	}
	if contentType == "" {
		contentType = defaultContentType
	}
	return ImagePayload{
		InlineData: "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}
}

// load consults the persistent cache before fetching. Only ref keys are
// persisted: they are content-addressed and stable, while node renders
// and raw URLs point at transient signed assets.
func (s *ByteStore) load(ctx context.Context, key domain.ImageKey, url string) ([]byte, string, error) {
	cacheable := s.persistent != nil && key.Kind == domain.ImageKeyRef

	if cacheable {
		if blob, err := s.persistent.Get(ctx, s.fileID, key); err == nil {
			return blob.Data, blob.ContentType, nil
		}
	}

	data, contentType, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, "", err
	}

	if cacheable {
		blob := domain.ImageBlob{Data: data, ContentType: contentType, StoredAt: time.Now()}
		if err := s.persistent.Put(ctx, s.fileID, key, blob); err != nil {
			logger.Debug("byte cache put failed for %s %s: %v", s.fileID, key, err)
		}
	}
	return data, contentType, nil
}
