package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
)

// TreeEnricher walks a fetched node tree and resolves every image fill
// on every node, unboundedly deep. For each fill the precedence is:
//
//  1. imageRef with a map entry: exact asset, resolved by ref.
//  2. pre-existing raw imageUrl on the fill: resolved by url.
//  3. whole-node raster fallback from the nearest ancestor (or the node
//     itself) that has one: propagated to every image fill in that
//     subtree lacking its own resolution, marked NodeExport so
//     consumers know it is an approximation.
//  4. otherwise the fill stays unresolved.
//
// The enricher takes exclusive mutable access to the tree for the
// duration of one pass. Fills of a node and child subtrees are
// processed concurrently; a node is done only once every fill and every
// child has settled.
type TreeEnricher struct {
	urls  map[domain.ImageKey]string
	bytes *ByteStore
}

// NewTreeEnricher creates an enricher over a completed resolution map
// and the file's byte store. The map is read-only from here on.
func NewTreeEnricher(urls map[domain.ImageKey]string, bytes *ByteStore) *TreeEnricher {
	return &TreeEnricher{urls: urls, bytes: bytes}
}

// Enrich resolves images throughout the subtree rooted at node.
// It returns once the whole subtree has settled. Failures are soft and
// leave individual fills without image payloads.
func (e *TreeEnricher) Enrich(ctx context.Context, node *domain.Node) {
	e.enrich(ctx, node, domain.ImageKey{}, "")
}

// enrich carries the innermost node-render fallback down the recursion.
// A node with its own render entry replaces the inherited fallback for
// its whole subtree.
func (e *TreeEnricher) enrich(ctx context.Context, node *domain.Node, fallbackKey domain.ImageKey, fallbackURL string) {
	if node == nil {
		return
	}
	if url, ok := e.urls[domain.NodeKey(node.ID)]; ok {
		fallbackKey, fallbackURL = domain.NodeKey(node.ID), url
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, fill := range node.Fills {
		if fill == nil || !fill.Type.IsImage() {
			continue
		}
		g.Go(func() error {
			e.enrichFill(gctx, fill, fallbackKey, fallbackURL)
			return nil
		})
	}
	for _, child := range node.Children {
		g.Go(func() error {
			e.enrich(gctx, child, fallbackKey, fallbackURL)
			return nil
		})
	}
	_ = g.Wait()
}

// enrichFill applies the documented precedence to one image fill.
// Distinct goroutines write distinct fills, so no locking is needed.
func (e *TreeEnricher) enrichFill(ctx context.Context, fill *domain.Fill, fallbackKey domain.ImageKey, fallbackURL string) {
	if fill.ImageRef != "" {
		if url, ok := e.urls[domain.RefKey(fill.ImageRef)]; ok {
			fill.ImageURL = url
			e.apply(ctx, domain.RefKey(fill.ImageRef), url, fill)
			return
		}
	}

	if fill.ImageURL != "" {
		e.apply(ctx, domain.URLKey(fill.ImageURL), fill.ImageURL, fill)
		return
	}

	if !fallbackKey.IsZero() {
		fill.ImageURL = fallbackURL
		fill.NodeExport = true
		e.apply(ctx, fallbackKey, fallbackURL, fill)
		return
	}
	// Unresolved: no URL, no data.
}

func (e *TreeEnricher) apply(ctx context.Context, key domain.ImageKey, url string, fill *domain.Fill) {
	payload := e.bytes.Resolve(ctx, key, url)
	fill.ImageData = payload.InlineData
	fill.Oversized = payload.Oversized
}
