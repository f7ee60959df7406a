package services

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
	"github.com/slidevault-labs/slidevault-cli/internal/logger"
)

const (
	// renderBatchSize caps node ids per raster-export request. Ids are
	// passed as a CSV query parameter, so batches must stay under the
	// design service's URL-length constraints.
	renderBatchSize = 5

	// fallbackRenderScale is the conservative scale for fallback raster
	// exports.
	fallbackRenderScale = 1.0
)

// DocFetch provides access to a file's node documents. The export
// service and the resolver share one memoised fetch so the fallback
// tiers never duplicate the document request the tree fetch makes
// anyway.
type DocFetch func(ctx context.Context) (map[string]*domain.Node, error)

// NewDocFetch wraps the design service's node-document call in a
// memoised fetch for one file.
func NewDocFetch(svc driven.DesignService, fileID string, nodeIDs []string) DocFetch {
	var (
		once  sync.Once
		nodes map[string]*domain.Node
		err   error
	)
	return func(ctx context.Context) (map[string]*domain.Node, error) {
		once.Do(func() {
			nodes, err = svc.Nodes(ctx, fileID, nodeIDs)
		})
		return nodes, err
	}
}

// ImageMapResolver builds the ImageKey -> URL map for one file using a
// tiered fallback strategy:
//
//   - Tier A: one bulk image-fill lookup covering the whole file.
//   - Tier B1: raster exports of the requested top-level nodes, only
//     when Tier A errored.
//   - Tier B3: descendant discovery over the shared document fetch plus
//     batched raster exports of every descendant carrying image fills.
//
// Tiers merge with later writes overwriting earlier ones. The resolver
// itself never fails: exhausting all tiers just leaves images
// unresolved for that file.
type ImageMapResolver struct {
	svc     driven.DesignService
	metrics driven.ExportMetrics
}

// NewImageMapResolver creates a resolver for the given design service.
func NewImageMapResolver(svc driven.DesignService, metrics driven.ExportMetrics) *ImageMapResolver {
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	return &ImageMapResolver{svc: svc, metrics: metrics}
}

// Resolve builds the image resolution map for one file. nodeIDs are the
// requested top-level ids; docs is the shared document fetch, consulted
// only when the bulk lookup fails.
func (r *ImageMapResolver) Resolve(ctx context.Context, fileID string, nodeIDs []string, docs DocFetch) map[domain.ImageKey]string {
	urls := make(map[domain.ImageKey]string)

	fills, err := r.svc.ImageFills(ctx, fileID)
	if err == nil {
		// An empty map is still a success: the file has no image fills.
		r.metrics.TierUsed(fileID, domain.TierBulkFills)
		for ref, u := range fills {
			if ref != "" && u != "" {
				urls[domain.RefKey(ref)] = u
			}
		}
		return urls
	}
	logger.Warn("bulk image-fill lookup failed for file %s, falling back to node renders: %v", fileID, err)

	r.resolveNodeRenders(ctx, fileID, nodeIDs, urls)
	r.resolveDescendantRenders(ctx, fileID, docs, urls)
	return urls
}

// resolveNodeRenders is Tier B1: rasterise the requested top-level
// nodes themselves and record each URL under its node key.
func (r *ImageMapResolver) resolveNodeRenders(ctx context.Context, fileID string, nodeIDs []string, urls map[domain.ImageKey]string) {
	if len(nodeIDs) == 0 {
		return
	}
	rendered, err := r.svc.RenderNodes(ctx, fileID, nodeIDs, fallbackRenderScale)
	if err != nil {
		logger.Warn("node render fallback failed for file %s: %v", fileID, err)
		return
	}
	r.metrics.TierUsed(fileID, domain.TierNodeRender)
	for id, u := range rendered {
		if u != "" {
			urls[domain.NodeKey(id)] = u
		}
	}
}

// resolveDescendantRenders is Tier B3: scan the node documents for
// descendants carrying image fills with refs, then rasterise them in
// fixed-size batches. Batches run concurrently; one failed batch only
// loses its own images.
func (r *ImageMapResolver) resolveDescendantRenders(ctx context.Context, fileID string, docs DocFetch, urls map[domain.ImageKey]string) {
	nodes, err := docs(ctx)
	if err != nil {
		logger.Warn("descendant discovery failed for file %s: %v", fileID, err)
		return
	}

	refsByNode := collectImageRefs(nodes)
	if len(refsByNode) == 0 {
		return
	}

	// Sort ids so batch composition is deterministic for identical
	// upstream state.
	ids := make([]string, 0, len(refsByNode))
	for id := range refsByNode {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var (
		mu       sync.Mutex
		resolved bool
	)
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(ids); start += renderBatchSize {
		batch := ids[start:min(start+renderBatchSize, len(ids))]
		g.Go(func() error {
			rendered, err := r.svc.RenderNodes(gctx, fileID, batch, fallbackRenderScale)
			if err != nil {
				// Sibling batches proceed; this batch's images stay
				// unresolved.
				logger.Warn("render batch failed for file %s (%d ids): %v", fileID, len(batch), err)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			resolved = true
			for id, u := range rendered {
				if u == "" {
					continue
				}
				urls[domain.NodeKey(id)] = u
				// The ref entries are what let enrichment resolve by
				// ref transparently regardless of which tier produced
				// the mapping.
				for _, ref := range refsByNode[id] {
					urls[domain.RefKey(ref)] = u
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	if resolved {
		r.metrics.TierUsed(fileID, domain.TierDescendantRender)
	}
}

// collectImageRefs walks every document and returns nodeID -> imageRefs
// for each node (the requested roots included) that carries at least
// one image fill with a non-empty ref.
func collectImageRefs(nodes map[string]*domain.Node) map[string][]string {
	refsByNode := make(map[string][]string)
	for _, doc := range nodes {
		doc.Walk(func(n *domain.Node) bool {
			if refs := n.ImageRefs(); len(refs) > 0 {
				refsByNode[n.ID] = refs
			}
			return true
		})
	}
	return refsByNode
}
