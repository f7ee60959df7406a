package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driving"
	"github.com/slidevault-labs/slidevault-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// DefaultFileTimeout bounds one file's pipeline so a hanging file
// cannot block the whole export call.
const DefaultFileTimeout = 60 * time.Second

// ExportService groups requested (fileId, nodeId) pairs by file, drives
// the per-file pipeline (map resolution, document fetch, enrichment)
// and assembles the final response. Per-file pipelines run
// concurrently and independently: a failed file is skipped with a
// logged error while siblings proceed.
type ExportService struct {
	design      driven.DesignService
	fetcher     driven.ImageFetcher
	tokens      driven.TokenProvider
	cache       driven.ByteCache // may be nil
	metrics     driven.ExportMetrics
	fileTimeout time.Duration
}

// NewExportService creates the export pipeline front. cache may be nil
// to disable the persistent byte cache; metrics may be nil for no-op;
// fileTimeout <= 0 selects DefaultFileTimeout.
func NewExportService(
	design driven.DesignService,
	fetcher driven.ImageFetcher,
	tokens driven.TokenProvider,
	cache driven.ByteCache,
	metrics driven.ExportMetrics,
	fileTimeout time.Duration,
) *ExportService {
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	if fileTimeout <= 0 {
		fileTimeout = DefaultFileTimeout
	}
	return &ExportService{
		design:      design,
		fetcher:     fetcher,
		tokens:      tokens,
		cache:       cache,
		metrics:     metrics,
		fileTimeout: fileTimeout,
	}
}

// fileGroup is one file's slice of the request: node ids in request
// order, duplicates preserved.
type fileGroup struct {
	fileID  string
	nodeIDs []string
}

// Export implements driving.ExportService.
func (s *ExportService) Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.tokens == nil || !s.tokens.IsAuthenticated() {
		logger.Warn("no design service token configured, returning demo content")
		return DemoResponse(req), nil
	}

	session := uuid.NewString()
	groups := groupByFile(req.Nodes)
	logger.Info("export %s: %d nodes across %d files", session, len(req.Nodes), len(groups))

	// One slot per file keeps assembly free of cross-goroutine
	// ordering concerns.
	results := make([][]domain.ExportedNode, len(groups))
	var g errgroup.Group
	for i, grp := range groups {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, s.fileTimeout)
			defer cancel()

			nodes, err := s.exportFile(fctx, grp)
			if err != nil {
				// The file's group is abandoned; siblings continue.
				s.metrics.FileFailed(grp.fileID, err)
				logger.Warn("export %s: file %s skipped: %v", session, grp.fileID, err)
				return nil
			}
			results[i] = nodes
			return nil
		})
	}
	_ = g.Wait()

	resp := &domain.ExportResponse{Success: true, Nodes: make([]domain.ExportedNode, 0, len(req.Nodes))}
	for _, nodes := range results {
		resp.Nodes = append(resp.Nodes, nodes...)
	}
	resp.Count = len(resp.Nodes)
	logger.Info("export %s: resolved %d of %d requested nodes", session, resp.Count, len(req.Nodes))
	return resp, nil
}

// exportFile runs the per-file pipeline: resolve the image map, fetch
// the node documents, enrich each requested subtree, and assemble the
// file's entries in request order.
func (s *ExportService) exportFile(ctx context.Context, grp fileGroup) ([]domain.ExportedNode, error) {
	unique := uniqueIDs(grp.nodeIDs)
	docs := NewDocFetch(s.design, grp.fileID, unique)

	resolver := NewImageMapResolver(s.design, s.metrics)
	urls := resolver.Resolve(ctx, grp.fileID, unique, docs)

	nodes, err := docs(ctx)
	if err != nil {
		return nil, err
	}

	bytes := NewByteStore(grp.fileID, s.fetcher, s.cache, s.metrics)
	enricher := NewTreeEnricher(urls, bytes)

	out := make([]domain.ExportedNode, 0, len(grp.nodeIDs))
	enriched := make(map[string]bool)
	for _, id := range grp.nodeIDs {
		doc, ok := nodes[id]
		if !ok || doc == nil {
			s.metrics.NodeMissing(grp.fileID, id)
			logger.Debug("file %s: node %s missing from document response, skipped", grp.fileID, id)
			continue
		}
		// Duplicates share the already-enriched tree.
		if !enriched[id] {
			enricher.Enrich(ctx, doc)
			enriched[id] = true
		}
		out = append(out, domain.ExportedNode{
			FileID:   grp.fileID,
			NodeID:   id,
			Node:     doc,
			ImageURL: representativeURL(urls, doc, id),
		})
		s.metrics.NodeExported(grp.fileID, id)
	}
	return out, nil
}

// groupByFile partitions the request by file, preserving the files'
// first-appearance order and each file's node-id order (duplicates
// included).
func groupByFile(refs []domain.NodeRef) []fileGroup {
	index := make(map[string]int)
	var groups []fileGroup
	for _, ref := range refs {
		i, ok := index[ref.FileID]
		if !ok {
			i = len(groups)
			index[ref.FileID] = i
			groups = append(groups, fileGroup{fileID: ref.FileID})
		}
		groups[i].nodeIDs = append(groups[i].nodeIDs, ref.NodeID)
	}
	return groups
}

// uniqueIDs returns ids with duplicates removed, order preserved.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// representativeURL picks the response entry's representative image:
// the whole-node render when one exists, otherwise the first resolved
// image fill in the subtree.
func representativeURL(urls map[domain.ImageKey]string, node *domain.Node, nodeID string) string {
	if u, ok := urls[domain.NodeKey(nodeID)]; ok {
		return u
	}
	var found string
	node.Walk(func(n *domain.Node) bool {
		for _, fill := range n.Fills {
			if fill != nil && fill.Type.IsImage() && fill.ImageURL != "" {
				found = fill.ImageURL
				return false
			}
		}
		return true
	})
	return found
}
