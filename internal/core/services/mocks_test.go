package services

import (
	"context"
	"sync"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

// fakeDesign is a configurable test double for driven.DesignService.
type fakeDesign struct {
	mu sync.Mutex

	imageFills    map[string]string
	imageFillsErr error

	renderFn  func(fileID string, nodeIDs []string) (map[string]string, error)
	renderLog [][]string

	nodes    map[string]*domain.Node
	nodesFn  func(fileID string) (map[string]*domain.Node, error)
	nodesErr error
	nodeLog  int
}

var _ driven.DesignService = (*fakeDesign)(nil)

func (f *fakeDesign) ImageFills(_ context.Context, _ string) (map[string]string, error) {
	if f.imageFillsErr != nil {
		return nil, f.imageFillsErr
	}
	return f.imageFills, nil
}

func (f *fakeDesign) RenderNodes(_ context.Context, fileID string, nodeIDs []string, _ float64) (map[string]string, error) {
	f.mu.Lock()
	f.renderLog = append(f.renderLog, append([]string(nil), nodeIDs...))
	f.mu.Unlock()
	if f.renderFn != nil {
		return f.renderFn(fileID, nodeIDs)
	}
	return map[string]string{}, nil
}

func (f *fakeDesign) Nodes(_ context.Context, fileID string, _ []string) (map[string]*domain.Node, error) {
	f.mu.Lock()
	f.nodeLog++
	f.mu.Unlock()
	if f.nodesFn != nil {
		return f.nodesFn(fileID)
	}
	if f.nodesErr != nil {
		return nil, f.nodesErr
	}
	return f.nodes, nil
}

func (f *fakeDesign) renderCalls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.renderLog...)
}

func (f *fakeDesign) nodeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nodeLog
}

// fakeFetcher is a test double for driven.ImageFetcher that serves
// per-URL byte payloads and counts fetches.
type fakeFetcher struct {
	mu          sync.Mutex
	data        map[string][]byte
	contentType string
	err         error
	calls       map[string]int
	block       chan struct{} // when set, Fetch waits before returning
}

var _ driven.ImageFetcher = (*fakeFetcher)(nil)

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, string, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[url]++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data[url], f.contentType, nil
}

func (f *fakeFetcher) fetchCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *fakeFetcher) totalFetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// fakeByteCache is a map-backed test double for driven.ByteCache.
type fakeByteCache struct {
	mu      sync.Mutex
	entries map[string]domain.ImageBlob
	puts    int
}

var _ driven.ByteCache = (*fakeByteCache)(nil)

func newFakeByteCache() *fakeByteCache {
	return &fakeByteCache{entries: make(map[string]domain.ImageBlob)}
}

func (c *fakeByteCache) key(fileID string, key domain.ImageKey) string {
	return fileID + "\x00" + key.String()
}

func (c *fakeByteCache) Get(_ context.Context, fileID string, key domain.ImageKey) (*domain.ImageBlob, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	blob, ok := c.entries[c.key(fileID, key)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &blob, nil
}

func (c *fakeByteCache) Put(_ context.Context, fileID string, key domain.ImageKey, blob domain.ImageBlob) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(fileID, key)] = blob
	c.puts++
	return nil
}

func (c *fakeByteCache) CleanupExpired(context.Context) (int64, error) { return 0, nil }

func (c *fakeByteCache) Close() error { return nil }
