package services

import (
	"sync"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

// Ensure both implementations satisfy the port.
var (
	_ driven.ExportMetrics = (*NopMetrics)(nil)
	_ driven.ExportMetrics = (*CountingMetrics)(nil)
)

// NopMetrics discards every event. Used when no metrics sink is wired.
type NopMetrics struct{}

// NewNopMetrics creates a metrics sink that discards everything.
func NewNopMetrics() *NopMetrics { return &NopMetrics{} }

func (*NopMetrics) TierUsed(string, domain.ResolutionTier) {}
func (*NopMetrics) CacheHit(string, domain.ImageKey)       {}
func (*NopMetrics) CacheMiss(string, domain.ImageKey)      {}
func (*NopMetrics) BytesDownloaded(string, int)            {}
func (*NopMetrics) NodeExported(string, string)            {}
func (*NopMetrics) NodeMissing(string, string)             {}
func (*NopMetrics) FileFailed(string, error)               {}

// CountingMetrics aggregates pipeline events into counters. The CLI
// prints a summary line from it after an export; tests assert on it.
type CountingMetrics struct {
	mu sync.Mutex

	tiers           map[domain.ResolutionTier]int
	cacheHits       int
	cacheMisses     int
	bytesDownloaded int64
	nodesExported   int
	nodesMissing    int
	filesFailed     int
}

// NewCountingMetrics creates an aggregating metrics sink.
func NewCountingMetrics() *CountingMetrics {
	return &CountingMetrics{tiers: make(map[domain.ResolutionTier]int)}
}

func (m *CountingMetrics) TierUsed(_ string, tier domain.ResolutionTier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiers[tier]++
}

func (m *CountingMetrics) CacheHit(string, domain.ImageKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *CountingMetrics) CacheMiss(string, domain.ImageKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

func (m *CountingMetrics) BytesDownloaded(_ string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bytesDownloaded += int64(n)
}

func (m *CountingMetrics) NodeExported(string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodesExported++
}

func (m *CountingMetrics) NodeMissing(string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodesMissing++
}

func (m *CountingMetrics) FileFailed(string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filesFailed++
}

// TierCount returns how many files used the given tier.
func (m *CountingMetrics) TierCount(tier domain.ResolutionTier) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tiers[tier]
}

// CacheHits returns the byte-store memoisation hit count.
func (m *CountingMetrics) CacheHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits
}

// CacheMisses returns the byte-store miss count.
func (m *CountingMetrics) CacheMisses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheMisses
}

// BytesTotal returns the total downloaded byte count.
func (m *CountingMetrics) BytesTotal() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bytesDownloaded
}

// NodesExported returns the successfully assembled entry count.
func (m *CountingMetrics) NodesExported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nodesExported
}

// NodesMissing returns the skipped requested-node count.
func (m *CountingMetrics) NodesMissing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nodesMissing
}

// FilesFailed returns the abandoned file count.
func (m *CountingMetrics) FilesFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filesFailed
}
