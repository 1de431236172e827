package cache

import (
	"sync"
	"time"

	"github.com/patrimonio/api/internal/models"
)

// MemoryCache is an in-memory L1 cache for price snapshots, sitting in front
// of the asset_prices table. Entries expire after the configured TTL.
type MemoryCache struct {
	snapshots map[string]snapshotEntry
	mu        sync.RWMutex
	ttl       time.Duration
}

type snapshotEntry struct {
	snapshot  *models.AssetPrice
	fetchedAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		snapshots: make(map[string]snapshotEntry),
		ttl:       ttl,
	}
}

func snapshotKey(symbol string, assetType models.AssetType) string {
	return symbol + "|" + string(assetType)
}

// GetSnapshot retrieves a cached snapshot if fresh
func (c *MemoryCache) GetSnapshot(symbol string, assetType models.AssetType) (*models.AssetPrice, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.snapshots[snapshotKey(symbol, assetType)]
	if !exists {
		return nil, false
	}
	if time.Since(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.snapshot, true
}

// SetSnapshot caches a snapshot
func (c *MemoryCache) SetSnapshot(snapshot *models.AssetPrice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshots[snapshotKey(snapshot.Symbol, snapshot.Type)] = snapshotEntry{
		snapshot:  snapshot,
		fetchedAt: time.Now(),
	}
}

// Invalidate removes a snapshot from the cache
func (c *MemoryCache) Invalidate(symbol string, assetType models.AssetType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.snapshots, snapshotKey(symbol, assetType))
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.snapshots = make(map[string]snapshotEntry)
	c.mu.Unlock()
}
