package cache

import (
	"testing"
	"time"

	"github.com/patrimonio/api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *models.AssetPrice {
	return &models.AssetPrice{
		Symbol: "AAPL",
		Type:   models.AssetTypeStock,
		Name:   "Apple Inc.",
		Price:  decimal.NewFromInt(180),
	}
}

func TestCacheHit(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	c.SetSnapshot(sampleSnapshot())

	got, ok := c.GetSnapshot("AAPL", models.AssetTypeStock)
	require.True(t, ok)
	assert.Equal(t, "Apple Inc.", got.Name)
}

func TestCacheMiss(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	_, ok := c.GetSnapshot("AAPL", models.AssetTypeStock)
	assert.False(t, ok)
}

func TestCacheKeyIncludesAssetType(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	c.SetSnapshot(sampleSnapshot())

	_, ok := c.GetSnapshot("AAPL", models.AssetTypeETF)
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Millisecond)
	c.SetSnapshot(sampleSnapshot())

	time.Sleep(5 * time.Millisecond)

	_, ok := c.GetSnapshot("AAPL", models.AssetTypeStock)
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	c.SetSnapshot(sampleSnapshot())
	c.Invalidate("AAPL", models.AssetTypeStock)

	_, ok := c.GetSnapshot("AAPL", models.AssetTypeStock)
	assert.False(t, ok)
}

func TestCacheClear(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	c.SetSnapshot(sampleSnapshot())
	c.Clear()

	_, ok := c.GetSnapshot("AAPL", models.AssetTypeStock)
	assert.False(t, ok)
}
