package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/patrimonio/api/internal/cache"
	"github.com/patrimonio/api/internal/marketdata"
	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePriceStore struct {
	snapshots map[string]models.AssetPrice
	finds     int
}

func newFakePriceStore() *fakePriceStore {
	return &fakePriceStore{snapshots: map[string]models.AssetPrice{}}
}

func (s *fakePriceStore) key(symbol string, assetType models.AssetType) string {
	return symbol + "|" + string(assetType)
}

func (s *fakePriceStore) Find(ctx context.Context, symbol string, assetType models.AssetType) (*models.AssetPrice, error) {
	s.finds++
	snap, ok := s.snapshots[s.key(symbol, assetType)]
	if !ok {
		return nil, repository.ErrPriceNotFound
	}
	return &snap, nil
}

func (s *fakePriceStore) FindBySymbol(ctx context.Context, symbol string) (*models.AssetPrice, error) {
	for _, snap := range s.snapshots {
		if snap.Symbol == symbol {
			return &snap, nil
		}
	}
	return nil, repository.ErrPriceNotFound
}

func (s *fakePriceStore) Upsert(ctx context.Context, p *models.AssetPrice) error {
	s.snapshots[s.key(p.Symbol, p.Type)] = *p
	return nil
}

func (s *fakePriceStore) ListByType(ctx context.Context, assetType models.AssetType, limit int) ([]models.AssetPrice, error) {
	out := []models.AssetPrice{}
	for _, snap := range s.snapshots {
		if snap.Type == assetType {
			out = append(out, snap)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeQuoteClient struct {
	stockErr  error
	cryptoErr error
}

func (c *fakeQuoteClient) GetStockQuote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	if c.stockErr != nil {
		return nil, c.stockErr
	}
	return &marketdata.Quote{Symbol: symbol, Name: symbol + " Inc.", Price: decimal.NewFromInt(100)}, nil
}

func (c *fakeQuoteClient) GetCryptoQuote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	if c.cryptoErr != nil {
		return nil, c.cryptoErr
	}
	return &marketdata.Quote{Symbol: symbol + "USDT", Name: symbol + "USDT", Price: decimal.NewFromInt(50000)}, nil
}

func newPriceFeedFixture(client QuoteClient) (*PriceFeedService, *fakePriceStore) {
	store := newFakePriceStore()
	svc := NewPriceFeedService(cache.NewMemoryCache(time.Minute), store, client)
	return svc, store
}

func TestSnapshotServedFromCacheAfterFirstRead(t *testing.T) {
	svc, store := newPriceFeedFixture(&fakeQuoteClient{})
	require.NoError(t, store.Upsert(context.Background(), &models.AssetPrice{
		Symbol: "AAPL",
		Type:   models.AssetTypeStock,
		Price:  decimal.NewFromInt(180),
	}))

	for range 3 {
		snap, err := svc.Snapshot(context.Background(), "AAPL", models.AssetTypeStock)
		require.NoError(t, err)
		assert.True(t, snap.Price.Equal(decimal.NewFromInt(180)))
	}
	assert.Equal(t, 1, store.finds, "store hit once, cache after")
}

func TestSnapshotMissing(t *testing.T) {
	svc, _ := newPriceFeedFixture(&fakeQuoteClient{})

	_, err := svc.Snapshot(context.Background(), "ZZZZ", models.AssetTypeStock)
	require.ErrorIs(t, err, repository.ErrPriceNotFound)
}

func TestRefreshAllStoresEveryTrackedSymbol(t *testing.T) {
	svc, store := newPriceFeedFixture(&fakeQuoteClient{})

	results, err := svc.RefreshAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, len(DefaultTopStocks)+len(DefaultTopCryptos))
	for _, r := range results {
		assert.Equal(t, "updated", r.Status)
	}

	snap, err := store.Find(context.Background(), "AAPL", models.AssetTypeStock)
	require.NoError(t, err)
	assert.Equal(t, "AAPL Inc.", snap.Name)

	// Crypto rows keep the upstream pair symbol
	pair, err := store.Find(context.Background(), "BTCUSDT", models.AssetTypeCrypto)
	require.NoError(t, err)
	assert.True(t, pair.Price.Equal(decimal.NewFromInt(50000)))
}

func TestRefreshAllPartialFailure(t *testing.T) {
	svc, store := newPriceFeedFixture(&fakeQuoteClient{cryptoErr: errors.New("rate limited")})

	results, err := svc.RefreshAll(context.Background())
	require.NoError(t, err)

	failed := 0
	for _, r := range results {
		if r.Status == "failed" {
			failed++
		}
	}
	assert.Equal(t, len(DefaultTopCryptos), failed)

	_, err = store.Find(context.Background(), "AAPL", models.AssetTypeStock)
	assert.NoError(t, err)
}

func TestRefreshAllTotalFailure(t *testing.T) {
	svc, _ := newPriceFeedFixture(&fakeQuoteClient{
		stockErr:  errors.New("down"),
		cryptoErr: errors.New("down"),
	})

	results, err := svc.RefreshAll(context.Background())
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Len(t, results, len(DefaultTopStocks)+len(DefaultTopCryptos))
}

func TestRefreshAllInvalidatesCache(t *testing.T) {
	svc, store := newPriceFeedFixture(&fakeQuoteClient{})
	require.NoError(t, store.Upsert(context.Background(), &models.AssetPrice{
		Symbol: "AAPL",
		Type:   models.AssetTypeStock,
		Price:  decimal.NewFromInt(1),
	}))

	// Prime the cache with the stale snapshot
	stale, err := svc.Snapshot(context.Background(), "AAPL", models.AssetTypeStock)
	require.NoError(t, err)
	require.True(t, stale.Price.Equal(decimal.NewFromInt(1)))

	_, err = svc.RefreshAll(context.Background())
	require.NoError(t, err)

	fresh, err := svc.Snapshot(context.Background(), "AAPL", models.AssetTypeStock)
	require.NoError(t, err)
	assert.True(t, fresh.Price.Equal(decimal.NewFromInt(100)))
}

func TestTopByType(t *testing.T) {
	svc, store := newPriceFeedFixture(&fakeQuoteClient{})
	for _, sym := range []string{"AAPL", "MSFT", "NVDA"} {
		require.NoError(t, store.Upsert(context.Background(), &models.AssetPrice{
			Symbol: sym,
			Type:   models.AssetTypeStock,
			Price:  decimal.NewFromInt(1),
		}))
	}

	top, err := svc.TopByType(context.Background(), models.AssetTypeStock, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}
