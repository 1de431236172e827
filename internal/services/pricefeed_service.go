package services

import (
	"context"
	"errors"
	"sync"

	"github.com/patrimonio/api/internal/cache"
	"github.com/patrimonio/api/internal/marketdata"
	"github.com/patrimonio/api/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrUpstreamUnavailable means no quote could be fetched during a refresh run
var ErrUpstreamUnavailable = errors.New("quote service unavailable")

const refreshConcurrency = 4

// Default refresh universe: the symbols the dashboard tracks out of the box.
var (
	DefaultTopStocks  = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "BRK-B", "JPM", "V"}
	DefaultTopCryptos = []string{"BTC", "ETH", "BNB", "SOL", "ADA", "XRP", "DOGE"}
)

// QuoteClient fetches current quotes from the external market-data services
type QuoteClient interface {
	GetStockQuote(ctx context.Context, symbol string) (*marketdata.Quote, error)
	GetCryptoQuote(ctx context.Context, symbol string) (*marketdata.Quote, error)
}

// PriceFeedService owns the snapshot store: it refreshes snapshots from the
// quote client and serves reads through a TTL memory cache.
type PriceFeedService struct {
	cache      *cache.MemoryCache
	prices     PriceStore
	client     QuoteClient
	topStocks  []string
	topCryptos []string
}

// NewPriceFeedService creates a new PriceFeedService over the default universe
func NewPriceFeedService(memCache *cache.MemoryCache, prices PriceStore, client QuoteClient) *PriceFeedService {
	return &PriceFeedService{
		cache:      memCache,
		prices:     prices,
		client:     client,
		topStocks:  DefaultTopStocks,
		topCryptos: DefaultTopCryptos,
	}
}

// Snapshot resolves the snapshot for a (symbol, type) pair, serving from the
// memory cache when fresh.
func (s *PriceFeedService) Snapshot(ctx context.Context, symbol string, assetType models.AssetType) (*models.AssetPrice, error) {
	if snapshot, ok := s.cache.GetSnapshot(symbol, assetType); ok {
		return snapshot, nil
	}
	snapshot, err := s.prices.Find(ctx, symbol, assetType)
	if err != nil {
		return nil, err
	}
	s.cache.SetSnapshot(snapshot)
	return snapshot, nil
}

// SnapshotBySymbol resolves the snapshot for a symbol regardless of type.
// Watchlist entries store bare symbols, so this path skips the typed cache.
func (s *PriceFeedService) SnapshotBySymbol(ctx context.Context, symbol string) (*models.AssetPrice, error) {
	snapshot, err := s.prices.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	s.cache.SetSnapshot(snapshot)
	return snapshot, nil
}

// TopByType lists the stored snapshots for one asset type
func (s *PriceFeedService) TopByType(ctx context.Context, assetType models.AssetType, limit int) ([]models.AssetPrice, error) {
	return s.prices.ListByType(ctx, assetType, limit)
}

// RefreshAll fetches current quotes for the tracked universe and upserts the
// snapshot rows. Individual symbol failures are reported per symbol, not
// fatal; the run fails only when every fetch failed.
func (s *PriceFeedService) RefreshAll(ctx context.Context) ([]models.RefreshResult, error) {
	var (
		mu      sync.Mutex
		results []models.RefreshResult
		updated int
	)
	record := func(symbol, status string) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, models.RefreshResult{Symbol: symbol, Status: status})
		if status == "updated" {
			updated++
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for _, symbol := range s.topStocks {
		g.Go(func() error {
			quote, err := s.client.GetStockQuote(ctx, symbol)
			if err != nil {
				log.WithError(err).WithField("symbol", symbol).Warn("stock quote fetch failed")
				record(symbol, "failed")
				return nil
			}
			snapshot := &models.AssetPrice{
				Symbol: symbol,
				Type:   models.AssetTypeStock,
				Name:   quote.Name,
				Price:  quote.Price,
			}
			if err := s.prices.Upsert(ctx, snapshot); err != nil {
				log.WithError(err).WithField("symbol", symbol).Error("snapshot upsert failed")
				record(symbol, "failed")
				return nil
			}
			s.cache.Invalidate(symbol, models.AssetTypeStock)
			record(symbol, "updated")
			return nil
		})
	}

	for _, symbol := range s.topCryptos {
		g.Go(func() error {
			quote, err := s.client.GetCryptoQuote(ctx, symbol)
			if err != nil {
				log.WithError(err).WithField("symbol", symbol).Warn("crypto quote fetch failed")
				record(symbol, "failed")
				return nil
			}
			// Crypto snapshots keep the upstream pair symbol (e.g. BTCUSDT)
			snapshot := &models.AssetPrice{
				Symbol: quote.Symbol,
				Type:   models.AssetTypeCrypto,
				Name:   quote.Name,
				Price:  quote.Price,
			}
			if err := s.prices.Upsert(ctx, snapshot); err != nil {
				log.WithError(err).WithField("symbol", symbol).Error("snapshot upsert failed")
				record(symbol, "failed")
				return nil
			}
			s.cache.Invalidate(quote.Symbol, models.AssetTypeCrypto)
			record(symbol, "updated")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if updated == 0 && len(results) > 0 {
		return results, ErrUpstreamUnavailable
	}
	return results, nil
}
