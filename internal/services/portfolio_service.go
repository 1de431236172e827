package services

import (
	"context"
	"errors"

	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/repository"
	"github.com/shopspring/decimal"
)

const recentPositionsLimit = 5

// PortfolioService produces the read views over the position ledger: the
// holdings list and the patrimony total, both joined against price snapshots.
type PortfolioService struct {
	users      UserStore
	portfolios LedgerStore
	prices     SnapshotSource
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(users UserStore, portfolios LedgerStore, prices SnapshotSource) *PortfolioService {
	return &PortfolioService{
		users:      users,
		portfolios: portfolios,
		prices:     prices,
	}
}

// Holdings returns the user's lots deduplicated by symbol and joined against
// current snapshots. Lots are normally unique per (symbol, type) already;
// duplicates are tolerated by summing quantities and keeping the first-seen
// average price. Order is insertion order of first occurrence. A lot with no
// snapshot gets a nil price, which serializes as "NoData".
func (s *PortfolioService) Holdings(ctx context.Context, userID int64) ([]models.Holding, error) {
	positions, err := s.loadPositions(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings := []models.Holding{}
	index := map[string]int{}
	for _, p := range positions {
		if i, seen := index[p.Symbol]; seen {
			holdings[i].Quantity = holdings[i].Quantity.Add(p.Quantity)
			continue
		}
		index[p.Symbol] = len(holdings)
		holdings = append(holdings, models.Holding{
			Symbol:      p.Symbol,
			Name:        p.Name,
			Type:        p.Type,
			Quantity:    p.Quantity,
			AvgBuyPrice: p.AvgBuyPrice,
		})
	}

	for i := range holdings {
		snapshot, err := s.prices.Snapshot(ctx, holdings[i].Symbol, holdings[i].Type)
		if errors.Is(err, repository.ErrPriceNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		price := snapshot.Price
		holdings[i].Price = &price
	}
	return holdings, nil
}

// Patrimony sums quantity times current snapshot price over the user's lots.
// Lots without a snapshot are skipped rather than valued at zero or treated
// as an error; an empty portfolio yields 0.
func (s *PortfolioService) Patrimony(ctx context.Context, userID int64) (decimal.Decimal, error) {
	positions, err := s.loadPositions(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range positions {
		if !p.Quantity.IsPositive() {
			continue
		}
		snapshot, err := s.prices.Snapshot(ctx, p.Symbol, p.Type)
		if errors.Is(err, repository.ErrPriceNotFound) {
			continue
		}
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(p.Quantity.Mul(snapshot.Price))
	}
	return total, nil
}

// RecentlyAdded returns the user's most recently opened positions
func (s *PortfolioService) RecentlyAdded(ctx context.Context, userID int64) ([]models.Position, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.portfolios.RecentPositions(ctx, user.PortfolioID, recentPositionsLimit)
}

func (s *PortfolioService) loadPositions(ctx context.Context, userID int64) ([]models.Position, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	aggregate, err := s.portfolios.GetWithPositions(ctx, user.PortfolioID)
	if err != nil {
		return nil, err
	}
	return aggregate.Positions, nil
}
