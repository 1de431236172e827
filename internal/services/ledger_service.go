package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/repository"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var (
	ErrAssetNotFound        = errors.New("asset not found")
	ErrAssetNotHeld         = errors.New("asset not held in portfolio")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

// LedgerService maintains per-user lots under buy and sell operations,
// keeping quantity and weighted-average cost correct and recording every
// event in the transaction log.
type LedgerService struct {
	users      UserStore
	portfolios LedgerStore
	prices     SnapshotSource
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(users UserStore, portfolios LedgerStore, prices SnapshotSource) *LedgerService {
	return &LedgerService{
		users:      users,
		portfolios: portfolios,
		prices:     prices,
	}
}

// Buy merges a purchase into the user's portfolio. An existing lot for the
// (symbol, type) pair absorbs the quantity at a recomputed weighted-average
// cost; otherwise a new lot is created, gated on a price snapshot existing
// for the pair so untracked symbols cannot enter the ledger. The BUY record
// carries the server's current date. Quantity and price are validated by the
// caller.
func (s *LedgerService) Buy(ctx context.Context, userID int64, symbol string, assetType models.AssetType, quantity, price decimal.Decimal) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	positions, err := s.portfolios.ListPositions(ctx, user.PortfolioID)
	if err != nil {
		return err
	}

	record := &models.Transaction{
		UserID:      userID,
		AssetSymbol: symbol,
		ActionType:  models.ActionBuy,
		Quantity:    quantity,
		Price:       price,
		Date:        models.Today(),
	}

	if lot := findLot(positions, symbol, assetType); lot != nil {
		lot.AvgBuyPrice = weightedAvg(lot.AvgBuyPrice, lot.Quantity, price, quantity)
		lot.Quantity = lot.Quantity.Add(quantity)
		return s.portfolios.UpdatePositionWithLog(ctx, lot, record)
	}

	snapshot, err := s.prices.Snapshot(ctx, symbol, assetType)
	if errors.Is(err, repository.ErrPriceNotFound) {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, symbol)
	}
	if err != nil {
		return err
	}

	lot := &models.Position{
		PortfolioID: user.PortfolioID,
		Symbol:      symbol,
		Name:        snapshot.Name,
		Type:        assetType,
		Quantity:    quantity,
		AvgBuyPrice: price,
	}
	if err := s.portfolios.CreatePositionWithLog(ctx, lot, record); err != nil {
		return err
	}
	log.WithFields(log.Fields{"user": userID, "symbol": symbol}).Info("opened new position")
	return nil
}

// Sell reduces the user's lot for (symbol, type). Selling the full quantity
// removes the lot entirely; a partial sell leaves the average cost untouched.
// The SELL record carries the caller's sale price and the server's date.
func (s *LedgerService) Sell(ctx context.Context, userID int64, symbol string, assetType models.AssetType, quantity, price decimal.Decimal) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	positions, err := s.portfolios.ListPositions(ctx, user.PortfolioID)
	if err != nil {
		return err
	}

	lot := findLot(positions, symbol, assetType)
	if lot == nil {
		return fmt.Errorf("%w: %s", ErrAssetNotHeld, symbol)
	}
	if lot.Quantity.LessThan(quantity) {
		return fmt.Errorf("%w: have %s, want to sell %s", ErrInsufficientQuantity, lot.Quantity, quantity)
	}

	record := &models.Transaction{
		UserID:      userID,
		AssetSymbol: symbol,
		ActionType:  models.ActionSell,
		Quantity:    quantity,
		Price:       price,
		Date:        models.Today(),
	}

	lot.Quantity = lot.Quantity.Sub(quantity)
	if lot.Quantity.IsZero() {
		return s.portfolios.DeletePositionWithLog(ctx, lot, record)
	}
	return s.portfolios.UpdatePositionWithLog(ctx, lot, record)
}

// findLot scans for the position matching (symbol, type). Linear scan is
// fine at portfolio cardinality.
func findLot(positions []models.Position, symbol string, assetType models.AssetType) *models.Position {
	for i := range positions {
		if positions[i].Symbol == symbol && positions[i].Type == assetType {
			return &positions[i]
		}
	}
	return nil
}

// weightedAvg returns the quantity-weighted mean cost after adding newQty
// units at newPrice to existingQty units held at existingAvgPrice.
func weightedAvg(existingAvgPrice, existingQty, newPrice, newQty decimal.Decimal) decimal.Decimal {
	if existingQty.IsZero() {
		return newPrice
	}
	return existingAvgPrice.Mul(existingQty).
		Add(newPrice.Mul(newQty)).
		Div(existingQty.Add(newQty))
}
