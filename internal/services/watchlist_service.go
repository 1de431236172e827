package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/repository"
)

// ErrSymbolNotTracked means no price snapshot exists for a symbol
var ErrSymbolNotTracked = errors.New("symbol not found")

// WatchlistService lets a user track symbols without holding them. Symbols
// must have a price snapshot to be added.
type WatchlistService struct {
	users  UserStore
	prices SnapshotSource
}

// NewWatchlistService creates a new WatchlistService
func NewWatchlistService(users UserStore, prices SnapshotSource) *WatchlistService {
	return &WatchlistService{users: users, prices: prices}
}

// Add appends a symbol to the user's watchlist. Adding a symbol that is
// already tracked reports false without error; adding a symbol with no
// snapshot fails.
func (s *WatchlistService) Add(ctx context.Context, userID int64, symbol string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	if slices.Contains(user.WatchlistSymbols, symbol) {
		return false, nil
	}

	if _, err := s.prices.SnapshotBySymbol(ctx, symbol); err != nil {
		if errors.Is(err, repository.ErrPriceNotFound) {
			return false, fmt.Errorf("%w: %s", ErrSymbolNotTracked, symbol)
		}
		return false, err
	}

	symbols := append(user.WatchlistSymbols, symbol)
	if err := s.users.UpdateWatchlist(ctx, userID, symbols); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes a symbol from the user's watchlist. Removing from an empty
// list or removing an absent symbol reports false without error.
func (s *WatchlistService) Remove(ctx context.Context, userID int64, symbol string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	if len(user.WatchlistSymbols) == 0 || !slices.Contains(user.WatchlistSymbols, symbol) {
		return false, nil
	}

	symbols := slices.DeleteFunc(slices.Clone(user.WatchlistSymbols), func(s string) bool {
		return s == symbol
	})
	if err := s.users.UpdateWatchlist(ctx, userID, symbols); err != nil {
		return false, err
	}
	return true, nil
}

// List joins each stored symbol against its snapshot. A symbol with no
// snapshot surfaces as an error rather than being dropped from the view.
func (s *WatchlistService) List(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := []models.WatchlistItem{}
	for _, symbol := range user.WatchlistSymbols {
		snapshot, err := s.prices.SnapshotBySymbol(ctx, symbol)
		if errors.Is(err, repository.ErrPriceNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSymbolNotTracked, symbol)
		}
		if err != nil {
			return nil, err
		}
		items = append(items, models.WatchlistItem{
			Name:   snapshot.Name,
			Symbol: snapshot.Symbol,
			Type:   snapshot.Type,
			Price:  snapshot.Price,
		})
	}
	return items, nil
}

// Count returns the number of watched symbols
func (s *WatchlistService) Count(ctx context.Context, userID int64) (int, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(user.WatchlistSymbols), nil
}
