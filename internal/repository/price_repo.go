package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patrimonio/api/internal/models"
)

var ErrPriceNotFound = errors.New("price snapshot not found")

// PriceRepository handles database operations for price snapshots
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new PriceRepository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// Find retrieves the snapshot for a (symbol, type) pair
func (r *PriceRepository) Find(ctx context.Context, symbol string, assetType models.AssetType) (*models.AssetPrice, error) {
	p := &models.AssetPrice{}
	err := r.pool.QueryRow(ctx, `
		SELECT symbol, asset_type, name, price, updated_at
		FROM asset_prices
		WHERE symbol = $1 AND asset_type = $2
	`, symbol, assetType).Scan(&p.Symbol, &p.Type, &p.Name, &p.Price, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPriceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price: %w", err)
	}
	return p, nil
}

// FindBySymbol retrieves the snapshot for a symbol regardless of type.
// Watchlist entries carry no type, so lookups run on symbol alone.
func (r *PriceRepository) FindBySymbol(ctx context.Context, symbol string) (*models.AssetPrice, error) {
	p := &models.AssetPrice{}
	err := r.pool.QueryRow(ctx, `
		SELECT symbol, asset_type, name, price, updated_at
		FROM asset_prices
		WHERE symbol = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`, symbol).Scan(&p.Symbol, &p.Type, &p.Name, &p.Price, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPriceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price: %w", err)
	}
	return p, nil
}

// Upsert writes the latest snapshot for a (symbol, type) pair
func (r *PriceRepository) Upsert(ctx context.Context, p *models.AssetPrice) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO asset_prices (symbol, asset_type, name, price, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (symbol, asset_type) DO UPDATE
		SET name = EXCLUDED.name, price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
	`, p.Symbol, p.Type, p.Name, p.Price)
	if err != nil {
		return fmt.Errorf("failed to upsert price: %w", err)
	}
	return nil
}

// ListByType retrieves the latest snapshots for one asset type
func (r *PriceRepository) ListByType(ctx context.Context, assetType models.AssetType, limit int) ([]models.AssetPrice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT symbol, asset_type, name, price, updated_at
		FROM asset_prices
		WHERE asset_type = $1
		ORDER BY symbol ASC
		LIMIT $2
	`, assetType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	var prices []models.AssetPrice
	for rows.Next() {
		var p models.AssetPrice
		if err := rows.Scan(&p.Symbol, &p.Type, &p.Name, &p.Price, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}
