package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patrimonio/api/internal/models"
)

var ErrPortfolioNotFound = errors.New("portfolio not found")

// PortfolioRepository handles database operations for portfolios and their
// positions. Ledger mutations pair the position write with the transaction-log
// insert inside one database transaction, so a failed trade never half-applies.
type PortfolioRepository struct {
	pool *pgxpool.Pool
}

// NewPortfolioRepository creates a new PortfolioRepository
func NewPortfolioRepository(pool *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{pool: pool}
}

// GetWithPositions loads a portfolio with all position references resolved
func (r *PortfolioRepository) GetWithPositions(ctx context.Context, id int64) (*models.PortfolioWithPositions, error) {
	p := models.Portfolio{}
	var lastUpdated time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT id, total_value, last_updated FROM portfolios WHERE id = $1`, id,
	).Scan(&p.ID, &p.TotalValue, &lastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPortfolioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	p.LastUpdated = models.DateFromTime(lastUpdated)

	positions, err := r.ListPositions(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PortfolioWithPositions{Portfolio: p, Positions: positions}, nil
}

// ListPositions retrieves all positions of a portfolio in insertion order
func (r *PortfolioRepository) ListPositions(ctx context.Context, portfolioID int64) ([]models.Position, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, portfolio_id, symbol, name, asset_type, quantity, avg_buy_price
		FROM positions
		WHERE portfolio_id = $1
		ORDER BY id ASC
	`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []models.Position
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.PortfolioID, &p.Symbol, &p.Name, &p.Type, &p.Quantity, &p.AvgBuyPrice); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// RecentPositions retrieves the most recently created positions of a portfolio
func (r *PortfolioRepository) RecentPositions(ctx context.Context, portfolioID int64, limit int) ([]models.Position, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, portfolio_id, symbol, name, asset_type, quantity, avg_buy_price
		FROM positions
		WHERE portfolio_id = $1
		ORDER BY id DESC
		LIMIT $2
	`, portfolioID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent positions: %w", err)
	}
	defer rows.Close()

	var positions []models.Position
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.PortfolioID, &p.Symbol, &p.Name, &p.Type, &p.Quantity, &p.AvgBuyPrice); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// CreatePositionWithLog inserts a new position and its BUY record atomically
func (r *PortfolioRepository) CreatePositionWithLog(ctx context.Context, p *models.Position, t *models.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO positions (portfolio_id, symbol, name, asset_type, quantity, avg_buy_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.PortfolioID, p.Symbol, p.Name, p.Type, p.Quantity, p.AvgBuyPrice).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create position: %w", err)
	}

	if err := insertTransaction(ctx, tx, t); err != nil {
		return err
	}
	if err := touchPortfolio(ctx, tx, p.PortfolioID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdatePositionWithLog updates quantity and average cost of an existing
// position and appends its transaction record atomically.
func (r *PortfolioRepository) UpdatePositionWithLog(ctx context.Context, p *models.Position, t *models.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE positions SET quantity = $1, avg_buy_price = $2 WHERE id = $3
	`, p.Quantity, p.AvgBuyPrice, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPortfolioNotFound
	}

	if err := insertTransaction(ctx, tx, t); err != nil {
		return err
	}
	if err := touchPortfolio(ctx, tx, p.PortfolioID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// DeletePositionWithLog removes a fully sold position and appends its SELL
// record atomically.
func (r *PortfolioRepository) DeletePositionWithLog(ctx context.Context, p *models.Position, t *models.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM positions WHERE id = $1`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPortfolioNotFound
	}

	if err := insertTransaction(ctx, tx, t); err != nil {
		return err
	}
	if err := touchPortfolio(ctx, tx, p.PortfolioID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertTransaction(ctx context.Context, tx pgx.Tx, t *models.Transaction) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO transactions (user_id, asset_symbol, action_type, quantity, price, tx_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, t.UserID, t.AssetSymbol, t.ActionType, t.Quantity, t.Price, t.Date.Time()).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

func touchPortfolio(ctx context.Context, tx pgx.Tx, portfolioID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE portfolios SET last_updated = CURRENT_DATE WHERE id = $1`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to touch portfolio: %w", err)
	}
	return nil
}
