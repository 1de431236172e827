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

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository handles database operations for the transaction log
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Insert appends one transaction record
func (r *TransactionRepository) Insert(ctx context.Context, t *models.Transaction) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (user_id, asset_symbol, action_type, quantity, price, tx_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, t.UserID, t.AssetSymbol, t.ActionType, t.Quantity, t.Price, t.Date.Time()).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	t := &models.Transaction{}
	var txDate time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, asset_symbol, action_type, quantity, price, tx_date
		FROM transactions
		WHERE id = $1
	`, id).Scan(&t.ID, &t.UserID, &t.AssetSymbol, &t.ActionType, &t.Quantity, &t.Price, &txDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	t.Date = models.DateFromTime(txDate)
	return t, nil
}

// Query retrieves transactions matching the exact-match filter set
func (r *TransactionRepository) Query(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, asset_symbol, action_type, quantity, price, tx_date
		FROM transactions
		WHERE 1=1
	`
	args := []any{}
	arg := 0
	next := func() string {
		arg++
		return fmt.Sprintf("$%d", arg)
	}

	if f.UserID != 0 {
		query += " AND user_id = " + next()
		args = append(args, f.UserID)
	}
	if f.AssetSymbol != "" {
		query += " AND asset_symbol = " + next()
		args = append(args, f.AssetSymbol)
	}
	if f.ActionType != "" {
		query += " AND action_type = " + next()
		args = append(args, f.ActionType)
	}
	if f.Date != nil {
		query += " AND tx_date = " + next()
		args = append(args, f.Date.Time())
	}
	query += " ORDER BY id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var txDate time.Time
		if err := rows.Scan(&t.ID, &t.UserID, &t.AssetSymbol, &t.ActionType, &t.Quantity, &t.Price, &txDate); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Date = models.DateFromTime(txDate)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
