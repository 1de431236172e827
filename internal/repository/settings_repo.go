package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patrimonio/api/internal/models"
)

var ErrSettingsNotFound = errors.New("user settings not found")

// SettingsRepository handles database operations for user settings
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// GetByID retrieves a settings document by ID
func (r *SettingsRepository) GetByID(ctx context.Context, id int64) (*models.UserSettings, error) {
	s := &models.UserSettings{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, currency, notifications FROM user_settings WHERE id = $1`, id,
	).Scan(&s.ID, &s.Currency, &s.Notifications)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// Update overwrites a settings document
func (r *SettingsRepository) Update(ctx context.Context, s *models.UserSettings) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE user_settings SET currency = $1, notifications = $2 WHERE id = $3`,
		s.Currency, s.Notifications, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}
	return nil
}
