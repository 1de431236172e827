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

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user with this userName or mail already exists")
)

// UserRepository handles database operations for users
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Register creates the user together with its empty portfolio and settings
// documents in one transaction.
func (r *UserRepository) Register(ctx context.Context, u *models.User, s *models.UserSettings) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE user_name = $1 OR mail = $2)`,
		u.UserName, u.Mail,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return ErrUserExists
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO portfolios (total_value, last_updated) VALUES (0, $1) RETURNING id`,
		u.Created.Time(),
	).Scan(&u.PortfolioID)
	if err != nil {
		return fmt.Errorf("failed to create portfolio: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO user_settings (currency, notifications) VALUES ($1, $2) RETURNING id`,
		s.Currency, s.Notifications,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}
	u.SettingsID = s.ID

	err = tx.QueryRow(ctx, `
		INSERT INTO users (user_name, mail, password_hash, portfolio_id, settings_id, created, watchlist, messages)
		VALUES ($1, $2, $3, $4, $5, $6, '{}', '{}')
		RETURNING id
	`, u.UserName, u.Mail, u.PasswordHash, u.PortfolioID, u.SettingsID, u.Created.Time()).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return tx.Commit(ctx)
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	var created time.Time
	err := row.Scan(
		&u.ID, &u.UserName, &u.Mail, &u.PasswordHash,
		&u.PortfolioID, &u.SettingsID, &created,
		&u.WatchlistSymbols, &u.Messages,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.Created = models.DateFromTime(created)
	return u, nil
}

const userColumns = `id, user_name, mail, password_hash, portfolio_id, settings_id, created, watchlist, messages`

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByUserName retrieves a user by its unique user name
func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_name = $1`
	return scanUser(r.pool.QueryRow(ctx, query, userName))
}

// UpdateProfile updates the mutable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, userName, mail string) (*models.User, error) {
	query := `
		UPDATE users
		SET user_name = COALESCE(NULLIF($1, ''), user_name),
		    mail = COALESCE(NULLIF($2, ''), mail)
		WHERE id = $3
		RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, query, userName, mail, id))
}

// Delete removes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateWatchlist replaces the user's stored watchlist symbols
func (r *UserRepository) UpdateWatchlist(ctx context.Context, id int64, symbols []string) error {
	result, err := r.pool.Exec(ctx, `UPDATE users SET watchlist = $1 WHERE id = $2`, symbols, id)
	if err != nil {
		return fmt.Errorf("failed to update watchlist: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
