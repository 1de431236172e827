package services

import (
	"context"

	"github.com/patrimonio/api/internal/models"
)

// Store interfaces are defined on the consumer side; the pgx repositories in
// internal/repository satisfy them, and tests substitute in-memory fakes.

// UserStore provides persistence for users
type UserStore interface {
	Register(ctx context.Context, u *models.User, s *models.UserSettings) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, userName, mail string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	UpdateWatchlist(ctx context.Context, id int64, symbols []string) error
}

// LedgerStore provides persistence for portfolios and positions. The
// *WithLog mutators pair the position write with its transaction record
// atomically.
type LedgerStore interface {
	GetWithPositions(ctx context.Context, id int64) (*models.PortfolioWithPositions, error)
	ListPositions(ctx context.Context, portfolioID int64) ([]models.Position, error)
	RecentPositions(ctx context.Context, portfolioID int64, limit int) ([]models.Position, error)
	CreatePositionWithLog(ctx context.Context, p *models.Position, t *models.Transaction) error
	UpdatePositionWithLog(ctx context.Context, p *models.Position, t *models.Transaction) error
	DeletePositionWithLog(ctx context.Context, p *models.Position, t *models.Transaction) error
}

// PriceStore provides persistence for price snapshots
type PriceStore interface {
	Find(ctx context.Context, symbol string, assetType models.AssetType) (*models.AssetPrice, error)
	FindBySymbol(ctx context.Context, symbol string) (*models.AssetPrice, error)
	Upsert(ctx context.Context, p *models.AssetPrice) error
	ListByType(ctx context.Context, assetType models.AssetType, limit int) ([]models.AssetPrice, error)
}

// TransactionStore provides persistence for the transaction log
type TransactionStore interface {
	Insert(ctx context.Context, t *models.Transaction) error
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	Query(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error)
}

// SettingsStore provides persistence for user settings
type SettingsStore interface {
	GetByID(ctx context.Context, id int64) (*models.UserSettings, error)
	Update(ctx context.Context, s *models.UserSettings) error
}

// SnapshotSource resolves current price snapshots for other services. The
// pricefeed service implements it with a TTL cache in front of the store.
type SnapshotSource interface {
	Snapshot(ctx context.Context, symbol string, assetType models.AssetType) (*models.AssetPrice, error)
	SnapshotBySymbol(ctx context.Context, symbol string) (*models.AssetPrice, error)
}
