package services

import (
	"context"
	"slices"
	"strings"

	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/repository"
)

// In-memory stores backing the service tests. They honor the same sentinel
// errors as the pgx repositories.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
	for _, u := range users {
		if u.ID == 0 {
			u.ID = s.nextID
		}
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Register(ctx context.Context, u *models.User, settings *models.UserSettings) error {
	for _, existing := range s.users {
		if existing.UserName == u.UserName {
			return repository.ErrUserExists
		}
	}
	u.ID = s.nextID
	u.PortfolioID = s.nextID
	u.SettingsID = s.nextID
	settings.ID = s.nextID
	s.nextID++
	s.users[u.ID] = u
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	for _, u := range s.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) UpdateProfile(ctx context.Context, id int64, userName, mail string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if userName != "" {
		u.UserName = userName
	}
	if mail != "" {
		u.Mail = mail
	}
	return u, nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) UpdateWatchlist(ctx context.Context, id int64, symbols []string) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.WatchlistSymbols = symbols
	return nil
}

type fakeLedgerStore struct {
	positions []models.Position
	records   []models.Transaction
	nextID    int64
}

func newFakeLedgerStore(positions ...models.Position) *fakeLedgerStore {
	s := &fakeLedgerStore{nextID: 1}
	for _, p := range positions {
		if p.ID == 0 {
			p.ID = s.nextID
		}
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
		s.positions = append(s.positions, p)
	}
	return s
}

func (s *fakeLedgerStore) GetWithPositions(ctx context.Context, id int64) (*models.PortfolioWithPositions, error) {
	positions, err := s.ListPositions(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PortfolioWithPositions{
		Portfolio: models.Portfolio{ID: id},
		Positions: positions,
	}, nil
}

func (s *fakeLedgerStore) ListPositions(ctx context.Context, portfolioID int64) ([]models.Position, error) {
	out := []models.Position{}
	for _, p := range s.positions {
		if p.PortfolioID == portfolioID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeLedgerStore) RecentPositions(ctx context.Context, portfolioID int64, limit int) ([]models.Position, error) {
	all, _ := s.ListPositions(ctx, portfolioID)
	slices.Reverse(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *fakeLedgerStore) CreatePositionWithLog(ctx context.Context, p *models.Position, t *models.Transaction) error {
	p.ID = s.nextID
	s.nextID++
	s.positions = append(s.positions, *p)
	s.appendRecord(t)
	return nil
}

func (s *fakeLedgerStore) UpdatePositionWithLog(ctx context.Context, p *models.Position, t *models.Transaction) error {
	for i := range s.positions {
		if s.positions[i].ID == p.ID {
			s.positions[i] = *p
			s.appendRecord(t)
			return nil
		}
	}
	return repository.ErrPortfolioNotFound
}

func (s *fakeLedgerStore) DeletePositionWithLog(ctx context.Context, p *models.Position, t *models.Transaction) error {
	for i := range s.positions {
		if s.positions[i].ID == p.ID {
			s.positions = slices.Delete(s.positions, i, i+1)
			s.appendRecord(t)
			return nil
		}
	}
	return repository.ErrPortfolioNotFound
}

func (s *fakeLedgerStore) appendRecord(t *models.Transaction) {
	t.ID = int64(len(s.records) + 1)
	s.records = append(s.records, *t)
}

func (s *fakeLedgerStore) find(symbol string, assetType models.AssetType) *models.Position {
	for i := range s.positions {
		if s.positions[i].Symbol == symbol && s.positions[i].Type == assetType {
			return &s.positions[i]
		}
	}
	return nil
}

// fakeSnapshots satisfies SnapshotSource from a fixed symbol table
type fakeSnapshots struct {
	snapshots map[string]*models.AssetPrice
}

func newFakeSnapshots(snapshots ...*models.AssetPrice) *fakeSnapshots {
	s := &fakeSnapshots{snapshots: map[string]*models.AssetPrice{}}
	for _, snap := range snapshots {
		s.snapshots[snap.Symbol+"|"+string(snap.Type)] = snap
	}
	return s
}

func (s *fakeSnapshots) Snapshot(ctx context.Context, symbol string, assetType models.AssetType) (*models.AssetPrice, error) {
	snap, ok := s.snapshots[symbol+"|"+string(assetType)]
	if !ok {
		return nil, repository.ErrPriceNotFound
	}
	return snap, nil
}

func (s *fakeSnapshots) SnapshotBySymbol(ctx context.Context, symbol string) (*models.AssetPrice, error) {
	for key, snap := range s.snapshots {
		if strings.HasPrefix(key, symbol+"|") {
			return snap, nil
		}
	}
	return nil, repository.ErrPriceNotFound
}

type fakeTransactionStore struct {
	records []models.Transaction
}

func (s *fakeTransactionStore) Insert(ctx context.Context, t *models.Transaction) error {
	t.ID = int64(len(s.records) + 1)
	s.records = append(s.records, *t)
	return nil
}

func (s *fakeTransactionStore) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			return &s.records[i], nil
		}
	}
	return nil, repository.ErrTransactionNotFound
}

func (s *fakeTransactionStore) Query(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	out := []models.Transaction{}
	for _, t := range s.records {
		if t.UserID != f.UserID {
			continue
		}
		if f.AssetSymbol != "" && t.AssetSymbol != f.AssetSymbol {
			continue
		}
		if f.ActionType != "" && t.ActionType != f.ActionType {
			continue
		}
		if f.Date != nil && t.Date != *f.Date {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
