package services

import (
	"context"
	"fmt"

	"github.com/patrimonio/api/internal/models"
)

// UserService handles profile and settings operations for the authenticated
// user.
type UserService struct {
	users    UserStore
	settings SettingsStore
}

// NewUserService creates a new UserService
func NewUserService(users UserStore, settings SettingsStore) *UserService {
	return &UserService{users: users, settings: settings}
}

// Profile returns the user's own record
func (s *UserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile updates the user's own mutable fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateUserRequest) (*models.User, error) {
	return s.users.UpdateProfile(ctx, userID, req.UserName, req.Mail)
}

// Delete removes the user's own account
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}

// Settings returns the user's settings document
func (s *UserService) Settings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.settings.GetByID(ctx, user.SettingsID)
}

// UpdateSettings applies a partial settings update
func (s *UserService) UpdateSettings(ctx context.Context, userID int64, req *models.UpdateSettingsRequest) (*models.UserSettings, error) {
	settings, err := s.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Currency != nil {
		if !req.Currency.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCurrency, *req.Currency)
		}
		settings.Currency = *req.Currency
	}
	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}
	if err := s.settings.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
