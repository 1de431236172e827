package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrimonio/api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrInvalidCurrency = errors.New("invalid currency")
)

// AuthService handles registration, login and token issuance. Tokens are
// HS256 JWTs carrying the user id; access and refresh tokens are signed with
// separate secrets.
type AuthService struct {
	users         UserStore
	jwtSecret     []byte
	refreshSecret []byte
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, jwtSecret, refreshSecret string) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     []byte(jwtSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// Register creates a new user with a hashed password, an empty portfolio and
// default settings.
func (s *AuthService) Register(ctx context.Context, req *models.SignInRequest) (*models.User, error) {
	currency := req.Currency
	if currency == "" {
		currency = models.CurrencyUSD
	}
	if !currency.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCurrency, req.Currency)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		UserName:         req.UserName,
		Mail:             req.Mail,
		PasswordHash:     string(hash),
		Created:          models.Today(),
		WatchlistSymbols: []string{},
		Messages:         []string{},
	}
	settings := &models.UserSettings{
		Currency:      currency,
		Notifications: true,
	}
	if err := s.users.Register(ctx, user, settings); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the user with a fresh access and
// refresh token pair.
func (s *AuthService) Login(ctx context.Context, userName, password string) (*models.User, string, string, error) {
	user, err := s.users.GetByUserName(ctx, userName)
	if err != nil {
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidPassword
	}

	access, err := s.mintToken(user.ID, s.jwtSecret, AccessTokenTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.mintToken(user.ID, s.refreshSecret, RefreshTokenTTL)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Refresh validates a refresh token and mints a new access token
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	userID, err := s.parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return "", err
	}
	return s.mintToken(userID, s.jwtSecret, AccessTokenTTL)
}

func (s *AuthService) mintToken(userID int64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"jti":    uuid.NewString(),
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parseToken(tokenString string, secret []byte) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, ok := claims["userId"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int64(userID), nil
}
