package services

import (
	"context"
	"testing"

	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*AuthService, *fakeUserStore) {
	users := newFakeUserStore()
	return NewAuthService(users, "access-secret", "refresh-secret"), users
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users := newAuthFixture()

	user, err := svc.Register(context.Background(), &models.SignInRequest{
		UserName: "alice",
		Mail:     "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))

	stored, err := users.GetByUserName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegisterDuplicateUserName(t *testing.T) {
	svc, _ := newAuthFixture()

	req := &models.SignInRequest{UserName: "alice", Mail: "alice@example.com", Password: "correct horse"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, repository.ErrUserExists)
}

func TestRegisterInvalidCurrency(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &models.SignInRequest{
		UserName: "alice",
		Mail:     "alice@example.com",
		Password: "correct horse",
		Currency: "DOUBLOONS",
	})
	require.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture()

	registered, err := svc.Register(context.Background(), &models.SignInRequest{
		UserName: "alice",
		Mail:     "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	user, access, refresh, err := svc.Login(context.Background(), "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &models.SignInRequest{
		UserName: "alice",
		Mail:     "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "alice", "wrong horse")
	require.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture()

	_, _, _, err := svc.Login(context.Background(), "nobody", "whatever")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), &models.SignInRequest{
		UserName: "alice",
		Mail:     "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, _, refresh, err := svc.Login(context.Background(), "alice", "correct horse")
	require.NoError(t, err)

	access, err := svc.Refresh(refresh)
	require.NoError(t, err)

	userID, err := svc.parseToken(access, svc.jwtSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &models.SignInRequest{
		UserName: "alice",
		Mail:     "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, access, _, err := svc.Login(context.Background(), "alice", "correct horse")
	require.NoError(t, err)

	// Access tokens are signed with a different secret
	_, err = svc.Refresh(access)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Refresh("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
