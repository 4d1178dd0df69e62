package services

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset_inventory_backend/internal/models"
	"asset_inventory_backend/pkg/utils"
)

func newAuthFixture(t *testing.T) (AuthService, *models.User) {
	t.Helper()
	userRepo := newFakeUserRepo()
	user, err := NewUserService(userRepo, nil).CreateUser(CreateUserRequest{
		Name: gofakeit.Username(),
		Role: models.RoleEngineer,
		PIN:  "2468",
	})
	require.NoError(t, err)
	return NewAuthService(userRepo, nil), user
}

func TestLoginIssuesTokens(t *testing.T) {
	svc, user := newAuthFixture(t)

	result, err := svc.Login(LoginRequest{UserID: user.ID, PIN: "2468"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	require.NotNil(t, result.User)
	assert.Equal(t, user.ID, result.User.ID)
	// Login stamps last_login.
	assert.NotNil(t, result.User.LastLogin)

	claims, err := utils.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Name, claims.Username)
	assert.Equal(t, models.RoleEngineer, claims.Role)
}

func TestLoginWrongPIN(t *testing.T) {
	svc, user := newAuthFixture(t)

	_, err := svc.Login(LoginRequest{UserID: user.ID, PIN: "8642"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPIN)
}

func TestLoginMalformedPIN(t *testing.T) {
	svc, user := newAuthFixture(t)

	// A malformed PIN is rejected before the user is even looked up.
	_, err := svc.Login(LoginRequest{UserID: user.ID, PIN: "24-68"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPIN)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(LoginRequest{UserID: gofakeit.UUID(), PIN: "2468"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, user := newAuthFixture(t)

	login, err := svc.Login(LoginRequest{UserID: user.ID, PIN: "2468"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, user.ID, refreshed.User.ID)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Refresh(RefreshTokenRequest{RefreshToken: "not-a-token"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetCurrentUser(t *testing.T) {
	svc, user := newAuthFixture(t)

	found, err := svc.GetCurrentUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Name, found.Name)

	_, err = svc.GetCurrentUser(gofakeit.UUID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
