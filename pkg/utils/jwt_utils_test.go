package utils

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := gofakeit.UUID()

	token, err := GenerateAccessToken(userID, "lee_carter", "supervisor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "lee_carter", claims.Username)
	assert.Equal(t, "supervisor", claims.Role)
	assert.Equal(t, "asset-inventory-backend", claims.Issuer)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	userID := gofakeit.UUID()

	token, err := GenerateRefreshToken(userID)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Empty(t, claims.Username)
	assert.Equal(t, "asset-inventory-backend-refresh", claims.Issuer)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	token, err := GenerateAccessToken(gofakeit.UUID(), "x", "viewer")
	require.NoError(t, err)

	original := jwtSecretKey
	defer func() { jwtSecretKey = original }()
	SetJWTSecret("a-different-secret")

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestIsValidPIN(t *testing.T) {
	tests := []struct {
		pin  string
		want bool
	}{
		{"1234", true},
		{"123456", true},
		{"12345", true},
		{"123", false},
		{"1234567", false},
		{"12ab", false},
		{"12 34", false},
		{"", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsValidPIN(tc.pin), "pin %q", tc.pin)
	}
}
