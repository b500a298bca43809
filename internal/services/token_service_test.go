package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	tokenService := NewTokenService("secret", time.Hour)
	user := &models.User{Username: "alice", Role: models.RoleAdmin}

	tokenString, issued, err := tokenService.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := tokenService.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestTokenService_Expired(t *testing.T) {
	tokenService := NewTokenService("secret", time.Minute)
	tokenService.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tokenString, _, err := tokenService.GenerateToken(&models.User{Username: "alice", Role: models.RoleFarmer})
	require.NoError(t, err)

	tokenService.now = time.Now
	_, err = tokenService.ValidateToken(tokenString)
	assert.Equal(t, ErrExpiredToken, err)
}

func TestTokenService_WrongSecret(t *testing.T) {
	tokenString, _, err := NewTokenService("one", time.Hour).GenerateToken(&models.User{Username: "alice"})
	require.NoError(t, err)

	_, err = NewTokenService("two", time.Hour).ValidateToken(tokenString)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "x",
			Subject:   "alice",
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).ValidateToken(tokenString)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestTokenService_Garbage(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).ValidateToken("not-a-jwt")
	assert.Equal(t, ErrInvalidToken, err)
}
