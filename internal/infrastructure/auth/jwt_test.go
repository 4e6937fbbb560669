package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-only",
		TokenExpiration: expiration,
		Issuer:          "storebooks-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService(time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "owner")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "owner", claims.Username)
	assert.Equal(t, "storebooks-test", claims.Issuer)
}

func TestJWTService_ValidateExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.GenerateToken(uuid.New(), "owner")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateGarbage(t *testing.T) {
	svc := newTestService(time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	issuing := newTestService(time.Hour)
	validating := NewJWTService(config.JWTConfig{
		Secret:          "a-completely-different-signing-secret",
		TokenExpiration: time.Hour,
		Issuer:          "storebooks-test",
	})

	token, err := issuing.GenerateToken(uuid.New(), "owner")
	require.NoError(t, err)

	_, err = validating.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
