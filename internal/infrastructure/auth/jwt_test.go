package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baogia/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-that-is-long-enough",
		Expiration: time.Hour,
		Issuer:     "baogia-test",
	})
}

func TestGenerateToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "an@example.com", "Nguyễn Văn An")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)
}

func TestValidateToken_Success(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "an@example.com", "Nguyễn Văn An")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "an@example.com", claims.Email)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-that-is-long-enough",
		Expiration: -time.Minute,
		Issuer:     "baogia-test",
	})

	token, err := svc.GenerateToken(uuid.New(), "an@example.com", "An")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:     "a-completely-different-secret-value",
		Expiration: time.Hour,
		Issuer:     "baogia-test",
	})

	token, err := other.GenerateToken(uuid.New(), "an@example.com", "An")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
