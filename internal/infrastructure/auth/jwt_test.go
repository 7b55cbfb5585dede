package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobsight/backend/internal/infrastructure/config"
)

func newService(exp time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "0123456789abcdef0123456789abcdef",
		AccessTokenExpiration: exp,
		Issuer:                "jobsight",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService(time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)

	claims, err := svc.Validate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newService(time.Hour)

	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := newService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:                "ffffffffffffffffffffffffffffffff",
		AccessTokenExpiration: time.Hour,
		Issuer:                "jobsight",
	})

	token, err := svc.Generate(uuid.New(), "owner@example.com")
	require.NoError(t, err)

	_, err = other.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := newService(-time.Minute)

	token, err := svc.Generate(uuid.New(), "owner@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
