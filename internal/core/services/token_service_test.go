package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	secret := "super-secret-key-for-testing"
	issuer := "smokefree-test"
	userID := "user-123-uuid"

	setup := func() (*TokenService, *MockUserRepository) {
		repo := new(MockUserRepository)
		return NewTokenService(secret, issuer, time.Hour, repo), repo
	}

	t.Run("Success: Should generate and validate a token", func(t *testing.T) {
		service, repo := setup()
		repo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

		token, err := service.GenerateToken(userID)
		require.NoError(t, err)

		got, err := service.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
		repo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject token of a deleted user", func(t *testing.T) {
		service, repo := setup()
		repo.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrUserNotFound)

		token, err := service.GenerateToken(userID)
		require.NoError(t, err)

		got, err := service.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Contains(t, err.Error(), "user no longer exists")
		assert.Empty(t, got)
	})

	t.Run("Fail: Should reject expired token", func(t *testing.T) {
		service, repo := setup()
		issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		service.WithClock(fixedClock(issued))

		token, err := service.GenerateToken(userID)
		require.NoError(t, err)

		service.WithClock(fixedClock(issued.Add(2 * time.Hour)))
		_, err = service.ValidateToken(context.Background(), token)

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Fail: Should reject token signed with another key", func(t *testing.T) {
		service, _ := setup()
		other := NewTokenService("another-key", issuer, time.Hour, nil)

		token, err := other.GenerateToken(userID)
		require.NoError(t, err)

		_, err = service.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Fail: Should reject token from another issuer", func(t *testing.T) {
		service, _ := setup()
		other := NewTokenService(secret, "someone-else", time.Hour, nil)

		token, err := other.GenerateToken(userID)
		require.NoError(t, err)

		_, err = service.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Fail: Should reject unsigned token", func(t *testing.T) {
		service, _ := setup()
		claims := jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
