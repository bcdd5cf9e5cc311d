package auth

import (
	"context"
	"testing"
	"time"

	"github.com/gomu/backend/internal/domain/identity"
	"github.com/gomu/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "gomu-test",
	})
}

func testUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("user@example.com", "User", "supersecret", role)
	require.NoError(t, err)
	user.ID = 7
	return user
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := testJWTService()
	pair, err := service.GenerateTokenPair(testUser(t, identity.RoleAdmin))
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.IsAdmin())

	refreshClaims, err := service.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), refreshClaims.UserID)
}

func TestValidateAccessTokenRejectsWrongType(t *testing.T) {
	service := testJWTService()
	pair, err := service.GenerateTokenPair(testUser(t, identity.RoleCustomer))
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = service.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	service := testJWTService()
	_, err := service.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	blacklisted, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Minute))
	blacklisted, err = blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	// Expired entries fall out of the blacklist
	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-2", -time.Second))
	blacklisted, err = blacklist.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}
