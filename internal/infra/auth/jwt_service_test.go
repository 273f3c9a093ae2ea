package auth

import (
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	accountID := uuid.New()

	accessToken, refreshToken, err := jwtService.GenerateTokens(accountID, "jane@example.com", "Jane", entity.ScopeUser)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	accessClaims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.NotNil(t, accessClaims)
	assert.Equal(t, accountID.String(), accessClaims.Subject)
	assert.Equal(t, "jane@example.com", accessClaims.Email)
	assert.Equal(t, "Jane", accessClaims.Name)
	assert.Equal(t, entity.ScopeUser, accessClaims.Scope)
	assert.Equal(t, "access", accessClaims.Type)

	// Validate refresh token
	refreshClaims, err := jwtService.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.NotNil(t, refreshClaims)
	assert.Equal(t, accountID.String(), refreshClaims.Subject)
	assert.Empty(t, refreshClaims.Email) // Refresh tokens don't carry identity claims
	assert.Equal(t, entity.ScopeUser, refreshClaims.Scope)
	assert.Equal(t, "refresh", refreshClaims.Type)
}

func TestJWTService_TokensUseDistinctSecrets(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokens(uuid.New(), "s@example.com", "Shop", entity.ScopeSeller)
	assert.NoError(t, err)

	// A refresh token must not validate as an access token and vice versa.
	claims, err := jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = jwtService.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_TokensAreUniquePerIssue(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)

	accountID := uuid.New()

	// Two pairs issued back-to-back land within the same second, so the
	// timestamp claims alone cannot tell them apart. The token id must.
	access1, refresh1, err := jwtService.GenerateTokens(accountID, "jane@example.com", "Jane", entity.ScopeUser)
	assert.NoError(t, err)
	access2, refresh2, err := jwtService.GenerateTokens(accountID, "jane@example.com", "Jane", entity.ScopeUser)
	assert.NoError(t, err)

	assert.NotEqual(t, access1, access2)
	assert.NotEqual(t, refresh1, refresh2)

	claims1, err := jwtService.ValidateRefreshToken(refresh1)
	assert.NoError(t, err)
	claims2, err := jwtService.ValidateRefreshToken(refresh2)
	assert.NoError(t, err)
	assert.NotEmpty(t, claims1.ID)
	assert.NotEqual(t, claims1.ID, claims2.ID)
}

func TestJWTService_HashToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)

	hash := jwtService.HashToken("some-refresh-token")
	assert.Len(t, hash, 64) // SHA-256 hex
	assert.Equal(t, hash, jwtService.HashToken("some-refresh-token"))
	assert.NotEqual(t, hash, jwtService.HashToken("another-token"))
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)

	// Test invalid token - using clearly non-JWT format
	invalidToken := "clearly-not-a-jwt-token-format"
	claims, err := jwtService.ValidateAccessToken(invalidToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	// Should fail to create service
	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_ConfiguredDurations(t *testing.T) {
	cfg := testConfig()
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  time.Minute * 30,
		RefreshTokenTTL: time.Hour * 48,
	}

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	assert.Equal(t, time.Minute*30, jwtService.GetAccessTokenDuration())
	assert.Equal(t, time.Hour*48, jwtService.GetRefreshTokenDuration())
}

func TestJWTService_DefaultDurations(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)

	assert.Equal(t, time.Minute*15, jwtService.GetAccessTokenDuration())
	assert.Equal(t, time.Hour*24*7, jwtService.GetRefreshTokenDuration())
}
