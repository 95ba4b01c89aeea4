package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAdminToken(t *testing.T) {
	svc := NewTokenService("test-secret", "12h", "24h")

	tokenString, expiresAt, err := svc.GenerateAdminToken()
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	scope, ok := decoded.Get("scope")
	require.True(t, ok)
	assert.Equal(t, ScopeAdmin, scope)
	_, ok = decoded.Get("company_id")
	assert.False(t, ok)
	assert.NotEmpty(t, decoded.JwtID())
}

func TestGeneratePortalTokenCarriesCompanyClaims(t *testing.T) {
	svc := NewTokenService("test-secret", "12h", "24h")

	tokenString, _, err := svc.GeneratePortalToken("company-1", "acme")
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	scope, _ := decoded.Get("scope")
	assert.Equal(t, ScopePortal, scope)
	companyID, _ := decoded.Get("company_id")
	assert.Equal(t, "company-1", companyID)
	slug, _ := decoded.Get("slug")
	assert.Equal(t, "acme", slug)
}

func TestInvalidExpirationIsRejected(t *testing.T) {
	svc := NewTokenService("test-secret", "not-a-duration", "24h")

	_, _, err := svc.GenerateAdminToken()
	assert.Error(t, err)
}

func TestRevocation(t *testing.T) {
	svc := NewTokenService("test-secret", "12h", "24h")

	tokenString, _, err := svc.GenerateAdminToken()
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(tokenString))
	svc.RevokeToken(tokenString)
	assert.True(t, svc.IsTokenRevoked(tokenString))
}
