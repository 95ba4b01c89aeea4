package token

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ScopeAdmin  = "admin"
	ScopePortal = "portal"
)

type Service interface {
	GenerateAdminToken() (token string, expiresAt int64, err error)
	GeneratePortalToken(companyID string, slug string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type TokenService struct {
	adminExpiration  string
	portalExpiration string
	tokenAuth        *jwtauth.JWTAuth
	revokedTokens    map[string]int64
	mu               sync.RWMutex
}

func NewTokenService(secretKey string, adminExpiration string, portalExpiration string) Service {
	return &TokenService{
		adminExpiration:  adminExpiration,
		portalExpiration: portalExpiration,
		tokenAuth:        jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:    make(map[string]int64),
	}
}

func (t *TokenService) JWTAuth() *jwtauth.JWTAuth {
	return t.tokenAuth
}

// GenerateAdminToken issues a token for the operator console. Admin tokens
// carry no company claim and pass every company guard.
func (t *TokenService) GenerateAdminToken() (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(t.adminExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := t.tokenAuth.Encode(map[string]interface{}{
		"jti":   uuid.NewString(),
		"scope": ScopeAdmin,
		"exp":   expiresAt,
	})
	return tokenString, expiresAt, err
}

// GeneratePortalToken issues a token bound to one company's self-service
// portal.
func (t *TokenService) GeneratePortalToken(companyID string, slug string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(t.portalExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := t.tokenAuth.Encode(map[string]interface{}{
		"jti":        uuid.NewString(),
		"scope":      ScopePortal,
		"company_id": companyID,
		"slug":       slug,
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

func (t *TokenService) RevokeToken(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revokedTokens[token] = time.Now().Unix()
}

func (t *TokenService) IsTokenRevoked(token string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, revoked := t.revokedTokens[token]
	return revoked
}
