package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/traum0123-design/traum0123/internal/domain/company"
	"github.com/traum0123-design/traum0123/internal/handler/http/response"
	"github.com/traum0123-design/traum0123/internal/pkg/token"
)

type AuthHandler interface {
	AdminLogin(w http.ResponseWriter, r *http.Request)
	PortalLogin(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	adminPassword  string
	tokenService   token.Service
	companyService company.CompanyService
}

func NewAuthHandler(adminPassword string, tokenService token.Service, companyService company.CompanyService) AuthHandler {
	return &AuthHandlerImpl{
		adminPassword:  adminPassword,
		tokenService:   tokenService,
		companyService: companyService,
	}
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// AdminLogin trades the operator password for an admin token.
func (h *AuthHandlerImpl) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if h.adminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		response.Unauthorized(w, "Invalid admin password")
		return
	}

	tokenString, expiresAt, err := h.tokenService.GenerateAdminToken()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, adminLoginResponse{Token: tokenString, ExpiresAt: expiresAt})
}

// PortalLogin trades a company access code for a portal token scoped to that
// company.
func (h *AuthHandlerImpl) PortalLogin(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req company.PortalLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.companyService.PortalLogin(r.Context(), slug, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Logout revokes the presented token. Tokens are short-lived, so the
// revocation list only has to outlive the token itself.
func (h *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if raw := jwtauth.TokenFromHeader(r); raw != "" {
		h.tokenService.RevokeToken(raw)
	}
	response.SuccessWithMessage(w, "Logged out", nil)
}
