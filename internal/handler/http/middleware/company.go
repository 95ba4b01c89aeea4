package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/traum0123-design/traum0123/internal/handler/http/response"
	"github.com/traum0123-design/traum0123/internal/pkg/token"
)

// CompanyAccess guards company-scoped routes. Admin tokens reach every
// company; portal tokens only the company they were issued for, matched
// against the {companyID} route parameter.
func CompanyAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		scope, _ := claims["scope"].(string)
		switch scope {
		case token.ScopeAdmin:
			next.ServeHTTP(w, r)
		case token.ScopePortal:
			companyID, _ := claims["company_id"].(string)
			if companyID == "" || companyID != chi.URLParam(r, "companyID") {
				response.Forbidden(w, "Token is not valid for this company")
				return
			}
			next.ServeHTTP(w, r)
		default:
			response.Forbidden(w, "Unknown token scope")
		}
	})
}
