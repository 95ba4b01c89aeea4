package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/traum0123-design/traum0123/internal/handler/http/response"
	"github.com/traum0123-design/traum0123/internal/pkg/token"
)

// AuthRequired rejects requests whose bearer token is missing, invalid or
// revoked. jwtauth.Verifier must run before it to populate the context.
func AuthRequired(tokenService token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			t, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if t == nil {
				response.Unauthorized(w, "Missing token")
				return
			}
			if _, ok := claims["scope"].(string); !ok {
				response.Unauthorized(w, "Invalid token")
				return
			}
			if tokenService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.Unauthorized(w, "Token revoked")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
