package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/traum0123-design/traum0123/internal/handler/http/response"
	"github.com/traum0123-design/traum0123/internal/pkg/token"
)

// AdminOnly restricts a route to operator-console tokens.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		scope, ok := claims["scope"].(string)
		if !ok || scope != token.ScopeAdmin {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
