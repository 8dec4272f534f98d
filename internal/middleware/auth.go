package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/famfin/famfin-be/internal/auth"
	"github.com/famfin/famfin-be/internal/http/respond"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// ClaimsContextKey is where RequireAuth stores the verified claims.
const ClaimsContextKey ContextKey = "claims"

// RequireAuth verifies the bearer token on protected routes. On any
// failure it answers 401 without invoking the downstream handler.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				respond.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims, err := tokens.Parse(tokenString)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims RequireAuth stored, if any.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(auth.Claims)
	return claims, ok
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
