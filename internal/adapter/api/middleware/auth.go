package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/pkg/util"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFrom extracts the verified token claims placed by Auth.
func IdentityFrom(ctx context.Context) (*util.Claims, bool) {
	claims, ok := ctx.Value(identityKey).(*util.Claims)
	return claims, ok
}

// Auth is a middleware factory that verifies the Bearer token and attaches
// its claims to the request context.
func Auth(jwtSecret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, `{"message":"No token, authorization failed"}`, http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := util.ValidateToken(token, jwtSecret)
			if err != nil {
				logger.Warn("token verification failed", "error", err, "remote_addr", r.RemoteAddr)
				http.Error(w, `{"message":"Token is not valid"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to one role. It runs after Auth.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := IdentityFrom(r.Context())
			if !ok || claims.Role != role {
				http.Error(w, `{"message":"Access denied"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
