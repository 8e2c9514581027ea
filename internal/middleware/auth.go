package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bryanwahyu/scamshield/internal/domain/users"
)

type contextKey string

const (
	UserKey  contextKey = "user"
	TokenKey contextKey = "token"
)

// Authenticator resolves a bearer token to the user holding it.
type Authenticator interface {
	Authenticate(token string) (users.User, error)
}

// SessionAuth validates the session token from Authorization header
func SessionAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}

			// Support both "Bearer <token>" and "<token>" formats
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "invalid Authorization header format")
				return
			}

			u, err := auth.Authenticate(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, u)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the session user from context
func GetUserFromContext(ctx context.Context) (users.User, bool) {
	u, ok := ctx.Value(UserKey).(users.User)
	return u, ok
}

// UserIDFromContext returns the session email, or "" without a session.
func UserIDFromContext(ctx context.Context) string {
	if u, ok := GetUserFromContext(ctx); ok {
		return u.Email
	}
	return ""
}

// WithUser puts u on ctx the way SessionAuth does.
func WithUser(ctx context.Context, u users.User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}
