package middleware

import (
	"context"
	"net/http"

	"steppingstones/internal/adapters/http/session"
	domain "steppingstones/internal/domain/admin"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const adminContextKey contextKey = "admin"

// Auth returns middleware that verifies the admin-session cookie and sets the
// admin identity in context. It does NOT block unauthenticated requests:
// every admin handler re-checks via GetAdminFromContext on each call.
func Auth(codec *session.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err == nil && cookie.Value != "" {
				if user, verr := codec.Verify(cookie.Value); verr == nil {
					ctx := context.WithValue(r.Context(), adminContextKey, user)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetAdminFromContext extracts the verified admin from the request context.
func GetAdminFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(adminContextKey).(domain.User)
	return user, ok
}

// ContextWithAdmin returns a context with the given admin set.
// Intended for use in tests.
func ContextWithAdmin(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, adminContextKey, user)
}
