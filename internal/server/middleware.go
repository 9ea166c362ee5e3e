package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/shared"
)

type contextKey string

const callerKey contextKey = "caller"

// UserResolver resolves an API token to a caller identity.
type UserResolver interface {
	GetByToken(token string) (*models.User, error)
}

// LoggingMiddleware logs one line per request with method, path, and duration.
func LoggingMiddleware(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}

// AuthMiddleware resolves the bearer token to a caller identity and stores it
// on the request context. Requests without a resolvable token get the
// unauthenticated envelope; they never reach the wrapped handler.
func AuthMiddleware(users UserResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, shared.ErrNotAuthenticated)
				return
			}

			user, err := users.GetByToken(token)
			if err != nil {
				writeError(w, shared.ErrNotAuthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFrom returns the authenticated user stored on the context by [AuthMiddleware].
func CallerFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(callerKey).(*models.User)
	return user, ok
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
