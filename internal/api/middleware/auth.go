package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/aura-backend/internal/api/respond"
	"github.com/dom/aura-backend/internal/logger"
	"github.com/dom/aura-backend/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	IdentityKey contextKey = "identity"
)

func Auth(authService *service.AuthService, log *logger.Logger) func(http.Handler) http.Handler {
	log = log.With("middleware", "Auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Debug("missing authorization header", "path", r.URL.Path)
				respond.Error(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				log.Debug("invalid authorization header format", "path", r.URL.Path)
				respond.Error(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			identity, err := authService.ValidateToken(token)
			if err != nil {
				log.Debug("token validation failed", "path", r.URL.Path, "error", err)
				respond.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (service.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(service.Identity)
	return identity, ok
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	identity, ok := GetIdentity(ctx)
	return identity.UserID, ok
}
