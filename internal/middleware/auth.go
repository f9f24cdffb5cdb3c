package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
)

type contextKey string

const (
	UserContextKey   contextKey = "user"
	CallerContextKey contextKey = "caller"
)

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// RequireAuth accepts a bearer API token or, failing that, a session cookie.
func RequireAuth(
	authService *services.AuthService,
	tokenRepo repository.APITokenRepository,
	userRepo repository.UserRepository,
) func(http.Handler) http.Handler {
	tokenAuth := APITokenAuth(tokenRepo, userRepo)
	return func(next http.Handler) http.Handler {
		withToken := tokenAuth(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "" {
				withToken.ServeHTTP(w, r)
				return
			}

			user, err := authService.GetCurrentUser(r)
			if err != nil {
				unauthorized(w, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func APITokenAuth(tokenRepo repository.APITokenRepository, userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w, "authentication required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			tokenHash := repository.HashToken(tokenString)

			token, err := tokenRepo.FindByTokenHash(r.Context(), tokenHash)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			if token.ExpiresAt != nil && token.ExpiresAt.Before(time.Now()) {
				unauthorized(w, "token expired")
				return
			}

			user, err := userRepo.FindByID(r.Context(), token.CreatedByUserID)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoadCaller resolves the authenticated user's profile once per request.
func LoadCaller(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := authService.ResolveCaller(r.Context(), GetUser(r.Context()))
			if err != nil {
				slog.Error("resolving caller", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
				return
			}

			ctx := context.WithValue(r.Context(), CallerContextKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) models.User {
	user, _ := ctx.Value(UserContextKey).(models.User)
	return user
}

// GetCaller falls back to a caller with only the user set when LoadCaller
// has not run.
func GetCaller(ctx context.Context) services.Caller {
	if caller, ok := ctx.Value(CallerContextKey).(services.Caller); ok {
		return caller
	}
	return services.Caller{User: GetUser(ctx)}
}

// WithCaller stores a caller on the context. Tests use it to skip the
// authentication chain.
func WithCaller(ctx context.Context, caller services.Caller) context.Context {
	ctx = context.WithValue(ctx, UserContextKey, caller.User)
	return context.WithValue(ctx, CallerContextKey, caller)
}
