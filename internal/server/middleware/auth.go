package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/abhishekk-y16/KisanMitra/internal/server/handlers"
	"github.com/abhishekk-y16/KisanMitra/internal/server/token"
)

// AuthMiddleware validates the device bearer token and puts the device
// id into the request context.
func AuthMiddleware(logger *slog.Logger, tokenConfig token.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header")
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("Invalid Authorization header format")
				http.Error(w, "Unauthorized: invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := token.Validate(tokenConfig, parts[1])
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.DeviceIDKey, claims.DeviceID)

			logger.Debug("Device authenticated", "device_id", claims.DeviceID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
