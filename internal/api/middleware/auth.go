package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/api/shared"
	"github.com/phrazzld/jobs-api/internal/platform/logger"
	"github.com/phrazzld/jobs-api/internal/service/auth"
)

// AuthMiddleware guards routes that require a valid bearer token.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token in the Authorization header and
// stores the caller's user ID in the request context. Requests without a
// valid token are answered with 401 before next runs.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
		if !found || scheme != "Bearer" || strings.TrimSpace(token) == "" {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				"Authentication invalid", auth.ErrMissingToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Token expired"
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, msg, err)
			return
		}
		if claims == nil || claims.UserID == uuid.Nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				"Invalid token", auth.ErrInvalidToken)
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		log := logger.FromContext(ctx).With(slog.String("user_id", claims.UserID.String()))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
