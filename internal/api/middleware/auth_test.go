package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/api/shared"
	"github.com/phrazzld/jobs-api/internal/mocks"
	"github.com/phrazzld/jobs-api/internal/platform/logger"
	"github.com/phrazzld/jobs-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name            string
		authHeader      string
		validateErr     error
		claims          *auth.Claims
		expectedStatus  int
		expectedMessage string
		expectValidate  bool
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			claims:         &auth.Claims{UserID: userID},
			expectedStatus: http.StatusOK,
			expectValidate: true,
		},
		{
			name:            "missing auth header",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Authentication invalid",
		},
		{
			name:            "wrong scheme",
			authHeader:      "Basic dXNlcjpwYXNz",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Authentication invalid",
		},
		{
			name:            "bearer without token",
			authHeader:      "Bearer ",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Authentication invalid",
		},
		{
			name:            "expired token",
			authHeader:      "Bearer expired-token",
			validateErr:     auth.ErrExpiredToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Token expired",
			expectValidate:  true,
		},
		{
			name:            "invalid token",
			authHeader:      "Bearer invalid-token",
			validateErr:     auth.ErrInvalidToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid token",
			expectValidate:  true,
		},
		{
			name:            "unexpected validation failure",
			authHeader:      "Bearer whatever",
			validateErr:     errors.New("keyring unavailable"),
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid token",
			expectValidate:  true,
		},
		{
			name:            "claims without user",
			authHeader:      "Bearer nil-user",
			claims:          &auth.Claims{UserID: uuid.Nil},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid token",
			expectValidate:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := &mocks.MockJWTService{
				ValidateErr: tt.validateErr,
				Claims:      tt.claims,
			}
			nextCalled := false
			var capturedUserID uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				capturedUserID, _ = shared.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectValidate, jwtService.ValidateCalls == 1)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, nextCalled)
				assert.Equal(t, userID, capturedUserID)
				return
			}
			assert.False(t, nextCalled, "handler must not run for rejected requests")
			assert.Contains(t, rec.Body.String(), tt.expectedMessage)
		})
	}
}

func TestAuthMiddleware_RealTokens(t *testing.T) {
	t.Parallel()

	jwtService := auth.RequireTestJWTService(t)
	userID := uuid.New()
	guard := NewAuthMiddleware(jwtService)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := shared.UserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, userID, id)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", auth.GenerateAuthHeaderForTestingT(t, userID))
	rec := httptest.NewRecorder()
	guard.Authenticate(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+auth.GenerateExpiredTokenForTestingT(t, userID))
	rec = httptest.NewRecorder()
	guard.Authenticate(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestAuthMiddleware_AddsUserToLogger(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ctx, logBuf := logger.NewTestContext(t)
	jwtService := &mocks.MockJWTService{Claims: &auth.Claims{UserID: userID}}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("handled")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer token")
	NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(httptest.NewRecorder(), req)

	logger.AssertLogField(t, logBuf, "user_id", userID.String())
}

func TestAuthMiddleware_DoesNotLogToken(t *testing.T) {
	t.Parallel()

	ctx, logBuf := logger.NewTestContext(t)
	token := auth.GenerateExpiredTokenForTestingT(t, uuid.New())
	jwtService := auth.RequireTestJWTService(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+token)
	NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.NotContains(t, logBuf.String(), token)
}
