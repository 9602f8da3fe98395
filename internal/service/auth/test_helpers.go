package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/config"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret is a signing secret long enough for NewJWTService.
const TestJWTSecret = "test-jwt-secret-that-is-32-chars-long"

// DefaultJWTConfig returns auth configuration suitable for tests.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            TestJWTSecret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	}
}

// NewTestJWTService builds a token service with an explicit clock.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
	}
}

// RequireTestJWTService creates a token service from DefaultJWTConfig.
func RequireTestJWTService(t *testing.T) JWTService {
	t.Helper()
	svc, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// GenerateAuthHeaderForTestingT returns a "Bearer <token>" header value that
// RequireTestJWTService will accept.
func GenerateAuthHeaderForTestingT(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := RequireTestJWTService(t).GenerateToken(context.Background(), userID)
	require.NoError(t, err, "Failed to generate token")
	return "Bearer " + token
}

// GenerateExpiredTokenForTestingT returns a token signed with TestJWTSecret
// that expired an hour ago.
func GenerateExpiredTokenForTestingT(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	issued := time.Now().Add(-2 * time.Hour)
	svc := NewTestJWTService(TestJWTSecret, time.Hour, func() time.Time { return issued })
	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err, "Failed to generate expired token")
	return token
}
