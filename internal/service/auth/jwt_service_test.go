package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "too-short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	lifetime := 30 * 24 * time.Hour
	svc := NewTestJWTService(testSecret, lifetime, fixedClock(fixedTime))
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	_, err = svc.GenerateToken(context.Background(), uuid.Nil)
	assert.Error(t, err)
}

func TestGenerateTokenUniqueIDs(t *testing.T) {
	t.Parallel()

	svc := NewTestJWTService(testSecret, time.Hour, fixedClock(fixedTime))
	userID := uuid.New()

	first, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateTokenExpiryBoundary(t *testing.T) {
	t.Parallel()

	lifetime := time.Hour
	userID := uuid.New()
	token, err := NewTestJWTService(testSecret, lifetime, fixedClock(fixedTime)).
		GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{name: "just issued", at: fixedTime},
		{name: "one second before expiry", at: fixedTime.Add(lifetime - time.Second)},
		{name: "at expiry", at: fixedTime.Add(lifetime), wantErr: ErrExpiredToken},
		{name: "one second after expiry", at: fixedTime.Add(lifetime + time.Second), wantErr: ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewTestJWTService(testSecret, lifetime, fixedClock(tt.at))

			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}

func TestValidateTokenExpiryTruncatedToSeconds(t *testing.T) {
	t.Parallel()

	lifetime := time.Hour
	issuedAt := fixedTime.Add(500 * time.Millisecond)
	token, err := NewTestJWTService(testSecret, lifetime, fixedClock(issuedAt)).
		GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	claims, err := NewTestJWTService(testSecret, lifetime, fixedClock(issuedAt)).
		ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Equal(fixedTime.Add(lifetime)), "exp is truncated to the second")

	_, err = NewTestJWTService(testSecret, lifetime, fixedClock(fixedTime.Add(lifetime-time.Millisecond))).
		ValidateToken(context.Background(), token)
	assert.NoError(t, err)

	_, err = NewTestJWTService(testSecret, lifetime, fixedClock(fixedTime.Add(lifetime))).
		ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken, "expires before issuedAt+lifetime")
}

func TestValidateTokenRejects(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	registered := func(exp bool) jwt.RegisteredClaims {
		rc := jwt.RegisteredClaims{
			Subject:  userID.String(),
			IssuedAt: jwt.NewNumericDate(fixedTime),
			ID:       uuid.New().String(),
		}
		if exp {
			rc.ExpiresAt = jwt.NewNumericDate(fixedTime.Add(time.Hour))
		}
		return rc
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "empty",
			token: func(t *testing.T) string { return "" },
		},
		{
			name:  "malformed",
			token: func(t *testing.T) string { return "this.is.not.a.valid.jwt.token" },
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte("another-secret-that-is-long-enough-too"),
					jwtCustomClaims{UserID: userID, RegisteredClaims: registered(true)})
			},
		},
		{
			name: "tampered payload",
			token: func(t *testing.T) string {
				good := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret),
					jwtCustomClaims{UserID: userID, RegisteredClaims: registered(true)})
				other := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret),
					jwtCustomClaims{UserID: uuid.New(), RegisteredClaims: registered(true)})
				goodParts := strings.Split(good, ".")
				otherParts := strings.Split(other, ".")
				return goodParts[0] + "." + otherParts[1] + "." + goodParts[2]
			},
		},
		{
			name: "unsigned",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType,
					jwtCustomClaims{UserID: userID, RegisteredClaims: registered(true)})
			},
		},
		{
			name: "other hmac algorithm",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS512, []byte(testSecret),
					jwtCustomClaims{UserID: userID, RegisteredClaims: registered(true)})
			},
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret),
					jwtCustomClaims{UserID: userID, RegisteredClaims: registered(false)})
			},
		},
		{
			name: "missing user id",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret),
					jwtCustomClaims{RegisteredClaims: registered(true)})
			},
		},
	}

	svc := NewTestJWTService(testSecret, time.Hour, fixedClock(fixedTime))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := svc.ValidateToken(context.Background(), tt.token(t))
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
