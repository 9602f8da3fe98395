package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and verifies identity tokens.
type JWTService interface {
	// GenerateToken returns a signed token for userID that expires after the
	// configured lifetime.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies the signature and expiry of tokenString. It
	// returns ErrExpiredToken or ErrInvalidToken on failure, never partial
	// claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the verified contents of a token.
type Claims struct {
	UserID    uuid.UUID `json:"uid,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
