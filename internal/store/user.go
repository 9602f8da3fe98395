package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/domain"
)

// UserStore persists user accounts.
type UserStore interface {
	// Create validates the user, hashes its plaintext password and inserts
	// it. Returns ErrEmailExists when the normalized email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound if no such user exists. The plaintext
	// password is never populated.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail looks the user up by normalized email and returns
	// ErrUserNotFound if none matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	WithTx(tx *sql.Tx) UserStore
}
