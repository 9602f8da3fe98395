package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Password length limits. 72 is bcrypt's input limit.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
	MinNameLength     = 3
	MaxNameLength     = 50
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidName         = errors.New("name must be between 3 and 50 characters")
)

// User is a registered account and the unit of data isolation: every Job
// belongs to exactly one User.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name,omitempty"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // plaintext, only set during registration
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with a fresh ID. The email is normalized and the
// plaintext password is kept only until the store hashes it.
func NewUser(name, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail trims and lower-cases an email so lookups and the unique
// constraint agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return NewValidationError("email", "cannot be empty", ErrEmptyEmail)
	}
	if !validateEmailFormat(u.Email) {
		return NewValidationError("email", "is not a valid address", ErrInvalidEmail)
	}

	if u.Name != "" && (len(u.Name) < MinNameLength || len(u.Name) > MaxNameLength) {
		return NewValidationError("name", "must be between 3 and 50 characters", ErrInvalidName)
	}

	if u.Password != "" {
		switch {
		case len(u.Password) < MinPasswordLength:
			return NewValidationError("password", "must be at least 6 characters", ErrPasswordTooShort)
		case len(u.Password) > MaxPasswordLength:
			return NewValidationError("password", "must be at most 72 characters", ErrPasswordTooLong)
		}
		return nil
	}

	// Loaded users carry only the hash.
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

var fieldValidator = validator.New()

func validateEmailFormat(email string) bool {
	return fieldValidator.Var(email, "email") == nil
}
