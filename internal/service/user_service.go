package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/jobs-api/internal/domain"
	"github.com/phrazzld/jobs-api/internal/platform/logger"
	"github.com/phrazzld/jobs-api/internal/service/auth"
	"github.com/phrazzld/jobs-api/internal/store"
)

// UserService registers and authenticates users.
type UserService interface {
	// Register creates an account. Returns store.ErrEmailExists when the
	// email is taken and a *domain.ValidationError for bad input.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// Authenticate returns the user whose credentials match, or
	// auth.ErrInvalidCredentials for an unknown email or wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type userServiceImpl struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if !errors.Is(err, store.ErrEmailExists) && !errors.Is(err, domain.ErrValidation) {
			log.Error("failed to create user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login rejected: unknown email")
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to look up user", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login rejected: password mismatch", slog.String("user_id", user.ID.String()))
		return nil, auth.ErrInvalidCredentials
	}

	return user, nil
}
