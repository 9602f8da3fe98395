package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/jobs-api/internal/domain"
	"github.com/phrazzld/jobs-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userRowColumns = []string{"id", "name", "email", "hashed_password", "created_at", "updated_at"}

func newUserStoreWithMock(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresUserStore(db, bcrypt.MinCost, nil), mock
}

func TestPostgresUserStore_CreateHashesPassword(t *testing.T) {
	s, mock := newUserStoreWithMock(t)
	user, err := domain.NewUser("Alice", " Alice@Example.com ", "password123")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, "Alice", "alice@example.com", sqlmock.AnyArg(), user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), user))

	assert.Empty(t, user.Password)
	require.NotEmpty(t, user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("password123")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_CreateDuplicateEmail(t *testing.T) {
	s, mock := newUserStoreWithMock(t)
	user, err := domain.NewUser("", "bob@example.com", "password123")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"})

	err = s.Create(context.Background(), user)

	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestPostgresUserStore_CreateRejectsInvalidUser(t *testing.T) {
	s, mock := newUserStoreWithMock(t)
	user := &domain.User{ID: uuid.New(), Email: "not-an-email", Password: "password123"}

	err := s.Create(context.Background(), user)

	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_GetByEmailNormalizes(t *testing.T) {
	s, mock := newUserStoreWithMock(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("carol@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(id.String(), "Carol", "carol@example.com", "$2a$04$hash", now, now))

	user, err := s.GetByEmail(context.Background(), "  CAROL@example.com")

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "Carol", user.Name)
	assert.Equal(t, "$2a$04$hash", user.HashedPassword)
	assert.Empty(t, user.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_GetByIDNotFound(t *testing.T) {
	s, mock := newUserStoreWithMock(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestNewPostgresUserStoreClampsCost(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Equal(t, bcrypt.DefaultCost, NewPostgresUserStore(db, 99, nil).bcryptCost)
	assert.Equal(t, 12, NewPostgresUserStore(db, 12, nil).bcryptCost)
}
