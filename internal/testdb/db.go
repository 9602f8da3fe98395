package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/jobs-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection checks made by the helpers.
const TestTimeout = 5 * time.Second

// Environment variables consulted for the test database, in order.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvTestDBURL   = "JOBS_TEST_DB_URL"
)

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the first non-empty of DATABASE_URL and
// JOBS_TEST_DB_URL.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv(EnvDatabaseURL); dbURL != "" {
		return dbURL
	}
	return os.Getenv(EnvTestDBURL)
}

// GetTestDBWithT opens and pings the test database, skipping the test when
// none is configured. The connection is closed on test cleanup.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s or %s not set - skipping integration test", EnvDatabaseURL, EnvTestDBURL)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Database ping failed")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	return db
}

// SetupTestDatabaseSchema applies the embedded migrations.
func SetupTestDatabaseSchema(t *testing.T, db *sql.DB) {
	t.Helper()
	require.NoError(t, ApplyMigrations(db, &testGooseLogger{t: t}), "Failed to run migrations")
}

// ApplyMigrations runs every pending embedded migration against db.
func ApplyMigrations(db *sql.DB, logger goose.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if logger != nil {
		goose.SetLogger(logger)
	}
	goose.SetBaseFS(postgres.Migrations)
	goose.SetTableName(postgres.MigrationsTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction that is always rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

type testGooseLogger struct {
	t *testing.T
}

func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Log("goose: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatal("goose fatal: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
