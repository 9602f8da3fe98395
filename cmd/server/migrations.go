package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/jobs-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

// migrationCommands are the goose commands exposed through --migrate.
var migrationCommands = []string{"up", "down", "status", "version", "reset"}

func validateMigrationCommand(command string) error {
	for _, c := range migrationCommands {
		if c == command {
			return nil
		}
	}
	return fmt.Errorf("unknown migration command %q (expected one of: %s)",
		command, strings.Join(migrationCommands, ", "))
}

// runMigrations executes a goose command against db using the migrations
// embedded in the postgres package.
func runMigrations(db *sql.DB, command string, logger goose.Logger) error {
	if err := validateMigrationCommand(command); err != nil {
		return err
	}

	goose.SetLogger(logger)
	goose.SetBaseFS(postgres.Migrations)
	goose.SetTableName(postgres.MigrationsTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.Up(db, postgres.MigrationsDir)
	case "down":
		err = goose.Down(db, postgres.MigrationsDir)
	case "status":
		err = goose.Status(db, postgres.MigrationsDir)
	case "version":
		err = goose.Version(db, postgres.MigrationsDir)
	case "reset":
		err = goose.Reset(db, postgres.MigrationsDir)
	}
	if err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}

	logger.Printf("migration command %q completed", command)
	return nil
}

// slogGooseLogger adapts goose.Logger to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

var _ goose.Logger = (*slogGooseLogger)(nil)

func newSlogGooseLogger(logger *slog.Logger) *slogGooseLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogGooseLogger{logger: logger.With(slog.String("component", "migrations"))}
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements goose.Logger. It does not exit; the error goose returns
// reaches main, which owns the exit code.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
