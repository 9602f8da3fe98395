// Package main is the entry point for the jobs API server.
// By default it serves the HTTP API; with --migrate it runs a database
// migration command against the configured database and exits.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/jobs-api/internal/config"
	"github.com/phrazzld/jobs-api/internal/platform/logger"
	"github.com/phrazzld/jobs-api/internal/redact"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("jobs-api exited with error", slog.String("error", redact.Error(err)))
		stop()
		os.Exit(1)
	}
}

// options are the command-line settings. Everything else comes from config.
type options struct {
	migrate string
}

// parseFlags parses args into options. pflag.ErrHelp is returned as is when
// --help was requested.
func parseFlags(args []string) (options, error) {
	var opts options

	flags := pflag.NewFlagSet("jobs-api", pflag.ContinueOnError)
	flags.StringVar(&opts.migrate, "migrate", "",
		"run a migration command (up, down, status, version, reset) and exit")
	if err := flags.Parse(args); err != nil {
		return opts, err
	}

	if opts.migrate != "" {
		if err := validateMigrationCommand(opts.migrate); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("environment", cfg.Server.Environment))

	db, err := setupAppDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer closeDatabase(db, l)
		return runMigrations(db, opts.migrate, newSlogGooseLogger(l))
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		closeDatabase(db, l)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
