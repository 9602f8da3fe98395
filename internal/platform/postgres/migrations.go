package postgres

import "embed"

// MigrationsDir is the directory inside Migrations that holds the goose files.
const MigrationsDir = "migrations"

// MigrationsTable is the goose version table used by this service.
const MigrationsTable = "schema_migrations"

// Migrations holds the SQL migrations, applied with goose by the server's
// --migrate mode and by integration test setup.
//
//go:embed migrations/*.sql
var Migrations embed.FS
