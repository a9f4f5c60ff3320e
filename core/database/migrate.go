package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"group-scheduler/core/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// Migrate applies every embedded migration that has not been recorded in
// schema_migrations, each inside its own transaction.
func (d *Database) Migrate(ctx context.Context) error {
	if _, err := d.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		var applied bool
		if err := d.GetContext(ctx, &applied,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, name); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied {
			continue
		}

		body, err := migrationFiles.ReadFile(name)
		if err != nil {
			return err
		}

		err = d.WithTransaction(ctx, func(ctx context.Context) error {
			if _, err := d.ExecContext(ctx, string(body)); err != nil {
				return err
			}
			_, err := d.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name)
			return err
		})
		if err != nil {
			logger.Error("Database:Migrate:Apply", "migration", name, "error", err)
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		logger.Info("Database:Migrate:Applied", "migration", name)
	}
	return nil
}
