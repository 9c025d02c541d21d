// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies all pending migrations.
// Safe to call multiple times.
func Migrate(ctx context.Context, conn *sqlx.DB, dbType string) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(gooseDialect(dbType)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, conn.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Version returns the current migration version.
func Version(ctx context.Context, conn *sqlx.DB, dbType string) (int64, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(gooseDialect(dbType)); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, conn.DB)
}

func gooseDialect(dbType string) string {
	if dbType == TypeSQLite {
		return "sqlite3"
	}
	return dbType
}
