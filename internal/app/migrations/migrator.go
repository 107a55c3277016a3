// Package migrations applies the embedded goose schema migrations.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/yigit/supervision/internal/pkg/logger"
)

//go:embed sql/*.sql
var FS embed.FS

const dir = "sql"

// gooseUp is a seam for tests that must not touch a database.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Migrator applies schema migrations against a pgx pool
type Migrator struct {
	pool *pgxpool.Pool
}

// NewMigrator creates a new migrator
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool}
}

func (m *Migrator) open() (*sql.DB, error) {
	goose.SetBaseFS(FS)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("pgx"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return stdlib.OpenDBFromPool(m.pool), nil
}

// Up applies all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	db, err := m.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := gooseUp(ctx, db, dir); err != nil {
		return fmt.Errorf("database migrations failed: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration
func (m *Migrator) Down(ctx context.Context) error {
	db, err := m.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.DownContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration rollback failed: %w", err)
	}
	return nil
}

// Version reports the currently applied schema version
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	db, err := m.open()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	return goose.GetDBVersionContext(ctx, db)
}

// gooseLogger routes goose output through zerolog
type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.Fatal().Str("component", "migrations").Msgf(format, v...)
}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.Info().Str("component", "migrations").Msgf(format, v...)
}
