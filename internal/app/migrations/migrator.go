package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// Dir is the directory inside the embedded filesystem holding the SQL files
const Dir = "sql"

//go:embed sql/*.sql
var embedded embed.FS

// Files returns the embedded migration file names in apply order
func Files() ([]string, error) {
	names, err := fs.Glob(embedded, Dir+"/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Migrator manages database migrations
type Migrator struct {
	dsn    string
	logger zerolog.Logger
}

// NewMigrator creates a new migrator for the database at dsn
func NewMigrator(dsn string, logger zerolog.Logger) (*Migrator, error) {
	if dsn == "" {
		return nil, errors.New("empty database dsn")
	}
	return &Migrator{dsn: dsn, logger: logger}, nil
}

// Up applies every pending migration
func (m *Migrator) Up(ctx context.Context) error {
	return m.withDB(func(db *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		m.logger.Info().Str("dir", Dir).Msg("Applying database migrations")
		if err := goose.UpContext(runCtx, db, Dir); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}

		version, err := goose.GetDBVersionContext(runCtx, db)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		m.logger.Info().Int64("version", version).Msg("Database migrations applied")
		return nil
	})
}

// Down rolls back the latest migration
func (m *Migrator) Down(ctx context.Context) error {
	return m.withDB(func(db *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		m.logger.Info().Msg("Rolling back latest migration")
		if err := goose.DownContext(runCtx, db, Dir); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		return nil
	})
}

func (m *Migrator) withDB(fn func(*sql.DB) error) error {
	goose.SetBaseFS(embedded)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to configure goose: %w", err)
	}

	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return fmt.Errorf("failed to open sql connection: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return fn(db)
}
