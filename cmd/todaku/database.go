package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/todaku-reader/todaku-api/internal/config"
	"github.com/todaku-reader/todaku-api/internal/platform/postgres"
	"github.com/todaku-reader/todaku-api/internal/platform/sqlite"
	"github.com/todaku-reader/todaku-api/internal/platform/sqlstore"
)

// database bundles an open connection with its dialect and migrator.
type database struct {
	db       *sqlx.DB
	dialect  sqlstore.Dialect
	migrator *sqlstore.Migrator
}

func (d *database) Close() error {
	return d.db.Close()
}

// openDatabase connects to the configured driver. Migrations are not run.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*database, error) {
	var (
		db       *sqlx.DB
		dialect  sqlstore.Dialect
		migrator *sqlstore.Migrator
		err      error
	)

	switch cfg.Driver {
	case "postgres":
		if db, err = postgres.Open(ctx, cfg.URL, cfg.MaxOpenConns); err != nil {
			return nil, err
		}
		dialect = postgres.Dialect{}
		migrator, err = postgres.NewMigrator(db, logger)
	case "sqlite":
		if db, err = sqlite.Open(ctx, cfg.URL, cfg.MaxOpenConns); err != nil {
			return nil, err
		}
		dialect = sqlite.Dialect{}
		migrator, err = sqlite.NewMigrator(db, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	logger.Info("database connection established", "driver", cfg.Driver)
	return &database{db: db, dialect: dialect, migrator: migrator}, nil
}

// openMigratedDatabase opens the database and applies pending migrations.
func openMigratedDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*database, error) {
	d, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	applied, err := d.migrator.Up(ctx)
	if err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	if applied > 0 {
		logger.Info("migrations applied", "count", applied)
	}
	return d, nil
}
