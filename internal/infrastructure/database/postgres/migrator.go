package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers the pgx5:// scheme
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// newMigrate opens a dedicated migrate instance over the embedded files.  It
// holds its own connection so closing it leaves the pool untouched.
func (c *Connection) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, buildDSN(c.cfg, "pgx5"))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate applies every pending migration.  No pending migrations is not an
// error.
func (c *Connection) Migrate() error {
	m, err := c.newMigrate()
	if err != nil {
		return err
	}
	defer closeMigrate(m, c.logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		c.logger.Warn("Failed to get migration version", logging.Err(err))
	}
	c.logger.Info("Database migrations completed",
		logging.Int64("version", int64(version)),
		logging.Bool("dirty", dirty),
	)
	return nil
}

// MigrateDown rolls back steps migrations.
func (c *Connection) MigrateDown(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be greater than 0, got %d", steps)
	}

	m, err := c.newMigrate()
	if err != nil {
		return err
	}
	defer closeMigrate(m, c.logger)

	if err := m.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("no migrations to roll back")
		}
		return fmt.Errorf("failed to rollback %d step(s): %w", steps, err)
	}
	return nil
}

// MigrationVersion reports the applied version and whether the last run left
// the schema dirty.  A fresh database reports version 0.
func (c *Connection) MigrationVersion() (uint, bool, error) {
	m, err := c.newMigrate()
	if err != nil {
		return 0, false, err
	}
	defer closeMigrate(m, c.logger)

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

func closeMigrate(m *migrate.Migrate, log logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil || dbErr != nil {
		log.Warn("Failed to close migrate instance",
			logging.Any("source_error", srcErr),
			logging.Any("database_error", dbErr),
		)
	}
}

//Personal.AI order the ending
