package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/sealfeed/internal/database"
)

// migrationsPaths maps a DB driver to its migration source.
var migrationsPaths = map[string]string{
	database.DriverPostgres: "file://migrations/postgresql",
	database.DriverMySQL:    "file://migrations/mysql",
}

// RunMigrations applies every pending migration for driver against dsn.
// Returns nil when the schema is already current.
func RunMigrations(logger *slog.Logger, driver, dsn string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	migrationsPath, ok := migrationsPaths[driver]
	if !ok {
		return fmt.Errorf("failed to create migrate instance: unsupported driver %q", driver)
	}

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
