package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies every pending migration from source, a migrate
// source URL such as "file://internal/infrastructure/persistence/postgres/migrations".
// It returns nil when the schema is already current.
func RunMigrations(dsn, source string) error {
	return withMigrator(dsn, source, func(m *migrate.Migrate) error { return m.Up() })
}

// RunMigrationsDown rolls back every applied migration.
func RunMigrationsDown(dsn, source string) error {
	return withMigrator(dsn, source, func(m *migrate.Migrate) error { return m.Down() })
}

func withMigrator(dsn, source string, step func(*migrate.Migrate) error) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}
