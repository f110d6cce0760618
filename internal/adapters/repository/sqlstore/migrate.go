package sqlstore

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// MigrateUp applies every pending migration found in migrations. The
// database driver for databaseURL's scheme must already be registered.
func MigrateUp(migrations fs.FS, databaseURL string) error {
	return runMigrations(migrations, databaseURL, (*migrate.Migrate).Up)
}

// MigrateDown reverts every applied migration.
func MigrateDown(migrations fs.FS, databaseURL string) error {
	return runMigrations(migrations, databaseURL, (*migrate.Migrate).Down)
}

func runMigrations(migrations fs.FS, databaseURL string, run func(*migrate.Migrate) error) (err error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err := run(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
