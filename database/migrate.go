package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies every pending up migration for the open driver.
func (db *DB) Migrate() error {
	var (
		driver migratedb.Driver
		err    error
	)

	switch db.driver {
	case driverPostgres:
		driver, err = postgres.WithInstance(db.sqlDB, &postgres.Config{})
	case driverSQLite:
		driver, err = sqlite3.WithInstance(db.sqlDB, &sqlite3.Config{})
	default:
		return fmt.Errorf("no migrations for driver %q", db.driver)
	}
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations/"+db.driver)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, db.driver, driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
