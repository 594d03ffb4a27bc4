package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("database: record not found")

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite3"
)

type DB struct {
	sqlDB  *sql.DB
	driver string
}

// NewDB opens the database named by dbURL. postgres:// and postgresql://
// URLs use Postgres; sqlite3://path and file: URLs use SQLite.
func NewDB(dbURL string) (*DB, error) {
	driver, dsn, err := parseURL(dbURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == driverSQLite {
		db.SetMaxOpenConns(1) // sqlite
		db.SetConnMaxLifetime(0)
	}

	return &DB{sqlDB: db, driver: driver}, nil
}

func parseURL(dbURL string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return driverPostgres, dbURL, nil
	case strings.HasPrefix(dbURL, "sqlite3://"):
		path := strings.TrimPrefix(dbURL, "sqlite3://")
		if path == "" {
			return "", "", fmt.Errorf("database url %q has no path", dbURL)
		}
		return driverSQLite, fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path), nil
	case strings.HasPrefix(dbURL, "file:"):
		return driverSQLite, dbURL, nil
	default:
		return "", "", fmt.Errorf("unsupported database url %q", dbURL)
	}
}

func (db *DB) GetSQLDB() *sql.DB {
	return db.sqlDB
}

func (db *DB) Ping(ctx context.Context) error {
	return db.sqlDB.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.sqlDB.Close()
}

// now is UTC truncated to seconds, which both drivers round-trip exactly.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
