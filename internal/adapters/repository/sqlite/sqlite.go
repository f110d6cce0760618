// Package sqlite opens the embedded single-file store used for local
// development and tests.
package sqlite

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/wellnest/api/internal/adapters/repository/sqlstore"
	"github.com/wellnest/api/internal/config"
)

//go:embed migrations/*.sql
var Migrations embed.FS

var Dialect = sqlstore.Dialect{
	Name:              config.DatabaseSQLite,
	IsUniqueViolation: isUniqueViolation,
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// Open creates the database file if needed, migrates it and returns a store.
// SQLite allows a single writer, so the pool is capped at one connection.
func Open(ctx context.Context, path string) (*sqlstore.Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if err := sqlstore.MigrateUp(Migrations, migrateURL(path)); err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	return sqlstore.New(db, Dialect), nil
}

func Down(path string) error {
	return sqlstore.MigrateDown(Migrations, migrateURL(path))
}

func dsn(path string) string {
	return "file:" + path + "?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL"
}

func migrateURL(path string) string {
	return "sqlite3://" + path
}
