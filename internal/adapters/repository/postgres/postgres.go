// Package postgres opens the networked relational store.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/wellnest/api/internal/adapters/repository/sqlstore"
	"github.com/wellnest/api/internal/config"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const uniqueViolation = "23505"

var Dialect = sqlstore.Dialect{
	Name:              config.DatabasePostgres,
	IsUniqueViolation: isUniqueViolation,
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Open migrates the database behind databaseURL and returns a store over a
// pooled connection. databaseURL must be a postgres:// URL.
func Open(ctx context.Context, databaseURL string) (*sqlstore.Store, error) {
	if err := sqlstore.MigrateUp(Migrations, databaseURL); err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return sqlstore.New(db, Dialect), nil
}

func Down(databaseURL string) error {
	return sqlstore.MigrateDown(Migrations, databaseURL)
}
