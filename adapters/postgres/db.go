package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"pitos/internal/errors"
)

// DriverName is the database/sql driver registered by lib/pq
const DriverName = "postgres"

// Open connects to PostgreSQL and verifies the connection
func Open(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	if databaseURL == "" {
		return nil, errors.ConfigInvalid("database URL is empty")
	}

	db, err := sqlx.ConnectContext(ctx, DriverName, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
