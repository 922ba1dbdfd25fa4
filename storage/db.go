// Package storage persists users and labels in PostgreSQL. All statements
// are parameterized; repositories report misses and conflicts through the
// sentinel errors below, matched with errors.Is.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	// (or is not visible to the requesting owner).
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when an insert collides with an
	// already-registered email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

const pingTimeout = 5 * time.Second

// Open opens a connection pool for the given DSN and verifies it with a
// bounded ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
