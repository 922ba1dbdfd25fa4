package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"labelbox/models"
)

// UserStorage manages user persistence
type UserStorage struct {
	db *sql.DB
}

// NewUserStorage creates a new user storage instance
func NewUserStorage(db *sql.DB) *UserStorage {
	return &UserStorage{db: db}
}

// CreateUser inserts a new user. The insert is conditional on the email not
// being taken, so a concurrent duplicate sign-up loses cleanly instead of
// racing a separate existence check. Returns ErrDuplicateEmail when the
// email is already registered.
func (s *UserStorage) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (id, email, password)
	          SELECT $1, $2, $3
	          WHERE NOT EXISTS (SELECT 1 FROM users WHERE email = $2)`

	res, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if rows == 0 {
		return ErrDuplicateEmail
	}

	return nil
}

// GetUserByEmail retrieves a user by email. Returns ErrNotFound when no
// such user exists.
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password FROM users WHERE email = $1`

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
