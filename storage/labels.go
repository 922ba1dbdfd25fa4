package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"labelbox/models"
)

// LabelStorage manages label persistence. Every query that addresses a
// single label filters by owner as well as id, so one user's labels are
// invisible and immutable to everyone else.
type LabelStorage struct {
	db *sql.DB
}

// NewLabelStorage creates a new label storage instance
func NewLabelStorage(db *sql.DB) *LabelStorage {
	return &LabelStorage{db: db}
}

// CreateLabel inserts a new label
func (s *LabelStorage) CreateLabel(ctx context.Context, label *models.Label) error {
	query := `INSERT INTO labels (id, user_id, title, color) VALUES ($1, $2, $3, $4)`

	if _, err := s.db.ExecContext(ctx, query, label.ID, label.UserID, label.Title, label.Color); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetLabelsByUser retrieves all labels owned by a user
func (s *LabelStorage) GetLabelsByUser(ctx context.Context, userID string) ([]models.Label, error) {
	query := `SELECT id, user_id, title, color FROM labels WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var labels []models.Label
	for rows.Next() {
		var label models.Label
		if err := rows.Scan(&label.ID, &label.UserID, &label.Title, &label.Color); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return labels, nil
}

// GetLabel retrieves a single label scoped by owner. Returns ErrNotFound
// when the label does not exist or belongs to someone else.
func (s *LabelStorage) GetLabel(ctx context.Context, userID, id string) (*models.Label, error) {
	query := `SELECT id, user_id, title, color FROM labels WHERE id = $1 AND user_id = $2`

	label := &models.Label{}
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(&label.ID, &label.UserID, &label.Title, &label.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return label, nil
}

// UpdateLabel rewrites a label's title and color, scoped by owner
func (s *LabelStorage) UpdateLabel(ctx context.Context, userID, id, title, color string) error {
	query := `UPDATE labels SET title = $1, color = $2 WHERE id = $3 AND user_id = $4`

	res, err := s.db.ExecContext(ctx, query, title, color, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

// DeleteLabel removes a label, scoped by owner
func (s *LabelStorage) DeleteLabel(ctx context.Context, userID, id string) error {
	query := `DELETE FROM labels WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

// requireRow maps "no rows touched" to ErrNotFound
func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
