package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kozaktomas/face-vault/internal/faceprint"
	"github.com/kozaktomas/face-vault/internal/store"
)

// TemplateRepository implements store.TemplateStore on PostgreSQL. The
// template record is stored as a single opaque binary blob (the same layout
// as the export format), so every write replaces the whole record
// atomically. Enumeration order is ORDER BY user_id, matching the memory
// store's sorted order.
type TemplateRepository struct {
	pool *Pool
}

// NewTemplateRepository creates a template repository using the given pool.
func NewTemplateRepository(pool *Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// Upsert creates or replaces the template for a user.
func (r *TemplateRepository) Upsert(ctx context.Context, userID string, fp faceprint.Faceprints) error {
	var buf bytes.Buffer
	if err := faceprint.EncodeRecord(&buf, fp); err != nil {
		return err
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO faceprint_templates (user_id, record)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET record = EXCLUDED.record, updated_at = NOW()
	`, userID, buf.Bytes())
	if err != nil {
		return fmt.Errorf("upserting template for %s: %w", userID, err)
	}
	return nil
}

// Lookup returns the stored template, or nil if the user is not enrolled.
func (r *TemplateRepository) Lookup(ctx context.Context, userID string) (*faceprint.Faceprints, error) {
	var record []byte
	err := r.pool.db.QueryRowContext(ctx,
		"SELECT record FROM faceprint_templates WHERE user_id = $1", userID,
	).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up template for %s: %w", userID, err)
	}

	fp, err := faceprint.DecodeRecord(bytes.NewReader(record))
	if err != nil {
		return nil, fmt.Errorf("stored template for %s is corrupt: %w", userID, err)
	}
	return &fp, nil
}

// List returns all enrolled user ids in lexicographic order.
func (r *TemplateRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT user_id FROM faceprint_templates ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user ids: %w", err)
	}
	return ids, nil
}

// Remove deletes one user's template.
func (r *TemplateRepository) Remove(ctx context.Context, userID string) error {
	result, err := r.pool.db.ExecContext(ctx,
		"DELETE FROM faceprint_templates WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("removing template for %s: %w", userID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking removal of %s: %w", userID, err)
	}
	if affected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// Clear removes every template.
func (r *TemplateRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.db.ExecContext(ctx, "DELETE FROM faceprint_templates"); err != nil {
		return fmt.Errorf("clearing templates: %w", err)
	}
	return nil
}

// Count returns the number of enrolled users.
func (r *TemplateRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM faceprint_templates").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting templates: %w", err)
	}
	return count, nil
}
