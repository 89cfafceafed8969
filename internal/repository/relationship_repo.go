package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ilmkids/internal/database"
	"ilmkids/internal/models"
)

// RelationshipRepository handles database operations for parent/child links
type RelationshipRepository struct {
	db *database.DB
}

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(db *database.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// GetOrCreateRelationship inserts the link unless it already exists.
// The boolean reports whether a new row was created.
func (r *RelationshipRepository) GetOrCreateRelationship(ctx context.Context, parentID, childID int64) (*models.ParentChildRelationship, bool, error) {
	var (
		rel     *models.ParentChildRelationship
		created bool
	)

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		insert := tx.GetDialect().InsertIgnore(
			"INSERT INTO parent_child_relationships (parent_id, child_id, created_at) VALUES (?, ?, ?)")
		result, err := tx.ExecContext(ctx, insert, parentID, childID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to create relationship: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to create relationship: %w", err)
		}
		created = affected == 1

		rel, err = getRelationship(ctx, tx, parentID, childID)
		if err != nil {
			return err
		}
		if rel == nil {
			return fmt.Errorf("relationship %d->%d missing after insert", parentID, childID)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return rel, created, nil
}

// GetRelationship retrieves the link for a pair
func (r *RelationshipRepository) GetRelationship(ctx context.Context, parentID, childID int64) (*models.ParentChildRelationship, error) {
	return getRelationship(ctx, r.db, parentID, childID)
}

func getRelationship(ctx context.Context, q database.DBTX, parentID, childID int64) (*models.ParentChildRelationship, error) {
	query := `
		SELECT id, parent_id, child_id, created_at
		FROM parent_child_relationships
		WHERE parent_id = ? AND child_id = ?
	`
	rel := &models.ParentChildRelationship{}
	err := q.QueryRowContext(ctx, query, parentID, childID).Scan(&rel.ID, &rel.ParentID, &rel.ChildID, &rel.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get relationship: %w", err)
	}
	return rel, nil
}

// DeleteRelationship removes a link, returning ErrNotFound if there was none
func (r *RelationshipRepository) DeleteRelationship(ctx context.Context, parentID, childID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM parent_child_relationships WHERE parent_id = ? AND child_id = ?", parentID, childID)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByParent returns a parent's links ordered by ID
func (r *RelationshipRepository) ListByParent(ctx context.Context, parentID int64) ([]models.ParentChildRelationship, error) {
	return r.list(ctx, "parent_id", parentID)
}

// ListByChild returns a child's links ordered by ID
func (r *RelationshipRepository) ListByChild(ctx context.Context, childID int64) ([]models.ParentChildRelationship, error) {
	return r.list(ctx, "child_id", childID)
}

// list filters on column, which is always one of the two fixed names above
func (r *RelationshipRepository) list(ctx context.Context, column string, id int64) ([]models.ParentChildRelationship, error) {
	query := `
		SELECT id, parent_id, child_id, created_at
		FROM parent_child_relationships
		WHERE ` + column + ` = ?
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	rels := []models.ParentChildRelationship{}
	for rows.Next() {
		var rel models.ParentChildRelationship
		if err := rows.Scan(&rel.ID, &rel.ParentID, &rel.ChildID, &rel.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}
